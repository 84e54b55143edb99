package classify

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodedFile is the text of one file, split into lines, plus the encoding
// that produced it. Instances are owned by the worker that decoded them and
// are dropped once matching completes.
type DecodedFile struct {
	Lines    []string
	Encoding string
}

// DecodeError means a single file could not be turned into text. Callers
// treat it as a skip, never as a fatal scan error.
type DecodeError struct {
	Path   string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %s", e.Path, e.Reason)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode turns raw file bytes into lines, trying candidate encodings in a
// fixed order: UTF-8 (strict), UTF-16 (BOM required), GBK, GB18030. The
// first encoding that decodes the whole stream cleanly wins. The order is a
// deliberate contract; changing it changes results across platforms.
func (c *Classifier) Decode(path string, data []byte) (DecodedFile, error) {
	if len(data) == 0 {
		return DecodedFile{Encoding: "utf-8"}, nil
	}
	if text, ok := decodeUTF8(data); ok {
		return DecodedFile{Lines: splitLines(text), Encoding: "utf-8"}, nil
	}
	if text, name, ok := decodeUTF16(data); ok {
		return DecodedFile{Lines: splitLines(text), Encoding: name}, nil
	}
	if text, ok := decodeStrict(data, simplifiedchinese.GBK); ok {
		return DecodedFile{Lines: splitLines(text), Encoding: "gbk"}, nil
	}
	if text, ok := decodeStrict(data, simplifiedchinese.GB18030); ok {
		return DecodedFile{Lines: splitLines(text), Encoding: "gb18030"}, nil
	}
	return DecodedFile{}, &DecodeError{Path: path, Reason: "no candidate encoding accepts the content"}
}

func decodeUTF8(data []byte) (string, bool) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

// decodeUTF16 only fires on an explicit byte-order mark; BOM-less UTF-16 is
// indistinguishable from binary noise.
func decodeUTF16(data []byte) (string, string, bool) {
	if len(data) < 2 {
		return "", "", false
	}
	var enc encoding.Encoding
	var name string
	switch {
	case data[0] == 0xFF && data[1] == 0xFE:
		enc, name = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), "utf-16le"
	case data[0] == 0xFE && data[1] == 0xFF:
		enc, name = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), "utf-16be"
	default:
		return "", "", false
	}
	text, ok := decodeStrict(data, enc)
	if !ok {
		return "", "", false
	}
	return text, name, true
}

// decodeStrict decodes with enc and fails if anything in the stream did not
// decode. The x/text decoders substitute U+FFFD instead of erroring, so a
// replacement rune in the output marks the attempt as failed (the input
// already failed strict UTF-8 by this point, so a deliberate U+FFFD cannot
// reach here).
func decodeStrict(data []byte, enc encoding.Encoding) (string, bool) {
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", false
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", false
	}
	return string(out), true
}

// splitLines splits on \n, tolerating \r\n. A trailing newline does not
// produce a phantom empty final line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
