package classify

import (
	"path/filepath"
	"strings"
)

// sniffBytes is how much of the file head is inspected for binary content.
const sniffBytes = 1024

// textExtensions are always treated as text (subject to the NUL check).
var textExtensions = map[string]bool{
	".txt": true, ".md": true, ".py": true, ".js": true, ".html": true,
	".htm": true, ".css": true, ".xml": true, ".json": true,
	".yml": true, ".yaml": true, ".ini": true, ".cfg": true, ".conf": true,
	".config": true, ".properties": true,
	".sql": true, ".sh": true, ".bat": true, ".ps1": true, ".php": true,
	".java": true, ".cpp": true, ".c": true, ".h": true,
	".cs": true, ".go": true, ".rs": true, ".rb": true, ".pl": true,
	".swift": true, ".kt": true, ".scala": true, ".clj": true,
	".lua": true, ".r": true, ".m": true, ".dart": true, ".tsx": true,
	".jsx": true, ".vue": true, ".log": true, ".env": true,
	".dockerfile": true, ".makefile": true, ".gitignore": true,
	".gitattributes": true, ".editorconfig": true,
}

// binaryExtensions are always rejected, regardless of content.
var binaryExtensions = map[string]bool{
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".bin": true,
	".dat": true, ".db": true, ".sqlite": true,
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true,
	".ico": true, ".svg": true, ".webp": true,
	".mp4": true, ".avi": true, ".mkv": true, ".mov": true, ".wmv": true,
	".flv": true, ".webm": true, ".m4v": true,
	".mp3": true, ".wav": true, ".flac": true, ".aac": true, ".ogg": true,
	".wma": true, ".m4a": true,
	".zip": true, ".rar": true, ".7z": true, ".tar": true, ".gz": true,
	".bz2": true, ".xz": true, ".lzma": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".ppt": true, ".pptx": true,
	".class": true, ".jar": true, ".war": true, ".ear": true,
	".pyc": true, ".pyo": true, ".pyd": true,
}

// Classifier decides whether a path is eligible for scanning. The built-in
// extension lists can be extended per instance.
type Classifier struct {
	allow map[string]bool
	deny  map[string]bool
}

// New returns a classifier using the built-in extension lists plus the given
// extras. Extensions are normalized to lowercase with a leading dot.
func New(extraAllow, extraDeny []string) *Classifier {
	c := &Classifier{
		allow: make(map[string]bool, len(textExtensions)+len(extraAllow)),
		deny:  make(map[string]bool, len(binaryExtensions)+len(extraDeny)),
	}
	for e := range textExtensions {
		c.allow[e] = true
	}
	for e := range binaryExtensions {
		c.deny[e] = true
	}
	for _, e := range extraAllow {
		c.allow[normalizeExt(e)] = true
	}
	for _, e := range extraDeny {
		c.deny[normalizeExt(e)] = true
	}
	return c
}

func normalizeExt(e string) string {
	e = strings.ToLower(strings.TrimSpace(e))
	if e != "" && !strings.HasPrefix(e, ".") {
		e = "." + e
	}
	return e
}

// IsScannable reports whether the file should be scanned. data is the file
// content (at least the head) for sniffing. Known binary extensions are
// rejected outright; content containing a NUL byte is always rejected; known
// text extensions pass; anything else passes only when the head is mostly
// printable.
func (c *Classifier) IsScannable(path string, data []byte) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if c.deny[ext] {
		return false
	}
	head := data
	if len(head) > sniffBytes {
		head = head[:sniffBytes]
	}
	for _, b := range head {
		if b == 0 {
			return false
		}
	}
	if c.allow[ext] {
		return true
	}
	return mostlyPrintable(head)
}

// mostlyPrintable reports whether at least 90% of the head looks like text.
// High bytes pass through: multi-byte encodings are the decoder's problem.
func mostlyPrintable(head []byte) bool {
	if len(head) == 0 {
		return true
	}
	printable := 0
	for _, b := range head {
		if b >= 0x20 || b == '\t' || b == '\n' || b == '\r' {
			printable++
		}
	}
	return printable*10 >= len(head)*9
}
