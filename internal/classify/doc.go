// Package classify decides which files are scannable text and decodes them
// across a fixed fallback chain of encodings (UTF-8, UTF-16 with BOM, GBK,
// GB18030). It is internal; the engine drives it per file.
package classify
