// Package format provides file format detection for documents and images.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// Markdown indicates a Markdown source document.
	Markdown
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// HTML indicates an HTML document.
	HTML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case Markdown:
		return "Markdown"
	case DOCX:
		return "DOCX"
	case HTML:
		return "HTML"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case Markdown:
		return ".md"
	case DOCX:
		return ".docx"
	case HTML:
		return ".html"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown", ".mdown", ".txt":
		return Markdown
	case ".docx":
		return DOCX
	case ".html", ".htm":
		return HTML
	default:
		return Unknown
	}
}

// ReplaceExtension swaps the extension of filename for the one of f.
func ReplaceExtension(filename string, f Format) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + f.Extension()
}

// DetectFromReader inspects the content to determine format.
// This is more reliable than extension-based detection for DOCX files,
// which are ZIP archives with a word/ directory.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	// ZIP magic: PK\x03\x04
	if bytes.HasPrefix(magic, []byte{0x50, 0x4B, 0x03, 0x04}) {
		return detectZIPFormat(r, size)
	}

	if detectHTMLMagic(magic) {
		return HTML, nil
	}

	return Unknown, nil
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	upper := strings.ToUpper(strings.TrimLeft(string(data), " \t\r\n"))
	return strings.HasPrefix(upper, "<!DOCTYPE HTML") || strings.HasPrefix(upper, "<HTML")
}

// detectZIPFormat inspects a ZIP archive for Office Open XML word parts.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/") {
			return DOCX, nil
		}
	}

	return Unknown, nil
}
