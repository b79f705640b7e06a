// Package md2docx converts Markdown notes into Word (.docx) documents.
//
// Basic usage:
//
//	warnings, err := md2docx.Open("notes.md").ToDOCX("notes.docx")
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", md2docx.FormatWarnings(warnings))
//	}
//
// With options:
//
//	warnings, err := md2docx.Open("notes.md").
//	    ImageDir("assets").
//	    ImageWidth(4).
//	    Font("Malgun Gothic", 10).
//	    ToDOCX("notes.docx")
//
// The markdown, docx and htmldoc packages expose the individual stages.
package md2docx

import (
	"github.com/tsawler/md2docx/internal/logging"
	"github.com/tsawler/md2docx/markdown"
)

// Warning describes a non-fatal degradation, such as a missing image.
type Warning = markdown.Warning

// Logger receives structured progress and warning entries.
type Logger = logging.Logger

// Error text codes attached to failures.
const (
	CodeSourceRead  = "SOURCE_READ_FAILED"
	CodeOutputWrite = "OUTPUT_WRITE_FAILED"
	CodeNoSource    = "SOURCE_MISSING"
)

// FormatWarnings joins warnings into a single multi-line string.
func FormatWarnings(warnings []Warning) string {
	return markdown.FormatWarnings(warnings)
}

// Open returns a Converter for the Markdown file at filename. Relative image
// paths resolve against the file's directory unless ImageDir is set.
//
// Example:
//
//	warnings, err := md2docx.Open("notes.md").ToDOCX("notes.docx")
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes returns a Converter for Markdown held in memory. Relative image
// paths resolve against imageDir.
//
// Example:
//
//	blocks, _, err := md2docx.FromBytes(data, ".").Blocks()
func FromBytes(data []byte, imageDir string) *Converter {
	c := &Converter{
		data:    append([]byte(nil), data...),
		hasData: true,
		options: defaultOptions(),
	}
	c.options.imageDir = imageDir
	return c
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil.
//
// Example:
//
//	r := md2docx.Must(docx.Open("notes.docx"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustValue wraps a terminal operation returning (T, []Warning, error),
// panicking on error and discarding warnings. It is intended for scripts
// and tests.
//
// Example:
//
//	doc := md2docx.MustValue(md2docx.Open("notes.md").Document())
func MustValue[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
