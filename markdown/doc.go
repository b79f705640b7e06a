// Package markdown converts a fixed subset of Markdown into document blocks.
//
// The converter is a single forward scan over the input lines. Each line is
// classified in priority order (blank, heading, table, image, bullet, rule,
// paragraph) and the first matching rule consumes one or more lines:
//
//	blocks := markdown.Convert(lines, "/path/to/images")
//
// Tables and nested bullets look ahead through a [Lines] cursor, which only
// ever moves forward. Conversion never fails: malformed syntax degrades to
// literal text, missing images keep a fallback description, and tables
// without a header or data rows are dropped.
//
// Use [Load] or [Parse] to read a source file (BOM-aware decoding, NFC
// normalization and optional YAML front matter) before converting it.
package markdown
