// Package model provides the intermediate representation (IR) produced by the
// Markdown converter and consumed by the renderers.
//
// This package defines the data structures that represent the semantic
// structure of a converted document. The converter produces these types and
// every renderer (DOCX, HTML) consumes them, making them the contract between
// parsing and output.
//
// # Document Structure
//
// The [Document] type represents a complete document with metadata and an
// ordered list of blocks:
//
//	doc := model.NewDocument()
//	doc.Metadata.Title = "My Report"
//	doc.Append(model.Heading{Level: 1, Text: "Introduction"})
//
// # Blocks
//
// All document content implements the [Block] interface. The concrete types are:
//
//   - [Heading] - headings (levels 1-3)
//   - [Paragraph] - paragraphs made of styled [Run] values
//   - [Table] - a header row plus data rows of plain cell text
//   - [Image] - a picture reference with a fallback description
//   - [BulletItem] - bulleted list items (levels 1-2)
//   - [Rule] - horizontal separators
//
// Blocks are plain values. Once a block has been produced it is never
// modified; renderers only read them.
//
// # Units
//
// [Inches] and [Points] convert between the units used by word-processor
// formats (EMU, twips, half-points).
package model
