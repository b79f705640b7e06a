package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/md2docx/docx"
	"github.com/tsawler/md2docx/format"
	"github.com/tsawler/md2docx/htmldoc"
	"github.com/tsawler/md2docx/model"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.docx|file.html>",
		Short: "Print the outline and statistics of a converted document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, media, err := readDocument(args[0])
			if err != nil {
				return err
			}
			printOutline(cmd.OutOrStdout(), doc, media)
			return nil
		},
	}
}

// readDocument loads a DOCX or HTML file, detected from its content when
// the extension is not conclusive.
func readDocument(path string) (*model.Document, []string, error) {
	f := format.Detect(path)
	if f != format.DOCX && f != format.HTML {
		file, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		info, err := file.Stat()
		if err != nil {
			file.Close()
			return nil, nil, err
		}
		f, err = format.DetectFromReader(file, info.Size())
		file.Close()
		if err != nil {
			return nil, nil, err
		}
	}

	switch f {
	case format.DOCX:
		r, err := docx.Open(path)
		if err != nil {
			return nil, nil, err
		}
		defer r.Close()
		return r.Document(), r.Media(), nil
	case format.HTML:
		doc, err := htmldoc.Open(path)
		return doc, nil, err
	default:
		return nil, nil, fmt.Errorf("cannot inspect %s: unsupported format %s", path, f)
	}
}

func printOutline(w io.Writer, doc *model.Document, media []string) {
	if doc.Metadata.Title != "" {
		fmt.Fprintf(w, "Title: %s\n", doc.Metadata.Title)
	}
	if doc.Metadata.Author != "" {
		fmt.Fprintf(w, "Author: %s\n", doc.Metadata.Author)
	}

	s := doc.Stats()
	fmt.Fprintf(w, "Blocks: %d (headings %d, paragraphs %d, tables %d, bullets %d, images %d, rules %d)\n",
		doc.BlockCount(), s.Headings, s.Paragraphs, s.Tables, s.Bullets, s.Images, s.Rules)
	if len(media) > 0 {
		fmt.Fprintf(w, "Media: %s\n", strings.Join(media, ", "))
	}

	toc := doc.TableOfContents()
	if len(toc) == 0 {
		return
	}
	fmt.Fprintln(w, "Outline:")
	for _, e := range toc {
		fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", e.Level), e.Text)
	}
}
