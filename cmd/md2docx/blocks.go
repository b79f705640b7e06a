package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/md2docx"
	"github.com/tsawler/md2docx/model"
)

func newBlocksCommand(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "blocks <input.md>",
		Short: "Print the block sequence of a Markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}

			blocks, warnings, err := md2docx.Open(args[0]).WithConfig(cfg).WithLogger(logger).Blocks()
			if err != nil {
				return err
			}
			printBlocks(cmd.OutOrStdout(), blocks)
			if len(warnings) > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), md2docx.FormatWarnings(warnings))
			}
			return nil
		},
	}
}

func printBlocks(w io.Writer, blocks []model.Block) {
	for i, b := range blocks {
		fmt.Fprintf(w, "%3d %-10s %s\n", i, b.Kind(), describe(b))
	}
}

func describe(b model.Block) string {
	switch v := b.(type) {
	case model.Heading:
		return fmt.Sprintf("h%d %q", v.Level, v.Text)
	case model.Paragraph:
		parts := make([]string, len(v.Runs))
		for i, r := range v.Runs {
			marks := ""
			if r.Bold {
				marks += "b"
			}
			if r.Italic {
				marks += "i"
			}
			if marks != "" {
				marks = "[" + marks + "]"
			}
			parts[i] = fmt.Sprintf("%q%s", r.Text, marks)
		}
		return strings.Join(parts, " ")
	case model.Table:
		return fmt.Sprintf("%dx%d %q", len(v.Rows), v.ColCount(), v.Header)
	case model.Image:
		state := "ok"
		if v.Missing() {
			state = "missing"
		}
		return fmt.Sprintf("%q %s (%s)", v.Description, v.Path, state)
	case model.BulletItem:
		return fmt.Sprintf("L%d %q", v.Level, v.Text)
	default:
		return ""
	}
}
