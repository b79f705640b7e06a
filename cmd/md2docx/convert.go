package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tsawler/md2docx"
	"github.com/tsawler/md2docx/format"
)

type convertFlags struct {
	output     string
	htmlOutput string
	imageDir   string
	imageWidth float64
}

func newConvertCommand(global *globalFlags) *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert <input.md>",
		Short: "Convert a Markdown file to .docx",
		Long: "Convert a Markdown file to a Word document. The output defaults to the input path with a .docx extension; " +
			"an output path ending in .html writes the HTML preview instead.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, global, flags, args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output path (.docx or .html)")
	cmd.Flags().StringVar(&flags.htmlOutput, "html", "", "also write an HTML preview to this path")
	cmd.Flags().StringVar(&flags.imageDir, "image-dir", "", "directory relative image paths resolve against")
	cmd.Flags().Float64Var(&flags.imageWidth, "image-width", 0, "picture width in inches")

	return cmd
}

func runConvert(cmd *cobra.Command, global *globalFlags, flags *convertFlags, input string) error {
	cfg, err := global.loadConfig(cmd)
	if err != nil {
		return err
	}
	if flags.imageDir != "" {
		cfg.ImageDir = flags.imageDir
	}
	if flags.imageWidth != 0 {
		cfg.ImageWidth = flags.imageWidth
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	conv := md2docx.Open(input).WithConfig(cfg).WithLogger(logger)

	output := flags.output
	if output == "" {
		output = format.ReplaceExtension(input, format.DOCX)
	}

	var warnings []md2docx.Warning
	switch format.Detect(output) {
	case format.HTML:
		warnings, err = conv.ToHTML(output)
	case format.DOCX:
		warnings, err = conv.ToDOCX(output)
	default:
		return fmt.Errorf("unsupported output format %q", output)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "wrote %s\n", output)

	if flags.htmlOutput != "" && filepath.Clean(flags.htmlOutput) != filepath.Clean(output) {
		if _, err := conv.ToHTML(flags.htmlOutput); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", flags.htmlOutput)
	}

	if len(warnings) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d warning(s):\n%s\n", len(warnings), md2docx.FormatWarnings(warnings))
	}
	return nil
}
