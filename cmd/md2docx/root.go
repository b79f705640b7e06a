package main

import (
	"github.com/spf13/cobra"

	"github.com/tsawler/md2docx/config"
	"github.com/tsawler/md2docx/internal/logging"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string

	frontMatter bool
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "md2docx",
		Short:         "Convert Markdown notes into Word documents (.docx)",
		Long:          "Commands for converting Markdown into .docx or an HTML preview, and for inspecting the result.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "log format (console, json, pretty)")
	cmd.PersistentFlags().BoolVar(&flags.frontMatter, "front-matter", true, "parse a leading front matter block")

	cmd.AddCommand(newConvertCommand(flags))
	cmd.AddCommand(newBlocksCommand(flags))
	cmd.AddCommand(newInspectCommand())

	return cmd
}

// loadConfig reads the optional config file and applies the flags set on
// the command line.
func (f *globalFlags) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Log.Format = f.logFormat
	}
	if cmd.Flags().Changed("front-matter") {
		cfg.FrontMatter = f.frontMatter
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config) (logging.Logger, error) {
	provider, err := logging.NewProvider(logging.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
	})
	if err != nil {
		return nil, err
	}
	return provider.GetLogger("md2docx"), nil
}
