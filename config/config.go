// Package config holds the converter settings, loaded from an optional YAML
// file and validated before use.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/md2docx/internal/logging"
)

// Error text codes
const (
	CodeInvalid    = "CONFIG_INVALID"
	CodeReadFailed = "CONFIG_READ_FAILED"
)

// MaxImageWidth is the page width in inches; pictures never exceed it.
const MaxImageWidth = 8.5

// Config aggregates conversion settings.
type Config struct {
	// ImageDir resolves relative image paths. Empty means the directory of
	// the input file.
	ImageDir string `yaml:"image_dir"`
	// ImageWidth is the embedded picture width in inches.
	ImageWidth float64 `yaml:"image_width"`
	// MaxImagePixels downscales larger pictures, 0 disables.
	MaxImagePixels int     `yaml:"max_image_pixels"`
	FontName       string  `yaml:"font_name"`
	FontSize       float64 `yaml:"font_size"`
	TableStyle     string  `yaml:"table_style"`
	// ImageLabel prefixes the placeholder text of missing images.
	ImageLabel  string    `yaml:"image_label"`
	FrontMatter bool      `yaml:"front_matter"`
	Log         LogConfig `yaml:"log"`
}

// LogConfig selects the go-logger level and output format.
type LogConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AddSource bool   `yaml:"add_source"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ImageWidth:  5.5,
		FontName:    "Calibri",
		FontSize:    11,
		TableStyle:  "LightGrid-Accent1",
		ImageLabel:  "이미지",
		FrontMatter: true,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, goerrors.Wrap(err, goerrors.CategoryCommand, "reading config file").
			WithTextCode(CodeReadFailed)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected. Empty input yields the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, wrapValidationError(err, "decoding config")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.ImageWidth,
			validation.Required,
			validation.Min(0.0).Exclusive(),
			validation.Max(MaxImageWidth),
		),
		validation.Field(&c.MaxImagePixels, validation.Min(0)),
		validation.Field(&c.FontName, validation.Required),
		validation.Field(&c.FontSize, validation.Required, validation.Min(6.0), validation.Max(72.0)),
		validation.Field(&c.Log),
	)
	if err != nil {
		return wrapValidationError(err, "invalid configuration")
	}
	return nil
}

// Validate checks the level and format names.
func (l LogConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In(toAny(logging.Levels)...)),
		validation.Field(&l.Format, validation.In(toAny(logging.Formats)...)),
	)
}

func wrapValidationError(err error, msg string) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, msg).
		WithTextCode(CodeInvalid)
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
