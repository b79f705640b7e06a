package md2docx

import (
	"github.com/tsawler/md2docx/config"
	"github.com/tsawler/md2docx/internal/logging"
	"github.com/tsawler/md2docx/model"
)

// convertOptions holds configuration for a conversion.
type convertOptions struct {
	// imageDir overrides the input file's directory for image lookup
	imageDir string

	// Rendering
	imageWidth     model.Inches
	imageLabel     string
	maxImagePixels int
	fontName       string
	fontSize       model.Points
	tableStyle     string

	// Loading
	frontMatter bool

	logger logging.Logger
}

// defaultOptions returns the options of config.Default.
func defaultOptions() convertOptions {
	o := convertOptions{logger: logging.Nop()}
	o.apply(config.Default())
	return o
}

// apply copies the settings of cfg. An empty ImageDir keeps the current one.
func (o *convertOptions) apply(cfg config.Config) {
	if cfg.ImageDir != "" {
		o.imageDir = cfg.ImageDir
	}
	o.imageWidth = model.Inches(cfg.ImageWidth)
	o.imageLabel = cfg.ImageLabel
	o.maxImagePixels = cfg.MaxImagePixels
	o.fontName = cfg.FontName
	o.fontSize = model.Points(cfg.FontSize)
	o.tableStyle = cfg.TableStyle
	o.frontMatter = cfg.FrontMatter
}

// clone returns a copy. All fields are values or immutable.
func (o convertOptions) clone() convertOptions {
	return o
}
