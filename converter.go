package md2docx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	goerrors "github.com/goliatone/go-errors"

	"github.com/tsawler/md2docx/config"
	"github.com/tsawler/md2docx/docx"
	"github.com/tsawler/md2docx/htmldoc"
	"github.com/tsawler/md2docx/internal/logging"
	"github.com/tsawler/md2docx/markdown"
	"github.com/tsawler/md2docx/model"
)

var errNoSource = errors.New("md2docx: no filename or data")

// Converter provides a fluent interface for converting a Markdown source.
// Each configuration method returns a new Converter instance, making it
// safe for concurrent use and allowing method chaining.
type Converter struct {
	// Source
	filename string
	data     []byte
	hasData  bool

	// Configuration
	options convertOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Converter. The source bytes are never
// modified and are shared.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename: c.filename,
		data:     c.data,
		hasData:  c.hasData,
		options:  c.options.clone(),
		err:      c.err,
	}
}

// ============================================================================
// Configuration
// ============================================================================

// ImageDir sets the directory relative image paths resolve against.
//
// Example:
//
//	warnings, err := md2docx.Open("notes.md").ImageDir("assets").ToDOCX("notes.docx")
func (c *Converter) ImageDir(dir string) *Converter {
	n := c.clone()
	n.options.imageDir = dir
	return n
}

// ImageWidth sets the width of embedded pictures in inches.
func (c *Converter) ImageWidth(inches float64) *Converter {
	n := c.clone()
	if inches <= 0 || inches > config.MaxImageWidth {
		err := fmt.Errorf("image width %v out of range (0, %v]", inches, config.MaxImageWidth)
		n.err = goerrors.Wrap(err, goerrors.CategoryValidation, "invalid image width").
			WithTextCode(config.CodeInvalid)
		return n
	}
	n.options.imageWidth = model.Inches(inches)
	return n
}

// ImageLabel sets the prefix of missing-image placeholders, e.g. "Image"
// gives "[Image: description]".
func (c *Converter) ImageLabel(label string) *Converter {
	n := c.clone()
	n.options.imageLabel = label
	return n
}

// Font sets the body font name and size in points.
func (c *Converter) Font(name string, size float64) *Converter {
	n := c.clone()
	if name != "" {
		n.options.fontName = name
	}
	if size > 0 {
		n.options.fontSize = model.Points(size)
	}
	return n
}

// MaxImagePixels downscales pictures whose longest side exceeds px.
func (c *Converter) MaxImagePixels(px int) *Converter {
	n := c.clone()
	n.options.maxImagePixels = px
	return n
}

// FrontMatter toggles parsing of a leading front matter block.
func (c *Converter) FrontMatter(enabled bool) *Converter {
	n := c.clone()
	n.options.frontMatter = enabled
	return n
}

// WithLogger sets the logger that receives warnings and progress entries.
func (c *Converter) WithLogger(logger Logger) *Converter {
	n := c.clone()
	if logger == nil {
		logger = logging.Nop()
	}
	n.options.logger = logger
	return n
}

// WithConfig applies every setting of cfg after validating it.
func (c *Converter) WithConfig(cfg config.Config) *Converter {
	n := c.clone()
	if err := cfg.Validate(); err != nil {
		n.err = err
		return n
	}
	n.options.apply(cfg)
	return n
}

// ============================================================================
// Terminal operations
// ============================================================================

// Blocks converts the source into its block sequence.
//
// Example:
//
//	blocks, warnings, err := md2docx.Open("notes.md").Blocks()
func (c *Converter) Blocks() ([]model.Block, []Warning, error) {
	doc, warnings, err := c.Document()
	if err != nil {
		return nil, warnings, err
	}
	return doc.Blocks, warnings, nil
}

// Document converts the source into a model.Document carrying the front
// matter metadata.
func (c *Converter) Document() (*model.Document, []Warning, error) {
	if c.err != nil {
		return nil, nil, c.err
	}

	src, err := c.load()
	if err != nil {
		return nil, nil, err
	}
	warnings := append([]Warning(nil), src.Warnings...)

	conv := markdown.NewConverter(markdown.WithImageDir(c.imageDir()))
	blocks, convWarnings := conv.ConvertWithWarnings(src.Lines)
	warnings = append(warnings, convWarnings...)

	doc := model.NewDocument()
	doc.Metadata = src.Metadata
	if doc.Metadata.Custom == nil {
		doc.Metadata.Custom = make(map[string]string)
	}
	doc.Append(blocks...)

	c.logWarnings(warnings)
	c.logger().Debug("converted markdown", "blocks", len(blocks), "warnings", len(warnings))
	return doc, warnings, nil
}

// WriteDOCX converts the source and writes the DOCX package to w.
func (c *Converter) WriteDOCX(w io.Writer) ([]Warning, error) {
	d, warnings, err := c.render()
	if err != nil {
		return warnings, err
	}
	if _, err := d.WriteTo(w); err != nil {
		return warnings, wrapOutputError(err, "writing DOCX")
	}
	return warnings, nil
}

// ToDOCX converts the source and saves it at path. The file is replaced
// only after the whole package has been written.
//
// Example:
//
//	warnings, err := md2docx.Open("notes.md").ToDOCX("notes.docx")
func (c *Converter) ToDOCX(path string) ([]Warning, error) {
	d, warnings, err := c.render()
	if err != nil {
		return warnings, err
	}
	if err := d.Save(path); err != nil {
		return warnings, wrapOutputError(err, "saving DOCX")
	}
	c.logger().Info("wrote docx", "output", path, "pictures", d.MediaCount())
	return warnings, nil
}

// WriteHTML converts the source and writes an HTML preview to w. Image
// sources are written as given by the resolved paths.
func (c *Converter) WriteHTML(w io.Writer) ([]Warning, error) {
	doc, warnings, err := c.Document()
	if err != nil {
		return warnings, err
	}
	if err := htmldoc.Render(w, doc, c.htmlOptions("")); err != nil {
		return warnings, wrapOutputError(err, "writing HTML")
	}
	return warnings, nil
}

// ToHTML converts the source and saves an HTML preview at path. Image
// sources are made relative to the output directory where possible.
func (c *Converter) ToHTML(path string) ([]Warning, error) {
	doc, warnings, err := c.Document()
	if err != nil {
		return warnings, err
	}

	var buf bytes.Buffer
	if err := htmldoc.Render(&buf, doc, c.htmlOptions(filepath.Dir(path))); err != nil {
		return warnings, wrapOutputError(err, "rendering HTML")
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return warnings, wrapOutputError(err, "saving HTML")
	}
	c.logger().Info("wrote html", "output", path)
	return warnings, nil
}

// ============================================================================
// Internals
// ============================================================================

func (c *Converter) logger() logging.Logger {
	if c.options.logger == nil {
		return logging.Nop()
	}
	if c.filename == "" {
		return c.options.logger
	}
	return logging.WithFields(c.options.logger, map[string]any{"input": c.filename})
}

func (c *Converter) load() (*markdown.Source, error) {
	opts := []markdown.LoadOption{markdown.WithFrontMatter(c.options.frontMatter)}

	if c.hasData {
		src, err := markdown.Parse(c.data, opts...)
		if err != nil {
			return nil, wrapSourceError(err)
		}
		return src, nil
	}
	if c.filename == "" {
		return nil, goerrors.Wrap(errNoSource, goerrors.CategoryValidation, "no source specified").
			WithTextCode(CodeNoSource)
	}

	src, err := markdown.Load(c.filename, opts...)
	if err != nil {
		return nil, wrapSourceError(err)
	}
	return src, nil
}

// imageDir is the explicit image directory, else the input's directory.
func (c *Converter) imageDir() string {
	if c.options.imageDir != "" {
		return c.options.imageDir
	}
	if c.filename != "" {
		return filepath.Dir(c.filename)
	}
	return "."
}

// render converts the source and lays it out as DOCX. Images that exist
// but cannot be embedded are reported as warnings.
func (c *Converter) render() (*docx.Document, []Warning, error) {
	doc, warnings, err := c.Document()
	if err != nil {
		return nil, warnings, err
	}

	log := c.logger()
	label := c.options.imageLabel
	opts := docx.RenderOptions{
		Options: docx.Options{
			FontName:       c.options.fontName,
			FontSize:       c.options.fontSize,
			TableStyle:     c.options.tableStyle,
			MaxImagePixels: c.options.maxImagePixels,
		},
		ImageWidth: c.options.imageWidth,
		ImageLabel: label,
		OnImageError: func(d *docx.Document, img model.Image, err error) {
			if !errors.Is(err, docx.ErrImageNotFound) {
				w := Warning{
					Kind:    markdown.WarnImageEmbed,
					Message: fmt.Sprintf("image %q could not be embedded: %v", img.Path, err),
				}
				warnings = append(warnings, w)
				log.Warn("image fallback", "path", img.Path, "error", err)
			}
			d.AddImageFallback(img, label)
		},
	}
	d := docx.Render(doc, opts)
	return d, warnings, nil
}

func (c *Converter) htmlOptions(outDir string) htmldoc.Options {
	opts := htmldoc.DefaultOptions()
	opts.ImageLabel = c.options.imageLabel
	if outDir != "" {
		opts.ImageSrc = func(img model.Image) string {
			if rel, err := filepath.Rel(outDir, img.Path); err == nil {
				return filepath.ToSlash(rel)
			}
			return filepath.ToSlash(img.Path)
		}
	}
	return opts
}

func (c *Converter) logWarnings(warnings []Warning) {
	if len(warnings) == 0 {
		return
	}
	log := c.logger()
	for _, w := range warnings {
		log.Warn(w.Message, "kind", w.Kind.String(), "line", w.Line)
	}
}

func wrapSourceError(err error) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "reading markdown source").
		WithTextCode(CodeSourceRead)
}

func wrapOutputError(err error, msg string) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, msg).
		WithTextCode(CodeOutputWrite)
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".md2docx-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
