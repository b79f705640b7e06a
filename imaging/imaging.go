// Package imaging prepares image files for embedding in documents.
//
// It probes dimensions for every format registered with the standard image
// package plus BMP, TIFF and WebP (golang.org/x/image), converts encodings
// word processors cannot display to PNG, and optionally downscales large
// pictures.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/md2docx/format"
)

// Info describes an encoded image.
type Info struct {
	Format format.ImageFormat
	Width  int
	Height int
}

// Picture is image data ready to be stored in a document package.
type Picture struct {
	Info
	Data []byte
}

// Probe decodes only the header of data.
func Probe(data []byte) (Info, error) {
	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("unsupported image: %w", err)
	}
	f := format.ImageFormatFromName(name)
	if f == format.ImageUnknown {
		f = format.DetectImage(data)
	}
	return Info{Format: f, Width: cfg.Width, Height: cfg.Height}, nil
}

// Prepare returns data in an embeddable encoding. Formats that cannot be
// embedded are re-encoded as PNG, and when maxPixels is positive an image
// whose longest side exceeds it is scaled down to fit.
func Prepare(data []byte, maxPixels int) (*Picture, error) {
	info, err := Probe(data)
	if err != nil {
		return nil, err
	}

	oversized := maxPixels > 0 && (info.Width > maxPixels || info.Height > maxPixels)
	if info.Format.Embeddable() && !oversized {
		return &Picture{Info: info, Data: data}, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s image: %w", info.Format, err)
	}
	if oversized {
		src = scale(src, maxPixels)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}

	b := src.Bounds()
	return &Picture{
		Info: Info{Format: format.ImagePNG, Width: b.Dx(), Height: b.Dy()},
		Data: buf.Bytes(),
	}, nil
}

// PrepareFile reads path and calls Prepare.
func PrepareFile(path string, maxPixels int) (*Picture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Prepare(data, maxPixels)
}

// scale resizes src so its longest side equals limit.
func scale(src image.Image, limit int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w >= h {
		h = max(1, h*limit/w)
		w = limit
	} else {
		w = max(1, w*limit/h)
		h = limit
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
