package format

import "bytes"

// ImageFormat represents an image encoding.
type ImageFormat int

const (
	ImageUnknown ImageFormat = iota
	ImagePNG
	ImageJPEG
	ImageGIF
	ImageBMP
	ImageTIFF
	ImageWEBP
)

func (f ImageFormat) String() string {
	switch f {
	case ImagePNG:
		return "png"
	case ImageJPEG:
		return "jpeg"
	case ImageGIF:
		return "gif"
	case ImageBMP:
		return "bmp"
	case ImageTIFF:
		return "tiff"
	case ImageWEBP:
		return "webp"
	default:
		return "unknown"
	}
}

// Extension returns the file extension used for media parts.
func (f ImageFormat) Extension() string {
	switch f {
	case ImageJPEG:
		return ".jpeg"
	case ImageUnknown:
		return ""
	default:
		return "." + f.String()
	}
}

// ContentType returns the MIME type of the encoding.
func (f ImageFormat) ContentType() string {
	if f == ImageUnknown {
		return "application/octet-stream"
	}
	return "image/" + f.String()
}

// Embeddable reports whether Word can display the encoding natively.
func (f ImageFormat) Embeddable() bool {
	switch f {
	case ImagePNG, ImageJPEG, ImageGIF, ImageBMP, ImageTIFF:
		return true
	default:
		return false
	}
}

// ImageFormatFromName maps the names registered with the image package
// ("png", "jpeg", ...) to an ImageFormat.
func ImageFormatFromName(name string) ImageFormat {
	for f := ImagePNG; f <= ImageWEBP; f++ {
		if f.String() == name {
			return f
		}
	}
	return ImageUnknown
}

// DetectImage checks magic bytes to determine the image encoding.
func DetectImage(data []byte) ImageFormat {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return ImagePNG
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return ImageJPEG
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return ImageGIF
	case bytes.HasPrefix(data, []byte("BM")):
		return ImageBMP
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return ImageTIFF
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return ImageWEBP
	default:
		return ImageUnknown
	}
}
