package format

import "testing"

func TestDetectImage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want ImageFormat
	}{
		{"png", []byte("\x89PNG\r\n\x1a\n...."), ImagePNG},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, ImageJPEG},
		{"gif87", []byte("GIF87a...."), ImageGIF},
		{"gif89", []byte("GIF89a...."), ImageGIF},
		{"bmp", []byte("BM......"), ImageBMP},
		{"tiff le", []byte("II*\x00...."), ImageTIFF},
		{"tiff be", []byte("MM\x00*...."), ImageTIFF},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), ImageWEBP},
		{"riff not webp", []byte("RIFF\x00\x00\x00\x00WAVE"), ImageUnknown},
		{"text", []byte("hello"), ImageUnknown},
		{"empty", nil, ImageUnknown},
	}

	for _, tt := range tests {
		if got := DetectImage(tt.data); got != tt.want {
			t.Errorf("%s: DetectImage() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestImageFormat_Properties(t *testing.T) {
	tests := []struct {
		format      ImageFormat
		ext         string
		contentType string
		embeddable  bool
	}{
		{ImagePNG, ".png", "image/png", true},
		{ImageJPEG, ".jpeg", "image/jpeg", true},
		{ImageGIF, ".gif", "image/gif", true},
		{ImageBMP, ".bmp", "image/bmp", true},
		{ImageTIFF, ".tiff", "image/tiff", true},
		{ImageWEBP, ".webp", "image/webp", false},
		{ImageUnknown, "", "application/octet-stream", false},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.ext {
			t.Errorf("%v.Extension() = %q, want %q", tt.format, got, tt.ext)
		}
		if got := tt.format.ContentType(); got != tt.contentType {
			t.Errorf("%v.ContentType() = %q, want %q", tt.format, got, tt.contentType)
		}
		if got := tt.format.Embeddable(); got != tt.embeddable {
			t.Errorf("%v.Embeddable() = %v, want %v", tt.format, got, tt.embeddable)
		}
	}
}

func TestImageFormatFromName(t *testing.T) {
	tests := map[string]ImageFormat{
		"png":  ImagePNG,
		"jpeg": ImageJPEG,
		"gif":  ImageGIF,
		"bmp":  ImageBMP,
		"tiff": ImageTIFF,
		"webp": ImageWEBP,
		"svg":  ImageUnknown,
	}
	for name, want := range tests {
		if got := ImageFormatFromName(name); got != want {
			t.Errorf("ImageFormatFromName(%q) = %v, want %v", name, got, want)
		}
	}
}
