package format

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{Markdown, "Markdown"},
		{DOCX, "DOCX"},
		{HTML, "HTML"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{Markdown, ".md"},
		{DOCX, ".docx"},
		{HTML, ".html"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"report.md", Markdown},
		{"report.MD", Markdown},
		{"report.markdown", Markdown},
		{"notes.txt", Markdown},
		{"report.docx", DOCX},
		{"report.DOCX", DOCX},
		{"preview.html", HTML},
		{"preview.htm", HTML},
		{"report.pdf", Unknown},
		{"report", Unknown},
		{"", Unknown},
		{"/path/to/file.docx", DOCX},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestReplaceExtension(t *testing.T) {
	tests := []struct {
		filename string
		format   Format
		want     string
	}{
		{"/work/report.md", DOCX, "/work/report.docx"},
		{"report", HTML, "report.html"},
		{"a.b/report.markdown", DOCX, "a.b/report.docx"},
	}

	for _, tt := range tests {
		if got := ReplaceExtension(tt.filename, tt.format); got != tt.want {
			t.Errorf("ReplaceExtension(%q, %v) = %q, want %q", tt.filename, tt.format, got, tt.want)
		}
	}
}

func createZIP(t *testing.T, names ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating zip entry: %v", err)
		}
		w.Write([]byte("<x/>"))
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

func TestDetectFromReader(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"docx", createZIP(t, "[Content_Types].xml", "word/document.xml"), DOCX},
		{"other zip", createZIP(t, "xl/workbook.xml"), Unknown},
		{"html", []byte("  <!DOCTYPE html><html></html>"), HTML},
		{"html tag", []byte("<html><body></body></html>"), HTML},
		{"text", []byte("# heading"), Unknown},
		{"empty", nil, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFromReader(bytes.NewReader(tt.data), int64(len(tt.data)))
			if err != nil {
				t.Fatalf("DetectFromReader() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFromReader() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader_CorruptZIP(t *testing.T) {
	data := []byte("PK\x03\x04 not really a zip")
	if _, err := DetectFromReader(bytes.NewReader(data), int64(len(data))); err == nil {
		t.Error("expected error for corrupt zip")
	}
}
