package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const documentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": documentRels,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestExtractDocx(t *testing.T) {
	data := buildDocx(t,
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>Skills:</w:t></w:r><w:r><w:tab/><w:t xml:space="preserve">react, html</w:t></w:r></w:p>`,
	)

	text, err := New(nil).Extract(data, ".DOCX")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text != "Jane Doe\nSkills:\treact, html" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractCorruptDocxFails(t *testing.T) {
	_, err := New(nil).Extract([]byte("not a zip archive"), ExtDOCX)
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("expected extraction error, got %v", err)
	}
}

// buildPDF writes a one page PDF with a Helvetica font whose content stream is content.
func buildPDF(t *testing.T, content string) []byte {
	t.Helper()

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, 0, len(objects))
	for i, obj := range objects {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

func TestExtractPDF(t *testing.T) {
	data := buildPDF(t, "BT /F1 12 Tf 72 720 Td (react javascript html 5 years) Tj ET")

	text, err := New(nil).Extract(data, ExtPDF)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(text, "react javascript html 5 years") {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractPDFWithoutText(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)

	text, err := New(zap.New(core)).Extract(buildPDF(t, "BT ET"), ExtPDF)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != PDFNoText {
		t.Fatalf("expected no text placeholder, got %q", text)
	}
	if observed.Len() != 1 {
		t.Fatalf("expected 1 warning, got %d", observed.Len())
	}
}

func TestExtractCorruptPDFDegrades(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)

	text, err := New(zap.New(core)).Extract([]byte("%PDF-1.4 garbage"), ExtPDF)
	if err != nil {
		t.Fatalf("expected pdf failure to degrade, got %v", err)
	}
	if text != PDFParseFailed {
		t.Fatalf("expected placeholder text, got %q", text)
	}
	if observed.Len() != 1 {
		t.Fatalf("expected 1 warning, got %d", observed.Len())
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	t.Parallel()

	for _, ext := range []string{".txt", ".doc", "", "pdf"} {
		t.Run(ext, func(t *testing.T) {
			t.Parallel()
			_, err := New(nil).Extract([]byte("data"), ext)
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Fatalf("expected unsupported format, got %v", err)
			}
		})
	}
}

func TestEnrich(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("experienced engineer ", 5)

	tests := []struct {
		name   string
		text   string
		expect string
	}{
		{
			name:   "long text unchanged",
			text:   long,
			expect: long,
		},
		{
			name:   "short text enriched",
			text:   "  short  ",
			expect: "  short   Frontend Developer cv.pdf",
		},
		{
			name:   "empty text enriched",
			text:   "",
			expect: " Frontend Developer cv.pdf",
		},
		{
			name:   "placeholder enriched",
			text:   PDFParseFailed,
			expect: PDFParseFailed + " Frontend Developer cv.pdf",
		},
		{
			name:   "long text with placeholder enriched",
			text:   PDFNoText + long,
			expect: PDFNoText + long + " Frontend Developer cv.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Enrich(tt.text, "Frontend Developer", "cv.pdf"); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}

	if NeedsEnrichment(long) {
		t.Fatal("expected long text to need no enrichment")
	}
	if !NeedsEnrichment(PDFNoText) {
		t.Fatal("expected placeholder to need enrichment")
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.docx")
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := ReadFile(context.Background(), path, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "content" {
		t.Fatalf("unexpected data: %q", data)
	}

	if _, err := ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"), time.Second); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadFileTimeout(t *testing.T) {
	release := make(chan struct{})
	original := readFile
	readFile = func(string) ([]byte, error) {
		<-release
		return nil, nil
	}
	defer func() {
		close(release)
		readFile = original
	}()

	_, err := ReadFile(context.Background(), "stalled.pdf", 10*time.Millisecond)
	if !errors.Is(err, ErrReadTimeout) {
		t.Fatalf("expected read timeout, got %v", err)
	}
}

func TestExt(t *testing.T) {
	if got := Ext("My Resume.PDF"); got != ExtPDF {
		t.Fatalf("unexpected extension: %q", got)
	}
}
