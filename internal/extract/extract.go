package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

const (
	ExtPDF  = ".pdf"
	ExtDOCX = ".docx"

	// PDFParseFailed replaces the text of a PDF the parser could not read.
	PDFParseFailed = "[PDF uploaded - parsing failed, using fallback]"
	// PDFNoText replaces the text of a PDF that parsed but held no text.
	PDFNoText = "[PDF uploaded - no text extracted]"

	placeholderMarker = "[PDF uploaded"
	minTextLength     = 50

	DefaultReadTimeout = 30 * time.Second
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format, use PDF or DOCX")
	ErrExtraction        = errors.New("text extraction failed")
	ErrReadTimeout       = errors.New("file read timed out")
)

// Extractor converts resume files into plain text.
type Extractor struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// Extract returns the text of a PDF or DOCX document. PDF failures degrade to a
// placeholder string; DOCX failures are returned as ErrExtraction.
func (e *Extractor) Extract(data []byte, ext string) (string, error) {
	switch strings.ToLower(ext) {
	case ExtPDF:
		return e.extractPDF(data), nil
	case ExtDOCX:
		text, err := extractDocx(data)
		if err != nil {
			return "", fmt.Errorf("%w: docx: %w", ErrExtraction, err)
		}
		return text, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func (e *Extractor) extractPDF(data []byte) string {
	text, err := readPDF(data)
	if err != nil {
		e.logger.Warn("pdf parsing failed, using fallback text", zap.Error(err))
		return PDFParseFailed
	}

	if strings.TrimSpace(text) == "" {
		e.logger.Warn("pdf contains no extractable text")
		return PDFNoText
	}

	return text
}

func readPDF(data []byte) (text string, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("copy pdf text: %w", err)
	}

	return buf.String(), nil
}

// Enrich appends the job title and file name to text that is too short to score
// or that is a PDF placeholder.
func Enrich(text, jobTitle, fileName string) string {
	if utf8.RuneCountInString(strings.TrimSpace(text)) >= minTextLength && !strings.Contains(text, placeholderMarker) {
		return text
	}
	return text + " " + jobTitle + " " + fileName
}

// NeedsEnrichment reports whether Enrich would change text.
func NeedsEnrichment(text string) bool {
	return Enrich(text, "", "") != text
}

// ReadFile reads the file at path, giving up after timeout. A non-positive
// timeout uses DefaultReadTimeout.
func ReadFile(ctx context.Context, path string, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		data []byte
		err  error
	}

	read := readFile
	done := make(chan result, 1)
	go func() {
		data, err := read(path)
		done <- result{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s after %s", ErrReadTimeout, path, timeout)
		}
		return nil, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, res.err)
		}
		return res.data, nil
	}
}

var readFile = os.ReadFile

// Ext returns the lower-cased extension of name.
func Ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}
