// Package extract pulls plain text out of uploaded resume files.
// Libraries used: github.com/ledongthuc/pdf for PDF; TeX sources are taken
// as-is.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedType means the file is neither a PDF nor a TeX source.
var ErrUnsupportedType = errors.New("unsupported file type")

// ErrNoText means extraction produced no usable text.
var ErrNoText = errors.New("no text extracted")

// TextFromBytes extracts resume text from an in-memory upload.
func TextFromBytes(ctx context.Context, data []byte, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	switch {
	case ext == ".pdf" || bytes.HasPrefix(data, []byte("%PDF")):
		text, err := extractPDF(data)
		if err != nil {
			return "", fmt.Errorf("extract pdf %s: %w", fileName, err)
		}
		if strings.TrimSpace(text) == "" {
			return "", ErrNoText
		}
		return text, nil
	case ext == ".tex":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("extract tex %s: not valid utf-8", fileName)
		}
		text := string(data)
		if strings.TrimSpace(text) == "" {
			return "", ErrNoText
		}
		return text, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, fileName)
	}
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
