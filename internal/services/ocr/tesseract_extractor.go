// File: internal/services/ocr/tesseract_extractor.go
package ocr

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
)

// TesseractExtractor runs local OCR via Tesseract, rasterizing PDFs with
// MuPDF first.
type TesseractExtractor struct{}

func NewTesseractExtractor() *TesseractExtractor {
	return &TesseractExtractor{}
}

func (e *TesseractExtractor) Extract(ext string, data []byte) (string, error) {
	if strings.EqualFold(ext, ".pdf") {
		return e.extractPDF(data)
	}
	return e.extractImage(data)
}

func (e *TesseractExtractor) extractImage(data []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("loading image for OCR: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("running OCR: %w", err)
	}
	return text, nil
}

func (e *TesseractExtractor) extractPDF(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	client := gosseract.NewClient()
	defer client.Close()

	var b strings.Builder
	for page := 0; page < doc.NumPage(); page++ {
		img, err := doc.Image(page)
		if err != nil {
			return "", fmt.Errorf("rasterizing PDF page %d: %w", page+1, err)
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return "", fmt.Errorf("encoding PDF page %d: %w", page+1, err)
		}
		if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
			return "", fmt.Errorf("loading PDF page %d for OCR: %w", page+1, err)
		}
		text, err := client.Text()
		if err != nil {
			return "", fmt.Errorf("running OCR on PDF page %d: %w", page+1, err)
		}
		b.WriteString(text)
	}

	return b.String(), nil
}
