package util

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"regexp"
	"strings"

	"github.com/fadilmartias/resume-matcher/internal/matcher"
	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

var (
	reInlineSpace = regexp.MustCompile(`[ \t\r\f\v\x{00A0}]+`)
	reBlankLines  = regexp.MustCompile(`\n{3,}`)
)

// PDFTextExtractor turns PDF bytes into plain text. MuPDF is tried first;
// when it fails or yields nothing the pure Go reader is used.
type PDFTextExtractor struct{}

func NewPDFTextExtractor() *PDFTextExtractor {
	return &PDFTextExtractor{}
}

func (e *PDFTextExtractor) ExtractText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", matcher.ErrUnreadableDocument)
	}

	text, err := extractWithMuPDF(data)
	if err != nil {
		log.Printf("mupdf extraction failed, falling back: %v", err)
	}
	if strings.TrimSpace(text) == "" {
		text, err = extractWithPDFReader(data)
		if err != nil {
			return "", fmt.Errorf("%w: %v", matcher.ErrUnreadableDocument, err)
		}
	}

	text = NormalizeWhitespace(text)
	if text == "" {
		return "", fmt.Errorf("%w: no text extracted from PDF (it might be scanned images)", matcher.ErrUnreadableDocument)
	}
	return text, nil
}

func extractWithMuPDF(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var fullText strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", n+1, err)
		}
		fullText.WriteString(pageText)
		fullText.WriteString("\n")
	}
	return fullText.String(), nil
}

func extractWithPDFReader(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// NormalizeWhitespace collapses runs of inline whitespace and blank lines
// while keeping line breaks.
func NormalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = reInlineSpace.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	s = strings.Join(lines, "\n")
	s = reBlankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
