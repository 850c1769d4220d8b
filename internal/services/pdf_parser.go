package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextExtractor turns a document on disk into plain text. Implementations
// never fail: problems are logged and reported as an empty string.
type TextExtractor interface {
	ExtractText(ctx context.Context, filePath string) string
}

type PDFParserService interface {
	TextExtractor
	ExtractContent(filePath string) (*PDFContent, error)
}

type PDFContent struct {
	Text      string
	PageCount int
	FilePath  string
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractText implements TextExtractor.
func (p *pdfParserService) ExtractText(_ context.Context, filePath string) (text string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ PDF decoder panicked on %s: %v\n", filePath, r)
			text = ""
		}
	}()

	content, err := p.ExtractContent(filePath)
	if err != nil {
		log.Printf("❌ Error reading PDF %s: %v\n", filePath, err)
		return ""
	}

	log.Printf("📄 Extracted %d characters from %d PDF pages\n", len(content.Text), content.PageCount)
	return content.Text
}

// ExtractContent joins the text of every page that has any with "\n".
// Page text is kept as extracted.
func (p *pdfParserService) ExtractContent(filePath string) (*PDFContent, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("file not found: %w", err)
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	totalPage := r.NumPage()
	pages := make([]string, 0, totalPage)

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("⚠️  Skipping PDF page %d: %v\n", pageIndex, err)
			continue
		}

		// The decoder opens every text object with "\n".
		pageText = strings.TrimPrefix(pageText, "\n")
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		pages = append(pages, pageText)
	}

	return &PDFContent{
		Text:      strings.Join(pages, "\n"),
		PageCount: totalPage,
		FilePath:  filePath,
	}, nil
}
