package services

import (
	"context"
	"fmt"
	"html"
	"log"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	docxBreakTags = regexp.MustCompile(`</w:p>|<w:br[^>]*/>|<w:cr[^>]*/>`)
	docxTabTags   = regexp.MustCompile(`<w:tab[^>]*/>`)
	xmlTags       = regexp.MustCompile(`<[^>]+>`)
	blankLines    = regexp.MustCompile(`\n{2,}`)
)

type docxParserService struct{}

func NewDOCXParserService() TextExtractor {
	return &docxParserService{}
}

// ExtractText implements TextExtractor.
func (d *docxParserService) ExtractText(_ context.Context, filePath string) string {
	text, err := readDocxText(filePath)
	if err != nil {
		log.Printf("❌ Error reading DOCX %s: %v\n", filePath, err)
		return ""
	}

	log.Printf("📄 Extracted %d characters from DOCX\n", len(text))
	return text
}

func readDocxText(filePath string) (string, error) {
	doc, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return documentXMLToText(doc.Editable().GetContent()), nil
}

// documentXMLToText flattens word/document.xml: paragraphs and breaks become
// newlines, tabs become spaces, all other markup is dropped.
func documentXMLToText(content string) string {
	content = docxBreakTags.ReplaceAllString(content, "\n")
	content = docxTabTags.ReplaceAllString(content, " ")
	content = xmlTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	content = strings.Join(lines, "\n")
	content = blankLines.ReplaceAllString(content, "\n")

	return strings.TrimSpace(content)
}
