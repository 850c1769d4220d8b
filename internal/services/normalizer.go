package services

import (
	"context"
	"fmt"
	"log"

	"github.com/kponna/jobfitai/internal/models"
)

// ResumeNormalizer routes a resume file to the extractor for its media type.
type ResumeNormalizer struct {
	pdf   TextExtractor
	docx  TextExtractor
	audio TextExtractor
}

func NewResumeNormalizer(pdf, docx, audio TextExtractor) *ResumeNormalizer {
	return &ResumeNormalizer{
		pdf:   pdf,
		docx:  docx,
		audio: audio,
	}
}

// Normalize returns the resume text. Only an unknown label is an error
// (ErrUnsupportedFileType); unreadable files come back as "".
func (n *ResumeNormalizer) Normalize(ctx context.Context, filePath, fileType string) (string, error) {
	kind, ok := models.KindFromLabel(fileType)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, fileType)
	}

	input := models.MediaInput{Path: filePath, Kind: kind}
	log.Printf("📄 Normalizing %s resume\n", input.Kind)

	switch input.Kind {
	case models.MediaPDF:
		return n.pdf.ExtractText(ctx, input.Path), nil
	case models.MediaDOCX:
		return n.docx.ExtractText(ctx, input.Path), nil
	case models.MediaAudio:
		return n.audio.ExtractText(ctx, input.Path), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, fileType)
	}
}
