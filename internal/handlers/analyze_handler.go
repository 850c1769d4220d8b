package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kponna/jobfitai/internal/models"
	"github.com/kponna/jobfitai/internal/services"
)

type AnalyzeHandler struct {
	analyzer services.ResumeAnalyzer
	uploads  services.UploadStore
}

func NewAnalyzeHandler(analyzer services.ResumeAnalyzer, uploads services.UploadStore) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		uploads:  uploads,
	}
}

// HandleAnalyze accepts a multipart form with a "resume" file, a
// "job_description" field and an optional "file_type" override.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	jobDescription := c.FormValue("job_description")
	fileType := strings.TrimSpace(c.FormValue("file_type"))

	// Nothing touches the disk until both inputs are present.
	resume, err := c.FormFile("resume")
	if err != nil || resume == nil || strings.TrimSpace(jobDescription) == "" {
		return h.respondError(c, services.KindMissingInput, "Please upload a resume and enter a job description.")
	}

	upload, err := h.uploads.Save(resume)
	if err != nil {
		if errors.Is(err, services.ErrUploadTooLarge) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: err.Error()})
		}
		log.Printf("❌ Failed to save upload: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "failed to save resume file",
		})
	}
	defer func() {
		if err := h.uploads.Remove(upload); err != nil {
			log.Printf("⚠️  Failed to remove upload %s: %v\n", upload.Name, err)
		}
	}()

	// Infer from the client's name; the stored name only keeps the extension.
	if fileType == "" {
		fileType = models.FileTypeFromName(upload.OriginalName)
	}

	result, err := h.analyzer.Analyze(c.UserContext(), models.AnalyzeRequest{
		ResumePath:     upload.Path,
		JobDescription: jobDescription,
		FileType:       fileType,
	})
	if err != nil {
		return h.respondError(c, services.KindOf(err), err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AnalyzeHandler) respondError(c *fiber.Ctx, kind services.ErrorKind, message string) error {
	status := fiber.StatusBadGateway
	switch kind {
	case services.KindMissingInput:
		status = fiber.StatusBadRequest
	case services.KindUnsupportedFileType:
		status = fiber.StatusUnsupportedMediaType
	}

	return c.Status(status).JSON(models.ErrorResponse{Error: message})
}
