package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kponna/jobfitai/internal/models"
)

// ResumeAnalyzer is the single entry point used by the HTTP and CLI surfaces.
type ResumeAnalyzer interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalysisResult, error)
}

type Pipeline struct {
	source     ResumeSource
	normalizer *ResumeNormalizer
	profile    *ProfileAnalyzer
	fit        *FitEvaluator
}

func NewPipeline(
	source ResumeSource,
	normalizer *ResumeNormalizer,
	profile *ProfileAnalyzer,
	fit *FitEvaluator,
) *Pipeline {
	if source == nil {
		source = LocalSource{}
	}
	return &Pipeline{
		source:     source,
		normalizer: normalizer,
		profile:    profile,
		fit:        fit,
	}
}

// Analyze runs one resume through extraction, profile analysis and fit
// evaluation. Every failure comes back as an *AnalysisError.
func (p *Pipeline) Analyze(ctx context.Context, req models.AnalyzeRequest) (result *models.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Analysis panicked: %v\n", r)
			result = nil
			err = unexpectedError(fmt.Errorf("%v", r))
		}
	}()

	if strings.TrimSpace(req.ResumePath) == "" || strings.TrimSpace(req.JobDescription) == "" {
		return nil, missingInputError()
	}

	fileType := req.FileType
	if fileType == "" {
		fileType = models.FileTypeFromName(req.ResumePath)
	}
	if _, ok := models.KindFromLabel(fileType); !ok {
		return nil, unsupportedFileTypeError(fmt.Errorf("%w: %q", ErrUnsupportedFileType, fileType))
	}

	log.Printf("🔄 Starting analysis of %s resume\n", fileType)

	// Step 1: Resolve the resume to a local file
	localPath, cleanup, err := p.source.Fetch(ctx, req.ResumePath)
	if err != nil {
		log.Printf("❌ Failed to fetch resume: %v\n", err)
		return nil, unexpectedError(err)
	}
	defer cleanup()

	// Step 2: Normalize to text
	resumeText, err := p.normalizer.Normalize(ctx, localPath, fileType)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFileType) {
			return nil, unsupportedFileTypeError(err)
		}
		return nil, unexpectedError(err)
	}
	if resumeText == "" {
		log.Println("⚠️  Resume produced no text; continuing with empty input")
	}

	// Step 3: Profile and fit calls run side by side
	var analysis, recommendations string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("profile analysis panicked: %v", r)
			}
		}()
		analysis, err = p.profile.Analyze(gctx, resumeText)
		return err
	})
	g.Go(func() error {
		recommendations = p.fit.Evaluate(gctx, resumeText, req.JobDescription)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("❌ Analysis failed: %v\n", err)
		return nil, unexpectedError(err)
	}

	log.Println("✅ Analysis completed")

	return &models.AnalysisResult{
		Analysis:        analysis,
		Recommendations: recommendations,
	}, nil
}
