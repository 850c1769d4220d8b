package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kponna/jobfitai/internal/models"
)

type MockResumeAnalyzer struct {
	mock.Mock
}

func (m *MockResumeAnalyzer) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalysisResult, error) {
	args := m.Called(ctx, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.AnalysisResult), args.Error(1)
}
