package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) ExtractText(ctx context.Context, filePath string) string {
	args := m.Called(ctx, filePath)

	return args.String(0)
}
