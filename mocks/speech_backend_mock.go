package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockSpeechBackend struct {
	mock.Mock
}

func (m *MockSpeechBackend) Transcribe(ctx context.Context, audioPath string) (string, error) {
	args := m.Called(ctx, audioPath)

	return args.String(0), args.Error(1)
}
