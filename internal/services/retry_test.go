package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kponna/jobfitai/mocks"
)

func TestWithRetry_SingleAttemptReturnsInner(t *testing.T) {
	inner := new(mocks.MockModelClient)

	assert.Same(t, inner, WithRetry(inner, 1, time.Millisecond))
	assert.Same(t, inner, WithRetry(inner, 0, time.Millisecond))
	assert.IsType(t, &RetryingClient{}, WithRetry(inner, 3, time.Millisecond))
}

func TestRetryingClient_SucceedsAfterFailure(t *testing.T) {
	inner := new(mocks.MockModelClient)
	inner.On("Complete", mock.Anything, "p").Return("", errors.New("503")).Once()
	inner.On("Complete", mock.Anything, "p").Return("ok", nil).Once()

	client := NewRetryingClient(inner, 3, time.Millisecond)

	got, err := client.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	inner.AssertNumberOfCalls(t, "Complete", 2)
}

func TestRetryingClient_GivesUp(t *testing.T) {
	inner := new(mocks.MockModelClient)
	cause := errors.New("boom")
	inner.On("Complete", mock.Anything, "p").Return("", cause)

	client := NewRetryingClient(inner, 2, time.Millisecond)

	_, err := client.Complete(context.Background(), "p")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed after 2 attempts")
	inner.AssertNumberOfCalls(t, "Complete", 2)
}

func TestRetryingClient_StopsOnCancelledContext(t *testing.T) {
	inner := new(mocks.MockModelClient)
	inner.On("Complete", mock.Anything, "p").Return("", errors.New("boom"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewRetryingClient(inner, 5, time.Hour)

	_, err := client.Complete(ctx, "p")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	inner.AssertNumberOfCalls(t, "Complete", 1)
}
