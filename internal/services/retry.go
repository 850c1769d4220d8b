package services

import (
	"context"
	"fmt"
	"log"
	"time"
)

// RetryingClient retries a ModelClient call up to maxAttempts times, doubling
// the delay between attempts.
type RetryingClient struct {
	inner       ModelClient
	maxAttempts int
	baseDelay   time.Duration
}

func NewRetryingClient(inner ModelClient, maxAttempts int, baseDelay time.Duration) *RetryingClient {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryingClient{
		inner:       inner,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
	}
}

// WithRetry wraps client only when more than one attempt is configured.
func WithRetry(client ModelClient, maxAttempts int, baseDelay time.Duration) ModelClient {
	if maxAttempts <= 1 {
		return client
	}
	return NewRetryingClient(client, maxAttempts, baseDelay)
}

// Complete implements ModelClient.
func (r *RetryingClient) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	delay := r.baseDelay

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		reply, err := r.inner.Complete(ctx, prompt)
		if err == nil {
			return reply, nil
		}
		lastErr = err

		if attempt == r.maxAttempts {
			break
		}

		log.Printf("⚠️  Model attempt %d/%d failed: %v. Retrying in %s...\n", attempt, r.maxAttempts, err, delay)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return "", fmt.Errorf("failed after %d attempts: %w", r.maxAttempts, lastErr)
}
