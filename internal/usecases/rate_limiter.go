package usecases

import (
	"context"
	"fmt"
	"time"

	"auto-diag.backend/internal/domain/entities"
	"auto-diag.backend/internal/domain/repositories"
)

// Decision is the outcome of a rate-limit admission check
type Decision struct {
	Allowed bool
	// Limit is the key's configured requests-per-minute, echoed in the
	// rejection body
	Limit int
}

// RateLimiterUsecase enforces a rolling admission window per key. The check is
// count-then-insert: two nearly simultaneous requests for the same key can both
// observe count = limit-1 and both be admitted, so the limit may be exceeded by
// a small bounded margin under contention. This is a deliberate best-effort
// guarantee; upgrading it to a strict counter would need an atomic storage
// primitive and is not done here.
type RateLimiterUsecase struct {
	rateLimits repositories.RateLimitRepository
	window     time.Duration
	now        func() time.Time
}

// NewRateLimiterUsecase creates a rate limiter over the given window
func NewRateLimiterUsecase(rateLimits repositories.RateLimitRepository, window time.Duration) *RateLimiterUsecase {
	return &RateLimiterUsecase{
		rateLimits: rateLimits,
		window:     window,
		now:        time.Now,
	}
}

// Admit counts the key's requests inside the rolling window and either rejects
// or records this request and admits it. The record is written before the
// business handler runs so slow downstream logic cannot skew the count.
func (u *RateLimiterUsecase) Admit(ctx context.Context, keyHash string, limit int) (*Decision, error) {
	now := u.now().UTC()

	count, err := u.rateLimits.CountSince(ctx, keyHash, now.Add(-u.window))
	if err != nil {
		return nil, fmt.Errorf("failed to count requests in window: %w", err)
	}

	if count >= int64(limit) {
		return &Decision{Allowed: false, Limit: limit}, nil
	}

	record := &entities.RateLimitRecord{
		KeyHash:     keyHash,
		RequestedAt: now,
	}
	if err := u.rateLimits.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record admission: %w", err)
	}

	return &Decision{Allowed: true, Limit: limit}, nil
}
