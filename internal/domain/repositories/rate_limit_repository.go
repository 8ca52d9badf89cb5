package repositories

import (
	"context"
	"time"

	"auto-diag.backend/internal/domain/entities"
)

// RateLimitRepository is the bookkeeping store behind the rolling window.
// Rows are append-only plus bulk-delete; nothing is updated in place.
type RateLimitRepository interface {
	CountSince(ctx context.Context, keyHash string, since time.Time) (int64, error)
	Append(ctx context.Context, record *entities.RateLimitRecord) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
