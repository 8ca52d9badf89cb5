package repositories

import (
	"context"
	"time"

	"auto-diag.backend/internal/domain/entities"
)

// RequestLogRepository persists the analytics trail. Entries are append-only
// and never updated.
type RequestLogRepository interface {
	Append(ctx context.Context, log *entities.RequestLog) error
	StatsByKey(ctx context.Context, since time.Time) ([]*entities.KeyUsageStat, error)
}
