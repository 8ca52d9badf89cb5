package usecases

import (
	"context"
	"time"

	"go.uber.org/zap"

	"auto-diag.backend/internal/domain/entities"
	"auto-diag.backend/internal/domain/repositories"
	"auto-diag.backend/pkg/logger"
)

// UsageRecorderUsecase appends analytics rows for completed requests. Writes
// are fire-and-forget with at-most-once delivery; a lost row degrades the
// dashboards, never the client-facing response.
type UsageRecorderUsecase struct {
	logs     repositories.RequestLogRepository
	dispatch func(fn func())
}

// NewUsageRecorderUsecase creates a usage recorder
func NewUsageRecorderUsecase(logs repositories.RequestLogRepository) *UsageRecorderUsecase {
	return &UsageRecorderUsecase{
		logs:     logs,
		dispatch: func(fn func()) { go fn() },
	}
}

// Record dispatches a background write for one completed request. It returns
// immediately; write failures are logged server-side only.
func (u *UsageRecorderUsecase) Record(entry *entities.RequestLog) {
	u.dispatch(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := u.logs.Append(ctx, entry); err != nil {
			logger.Error(ctx, "failed to record request usage",
				zap.String("endpoint", entry.Endpoint),
				zap.Error(err),
			)
		}
	})
}

// StatsByKey returns per-key request counts and mean latency since the given
// time, for the admin dashboard
func (u *UsageRecorderUsecase) StatsByKey(ctx context.Context, since time.Time) ([]*entities.KeyUsageStat, error) {
	return u.logs.StatsByKey(ctx, since)
}
