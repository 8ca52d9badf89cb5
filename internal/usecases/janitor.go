package usecases

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"auto-diag.backend/internal/domain/repositories"
	"auto-diag.backend/pkg/logger"
)

// Sampler decides whether an admitted request triggers a cleanup sweep
type Sampler func() bool

// ProbabilitySampler returns a sampler that fires with probability p
func ProbabilitySampler(p float64) Sampler {
	return func() bool {
		return rand.Float64() < p
	}
}

// JanitorUsecase bounds the growth of rate-limit bookkeeping rows. There is no
// dedicated scheduler; cleanup is amortized across admitted requests via the
// sampler. Stale rows may linger between triggers, which is acceptable since
// the count query filters by time anyway.
type JanitorUsecase struct {
	rateLimits repositories.RateLimitRepository
	retention  time.Duration
	sample     Sampler
	dispatch   func(fn func())
	now        func() time.Time
}

// NewJanitorUsecase creates a janitor keeping rows for at least retention,
// which must not be below the enforcement window
func NewJanitorUsecase(rateLimits repositories.RateLimitRepository, retention time.Duration, sample Sampler) *JanitorUsecase {
	return &JanitorUsecase{
		rateLimits: rateLimits,
		retention:  retention,
		sample:     sample,
		dispatch:   func(fn func()) { go fn() },
		now:        time.Now,
	}
}

// MaybeSweep rolls the sampler and, when it fires, runs a sweep in the
// background. Sweep failures are logged and never propagate.
func (j *JanitorUsecase) MaybeSweep() {
	if !j.sample() {
		return
	}
	j.dispatch(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		deleted, err := j.Sweep(ctx)
		if err != nil {
			logger.Error(ctx, "janitor sweep failed", zap.Error(err))
			return
		}
		if deleted > 0 {
			logger.Debug(ctx, "janitor sweep completed", zap.Int64("deleted", deleted))
		}
	})
}

// Sweep deletes all rate-limit records older than the retention horizon
func (j *JanitorUsecase) Sweep(ctx context.Context) (int64, error) {
	cutoff := j.now().UTC().Add(-j.retention)
	return j.rateLimits.DeleteOlderThan(ctx, cutoff)
}
