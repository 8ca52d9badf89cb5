package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"auto-diag.backend/internal/domain/entities"
	"auto-diag.backend/internal/domain/repositories"
	"auto-diag.backend/internal/infrastructure/models"
)

// requestLogRepo implements repositories.RequestLogRepository
type requestLogRepo struct {
	db *gorm.DB
}

// NewRequestLogRepository creates a new request log repository
func NewRequestLogRepository(db *gorm.DB) repositories.RequestLogRepository {
	return &requestLogRepo{db: db}
}

// Append inserts one analytics row for a completed request
func (r *requestLogRepo) Append(ctx context.Context, log *entities.RequestLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	m := &models.RequestLog{
		ID:          log.ID,
		Endpoint:    log.Endpoint,
		KeyHash:     log.KeyHash,
		RequestedAt: log.RequestedAt,
		StatusCode:  log.StatusCode,
		LatencyMs:   log.LatencyMs,
		Vehicle:     log.Vehicle.Ptr(),
		Diagnosis:   log.Diagnosis.Ptr(),
		EstimateUSD: log.EstimateUSD.Ptr(),
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// StatsByKey aggregates request counts and mean latency per key hash
func (r *requestLogRepo) StatsByKey(ctx context.Context, since time.Time) ([]*entities.KeyUsageStat, error) {
	var stats []*entities.KeyUsageStat
	err := r.db.WithContext(ctx).Model(&models.RequestLog{}).
		Select("key_hash, COUNT(*) AS request_count, AVG(latency_ms) AS avg_latency_ms").
		Where("requested_at >= ?", since).
		Group("key_hash").
		Order("request_count DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
