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

// rateLimitRepo implements repositories.RateLimitRepository
type rateLimitRepo struct {
	db *gorm.DB
}

// NewRateLimitRepository creates a new rate limit bookkeeping repository
func NewRateLimitRepository(db *gorm.DB) repositories.RateLimitRepository {
	return &rateLimitRepo{db: db}
}

// CountSince counts admissions for a key hash at or after the window start
func (r *rateLimitRepo) CountSince(ctx context.Context, keyHash string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.RateLimitRecord{}).
		Where("key_hash = ? AND requested_at >= ?", keyHash, since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Append inserts one admission mark; rows are never updated afterwards
func (r *rateLimitRepo) Append(ctx context.Context, record *entities.RateLimitRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	m := &models.RateLimitRecord{
		ID:          record.ID,
		KeyHash:     record.KeyHash,
		RequestedAt: record.RequestedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// DeleteOlderThan bulk-deletes marks outside the retention horizon, across
// all keys, and reports how many rows were reclaimed
func (r *rateLimitRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("requested_at < ?", cutoff).
		Delete(&models.RateLimitRecord{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
