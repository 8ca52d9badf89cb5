package models

import (
	"time"

	"github.com/google/uuid"
)

type RateLimitRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	KeyHash     string    `gorm:"type:varchar(64);not null;index:idx_rate_limit_key_time,priority:1"`
	RequestedAt time.Time `gorm:"not null;index:idx_rate_limit_key_time,priority:2"`
}
