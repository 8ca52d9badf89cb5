package models

import (
	"time"

	"github.com/google/uuid"
)

type ApiKey struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	DisplayName        string    `gorm:"type:varchar(100);not null"`
	OwnerEmail         *string   `gorm:"type:varchar(255)"`
	KeyHash            string    `gorm:"type:varchar(64);uniqueIndex;not null"` // SHA256 of raw key
	IsActive           bool      `gorm:"default:true;not null"`
	RateLimitPerMinute int       `gorm:"not null"`
	LastUsedAt         *time.Time
	CreatedAt          time.Time
}
