package models

import (
	"time"

	"github.com/google/uuid"
)

type RequestLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Endpoint    string    `gorm:"type:varchar(100);not null;index"`
	KeyHash     string    `gorm:"type:varchar(64);not null;index"`
	RequestedAt time.Time `gorm:"not null;index"`
	StatusCode  int       `gorm:"not null"`
	LatencyMs   int64     `gorm:"not null"`
	Vehicle     *string   `gorm:"type:varchar(120)"`
	Diagnosis   *string   `gorm:"type:varchar(255)"`
	EstimateUSD *float64
}
