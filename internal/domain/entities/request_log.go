package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// RequestLog is the analytics record written after a request completes. Its
// loss never affects enforcement; it feeds dashboards and usage billing.
type RequestLog struct {
	ID          uuid.UUID    `json:"id"`
	Endpoint    string       `json:"endpoint"`
	KeyHash     string       `json:"keyHash"`
	RequestedAt time.Time    `json:"requestedAt"`
	StatusCode  int          `json:"statusCode"`
	LatencyMs   int64        `json:"latencyMs"`
	Vehicle     null.String  `json:"vehicle,omitempty"`
	Diagnosis   null.String  `json:"diagnosis,omitempty"`
	EstimateUSD null.Float64 `json:"estimateUsd,omitempty"`
}

// KeyUsageStat is an aggregate over request logs for the admin dashboard
type KeyUsageStat struct {
	KeyHash      string  `json:"keyHash"`
	RequestCount int64   `json:"requestCount"`
	AvgLatencyMs float64 `json:"avgLatencyMs"`
}
