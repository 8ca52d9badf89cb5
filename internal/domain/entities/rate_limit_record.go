package entities

import (
	"time"

	"github.com/google/uuid"
)

// RateLimitRecord is one admission mark inside the rolling window. Rows are
// append-only and reclaimed by the janitor once clearly outside the window;
// they are bookkeeping for enforcement, not analytics.
type RateLimitRecord struct {
	ID          uuid.UUID `json:"id"`
	KeyHash     string    `json:"keyHash"`
	RequestedAt time.Time `json:"requestedAt"`
}
