package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ApiKey represents an issued public-API credential. Only the SHA-256 hash of
// the raw secret is ever stored; the raw secret is returned once at creation
// and never persisted.
type ApiKey struct {
	ID                 uuid.UUID   `json:"id"`
	DisplayName        string      `json:"displayName"`
	OwnerEmail         null.String `json:"ownerEmail,omitempty"`
	KeyHash            string      `json:"-"`
	IsActive           bool        `json:"isActive"`
	RateLimitPerMinute int         `json:"rateLimitPerMinute"`
	CreatedAt          time.Time   `json:"createdAt"`
	LastUsedAt         *time.Time  `json:"lastUsedAt,omitempty"`
}

// CreateApiKeyInput is the admin payload for issuing a key
type CreateApiKeyInput struct {
	DisplayName        string `json:"displayName" binding:"required"`
	OwnerEmail         string `json:"ownerEmail"`
	RateLimitPerMinute int    `json:"rateLimitPerMinute" binding:"required,gt=0"`
}

// CreateApiKeyResponse carries the raw key back to the admin exactly once
type CreateApiKeyResponse struct {
	ID                 uuid.UUID `json:"id"`
	DisplayName        string    `json:"displayName"`
	ApiKey             string    `json:"apiKey"` // shown once
	RateLimitPerMinute int       `json:"rateLimitPerMinute"`
	CreatedAt          time.Time `json:"createdAt"`
}
