package repositories

import (
	"context"
	"time"

	"auto-diag.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// ApiKeyRepository persists issued keys. Keys are never hard-deleted;
// revocation is the is_active toggle.
type ApiKeyRepository interface {
	Create(ctx context.Context, apiKey *entities.ApiKey) error
	FindByKeyHash(ctx context.Context, keyHash string) (*entities.ApiKey, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ApiKey, error)
	List(ctx context.Context) ([]*entities.ApiKey, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	// TouchLastUsed advances last_used_at to usedAt. The column never moves
	// backwards even when concurrent touches land out of order.
	TouchLastUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error
}
