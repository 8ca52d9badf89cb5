package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"auto-diag.backend/internal/domain/entities"
	domainerrors "auto-diag.backend/internal/domain/errors"
	"auto-diag.backend/internal/domain/repositories"
	"auto-diag.backend/pkg/crypto"
	"auto-diag.backend/pkg/logger"
	"auto-diag.backend/pkg/redis"
)

// KeyCache is a short-TTL snapshot cache in front of the key store. A nil
// cache is valid and means every lookup goes to the store.
type KeyCache interface {
	Lookup(ctx context.Context, keyHash string) (*redis.KeyRecord, error)
	Put(ctx context.Context, record *redis.KeyRecord) error
	Invalidate(ctx context.Context, keyHash string) error
}

// ApiKeyUsecase resolves presented secrets and manages issued keys
type ApiKeyUsecase struct {
	apiKeys  repositories.ApiKeyRepository
	cache    KeyCache
	dispatch func(fn func())
	now      func() time.Time
}

// NewApiKeyUsecase creates an API key usecase; cache may be nil
func NewApiKeyUsecase(apiKeys repositories.ApiKeyRepository, cache KeyCache) *ApiKeyUsecase {
	return &ApiKeyUsecase{
		apiKeys:  apiKeys,
		cache:    cache,
		dispatch: func(fn func()) { go fn() },
		now:      time.Now,
	}
}

// Authenticate resolves a raw secret to its issued key. The secret is hashed
// and compared exact-byte; no trimming or casing is applied. On success a
// best-effort last_used_at touch is dispatched in the background.
func (u *ApiKeyUsecase) Authenticate(ctx context.Context, rawKey string) (*entities.ApiKey, error) {
	keyHash := crypto.HashAPIKey(rawKey)

	key, err := u.lookup(ctx, keyHash)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidAPIKey
		}
		return nil, fmt.Errorf("failed to look up api key: %w", err)
	}

	if !key.IsActive {
		return nil, domainerrors.ErrAPIKeyDeactivated
	}

	usedAt := u.now().UTC()
	u.dispatch(func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := u.apiKeys.TouchLastUsed(bgCtx, key.ID, usedAt); err != nil {
			logger.Error(bgCtx, "failed to touch api key last_used_at",
				zap.String("key_id", key.ID.String()),
				zap.Error(err),
			)
		}
	})

	return key, nil
}

// lookup reads through the cache when one is configured. Cache failures fall
// through to the store; they never fail the request on their own.
func (u *ApiKeyUsecase) lookup(ctx context.Context, keyHash string) (*entities.ApiKey, error) {
	if u.cache != nil {
		cached, err := u.cache.Lookup(ctx, keyHash)
		if err == nil {
			return cachedToEntity(cached), nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			logger.Warn(ctx, "api key cache lookup failed", zap.Error(err))
		}
	}

	key, err := u.apiKeys.FindByKeyHash(ctx, keyHash)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.Put(ctx, entityToCached(key)); err != nil {
			logger.Warn(ctx, "api key cache put failed", zap.Error(err))
		}
	}
	return key, nil
}

// Create issues a new key and returns the raw secret exactly once
func (u *ApiKeyUsecase) Create(ctx context.Context, input *entities.CreateApiKeyInput) (*entities.CreateApiKeyResponse, error) {
	rawKey, err := crypto.GenerateAPIKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate api key: %w", err)
	}

	key := &entities.ApiKey{
		ID:                 uuid.New(),
		DisplayName:        input.DisplayName,
		KeyHash:            crypto.HashAPIKey(rawKey),
		IsActive:           true,
		RateLimitPerMinute: input.RateLimitPerMinute,
		CreatedAt:          u.now().UTC(),
	}
	if input.OwnerEmail != "" {
		key.OwnerEmail.SetValid(input.OwnerEmail)
	}

	if err := u.apiKeys.Create(ctx, key); err != nil {
		return nil, fmt.Errorf("failed to create api key: %w", err)
	}

	return &entities.CreateApiKeyResponse{
		ID:                 key.ID,
		DisplayName:        key.DisplayName,
		ApiKey:             rawKey,
		RateLimitPerMinute: key.RateLimitPerMinute,
		CreatedAt:          key.CreatedAt,
	}, nil
}

// List returns all issued keys, hashes omitted from serialization
func (u *ApiKeyUsecase) List(ctx context.Context) ([]*entities.ApiKey, error) {
	return u.apiKeys.List(ctx)
}

// SetActive toggles a key. Deactivation also drops the cached snapshot so
// revocation takes effect ahead of the cache TTL.
func (u *ApiKeyUsecase) SetActive(ctx context.Context, id uuid.UUID, active bool) (*entities.ApiKey, error) {
	key, err := u.apiKeys.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.apiKeys.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	key.IsActive = active

	if u.cache != nil {
		if err := u.cache.Invalidate(ctx, key.KeyHash); err != nil {
			logger.Warn(ctx, "api key cache invalidation failed",
				zap.String("key_id", id.String()),
				zap.Error(err),
			)
		}
	}
	return key, nil
}

func cachedToEntity(r *redis.KeyRecord) *entities.ApiKey {
	id, _ := uuid.Parse(r.ID)
	return &entities.ApiKey{
		ID:                 id,
		DisplayName:        r.DisplayName,
		KeyHash:            r.KeyHash,
		IsActive:           r.IsActive,
		RateLimitPerMinute: r.RateLimitPerMinute,
		CreatedAt:          r.CreatedAt,
		LastUsedAt:         r.LastUsedAt,
	}
}

func entityToCached(key *entities.ApiKey) *redis.KeyRecord {
	return &redis.KeyRecord{
		ID:                 key.ID.String(),
		KeyHash:            key.KeyHash,
		DisplayName:        key.DisplayName,
		IsActive:           key.IsActive,
		RateLimitPerMinute: key.RateLimitPerMinute,
		CreatedAt:          key.CreatedAt,
		LastUsedAt:         key.LastUsedAt,
	}
}
