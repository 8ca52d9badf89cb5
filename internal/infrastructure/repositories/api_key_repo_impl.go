package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"auto-diag.backend/internal/domain/entities"
	domainerrors "auto-diag.backend/internal/domain/errors"
	"auto-diag.backend/internal/domain/repositories"
	"auto-diag.backend/internal/infrastructure/models"
)

// apiKeyRepo implements repositories.ApiKeyRepository
type apiKeyRepo struct {
	db *gorm.DB
}

// NewApiKeyRepository creates a new API key repository
func NewApiKeyRepository(db *gorm.DB) repositories.ApiKeyRepository {
	return &apiKeyRepo{db: db}
}

// Create creates a new API key row
func (r *apiKeyRepo) Create(ctx context.Context, apiKey *entities.ApiKey) error {
	if apiKey.ID == uuid.Nil {
		apiKey.ID = uuid.New()
	}
	m := &models.ApiKey{
		ID:                 apiKey.ID,
		DisplayName:        apiKey.DisplayName,
		OwnerEmail:         apiKey.OwnerEmail.Ptr(),
		KeyHash:            apiKey.KeyHash,
		IsActive:           apiKey.IsActive,
		RateLimitPerMinute: apiKey.RateLimitPerMinute,
		LastUsedAt:         apiKey.LastUsedAt,
		CreatedAt:          apiKey.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// FindByKeyHash looks up a key by the hex SHA-256 of its raw secret
func (r *apiKeyRepo) FindByKeyHash(ctx context.Context, keyHash string) (*entities.ApiKey, error) {
	var m models.ApiKey
	if err := r.db.WithContext(ctx).Where("key_hash = ?", keyHash).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// FindByID gets a key by ID
func (r *apiKeyRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.ApiKey, error) {
	var m models.ApiKey
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List returns all issued keys, newest first
func (r *apiKeyRepo) List(ctx context.Context) ([]*entities.ApiKey, error) {
	var ms []models.ApiKey
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}

	var keys []*entities.ApiKey
	for _, m := range ms {
		model := m
		keys = append(keys, r.toEntity(&model))
	}
	return keys, nil
}

// SetActive toggles a key; deactivation is the only revocation mechanism
func (r *apiKeyRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).Model(&models.ApiKey{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// TouchLastUsed advances last_used_at. The guard keeps the column monotonic
// when concurrent touches land out of order; losing the race is not an error.
func (r *apiKeyRepo) TouchLastUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&models.ApiKey{}).
		Where("id = ? AND (last_used_at IS NULL OR last_used_at < ?)", id, usedAt).
		Update("last_used_at", usedAt).Error
}

// toEntity converts GORM model to domain entity
func (r *apiKeyRepo) toEntity(m *models.ApiKey) *entities.ApiKey {
	return &entities.ApiKey{
		ID:                 m.ID,
		DisplayName:        m.DisplayName,
		OwnerEmail:         null.StringFromPtr(m.OwnerEmail),
		KeyHash:            m.KeyHash,
		IsActive:           m.IsActive,
		RateLimitPerMinute: m.RateLimitPerMinute,
		LastUsedAt:         m.LastUsedAt,
		CreatedAt:          m.CreatedAt,
	}
}
