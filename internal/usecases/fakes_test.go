package usecases

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"auto-diag.backend/internal/domain/entities"
	domainerrors "auto-diag.backend/internal/domain/errors"
	"auto-diag.backend/pkg/logger"
	"auto-diag.backend/pkg/redis"
)

func TestMain(m *testing.M) {
	logger.Init("production")
	os.Exit(m.Run())
}

// syncDispatch runs dispatched work inline so tests observe side effects
// without sleeping
func syncDispatch(fn func()) { fn() }

type fakeRateLimitRepo struct {
	mu      sync.Mutex
	records []*entities.RateLimitRecord

	countErr  error
	appendErr error
	deleteErr error

	deleteCalls  int
	deleteCutoff time.Time
}

func (f *fakeRateLimitRepo) CountSince(_ context.Context, keyHash string, since time.Time) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.records {
		if r.KeyHash == keyHash && !r.RequestedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRateLimitRepo) Append(_ context.Context, record *entities.RateLimitRecord) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, record)
	return nil
}

func (f *fakeRateLimitRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	f.deleteCutoff = cutoff
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	var kept []*entities.RateLimitRecord
	var deleted int64
	for _, r := range f.records {
		if r.RequestedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	return deleted, nil
}

type fakeApiKeyRepo struct {
	mu     sync.Mutex
	byHash map[string]*entities.ApiKey

	findErr error

	touchedID uuid.UUID
	touchedAt time.Time
	touches   int
}

func newFakeApiKeyRepo(keys ...*entities.ApiKey) *fakeApiKeyRepo {
	f := &fakeApiKeyRepo{byHash: make(map[string]*entities.ApiKey)}
	for _, k := range keys {
		f.byHash[k.KeyHash] = k
	}
	return f
}

func (f *fakeApiKeyRepo) Create(_ context.Context, key *entities.ApiKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byHash[key.KeyHash] = key
	return nil
}

func (f *fakeApiKeyRepo) FindByKeyHash(_ context.Context, keyHash string) (*entities.ApiKey, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key, ok := f.byHash[keyHash]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return key, nil
}

func (f *fakeApiKeyRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.ApiKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range f.byHash {
		if key.ID == id {
			return key, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (f *fakeApiKeyRepo) List(_ context.Context) ([]*entities.ApiKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]*entities.ApiKey, 0, len(f.byHash))
	for _, key := range f.byHash {
		keys = append(keys, key)
	}
	return keys, nil
}

func (f *fakeApiKeyRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range f.byHash {
		if key.ID == id {
			key.IsActive = active
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

func (f *fakeApiKeyRepo) TouchLastUsed(_ context.Context, id uuid.UUID, usedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touches++
	f.touchedID = id
	f.touchedAt = usedAt
	return nil
}

type fakeRequestLogRepo struct {
	mu      sync.Mutex
	entries []*entities.RequestLog

	appendErr error
	stats     []*entities.KeyUsageStat
}

func (f *fakeRequestLogRepo) Append(_ context.Context, log *entities.RequestLog) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, log)
	return nil
}

func (f *fakeRequestLogRepo) StatsByKey(_ context.Context, _ time.Time) ([]*entities.KeyUsageStat, error) {
	return f.stats, nil
}

type fakeKeyCache struct {
	mu      sync.Mutex
	entries map[string]*redis.KeyRecord

	lookupErr error

	lookups     int
	puts        int
	invalidated []string
}

func newFakeKeyCache() *fakeKeyCache {
	return &fakeKeyCache{entries: make(map[string]*redis.KeyRecord)}
}

func (f *fakeKeyCache) Lookup(_ context.Context, keyHash string) (*redis.KeyRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	record, ok := f.entries[keyHash]
	if !ok {
		return nil, redis.ErrCacheMiss
	}
	return record, nil
}

func (f *fakeKeyCache) Put(_ context.Context, record *redis.KeyRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	f.entries[record.KeyHash] = record
	return nil
}

func (f *fakeKeyCache) Invalidate(_ context.Context, keyHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, keyHash)
	delete(f.entries, keyHash)
	return nil
}
