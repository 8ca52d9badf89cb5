package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"auto-diag.backend/internal/domain/entities"
)

func TestUsageRecorder_RecordAppendsEntry(t *testing.T) {
	repo := &fakeRequestLogRepo{}
	recorder := NewUsageRecorderUsecase(repo)
	recorder.dispatch = syncDispatch

	entry := &entities.RequestLog{
		Endpoint:    "/api/v1/diagnose",
		KeyHash:     "key_a",
		RequestedAt: time.Now().UTC(),
		StatusCode:  200,
		LatencyMs:   42,
	}
	recorder.Record(entry)

	require.Len(t, repo.entries, 1)
	require.Equal(t, entry, repo.entries[0])
}

func TestUsageRecorder_WriteFailureIsSwallowed(t *testing.T) {
	repo := &fakeRequestLogRepo{appendErr: errors.New("store down")}
	recorder := NewUsageRecorderUsecase(repo)
	recorder.dispatch = syncDispatch

	require.NotPanics(t, func() {
		recorder.Record(&entities.RequestLog{Endpoint: "/api/v1/diagnose"})
	})
	require.Empty(t, repo.entries)
}

func TestUsageRecorder_StatsByKey(t *testing.T) {
	repo := &fakeRequestLogRepo{stats: []*entities.KeyUsageStat{
		{KeyHash: "key_a", RequestCount: 10, AvgLatencyMs: 120.5},
	}}
	recorder := NewUsageRecorderUsecase(repo)

	stats, err := recorder.StatsByKey(context.Background(), time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, stats, 1)
	require.Equal(t, "key_a", stats[0].KeyHash)
}
