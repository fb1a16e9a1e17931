package profile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonathan/industry-match/internal/db"
	"github.com/jonathan/industry-match/internal/experience"
	"github.com/jonathan/industry-match/internal/types"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu         sync.Mutex
	history    map[string][]types.WorkExperienceRow
	replaced   []*types.IndustryProfile
	patched    []*types.IndustryProfile
	replaceErr error
	patchErr   error
	listErr    map[string]error

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	delay       time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		history: make(map[string][]types.WorkExperienceRow),
		listErr: make(map[string]error),
	}
}

func (f *fakeStore) ListWorkExperience(_ context.Context, candidateID string) ([]types.WorkExperienceRow, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		cur := f.maxInFlight.Load()
		if n <= cur || f.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.listErr[candidateID]; err != nil {
		return nil, err
	}
	return f.history[candidateID], nil
}

func (f *fakeStore) ListCandidateIDs(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.history))
	for id := range f.history {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeStore) ReplaceIndustryProfile(_ context.Context, profile *types.IndustryProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaced = append(f.replaced, profile)
	return nil
}

func (f *fakeStore) PatchIndustryProfile(_ context.Context, profile *types.IndustryProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.patchErr != nil {
		return f.patchErr
	}
	f.patched = append(f.patched, profile)
	return nil
}

var fixedNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func testAccumulator() *experience.Accumulator {
	return &experience.Accumulator{Now: func() time.Time { return fixedNow }}
}

func strPtr(s string) *string { return &s }

var sampleRows = []types.WorkExperienceRow{
	{Position: "Software Engineer", StartDate: "2020-01-01", EndDate: strPtr("2022-01-01")},
	{Position: "Barista", StartDate: "2018-01-01", EndDate: strPtr("2019-01-01")},
}

func TestRefresh_ReplaceSucceeds(t *testing.T) {
	store := newFakeStore()
	r := NewRefresher(store, Config{Accumulator: testAccumulator()})

	profile, err := r.Refresh(context.Background(), "cand-1", sampleRows)
	require.NoError(t, err)

	assert.Equal(t, "cand-1", profile.CandidateID)
	assert.InDelta(t, 731/365.25, profile.IndustryYears["technology"], 1e-9)
	assert.Equal(t, fixedNow, profile.UpdatedAt)

	require.Len(t, store.replaced, 1)
	assert.Same(t, profile, store.replaced[0])
	assert.Empty(t, store.patched)
}

func TestRefresh_FallsBackToPatch(t *testing.T) {
	store := newFakeStore()
	store.replaceErr = fmt.Errorf("%w: no unique constraint", db.ErrUpsertUnsupported)
	r := NewRefresher(store, Config{Accumulator: testAccumulator()})

	profile, err := r.Refresh(context.Background(), "cand-1", sampleRows)
	require.NoError(t, err)

	require.Len(t, store.patched, 1)
	assert.Same(t, profile, store.patched[0], "patch writes the same payload")
}

func TestRefresh_OtherReplaceErrorDoesNotFallBack(t *testing.T) {
	store := newFakeStore()
	store.replaceErr = errors.New("connection refused")
	r := NewRefresher(store, Config{Accumulator: testAccumulator()})

	_, err := r.Refresh(context.Background(), "cand-1", sampleRows)
	require.Error(t, err)

	var persistErr *PersistError
	require.True(t, errors.As(err, &persistErr))
	assert.Equal(t, "cand-1", persistErr.CandidateID)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Empty(t, store.patched)
}

func TestRefresh_PatchFailure(t *testing.T) {
	store := newFakeStore()
	store.replaceErr = db.ErrUpsertUnsupported
	store.patchErr = errors.New("disk full")
	r := NewRefresher(store, Config{Accumulator: testAccumulator()})

	_, err := r.Refresh(context.Background(), "cand-1", sampleRows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestRefresh_NoStore(t *testing.T) {
	r := NewRefresher(nil, Config{})

	_, err := r.Refresh(context.Background(), "cand-1", sampleRows)
	assert.ErrorIs(t, err, ErrNoStore)

	_, err = r.RefreshFromStore(context.Background(), "cand-1")
	assert.ErrorIs(t, err, ErrNoStore)

	_, err = r.RefreshAll(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoStore)
}

func TestCompute_DoesNotPersist(t *testing.T) {
	store := newFakeStore()
	r := NewRefresher(store, Config{Accumulator: testAccumulator()})

	profile := r.Compute("cand-1", sampleRows)
	assert.Len(t, profile.IndustryYears, 1)
	assert.Empty(t, store.replaced)
}

func TestRefresh_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	store := newFakeStore()
	store.replaceErr = errors.New("timeout")
	r := NewRefresher(store, Config{
		Accumulator:         testAccumulator(),
		BreakerMinRequests:  2,
		BreakerFailureRatio: 0.5,
		BreakerTimeout:      time.Hour,
	})

	for i := 0; i < 2; i++ {
		_, err := r.Refresh(context.Background(), "cand-1", sampleRows)
		require.Error(t, err)
		assert.False(t, errors.Is(err, gobreaker.ErrOpenState))
	}

	_, err := r.Refresh(context.Background(), "cand-1", sampleRows)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
}

func TestRefreshFromStore(t *testing.T) {
	store := newFakeStore()
	store.history["cand-1"] = sampleRows
	r := NewRefresher(store, Config{Accumulator: testAccumulator()})

	profile, err := r.RefreshFromStore(context.Background(), "cand-1")
	require.NoError(t, err)
	assert.Contains(t, profile.IndustryYears, "technology")
}

func TestRefreshFromStore_ListError(t *testing.T) {
	store := newFakeStore()
	store.listErr["cand-1"] = errors.New("boom")
	r := NewRefresher(store, Config{Accumulator: testAccumulator()})

	_, err := r.RefreshFromStore(context.Background(), "cand-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load work experience")
	assert.Empty(t, store.replaced)
}

func TestRefreshAll_ListsCandidatesWhenNoneGiven(t *testing.T) {
	store := newFakeStore()
	store.history["c"] = sampleRows
	store.history["a"] = sampleRows
	store.history["b"] = nil
	r := NewRefresher(store, Config{Accumulator: testAccumulator()})

	result, err := r.RefreshAll(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, result.Refreshed)
	assert.Empty(t, result.Failed)
	assert.Len(t, store.replaced, 3)
}

func TestRefreshAll_CollectsFailures(t *testing.T) {
	store := newFakeStore()
	store.history["a"] = sampleRows
	store.history["b"] = sampleRows
	store.listErr["b"] = errors.New("row decode failed")
	r := NewRefresher(store, Config{Accumulator: testAccumulator()})

	result, err := r.RefreshAll(context.Background(), []string{"b", "a"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, result.Refreshed)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "b", result.Failed[0].CandidateID)
	assert.Contains(t, result.Failed[0].Err.Error(), "row decode failed")
}

func TestRefreshAll_BoundsConcurrency(t *testing.T) {
	store := newFakeStore()
	store.delay = 10 * time.Millisecond
	ids := make([]string, 12)
	for i := range ids {
		ids[i] = fmt.Sprintf("cand-%02d", i)
		store.history[ids[i]] = sampleRows
	}
	r := NewRefresher(store, Config{Accumulator: testAccumulator(), Concurrency: 3})

	result, err := r.RefreshAll(context.Background(), ids)
	require.NoError(t, err)

	assert.Len(t, result.Refreshed, len(ids))
	assert.LessOrEqual(t, store.maxInFlight.Load(), int32(3))
}

func TestRefreshAll_CanceledContext(t *testing.T) {
	store := newFakeStore()
	store.history["a"] = sampleRows
	r := NewRefresher(store, Config{Accumulator: testAccumulator()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.RefreshAll(ctx, []string{"a"})
	assert.ErrorIs(t, err, context.Canceled)
}
