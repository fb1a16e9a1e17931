package profile

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jonathan/industry-match/internal/db"
	"github.com/jonathan/industry-match/internal/experience"
	"github.com/jonathan/industry-match/internal/logger"
	"github.com/jonathan/industry-match/internal/observability"
	"github.com/jonathan/industry-match/internal/types"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Write methods, as reported in logs and metrics
const (
	MethodReplace = "replace"
	MethodPatch   = "patch"
)

// DefaultConcurrency bounds RefreshAll when Config.Concurrency is unset.
const DefaultConcurrency = 4

// Store is the persistence collaborator for work history and industry profiles.
// *db.DB implements it.
type Store interface {
	ListWorkExperience(ctx context.Context, candidateID string) ([]types.WorkExperienceRow, error)
	ListCandidateIDs(ctx context.Context) ([]string, error)
	ReplaceIndustryProfile(ctx context.Context, profile *types.IndustryProfile) error
	PatchIndustryProfile(ctx context.Context, profile *types.IndustryProfile) error
}

// Config configures a Refresher. Zero values select defaults.
type Config struct {
	Accumulator *experience.Accumulator
	Logger      *zap.Logger
	Concurrency int

	// Breaker settings. The breaker opens once at least BreakerMinRequests writes were seen
	// in the current interval and BreakerFailureRatio of them failed.
	BreakerMinRequests  uint32
	BreakerFailureRatio float64
	BreakerTimeout      time.Duration
}

// Refresher rebuilds and persists industry profiles.
type Refresher struct {
	store       Store
	acc         *experience.Accumulator
	logger      *zap.Logger
	concurrency int
	breaker     *gobreaker.CircuitBreaker[string]
}

// NewRefresher creates a Refresher writing to store.
func NewRefresher(store Store, cfg Config) *Refresher {
	r := &Refresher{
		store:       store,
		acc:         cfg.Accumulator,
		logger:      logger.OrNop(cfg.Logger),
		concurrency: cfg.Concurrency,
	}
	if r.acc == nil {
		r.acc = experience.NewAccumulator()
	}
	if r.concurrency <= 0 {
		r.concurrency = DefaultConcurrency
	}

	minRequests := cfg.BreakerMinRequests
	if minRequests == 0 {
		minRequests = 5
	}
	threshold := cfg.BreakerFailureRatio
	if threshold <= 0 {
		threshold = 0.6
	}
	timeout := cfg.BreakerTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        "industry-profile-store",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= minRequests && failureRatio >= threshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			r.logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}
	r.breaker = gobreaker.NewCircuitBreaker[string](settings)

	return r
}

// Compute rebuilds a profile without persisting it.
func (r *Refresher) Compute(candidateID string, rows []types.WorkExperienceRow) *types.IndustryProfile {
	return r.acc.Build(candidateID, rows)
}

// Refresh rebuilds the profile from the complete work history and persists it.
// The whole profile is written with a replace; if the store rejects that as unsupported the
// same payload is written with a patch.
func (r *Refresher) Refresh(ctx context.Context, candidateID string, rows []types.WorkExperienceRow) (*types.IndustryProfile, error) {
	if r.store == nil {
		return nil, ErrNoStore
	}

	start := time.Now()
	profile := r.acc.Build(candidateID, rows)

	method, err := r.breaker.Execute(func() (string, error) {
		return r.persist(ctx, profile)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			observability.RecordProfileWrite(MethodReplace, "rejected")
		}
		r.logger.Error("industry profile refresh failed",
			zap.String("candidate_id", candidateID),
			zap.Error(err))
		return nil, &PersistError{CandidateID: candidateID, Cause: err}
	}

	observability.RecordProfileRefresh(time.Since(start).Seconds())
	r.logger.Info("industry profile refreshed",
		zap.String("candidate_id", candidateID),
		zap.Int("rows", len(rows)),
		zap.Int("tags", profile.Tags()),
		zap.String("method", method))

	return profile, nil
}

// RefreshFromStore loads the candidate's stored work history and refreshes from it.
func (r *Refresher) RefreshFromStore(ctx context.Context, candidateID string) (*types.IndustryProfile, error) {
	if r.store == nil {
		return nil, ErrNoStore
	}

	rows, err := r.store.ListWorkExperience(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load work experience: %w", err)
	}

	return r.Refresh(ctx, candidateID, rows)
}

// Failure records one candidate a bulk refresh could not update.
type Failure struct {
	CandidateID string
	Err         error
}

// BulkResult summarizes RefreshAll.
type BulkResult struct {
	Refreshed []string
	Failed    []Failure
}

// RefreshAll refreshes each candidate with bounded concurrency. When candidateIDs is empty,
// every candidate with stored work history is refreshed. A failing candidate does not stop
// the others; only context cancellation aborts the run.
func (r *Refresher) RefreshAll(ctx context.Context, candidateIDs []string) (*BulkResult, error) {
	if r.store == nil {
		return nil, ErrNoStore
	}

	if len(candidateIDs) == 0 {
		ids, err := r.store.ListCandidateIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list candidates: %w", err)
		}
		candidateIDs = ids
	}

	result := &BulkResult{
		Refreshed: make([]string, 0, len(candidateIDs)),
		Failed:    make([]Failure, 0),
	}
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, id := range candidateIDs {
		id := id
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			_, err := r.RefreshFromStore(gCtx, id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, Failure{CandidateID: id, Err: err})
				return nil
			}
			result.Refreshed = append(result.Refreshed, id)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	sort.Strings(result.Refreshed)
	sort.Slice(result.Failed, func(i, j int) bool {
		return result.Failed[i].CandidateID < result.Failed[j].CandidateID
	})

	r.logger.Info("bulk industry profile refresh complete",
		zap.Int("refreshed", len(result.Refreshed)),
		zap.Int("failed", len(result.Failed)))

	return result, nil
}

// persist writes with replace, falling back to patch when replace is unsupported.
func (r *Refresher) persist(ctx context.Context, profile *types.IndustryProfile) (string, error) {
	err := r.store.ReplaceIndustryProfile(ctx, profile)
	if err == nil {
		observability.RecordProfileWrite(MethodReplace, "success")
		return MethodReplace, nil
	}
	if !errors.Is(err, db.ErrUpsertUnsupported) {
		observability.RecordProfileWrite(MethodReplace, "error")
		return "", err
	}

	observability.RecordProfileWrite(MethodReplace, "unsupported")
	r.logger.Warn("replace write unsupported, falling back to patch",
		zap.String("candidate_id", profile.CandidateID),
		zap.Error(err))

	if err := r.store.PatchIndustryProfile(ctx, profile); err != nil {
		observability.RecordProfileWrite(MethodPatch, "error")
		return "", err
	}
	observability.RecordProfileWrite(MethodPatch, "success")
	return MethodPatch, nil
}
