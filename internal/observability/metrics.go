package observability

import (
	"github.com/jonathan/industry-match/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Match result kinds
const (
	KindScored        = "scored"
	KindNotApplicable = "not_applicable"
)

var (
	// MatchResultsTotal counts match computations by kind.
	MatchResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "industry",
			Name:      "match_results_total",
			Help:      "Total number of industry match computations",
		},
		[]string{"kind"},
	)

	// MatchPercent observes the distribution of scored match percentages.
	MatchPercent = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "industry",
			Name:      "match_percent",
			Help:      "Distribution of scored industry match percentages",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		},
	)

	// ProfileWritesTotal counts industry profile writes by method and outcome.
	ProfileWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "industry",
			Name:      "profile_writes_total",
			Help:      "Total number of industry profile writes",
		},
		[]string{"method", "status"},
	)

	// ProfileRefreshDuration measures a full recompute-and-persist cycle.
	ProfileRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "industry",
			Name:      "profile_refresh_duration_seconds",
			Help:      "Duration of industry profile refreshes in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// RecordMatch records one match computation. Not-applicable results are counted but never
// observed as a percentage.
func RecordMatch(result *types.MatchResult) {
	if !result.Scored() {
		MatchResultsTotal.WithLabelValues(KindNotApplicable).Inc()
		return
	}
	MatchResultsTotal.WithLabelValues(KindScored).Inc()
	MatchPercent.Observe(float64(*result.Percent))
}

// RecordProfileWrite records a profile write attempt.
func RecordProfileWrite(method, status string) {
	ProfileWritesTotal.WithLabelValues(method, status).Inc()
}

// RecordProfileRefresh records the duration of a profile refresh.
func RecordProfileRefresh(seconds float64) {
	ProfileRefreshDuration.Observe(seconds)
}
