// Package metrics defines and registers the custom Prometheus metrics of the
// movie catalog. It is the single source of truth for metric names, labels,
// and help strings.
//
// All metrics are registered with the default registry on package import.
// Recorder adapts them to the metric interfaces the services depend on.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "movie_catalog"

// ── Catalog metrics ───────────────────────────────────────────────────────────

// MovieWritesTotal counts successful movie writes.
// Label:
//   - op: "create", "update" or "delete"
var MovieWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "movie_writes_total",
		Help:      "Total number of movie writes, by operation.",
	},
	[]string{"op"},
)

// BackReferenceFailuresTotal counts back-reference updates that failed after
// the movie itself was written.
// Label:
//   - collection: "directors", "actors" or "genres"
var BackReferenceFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backref_failures_total",
		Help:      "Total number of failed back-reference updates, by collection.",
	},
	[]string{"collection"},
)

// EnrichmentsTotal counts metadata lookups made by the enriched fetch.
// Label:
//   - result: "found", "no_match" or "error"
var EnrichmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrichments_total",
		Help:      "Total number of metadata enrichment lookups, by result.",
	},
	[]string{"result"},
)

// ── Import metrics ────────────────────────────────────────────────────────────

// ImportsTotal counts import jobs by outcome.
// Label:
//   - outcome: "imported", "skipped" or "failed"
var ImportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "imports_total",
		Help:      "Total number of movie import jobs, by outcome.",
	},
	[]string{"outcome"},
)

// Recorder reports service events to the package metrics.
type Recorder struct{}

func (Recorder) MovieWritten(op string) {
	MovieWritesTotal.WithLabelValues(op).Inc()
}

func (Recorder) BackReferenceFailed(collection string) {
	BackReferenceFailuresTotal.WithLabelValues(collection).Inc()
}

func (Recorder) Enrichment(result string) {
	EnrichmentsTotal.WithLabelValues(result).Inc()
}

func (Recorder) Imported(outcome string) {
	ImportsTotal.WithLabelValues(outcome).Inc()
}
