package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestRecorder_IncrementsCounters(t *testing.T) {
	var r Recorder

	before := counterValue(t, MovieWritesTotal.WithLabelValues("create"))
	r.MovieWritten("create")
	assert.Equal(t, before+1, counterValue(t, MovieWritesTotal.WithLabelValues("create")))

	before = counterValue(t, BackReferenceFailuresTotal.WithLabelValues("actors"))
	r.BackReferenceFailed("actors")
	assert.Equal(t, before+1, counterValue(t, BackReferenceFailuresTotal.WithLabelValues("actors")))

	before = counterValue(t, EnrichmentsTotal.WithLabelValues("no_match"))
	r.Enrichment("no_match")
	assert.Equal(t, before+1, counterValue(t, EnrichmentsTotal.WithLabelValues("no_match")))

	before = counterValue(t, ImportsTotal.WithLabelValues("skipped"))
	r.Imported("skipped")
	r.Imported("skipped")
	assert.Equal(t, before+2, counterValue(t, ImportsTotal.WithLabelValues("skipped")))
}
