package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ObservesRun(t *testing.T) {
	r := NewRegistry()

	r.ObserveStage("fetch_classes", 1500*time.Millisecond, nil)
	r.ObserveStage("verify", time.Millisecond, errors.New("boom"))
	r.ObserveStage("verify", time.Millisecond, errors.New("boom"))
	r.ObserveConcepts(42)
	r.ObserveWarnings(3)
	r.ObservePartition("Routes of Administration", 7)
	r.ObserveResourceWritten("CodeSystem")
	r.ObserveResourceWritten("CodeSystem")
	r.ObserveResourceWritten("ValueSet")

	assert.InDelta(t, 1.5, testutil.ToFloat64(r.stageSeconds.WithLabelValues("fetch_classes")), 1e-9)
	assert.Equal(t, 0.0, testutil.ToFloat64(r.stageFailures.WithLabelValues("fetch_classes")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.stageFailures.WithLabelValues("verify")))
	assert.Equal(t, 42.0, testutil.ToFloat64(r.concepts))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.warnings))
	assert.Equal(t, 7.0, testutil.ToFloat64(r.partition.WithLabelValues("Routes of Administration")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.written.WithLabelValues("CodeSystem")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.written.WithLabelValues("ValueSet")))
}

func TestRegistry_WriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.ObserveConcepts(5)

	path := filepath.Join(t.TempDir(), "nested", "edqm2fhir.prom")
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, r.WriteTextfile(path, now))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(b)

	assert.True(t, strings.Contains(s, "edqm2fhir_concepts 5"), s)
	assert.True(t, strings.Contains(s, "edqm2fhir_last_run_timestamp_seconds 1.7092944e+09"), s)
}
