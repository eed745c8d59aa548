package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorderTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveEmitDuration(2 * time.Millisecond)
	pr.IncEmitOutcome(OutcomeSuccess)
	pr.IncEmitOutcome(OutcomeSuccess)
	pr.IncEmitOutcome(OutcomeFailed)
	pr.SetDocumentBytes(2816)

	path := filepath.Join(t.TempDir(), "adminui.prom")
	require.NoError(t, WriteTextfile(reg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, `adminui_emit_outcomes_total{outcome="success"} 2`)
	assert.Contains(t, text, `adminui_emit_outcomes_total{outcome="failed"} 1`)
	assert.Contains(t, text, "adminui_document_bytes 2816")
	assert.Contains(t, text, "adminui_emit_duration_seconds_count 1")
}

func TestWriteTextfileMissingDirectory(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg)

	err := WriteTextfile(reg, filepath.Join(t.TempDir(), "missing", "adminui.prom"))
	require.Error(t, err)
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.ObserveEmitDuration(time.Second)
		pr.IncEmitOutcome(OutcomeFailed)
		pr.SetDocumentBytes(1)
	})
}

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveEmitDuration(time.Second)
	r.IncEmitOutcome(OutcomeSuccess)
	r.SetDocumentBytes(10)
}
