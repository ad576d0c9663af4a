package telemetry_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EHLuC/ecotrip/internal/greenops"
	"github.com/EHLuC/ecotrip/internal/session"
	"github.com/EHLuC/ecotrip/internal/telemetry"
)

var _ session.Recorder = (*telemetry.Metrics)(nil)

func TestObserveCalculation(t *testing.T) {
	m := telemetry.New("test")

	m.ObserveCalculation(greenops.ModeCar, 12)
	m.ObserveCalculation(greenops.ModeCar, 6)
	m.ObserveCalculation(greenops.ModeBicycle, 0)

	assert.InDelta(t, 2.0, testutil.ToFloat64(m.CalculationsTotal.WithLabelValues("car")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.CalculationsTotal.WithLabelValues("bicycle")), 1e-9)
	assert.InDelta(t, 18.0, testutil.ToFloat64(m.EmissionKgTotal.WithLabelValues("car")), 1e-9)
}

func TestObserveHistory(t *testing.T) {
	m := telemetry.New("test")

	m.ObserveHistorySize(7)
	assert.InDelta(t, 7.0, testutil.ToFloat64(m.HistoryEntries), 1e-9)

	m.ObserveHistoryClear()
	m.ObserveHistorySize(0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.HistoryClears), 1e-9)
	assert.InDelta(t, 0.0, testutil.ToFloat64(m.HistoryEntries), 1e-9)
}

func TestGatherExposition(t *testing.T) {
	m := telemetry.New("v1.2.3")
	m.ObserveCalculation(greenops.ModeTrain, 4)

	expected := `
# HELP ecotrip_calculations_total Total number of footprint calculations
# TYPE ecotrip_calculations_total counter
ecotrip_calculations_total{mode="train"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "ecotrip_calculations_total"))
}

func TestWriteTextfile(t *testing.T) {
	m := telemetry.New("v1.2.3")
	m.ObserveCalculation(greenops.ModeBus, 0.5)

	path := filepath.Join(t.TempDir(), "textfile", "ecotrip.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `ecotrip_calculations_total{mode="bus"} 1`)
	assert.Contains(t, string(data), `ecotrip_build_info{go_version=`)
	assert.Contains(t, string(data), `version="v1.2.3"`)
}
