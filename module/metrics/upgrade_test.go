package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-chain/meridian-go/module/metrics"
)

func counterValue(t *testing.T, registry *prometheus.Registry, name string) float64 {
	families, err := registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() == name {
			require.Len(t, family.Metric, 1)
			return family.Metric[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("counter %s not registered", name)
	return 0
}

func histogramSamples(t *testing.T, registry *prometheus.Registry, name string) uint64 {
	families, err := registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() == name {
			require.Len(t, family.Metric, 1)
			return family.Metric[0].GetHistogram().GetSampleCount()
		}
	}
	t.Fatalf("histogram %s not registered", name)
	return 0
}

func TestUpgradeCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := metrics.NewUpgradeCollector(registry)

	collector.UpgradeStarted()
	collector.UpgradeStarted()
	collector.UpgradeExecuted(40*time.Millisecond, 9)
	collector.UpgradeFailed()

	assert.Equal(t, 2.0, counterValue(t, registry, "meridian_upgrade_runs_started_total"))
	assert.Equal(t, 1.0, counterValue(t, registry, "meridian_upgrade_runs_executed_total"))
	assert.Equal(t, 1.0, counterValue(t, registry, "meridian_upgrade_runs_failed_total"))

	assert.Equal(t, uint64(1), histogramSamples(t, registry, "meridian_upgrade_run_duration_seconds"))
	assert.Equal(t, uint64(1), histogramSamples(t, registry, "meridian_upgrade_keys_written"))
}

func TestUpgradeCollector_RegistersOnce(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics.NewUpgradeCollector(registry)

	// a second collector on the same registerer is a configuration bug
	assert.Panics(t, func() {
		metrics.NewUpgradeCollector(registry)
	})
}
