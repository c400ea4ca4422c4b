package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/meridian-chain/meridian-go/module"
)

const (
	namespaceEngine  = "meridian"
	subsystemUpgrade = "upgrade"
)

// UpgradeCollector reports upgrade engine metrics to Prometheus.
type UpgradeCollector struct {
	started     prometheus.Counter
	executed    prometheus.Counter
	failed      prometheus.Counter
	duration    prometheus.Histogram
	keysWritten prometheus.Histogram
}

var _ module.UpgradeMetrics = (*UpgradeCollector)(nil)

// NewUpgradeCollector constructs a collector and registers it with the given
// registerer.
func NewUpgradeCollector(registerer prometheus.Registerer) *UpgradeCollector {

	started := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespaceEngine,
		Subsystem: subsystemUpgrade,
		Name:      "runs_started_total",
		Help:      "number of protocol upgrade runs started",
	})

	executed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespaceEngine,
		Subsystem: subsystemUpgrade,
		Name:      "runs_executed_total",
		Help:      "number of protocol upgrade runs committed successfully",
	})

	failed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespaceEngine,
		Subsystem: subsystemUpgrade,
		Name:      "runs_failed_total",
		Help:      "number of protocol upgrade runs aborted with an error",
	})

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespaceEngine,
		Subsystem: subsystemUpgrade,
		Name:      "run_duration_seconds",
		Help:      "duration of successful upgrade runs",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
	})

	keysWritten := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespaceEngine,
		Subsystem: subsystemUpgrade,
		Name:      "keys_written",
		Help:      "number of global state keys written per successful upgrade",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})

	registerer.MustRegister(started, executed, failed, duration, keysWritten)

	return &UpgradeCollector{
		started:     started,
		executed:    executed,
		failed:      failed,
		duration:    duration,
		keysWritten: keysWritten,
	}
}

func (c *UpgradeCollector) UpgradeStarted() {
	c.started.Inc()
}

func (c *UpgradeCollector) UpgradeExecuted(duration time.Duration, keysWritten int) {
	c.executed.Inc()
	c.duration.Observe(duration.Seconds())
	c.keysWritten.Observe(float64(keysWritten))
}

func (c *UpgradeCollector) UpgradeFailed() {
	c.failed.Inc()
}
