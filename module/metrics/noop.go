package metrics

import (
	"time"

	"github.com/meridian-chain/meridian-go/module"
)

// NoopCollector discards all metrics. Used in tests and tooling.
type NoopCollector struct{}

var _ module.UpgradeMetrics = (*NoopCollector)(nil)

// NewNoopCollector constructs a collector that does nothing.
func NewNoopCollector() *NoopCollector {
	return &NoopCollector{}
}

func (c *NoopCollector) UpgradeStarted()                    {}
func (c *NoopCollector) UpgradeExecuted(time.Duration, int) {}
func (c *NoopCollector) UpgradeFailed()                     {}
