package module

import "time"

// UpgradeMetrics exposes the observability hooks of the upgrade engine.
type UpgradeMetrics interface {
	// UpgradeStarted is called when an upgrade run begins.
	UpgradeStarted()

	// UpgradeExecuted is called after a successful commit with the run
	// duration and the number of keys written.
	UpgradeExecuted(duration time.Duration, keysWritten int)

	// UpgradeFailed is called when a run aborts on any stage.
	UpgradeFailed()
}
