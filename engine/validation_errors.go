package engine

import (
	"fmt"

	"github.com/meridian-chain/meridian-go/model/gstate"
)

// Validation findings, aggregated under InvalidUpgradeConfig.

type versionMismatch struct {
	recorded gstate.ProtocolVersion
	declared gstate.ProtocolVersion
}

func (e *versionMismatch) Error() string {
	return fmt.Sprintf(
		"declared current version %s does not match recorded on-chain version %s",
		e.declared, e.recorded)
}

type versionNotIncreased struct {
	current gstate.ProtocolVersion
	next    gstate.ProtocolVersion
}

func (e *versionNotIncreased) Error() string {
	return fmt.Sprintf(
		"new version %s is not strictly greater than current version %s",
		e.next, e.current)
}

type versionNotRecorded struct{}

func (e *versionNotRecorded) Error() string {
	return "no protocol version recorded in global state"
}

type zeroDenominator struct{}

func (e *zeroDenominator) Error() string {
	return "round seigniorage rate has a zero denominator"
}
