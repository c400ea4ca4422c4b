package errors

import "fmt"

// ErrorCode classifies an upgrade engine failure. Every failure is
// non-retryable: each one indicates either bad input or corrupted chain
// state, never a transient condition, so retry policy belongs to the caller.
type ErrorCode uint16

const (
	// ErrCodeInvalidUpgradeConfig: the supplied config is inconsistent with
	// on-chain state.
	ErrCodeInvalidUpgradeConfig ErrorCode = 1100
	// ErrCodeUnableToRetrieveSystemContract: a system contract is missing or
	// stored as the wrong variant.
	ErrCodeUnableToRetrieveSystemContract ErrorCode = 1101
	// ErrCodeUnableToRetrieveSystemContractPackage: a system contract's
	// version registry is missing or stored as the wrong variant.
	ErrCodeUnableToRetrieveSystemContractPackage ErrorCode = 1102
	// ErrCodeFailedToDisablePreviousVersion: the superseded contract hash was
	// not an enabled version of its package.
	ErrCodeFailedToDisablePreviousVersion ErrorCode = 1103
	// ErrCodeFailedToCreateSystemRegistry: the registry of system contract
	// names to addresses was never established by bootstrap.
	ErrCodeFailedToCreateSystemRegistry ErrorCode = 1104
	// ErrCodeSerialization: the store codec failed; surfaced verbatim.
	ErrCodeSerialization ErrorCode = 1105
)

func (ec ErrorCode) String() string {
	return fmt.Sprintf("[Error Code: %d]", uint16(ec))
}
