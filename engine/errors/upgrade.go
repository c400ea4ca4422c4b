package errors

// NewInvalidUpgradeConfigError constructs a CodedError indicating that the
// supplied upgrade config is inconsistent with on-chain state, e.g. the
// pre-state root is unreadable or the recorded protocol version differs.
func NewInvalidUpgradeConfigError(msg string, args ...interface{}) CodedError {
	return NewCodedError(
		ErrCodeInvalidUpgradeConfig,
		"invalid upgrade config: "+msg,
		args...)
}

// NewInvalidUpgradeConfigWrappedError wraps validation detail under the
// invalid-config code.
func NewInvalidUpgradeConfigWrappedError(err error) CodedError {
	return WrapCodedError(ErrCodeInvalidUpgradeConfig, err, "invalid upgrade config")
}

func IsInvalidUpgradeConfigError(err error) bool {
	return HasErrorCode(err, ErrCodeInvalidUpgradeConfig)
}

// NewUnableToRetrieveSystemContractError constructs a CodedError indicating
// the named system contract is absent or stored as the wrong variant. This
// signals state corruption or a chain that was never properly bootstrapped.
func NewUnableToRetrieveSystemContractError(name string) CodedError {
	return NewCodedError(
		ErrCodeUnableToRetrieveSystemContract,
		"unable to retrieve system contract: %s",
		name)
}

func IsUnableToRetrieveSystemContractError(err error) bool {
	return HasErrorCode(err, ErrCodeUnableToRetrieveSystemContract)
}

// NewUnableToRetrieveSystemContractPackageError constructs a CodedError
// indicating the named system contract's package is absent or stored as the
// wrong variant.
func NewUnableToRetrieveSystemContractPackageError(name string) CodedError {
	return NewCodedError(
		ErrCodeUnableToRetrieveSystemContractPackage,
		"unable to retrieve system contract package: %s",
		name)
}

func IsUnableToRetrieveSystemContractPackageError(err error) bool {
	return HasErrorCode(err, ErrCodeUnableToRetrieveSystemContractPackage)
}

// NewFailedToDisablePreviousVersionError constructs a CodedError indicating
// the registry invariant was violated: the superseded contract hash must be
// an enabled version of its package before it can be disabled.
func NewFailedToDisablePreviousVersionError(name string) CodedError {
	return NewCodedError(
		ErrCodeFailedToDisablePreviousVersion,
		"failed to disable previous version of system contract: %s",
		name)
}

func IsFailedToDisablePreviousVersionError(err error) bool {
	return HasErrorCode(err, ErrCodeFailedToDisablePreviousVersion)
}

// NewFailedToCreateSystemRegistryError constructs a CodedError indicating
// the registry of system contract names to addresses could not be
// established or retrieved.
func NewFailedToCreateSystemRegistryError(msg string, args ...interface{}) CodedError {
	return NewCodedError(
		ErrCodeFailedToCreateSystemRegistry,
		"failed to insert system contract registry: "+msg,
		args...)
}

func IsFailedToCreateSystemRegistryError(err error) bool {
	return HasErrorCode(err, ErrCodeFailedToCreateSystemRegistry)
}

// NewSerializationError wraps a store codec failure, surfacing the cause
// verbatim.
func NewSerializationError(err error) CodedError {
	return WrapCodedError(ErrCodeSerialization, err, "serialization failure")
}

func IsSerializationError(err error) bool {
	return HasErrorCode(err, ErrCodeSerialization)
}
