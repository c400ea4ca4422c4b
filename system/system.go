// Package system stores the canonical identities of the built-in system
// contracts: the currency-issuance contract (mint), the validator auction,
// the fee-handling contract and the payment contract.
//
// System contracts live at permanent addresses known to the protocol. The
// addresses are recorded in a registry written at bootstrap; a protocol
// upgrade replaces the contracts' entry-point tables and version metadata
// but never their addresses.
package system

import (
	"sort"

	"github.com/meridian-chain/meridian-go/model/gstate"
)

const (
	// Mint is the logical name of the currency-issuance contract.
	Mint = "mint"
	// Auction is the logical name of the validator-auction contract.
	Auction = "auction"
	// HandlePayment is the logical name of the fee-handling contract.
	HandlePayment = "handle_payment"
	// StandardPayment is the logical name of the payment contract.
	StandardPayment = "standard_payment"
)

// Named keys through which economic parameters are reachable on the mint and
// auction contracts.
const (
	NamedKeyValidatorSlots       = "validator_slots"
	NamedKeyAuctionDelay         = "auction_delay"
	NamedKeyLockedFundsPeriod    = "locked_funds_period"
	NamedKeyUnbondingDelay       = "unbonding_delay"
	NamedKeyRoundSeigniorageRate = "round_seigniorage_rate"
)

// ContractNames lists the system contracts in their fixed migration order.
// The order carries no semantic weight since the contracts' key sets are
// disjoint, but it is preserved for effect-log reproducibility.
func ContractNames() []string {
	return []string{Mint, Auction, HandlePayment, StandardPayment}
}

// RegistryKey is the fixed global state key of the system contract registry.
func RegistryKey() gstate.Key {
	return gstate.HashKey(gstate.HashBytes([]byte("system-contract-registry")))
}

// ProtocolVersionKey is the fixed global state key of the on-chain recorded
// protocol version.
func ProtocolVersionKey() gstate.Key {
	return gstate.HashKey(gstate.HashBytes([]byte("protocol-version")))
}

// Registry maps system contract names to their permanent contract hashes.
// It is persisted as a CLValue under RegistryKey.
type Registry map[string]gstate.ContractHash

// Names returns the registered contract names in lexicographic order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EntryPointsFor returns the freshly derived entry-point table for the named
// system contract. Entry points are a deterministic function of the
// contract's logical identity, never of its prior stored state.
func EntryPointsFor(name string) (gstate.EntryPoints, bool) {
	switch name {
	case Mint:
		return MintEntryPoints(), true
	case Auction:
		return AuctionEntryPoints(), true
	case HandlePayment:
		return HandlePaymentEntryPoints(), true
	case StandardPayment:
		return StandardPaymentEntryPoints(), true
	default:
		return nil, false
	}
}
