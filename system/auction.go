package system

import "github.com/meridian-chain/meridian-go/model/gstate"

// Entry point names of the auction contract.
const (
	MethodGetEraValidators = "get_era_validators"
	MethodAddBid           = "add_bid"
	MethodWithdrawBid      = "withdraw_bid"
	MethodDelegate         = "delegate"
	MethodUndelegate       = "undelegate"
	MethodRunAuction       = "run_auction"
	MethodSlash            = "slash"
	MethodDistribute       = "distribute"
	MethodReadEraID        = "read_era_id"
	MethodActivateBid      = "activate_bid"
)

// AuctionEntryPoints returns the entry-point table of the validator-auction
// contract.
func AuctionEntryPoints() gstate.EntryPoints {
	return gstate.NewEntryPoints(
		gstate.NewEntryPoint(
			MethodGetEraValidators,
			nil,
			gstate.CLTypeUnit,
			gstate.AccessPublic,
			gstate.EntryPointTypeContract,
		),
		gstate.NewEntryPoint(
			MethodAddBid,
			[]gstate.Parameter{
				gstate.NewParameter("public_key", gstate.CLTypePublicKey),
				gstate.NewParameter("delegation_rate", gstate.CLTypeU64),
				gstate.NewParameter("amount", gstate.CLTypeU512),
			},
			gstate.CLTypeU512,
			gstate.AccessPublic,
			gstate.EntryPointTypeContract,
		),
		gstate.NewEntryPoint(
			MethodWithdrawBid,
			[]gstate.Parameter{
				gstate.NewParameter("public_key", gstate.CLTypePublicKey),
				gstate.NewParameter("amount", gstate.CLTypeU512),
			},
			gstate.CLTypeU512,
			gstate.AccessPublic,
			gstate.EntryPointTypeContract,
		),
		gstate.NewEntryPoint(
			MethodDelegate,
			[]gstate.Parameter{
				gstate.NewParameter("delegator", gstate.CLTypePublicKey),
				gstate.NewParameter("validator", gstate.CLTypePublicKey),
				gstate.NewParameter("amount", gstate.CLTypeU512),
			},
			gstate.CLTypeU512,
			gstate.AccessPublic,
			gstate.EntryPointTypeContract,
		),
		gstate.NewEntryPoint(
			MethodUndelegate,
			[]gstate.Parameter{
				gstate.NewParameter("delegator", gstate.CLTypePublicKey),
				gstate.NewParameter("validator", gstate.CLTypePublicKey),
				gstate.NewParameter("amount", gstate.CLTypeU512),
			},
			gstate.CLTypeU512,
			gstate.AccessPublic,
			gstate.EntryPointTypeContract,
		),
		gstate.NewEntryPoint(
			MethodRunAuction,
			[]gstate.Parameter{
				gstate.NewParameter("era_end_timestamp_millis", gstate.CLTypeU64),
			},
			gstate.CLTypeUnit,
			gstate.AccessPublic,
			gstate.EntryPointTypeContract,
		),
		gstate.NewEntryPoint(
			MethodSlash,
			nil,
			gstate.CLTypeUnit,
			gstate.AccessPublic,
			gstate.EntryPointTypeContract,
		),
		gstate.NewEntryPoint(
			MethodDistribute,
			[]gstate.Parameter{
				gstate.NewParameter("reward_factors", gstate.CLTypeU64),
			},
			gstate.CLTypeUnit,
			gstate.AccessPublic,
			gstate.EntryPointTypeContract,
		),
		gstate.NewEntryPoint(
			MethodReadEraID,
			nil,
			gstate.CLTypeU64,
			gstate.AccessPublic,
			gstate.EntryPointTypeContract,
		),
		gstate.NewEntryPoint(
			MethodActivateBid,
			[]gstate.Parameter{
				gstate.NewParameter("validator_public_key", gstate.CLTypePublicKey),
			},
			gstate.CLTypeUnit,
			gstate.AccessPublic,
			gstate.EntryPointTypeContract,
		),
	)
}
