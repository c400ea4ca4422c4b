package system

import "github.com/meridian-chain/meridian-go/model/gstate"

// Entry point names of the mint contract.
const (
	MethodMint                = "mint"
	MethodReduceTotalSupply   = "reduce_total_supply"
	MethodCreate              = "create"
	MethodBalance             = "balance"
	MethodTransfer            = "transfer"
	MethodReadBaseRoundReward = "read_base_round_reward"
)

// MintEntryPoints returns the entry-point table of the currency-issuance
// contract.
func MintEntryPoints() gstate.EntryPoints {
	return gstate.NewEntryPoints(
		gstate.NewEntryPoint(
			MethodMint,
			[]gstate.Parameter{
				gstate.NewParameter("amount", gstate.CLTypeU512),
			},
			gstate.CLTypeURef,
			gstate.AccessPublic,
			gstate.EntryPointTypeContract,
		),
		gstate.NewEntryPoint(
			MethodReduceTotalSupply,
			[]gstate.Parameter{
				gstate.NewParameter("amount", gstate.CLTypeU512),
			},
			gstate.CLTypeUnit,
			gstate.AccessPublic,
			gstate.EntryPointTypeContract,
		),
		gstate.NewEntryPoint(
			MethodCreate,
			nil,
			gstate.CLTypeURef,
			gstate.AccessPublic,
			gstate.EntryPointTypeContract,
		),
		gstate.NewEntryPoint(
			MethodBalance,
			[]gstate.Parameter{
				gstate.NewParameter("purse", gstate.CLTypeURef),
			},
			gstate.CLTypeU512,
			gstate.AccessPublic,
			gstate.EntryPointTypeContract,
		),
		gstate.NewEntryPoint(
			MethodTransfer,
			[]gstate.Parameter{
				gstate.NewParameter("source", gstate.CLTypeURef),
				gstate.NewParameter("target", gstate.CLTypeURef),
				gstate.NewParameter("amount", gstate.CLTypeU512),
			},
			gstate.CLTypeUnit,
			gstate.AccessPublic,
			gstate.EntryPointTypeContract,
		),
		gstate.NewEntryPoint(
			MethodReadBaseRoundReward,
			nil,
			gstate.CLTypeU512,
			gstate.AccessPublic,
			gstate.EntryPointTypeContract,
		),
	)
}
