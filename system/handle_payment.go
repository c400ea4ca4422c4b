package system

import "github.com/meridian-chain/meridian-go/model/gstate"

// Entry point names of the fee-handling contract.
const (
	MethodGetPaymentPurse = "get_payment_purse"
	MethodSetRefundPurse  = "set_refund_purse"
	MethodGetRefundPurse  = "get_refund_purse"
	MethodFinalizePayment = "finalize_payment"
)

// HandlePaymentEntryPoints returns the entry-point table of the fee-handling
// contract.
func HandlePaymentEntryPoints() gstate.EntryPoints {
	return gstate.NewEntryPoints(
		gstate.NewEntryPoint(
			MethodGetPaymentPurse,
			nil,
			gstate.CLTypeURef,
			gstate.AccessPublic,
			gstate.EntryPointTypeContract,
		),
		gstate.NewEntryPoint(
			MethodSetRefundPurse,
			[]gstate.Parameter{
				gstate.NewParameter("purse", gstate.CLTypeURef),
			},
			gstate.CLTypeUnit,
			gstate.AccessPublic,
			gstate.EntryPointTypeContract,
		),
		gstate.NewEntryPoint(
			MethodGetRefundPurse,
			nil,
			gstate.CLTypeURef,
			gstate.AccessPublic,
			gstate.EntryPointTypeContract,
		),
		gstate.NewEntryPoint(
			MethodFinalizePayment,
			[]gstate.Parameter{
				gstate.NewParameter("amount_spent", gstate.CLTypeU512),
				gstate.NewParameter("account", gstate.CLTypeKey),
			},
			gstate.CLTypeUnit,
			gstate.AccessPublic,
			gstate.EntryPointTypeContract,
		),
	)
}
