package system

import "github.com/meridian-chain/meridian-go/model/gstate"

// MethodPay is the single entry point of the payment contract.
const MethodPay = "pay"

// StandardPaymentEntryPoints returns the entry-point table of the payment
// contract.
func StandardPaymentEntryPoints() gstate.EntryPoints {
	return gstate.NewEntryPoints(
		gstate.NewEntryPoint(
			MethodPay,
			[]gstate.Parameter{
				gstate.NewParameter("amount", gstate.CLTypeU512),
			},
			gstate.CLTypeUnit,
			gstate.AccessPublic,
			gstate.EntryPointTypeSession,
		),
	)
}
