package bonding_curve

import (
	"math/big"

	curvemath "github.com/launchlab/launchcurve-go/bonding_curve/math"
	bc "github.com/launchlab/launchcurve-go/bonding_curve/shared"
)

// CurveCoefficient solves for the curve coefficient A such that integrating
// y = (A/B)(e^(Bx) - 1) from 0 to allocatedSupply raises exactly
// desiredRaise:
//
//	A = desiredRaise * B / (e^(B*allocatedSupply) - 1)
//
// Pure in its two inputs; callers recompute it on every quote so that A can
// never drift against mutable market state.
func CurveCoefficient(allocatedSupply, desiredRaise *big.Int) (*big.Int, error) {
	if allocatedSupply.Sign() <= 0 || desiredRaise.Sign() < 0 {
		return nil, bc.ErrCurveConfiguration
	}
	bx, err := curvemath.MulWad(bc.CurveB, allocatedSupply)
	if err != nil {
		return nil, err
	}
	expBx, err := curvemath.ExpWad(bx)
	if err != nil {
		return nil, err
	}
	// A flatter curve cannot be inverted safely.
	if expBx.Cmp(bc.Wad) <= 0 {
		return nil, bc.ErrCurveConfiguration
	}
	denom := new(big.Int).Sub(expBx, bc.Wad)
	a, err := curvemath.MulDiv(desiredRaise, bc.CurveB, denom, bc.RoundingDown)
	if err != nil {
		return nil, err
	}
	if a.Sign() == 0 {
		return nil, bc.ErrCurveConfiguration
	}
	return a, nil
}
