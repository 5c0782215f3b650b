package bonding_curve

import (
	"math/big"

	curvemath "github.com/launchlab/launchcurve-go/bonding_curve/math"
	bc "github.com/launchlab/launchcurve-go/bonding_curve/shared"
)

// The four quote operations are analytic inversions of the curve
// y = (A/B)(e^(Bx) - 1). Truncation always favors the protocol: token
// amounts a buyer receives round down, token amounts a seller must burn
// round up, buy costs round up, sell payouts round down.

// EthBuyQuote returns the tokens received for ethIn of quote currency.
func EthBuyQuote(currentSupply, allocatedSupply, ethIn, desiredRaise *big.Int) (*big.Int, error) {
	if currentSupply.Cmp(allocatedSupply) >= 0 {
		return nil, bc.ErrSupplyExceeded
	}
	if ethIn.Sign() <= 0 {
		return nil, bc.ErrInvalidOrderSize
	}
	a, err := CurveCoefficient(allocatedSupply, desiredRaise)
	if err != nil {
		return nil, err
	}
	return ethBuyQuote(a, bc.CurveB, currentSupply, ethIn)
}

// TokenBuyQuote returns the quote currency needed to buy exactly tokensIn.
func TokenBuyQuote(currentSupply, allocatedSupply, tokensIn, desiredRaise *big.Int) (*big.Int, error) {
	if tokensIn.Sign() <= 0 {
		return nil, bc.ErrInvalidOrderSize
	}
	newSupply := new(big.Int).Add(currentSupply, tokensIn)
	if newSupply.Cmp(allocatedSupply) > 0 {
		return nil, bc.ErrSupplyExceeded
	}
	a, err := CurveCoefficient(allocatedSupply, desiredRaise)
	if err != nil {
		return nil, err
	}
	return tokenBuyQuote(a, bc.CurveB, currentSupply, tokensIn)
}

// EthSellQuote returns the tokens that must be sold to raise ethWanted.
func EthSellQuote(currentSupply, allocatedSupply, ethWanted, desiredRaise *big.Int) (*big.Int, error) {
	if ethWanted.Sign() <= 0 {
		return nil, bc.ErrInvalidOrderSize
	}
	a, err := CurveCoefficient(allocatedSupply, desiredRaise)
	if err != nil {
		return nil, err
	}
	return ethSellQuote(a, bc.CurveB, currentSupply, ethWanted)
}

// TokenSellQuote returns the quote-currency payout for selling tokensIn.
func TokenSellQuote(currentSupply, allocatedSupply, tokensIn, desiredRaise *big.Int) (*big.Int, error) {
	if tokensIn.Sign() <= 0 {
		return nil, bc.ErrInvalidOrderSize
	}
	if tokensIn.Cmp(currentSupply) > 0 {
		return nil, bc.ErrInsufficientLiquidity
	}
	a, err := CurveCoefficient(allocatedSupply, desiredRaise)
	if err != nil {
		return nil, err
	}
	return tokenSellQuote(a, bc.CurveB, currentSupply, tokensIn)
}

// Shared cores, parameterized on the coefficient so the legacy fixed-A
// curve prices through the same paths.

func ethBuyQuote(a, b, x0, ethIn *big.Int) (*big.Int, error) {
	exp0, err := expAtSupply(b, x0)
	if err != nil {
		return nil, err
	}
	// Solve e^(B*x1) = e^(B*x0) + ethIn*B/A.
	delta, err := curvemath.MulDiv(ethIn, b, a, bc.RoundingDown)
	if err != nil {
		return nil, err
	}
	exp1 := new(big.Int).Add(exp0, delta)
	ln1, err := curvemath.LnWad(exp1)
	if err != nil {
		return nil, err
	}
	x1, err := curvemath.DivWad(ln1, b)
	if err != nil {
		return nil, err
	}
	if x1.Cmp(x0) <= 0 {
		return big.NewInt(0), nil
	}
	return new(big.Int).Sub(x1, x0), nil
}

func tokenBuyQuote(a, b, x0, tokensIn *big.Int) (*big.Int, error) {
	exp0, err := expAtSupply(b, x0)
	if err != nil {
		return nil, err
	}
	exp1, err := expAtSupply(b, new(big.Int).Add(x0, tokensIn))
	if err != nil {
		return nil, err
	}
	diff := new(big.Int).Sub(exp1, exp0)
	return curvemath.MulDiv(a, diff, b, bc.RoundingUp)
}

func ethSellQuote(a, b, x0, ethWanted *big.Int) (*big.Int, error) {
	exp0, err := expAtSupply(b, x0)
	if err != nil {
		return nil, err
	}
	delta, err := curvemath.MulDiv(ethWanted, b, a, bc.RoundingUp)
	if err != nil {
		return nil, err
	}
	exp1 := new(big.Int).Sub(exp0, delta)
	// The curve is undefined left of x = 0.
	if exp1.Cmp(bc.Wad) < 0 {
		return nil, bc.ErrInsufficientLiquidity
	}
	ln1, err := curvemath.LnWad(exp1)
	if err != nil {
		return nil, err
	}
	x1, err := curvemath.DivWad(ln1, b)
	if err != nil {
		return nil, err
	}
	if x1.Cmp(x0) >= 0 {
		return big.NewInt(0), nil
	}
	return new(big.Int).Sub(x0, x1), nil
}

func tokenSellQuote(a, b, x0, tokensIn *big.Int) (*big.Int, error) {
	exp0, err := expAtSupply(b, x0)
	if err != nil {
		return nil, err
	}
	exp1, err := expAtSupply(b, new(big.Int).Sub(x0, tokensIn))
	if err != nil {
		return nil, err
	}
	diff := new(big.Int).Sub(exp0, exp1)
	return curvemath.MulDiv(a, diff, b, bc.RoundingDown)
}

func expAtSupply(b, supply *big.Int) (*big.Int, error) {
	bx, err := curvemath.MulWad(b, supply)
	if err != nil {
		return nil, err
	}
	return curvemath.ExpWad(bx)
}
