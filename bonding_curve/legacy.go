package bonding_curve

import (
	"math/big"

	bc "github.com/launchlab/launchcurve-go/bonding_curve/shared"
)

// LegacyCurve prices first-generation markets, which shipped with fixed
// coefficients instead of a per-market raise target. Same curve shape,
// same rounding policy.
type LegacyCurve struct {
	A *big.Int
	B *big.Int
}

func NewLegacyCurve() LegacyCurve {
	return LegacyCurve{A: bc.LegacyCurveA, B: bc.CurveB}
}

func (c LegacyCurve) EthBuyQuote(currentSupply, ethIn *big.Int) (*big.Int, error) {
	if ethIn.Sign() <= 0 {
		return nil, bc.ErrInvalidOrderSize
	}
	return ethBuyQuote(c.A, c.B, currentSupply, ethIn)
}

func (c LegacyCurve) TokenBuyQuote(currentSupply, tokensIn *big.Int) (*big.Int, error) {
	if tokensIn.Sign() <= 0 {
		return nil, bc.ErrInvalidOrderSize
	}
	return tokenBuyQuote(c.A, c.B, currentSupply, tokensIn)
}

func (c LegacyCurve) EthSellQuote(currentSupply, ethWanted *big.Int) (*big.Int, error) {
	if ethWanted.Sign() <= 0 {
		return nil, bc.ErrInvalidOrderSize
	}
	return ethSellQuote(c.A, c.B, currentSupply, ethWanted)
}

func (c LegacyCurve) TokenSellQuote(currentSupply, tokensIn *big.Int) (*big.Int, error) {
	if tokensIn.Sign() <= 0 {
		return nil, bc.ErrInvalidOrderSize
	}
	if tokensIn.Cmp(currentSupply) > 0 {
		return nil, bc.ErrInsufficientLiquidity
	}
	return tokenSellQuote(c.A, c.B, currentSupply, tokensIn)
}
