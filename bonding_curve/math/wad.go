package math

import (
	"math/big"

	bc "github.com/launchlab/launchcurve-go/bonding_curve/shared"
)

// All amounts are unsigned 256-bit integers scaled by 1e18. Intermediates
// may use arbitrary precision; results must fit 256 bits.

func checkU256(v *big.Int) (*big.Int, error) {
	if v.BitLen() > 256 {
		return nil, bc.ErrOverflow
	}
	return v, nil
}

// MulWad returns a*b/1e18, truncated.
func MulWad(a, b *big.Int) (*big.Int, error) {
	prod := new(big.Int).Mul(a, b)
	return checkU256(prod.Quo(prod, bc.Wad))
}

// DivWad returns a*1e18/b, truncated.
func DivWad(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, bc.ErrDivisionByZero
	}
	num := new(big.Int).Mul(a, bc.Wad)
	return checkU256(num.Quo(num, b))
}

// MulDiv returns x*y/denominator with full intermediate precision and the
// requested rounding direction.
func MulDiv(x, y, denominator *big.Int, rounding bc.Rounding) (*big.Int, error) {
	if denominator.Sign() == 0 {
		return nil, bc.ErrDivisionByZero
	}
	prod := new(big.Int).Mul(x, y)
	if rounding == bc.RoundingUp {
		prod.Add(prod, new(big.Int).Sub(denominator, big.NewInt(1)))
	}
	return checkU256(prod.Quo(prod, denominator))
}

func Sub(a, b *big.Int) (*big.Int, error) {
	if b.Cmp(a) > 0 {
		return nil, bc.ErrOverflow
	}
	return new(big.Int).Sub(a, b), nil
}

func MinBig(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}
