package math

import (
	"math/big"

	bc "github.com/launchlab/launchcurve-go/bonding_curve/shared"
)

const (
	// Taylor terms for e^r with |r| <= ln2/2. Term 20 is already below
	// the internal scale; the loop breaks early on a zero term.
	expTaylorTerms = 32

	// Guard digits: e^r is evaluated at 1e27 and truncated to wad at the
	// end, so series truncation stays below one wad ulp.
	expGuardScale = 1_000_000_000
)

var (
	// e^x = 0 at wad precision below this input; at or above the upper
	// bound the result no longer fits an unsigned 256-bit wad.
	expWadFloor   = mustBig("-42139678854452767551")
	expWadCeiling = mustBig("135305999368893231589")

	one27  = new(big.Int).Mul(bc.Wad, big.NewInt(expGuardScale))
	ln2e27 = mustBig("693147180559945309417232121")
)

func mustBig(v string) *big.Int {
	out, ok := new(big.Int).SetString(v, 10)
	if !ok {
		panic("invalid big integer literal")
	}
	return out
}

// ExpWad returns e^x for a signed wad input as an unsigned wad.
//
// The input is reduced to x = k*ln2 + r with |r| <= ln2/2, e^r is summed as
// a Taylor series on integers at 1e27 scale, and the result is shifted by k
// binary digits. Integer-only, so results are identical on every platform.
func ExpWad(x *big.Int) (*big.Int, error) {
	if x.Cmp(expWadFloor) <= 0 {
		return big.NewInt(0), nil
	}
	if x.Cmp(expWadCeiling) >= 0 {
		return nil, bc.ErrOverflow
	}

	// k = round(x / ln2), r = x - k*ln2.
	x27 := new(big.Int).Mul(x, big.NewInt(expGuardScale))
	k := new(big.Int).Add(x27, new(big.Int).Rsh(ln2e27, 1))
	k.Div(k, ln2e27)
	r := new(big.Int).Sub(x27, new(big.Int).Mul(k, ln2e27))

	sum := new(big.Int).Set(one27)
	term := new(big.Int).Set(one27)
	for i := int64(1); i <= expTaylorTerms; i++ {
		term.Mul(term, r)
		term.Quo(term, one27)
		term.Quo(term, big.NewInt(i))
		if term.Sign() == 0 {
			break
		}
		sum.Add(sum, term)
	}

	shift := k.Int64()
	if shift >= 0 {
		sum.Lsh(sum, uint(shift))
	} else {
		sum.Rsh(sum, uint(-shift))
	}
	return checkU256(sum.Quo(sum, big.NewInt(expGuardScale)))
}
