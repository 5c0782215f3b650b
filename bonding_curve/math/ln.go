package math

import (
	"math/big"

	bc "github.com/launchlab/launchcurve-go/bonding_curve/shared"
)

// Newton steps for ln(m) with m in [1, 2). The error halves quadratically
// from at most ln2/2, so five steps land below one wad ulp.
const lnNewtonSteps = 5

var ln2Wad = mustBig("693147180559945309")

// LnWad returns ln(x) for a wad input x > 0 as a signed wad.
//
// x is normalized to m*2^s with m in [1e18, 2e18); ln(m) is found by Newton
// iteration through ExpWad (z <- z + m*e^-z - 1). The s*ln2 term is
// accumulated at the same 1e27 guard scale ExpWad uses and truncated once,
// so the error stays below one wad ulp regardless of |s|. Normalization
// keeps the Newton iterate near ln(m) < ln2; an early step may overshoot
// slightly, which ExpWad absorbs.
func LnWad(x *big.Int) (*big.Int, error) {
	if x.Sign() <= 0 {
		return nil, bc.ErrInvalidInput
	}

	shift := x.BitLen() - bc.Wad.BitLen()
	m := new(big.Int)
	if shift >= 0 {
		m.Rsh(x, uint(shift))
	} else {
		m.Lsh(x, uint(-shift))
	}
	if m.Cmp(bc.Wad) < 0 {
		// BitLen puts m within a factor of two of wad; line it up so
		// that m/1e18 lies in [1, 2).
		m.Lsh(m, 1)
		shift--
	}

	z := new(big.Int).Rsh(ln2Wad, 1)
	for i := 0; i < lnNewtonSteps; i++ {
		expZ, err := ExpWad(z)
		if err != nil {
			return nil, err
		}
		q := new(big.Int).Mul(m, bc.Wad)
		q.Quo(q, expZ)
		z.Add(z, q)
		z.Sub(z, bc.Wad)
	}

	// ln2 truncated to wad loses ~0.42 wei per shift step, which adds up
	// over wide inputs; carry the shift term at guard scale instead.
	z27 := new(big.Int).Mul(z, big.NewInt(expGuardScale))
	z27.Add(z27, new(big.Int).Mul(big.NewInt(int64(shift)), ln2e27))
	return z27.Quo(z27, big.NewInt(expGuardScale)), nil
}
