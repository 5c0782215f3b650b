package math

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	bc "github.com/launchlab/launchcurve-go/bonding_curve/shared"
)

// requireClose asserts |got - want| <= tolerance wei.
func requireClose(t *testing.T, want, got *big.Int, tolerance int64) {
	t.Helper()
	diff := new(big.Int).Sub(want, got)
	diff.Abs(diff)
	require.LessOrEqual(t, diff.Int64(), tolerance, "want %s got %s (diff %s)", want, got, diff)
}

func TestExpWadKnownValues(t *testing.T) {
	tests := []struct {
		name      string
		x         *big.Int
		want      *big.Int
		tolerance int64
	}{
		{"e^0", big.NewInt(0), mustBig("1000000000000000000"), 0},
		{"e^1", mustBig("1000000000000000000"), mustBig("2718281828459045235"), 2},
		{"e^ln2", mustBig("693147180559945309"), mustBig("2000000000000000000"), 3},
		{"e^-1", mustBig("-1000000000000000000"), mustBig("367879441171442321"), 2},
		{"e^10", mustBig("10000000000000000000"), mustBig("22026465794806716516958"), 50},
		{"e^-10", mustBig("-10000000000000000000"), mustBig("45399929762484"), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpWad(tt.x)
			require.NoError(t, err)
			requireClose(t, tt.want, got, tt.tolerance)
		})
	}
}

func TestExpWadUnderflowsToZero(t *testing.T) {
	for _, x := range []*big.Int{
		mustBig("-42139678854452767551"),
		mustBig("-50000000000000000000"),
		mustBig("-1000000000000000000000"),
	} {
		got, err := ExpWad(x)
		require.NoError(t, err)
		require.Equal(t, 0, got.Sign())
	}
}

func TestExpWadOverflow(t *testing.T) {
	_, err := ExpWad(mustBig("135305999368893231589"))
	require.ErrorIs(t, err, bc.ErrOverflow)

	// One below the ceiling still evaluates.
	got, err := ExpWad(mustBig("135305999368893231588"))
	require.NoError(t, err)
	require.Positive(t, got.Sign())
}

func TestExpWadMonotonic(t *testing.T) {
	inputs := []*big.Int{
		mustBig("-42139678854452767550"),
		mustBig("-10000000000000000000"),
		mustBig("-1000000000000000000"),
		big.NewInt(0),
		mustBig("346573590279972654"),
		mustBig("1000000000000000000"),
		mustBig("3503761429600000000"),
		mustBig("50000000000000000000"),
		mustBig("135000000000000000000"),
	}
	prev, err := ExpWad(inputs[0])
	require.NoError(t, err)
	for _, x := range inputs[1:] {
		cur, err := ExpWad(x)
		require.NoError(t, err)
		require.Equal(t, 1, cur.Cmp(prev), "e^%s should exceed e^(previous)", x)
		prev = cur
	}
}

func TestExpWadDeterministic(t *testing.T) {
	x := mustBig("3503761429600000000")
	first, err := ExpWad(x)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := ExpWad(x)
		require.NoError(t, err)
		require.Equal(t, 0, first.Cmp(again))
	}
}
