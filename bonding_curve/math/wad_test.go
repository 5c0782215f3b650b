package math

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	bc "github.com/launchlab/launchcurve-go/bonding_curve/shared"
)

func wad(v int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(v), bc.Wad)
}

func TestMulWad(t *testing.T) {
	tests := []struct {
		name string
		a, b *big.Int
		want *big.Int
	}{
		{"two times three", wad(2), wad(3), wad(6)},
		{"identity", wad(7), bc.Wad, wad(7)},
		{"truncates toward zero", big.NewInt(1), big.NewInt(1), big.NewInt(0)},
		{"zero", big.NewInt(0), wad(5), big.NewInt(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MulWad(tt.a, tt.b)
			require.NoError(t, err)
			require.Equal(t, 0, tt.want.Cmp(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestMulWadOverflow(t *testing.T) {
	_, err := MulWad(bc.U256Max, bc.U256Max)
	require.ErrorIs(t, err, bc.ErrOverflow)
}

func TestDivWad(t *testing.T) {
	got, err := DivWad(wad(1), wad(3))
	require.NoError(t, err)
	want, _ := new(big.Int).SetString("333333333333333333", 10)
	require.Equal(t, 0, want.Cmp(got))

	_, err = DivWad(wad(1), big.NewInt(0))
	require.ErrorIs(t, err, bc.ErrDivisionByZero)
}

func TestMulDivRounding(t *testing.T) {
	x, y, d := big.NewInt(10), big.NewInt(10), big.NewInt(3)

	down, err := MulDiv(x, y, d, bc.RoundingDown)
	require.NoError(t, err)
	require.EqualValues(t, 33, down.Int64())

	up, err := MulDiv(x, y, d, bc.RoundingUp)
	require.NoError(t, err)
	require.EqualValues(t, 34, up.Int64())

	// Exact division rounds the same both ways.
	exactUp, err := MulDiv(big.NewInt(9), big.NewInt(4), big.NewInt(6), bc.RoundingUp)
	require.NoError(t, err)
	exactDown, err := MulDiv(big.NewInt(9), big.NewInt(4), big.NewInt(6), bc.RoundingDown)
	require.NoError(t, err)
	require.Equal(t, 0, exactUp.Cmp(exactDown))

	_, err = MulDiv(x, y, big.NewInt(0), bc.RoundingUp)
	require.ErrorIs(t, err, bc.ErrDivisionByZero)
}

func TestSub(t *testing.T) {
	got, err := Sub(big.NewInt(5), big.NewInt(3))
	require.NoError(t, err)
	require.EqualValues(t, 2, got.Int64())

	_, err = Sub(big.NewInt(3), big.NewInt(5))
	require.ErrorIs(t, err, bc.ErrOverflow)
}

func TestMinBig(t *testing.T) {
	a, b := big.NewInt(3), big.NewInt(5)
	require.Equal(t, a, MinBig(a, b))
	require.Equal(t, a, MinBig(b, a))
	require.Equal(t, a, MinBig(a, a))
}
