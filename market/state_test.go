package market

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	bc "github.com/launchlab/launchcurve-go/bonding_curve/shared"
)

func TestU128FromBig(t *testing.T) {
	tests := []struct {
		name   string
		v      *big.Int
		lo, hi uint64
	}{
		{"zero", big.NewInt(0), 0, 0},
		{"low word only", big.NewInt(42), 42, 0},
		{"max low word", new(big.Int).SetUint64(^uint64(0)), ^uint64(0), 0},
		{"crosses the word boundary", new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(5)), 5, 1},
		{"default primary supply", new(big.Int).Set(bc.PrimaryMarketSupply), 0xe640669720000000, 0x295be96},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := u128FromBig(tt.v)
			require.NoError(t, err)
			require.Equal(t, tt.lo, got.Lo)
			require.Equal(t, tt.hi, got.Hi)
			require.Equal(t, 0, tt.v.Cmp(got.BigInt()))
		})
	}
}

func TestU128FromBigRejectsOutOfRange(t *testing.T) {
	_, err := u128FromBig(new(big.Int).Lsh(big.NewInt(1), 128))
	require.ErrorIs(t, err, bc.ErrOverflow)

	_, err = u128FromBig(big.NewInt(-1))
	require.ErrorIs(t, err, bc.ErrOverflow)
}
