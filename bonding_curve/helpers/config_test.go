package helpers

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/launchlab/launchcurve-go/bonding_curve/shared"
)

func TestParseMarketConfig(t *testing.T) {
	cfg, err := ParseMarketConfig([]byte(`{
		"allocated_supply": "600000000000000000000000000",
		"desired_raise": "2000000000000000000",
		"secondary_allocation": "400000000000000000000000000",
		"min_order_size": "1000000000000",
		"total_fee_bps": 200,
		"fee_split": {
			"creator_bps": 4000,
			"platform_bps": 2000,
			"order_referrer_bps": 1000,
			"protocol_bps": 3000
		}
	}`))
	require.NoError(t, err)

	wantSupply, _ := new(big.Int).SetString("600000000000000000000000000", 10)
	require.Equal(t, 0, cfg.AllocatedSupply.Cmp(wantSupply))
	wantRaise, _ := new(big.Int).SetString("2000000000000000000", 10)
	require.Equal(t, 0, cfg.DesiredRaise.Cmp(wantRaise))
	require.EqualValues(t, 200, cfg.TotalFeeBps)
	require.EqualValues(t, 4000, cfg.FeeSplit.CreatorBps)
	require.EqualValues(t, 3000, cfg.FeeSplit.ProtocolBps)
	wantMin, _ := new(big.Int).SetString("1000000000000", 10)
	require.Equal(t, 0, cfg.MinOrderSize.Cmp(wantMin))
}

func TestParseMarketConfigDefaults(t *testing.T) {
	cfg, err := ParseMarketConfig([]byte(`{"desired_raise": "1000000000000000000"}`))
	require.NoError(t, err)

	require.Equal(t, 0, cfg.AllocatedSupply.Cmp(shared.PrimaryMarketSupply))
	require.Equal(t, 0, cfg.SecondaryAllocation.Cmp(shared.SecondaryMarketSupply))
	require.EqualValues(t, shared.TotalFeeBps, cfg.TotalFeeBps)
	require.Equal(t, shared.DefaultFeeSplit, cfg.FeeSplit)
}

func TestParseMarketConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"not json", `{"desired_raise": `},
		{"missing raise", `{"total_fee_bps": 100}`},
		{"bad wad string", `{"desired_raise": "1.5e18"}`},
		{"negative wad", `{"desired_raise": "-1"}`},
		{"fee split over 10000", `{
			"desired_raise": "1000000000000000000",
			"fee_split": {"creator_bps": 9000, "platform_bps": 2000, "order_referrer_bps": 0, "protocol_bps": 0}
		}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMarketConfig([]byte(tt.json))
			require.Error(t, err)
		})
	}
}
