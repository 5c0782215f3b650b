package helpers

import (
	"fmt"
	"math/big"

	"github.com/tidwall/gjson"

	"github.com/launchlab/launchcurve-go/bonding_curve/shared"
)

// ParseMarketConfig reads a market config from JSON. Wad amounts are
// decimal strings so that callers never route 18-decimal integers through
// floats:
//
//	{
//	  "allocated_supply": "800000000000000000000000000",
//	  "desired_raise": "1000000000000000000",
//	  "secondary_allocation": "200000000000000000000000000",
//	  "total_fee_bps": 100,
//	  "fee_split": {"creator_bps": 5000, "platform_bps": 1000,
//	                "order_referrer_bps": 1500, "protocol_bps": 2500}
//	}
//
// Missing optional fields fall back to protocol defaults.
func ParseMarketConfig(data []byte) (shared.MarketConfig, error) {
	if !gjson.ValidBytes(data) {
		return shared.MarketConfig{}, fmt.Errorf("market config is not valid json")
	}
	root := gjson.ParseBytes(data)

	raise, err := wadField(root, "desired_raise", nil)
	if err != nil {
		return shared.MarketConfig{}, err
	}
	if raise == nil {
		return shared.MarketConfig{}, fmt.Errorf("desired_raise is required")
	}
	cfg := shared.DefaultMarketConfig(raise)

	if v, err := wadField(root, "allocated_supply", cfg.AllocatedSupply); err != nil {
		return shared.MarketConfig{}, err
	} else {
		cfg.AllocatedSupply = v
	}
	if v, err := wadField(root, "secondary_allocation", cfg.SecondaryAllocation); err != nil {
		return shared.MarketConfig{}, err
	} else {
		cfg.SecondaryAllocation = v
	}
	if v, err := wadField(root, "min_order_size", cfg.MinOrderSize); err != nil {
		return shared.MarketConfig{}, err
	} else {
		cfg.MinOrderSize = v
	}
	if v := root.Get("total_fee_bps"); v.Exists() {
		cfg.TotalFeeBps = v.Int()
	}
	if split := root.Get("fee_split"); split.Exists() {
		cfg.FeeSplit = shared.FeeSplit{
			CreatorBps:       split.Get("creator_bps").Int(),
			PlatformBps:      split.Get("platform_bps").Int(),
			OrderReferrerBps: split.Get("order_referrer_bps").Int(),
			ProtocolBps:      split.Get("protocol_bps").Int(),
		}
	}

	if err := cfg.Validate(); err != nil {
		return shared.MarketConfig{}, err
	}
	return cfg, nil
}

func wadField(root gjson.Result, key string, fallback *big.Int) (*big.Int, error) {
	v := root.Get(key)
	if !v.Exists() {
		return fallback, nil
	}
	out, ok := new(big.Int).SetString(v.String(), 10)
	if !ok || out.Sign() < 0 {
		return nil, fmt.Errorf("%s: invalid wad amount %q", key, v.String())
	}
	return out, nil
}
