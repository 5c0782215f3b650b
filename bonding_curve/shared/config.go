package shared

import "math/big"

// MarketConfig is immutable per market instance once the market is created.
// The curve coefficient A is derived from AllocatedSupply and DesiredRaise
// on every quote, never stored here.
type MarketConfig struct {
	// AllocatedSupply is the token ceiling sold along the curve, wad.
	AllocatedSupply *big.Int
	// DesiredRaise is the quote currency collected when the curve sells
	// out, wad.
	DesiredRaise *big.Int
	// SecondaryAllocation is minted straight into the external pool at
	// graduation, wad.
	SecondaryAllocation *big.Int

	TotalFeeBps  int64
	FeeSplit     FeeSplit
	MinOrderSize *big.Int
}

// DefaultMarketConfig uses the protocol deployment shape: 800M tokens on
// the curve, 200M reserved for the pool, 1% total fee.
func DefaultMarketConfig(desiredRaise *big.Int) MarketConfig {
	return MarketConfig{
		AllocatedSupply:     new(big.Int).Set(PrimaryMarketSupply),
		DesiredRaise:        new(big.Int).Set(desiredRaise),
		SecondaryAllocation: new(big.Int).Set(SecondaryMarketSupply),
		TotalFeeBps:         TotalFeeBps,
		FeeSplit:            DefaultFeeSplit,
		MinOrderSize:        new(big.Int).Set(MinOrderSize),
	}
}

func (c MarketConfig) Validate() error {
	if c.AllocatedSupply == nil || c.AllocatedSupply.Sign() <= 0 {
		return ErrCurveConfiguration
	}
	if c.DesiredRaise == nil || c.DesiredRaise.Sign() <= 0 {
		return ErrCurveConfiguration
	}
	if c.SecondaryAllocation == nil || c.SecondaryAllocation.Sign() < 0 {
		return ErrCurveConfiguration
	}
	if c.MinOrderSize == nil || c.MinOrderSize.Sign() < 0 {
		return ErrCurveConfiguration
	}
	if c.TotalFeeBps < 0 || c.TotalFeeBps > MaxBasisPoint {
		return ErrFeeSplitInvalid
	}
	if s := c.FeeSplit; s.CreatorBps < 0 || s.PlatformBps < 0 || s.OrderReferrerBps < 0 || s.ProtocolBps < 0 || s.TotalBps() > MaxBasisPoint {
		return ErrFeeSplitInvalid
	}
	return nil
}
