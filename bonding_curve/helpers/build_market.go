package helpers

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	bondingcurve "github.com/launchlab/launchcurve-go/bonding_curve"
	curvemath "github.com/launchlab/launchcurve-go/bonding_curve/math"
	"github.com/launchlab/launchcurve-go/bonding_curve/shared"
)

// BuildMarketParams describes a market in human-readable units: whole
// tokens and whole quote-currency units rather than wad integers.
type BuildMarketParams struct {
	TotalTokenSupply        float64
	PercentageSupplyOnCurve float64
	DesiredRaise            float64

	// Zero values fall back to the protocol defaults.
	TotalFeeBps int64
	FeeSplit    shared.FeeSplit
}

// BuildMarketConfig converts params to a validated wad MarketConfig and
// proves the curve is solvable by running the coefficient solver once.
func BuildMarketConfig(params BuildMarketParams) (shared.MarketConfig, error) {
	if params.TotalTokenSupply <= 0 {
		return shared.MarketConfig{}, fmt.Errorf("total token supply: %w", shared.ErrCurveConfiguration)
	}
	if params.PercentageSupplyOnCurve <= 0 || params.PercentageSupplyOnCurve > 100 {
		return shared.MarketConfig{}, fmt.Errorf("percentage supply on curve: %w", shared.ErrCurveConfiguration)
	}
	if params.DesiredRaise <= 0 {
		return shared.MarketConfig{}, fmt.Errorf("desired raise: %w", shared.ErrCurveConfiguration)
	}

	totalSupply := wadFromFloat(params.TotalTokenSupply)
	percentage := decimal.NewFromFloat(params.PercentageSupplyOnCurve)
	allocated := decimal.NewFromBigInt(totalSupply, 0).
		Mul(percentage).
		Div(decimal.NewFromInt(100)).
		Truncate(0).BigInt()
	secondary := new(big.Int).Sub(totalSupply, allocated)

	cfg := shared.MarketConfig{
		AllocatedSupply:     allocated,
		DesiredRaise:        wadFromFloat(params.DesiredRaise),
		SecondaryAllocation: secondary,
		TotalFeeBps:         params.TotalFeeBps,
		FeeSplit:            params.FeeSplit,
		MinOrderSize:        new(big.Int).Set(shared.MinOrderSize),
	}
	if cfg.TotalFeeBps == 0 {
		cfg.TotalFeeBps = shared.TotalFeeBps
	}
	if cfg.FeeSplit == (shared.FeeSplit{}) {
		cfg.FeeSplit = shared.DefaultFeeSplit
	}
	if err := cfg.Validate(); err != nil {
		return shared.MarketConfig{}, err
	}
	if _, err := bondingcurve.CurveCoefficient(cfg.AllocatedSupply, cfg.DesiredRaise); err != nil {
		return shared.MarketConfig{}, err
	}
	return cfg, nil
}

// SpotPrice returns the instantaneous curve price A*e^(B*supply) at the
// given supply as a decimal in whole quote units per whole token.
func SpotPrice(cfg shared.MarketConfig, supply *big.Int) (decimal.Decimal, error) {
	a, err := bondingcurve.CurveCoefficient(cfg.AllocatedSupply, cfg.DesiredRaise)
	if err != nil {
		return decimal.Zero, err
	}
	bx, err := curvemath.MulWad(shared.CurveB, supply)
	if err != nil {
		return decimal.Zero, err
	}
	e, err := curvemath.ExpWad(bx)
	if err != nil {
		return decimal.Zero, err
	}
	price, err := curvemath.MulWad(a, e)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromBigInt(price, -shared.WadDecimals), nil
}

// GraduationPrice is the spot price at the moment the curve sells out.
func GraduationPrice(cfg shared.MarketConfig) (decimal.Decimal, error) {
	return SpotPrice(cfg, cfg.AllocatedSupply)
}

func wadFromFloat(v float64) *big.Int {
	return decimal.NewFromFloat(v).
		Mul(decimal.New(1, shared.WadDecimals)).
		Truncate(0).BigInt()
}
