package launchcurve

import (
	bondingcurve "github.com/launchlab/launchcurve-go/bonding_curve"
	"github.com/launchlab/launchcurve-go/market"
)

// NewMarket creates a token-launch market priced on the exponential
// bonding curve.
//
// Example:
//
// cfg := shared.DefaultMarketConfig(desiredRaise)
//
// m, _ := NewMarket(cfg, deps, market.WithLogger(log))
//
// m.Buy(ctx, buyer, buyer, "", ethIn, minOut)
var NewMarket = market.NewMarket

// NewLegacyCurve prices against the first-generation curve with the fixed
// coefficient instead of a per-market raise target.
var NewLegacyCurve = bondingcurve.NewLegacyCurve
