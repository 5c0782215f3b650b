package shared

import "math/big"

const (
	// WadDecimals is the fixed-point scale used for every amount in the
	// protocol: token supplies, quote currency, and curve coefficients.
	WadDecimals = 18

	MaxBasisPoint = 10_000

	// TotalFeeBps is charged on the quote-currency side of every order.
	TotalFeeBps = 100

	CreatorFeeBps       = 5000
	PlatformFeeBps      = 1000
	OrderReferrerFeeBps = 1500
	ProtocolFeeBps      = 2500
)

type Phase uint8

const (
	PhaseBondingCurve Phase = 0
	PhaseGraduated    Phase = 1
)

func (p Phase) String() string {
	switch p {
	case PhaseBondingCurve:
		return "bonding_curve"
	case PhaseGraduated:
		return "graduated"
	}
	return "unknown"
}

type Rounding uint8

const (
	RoundingUp   Rounding = 0
	RoundingDown Rounding = 1
)

type OrderDirection uint8

const (
	OrderBuy  OrderDirection = 0
	OrderSell OrderDirection = 1
)

var (
	Wad = bigIntFromString("1000000000000000000")

	U256Max = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	// CurveB is the protocol-wide exponential rate constant, wad scaled.
	CurveB = bigIntFromString("4379701787")

	// LegacyCurveA is the fixed coefficient of first-generation markets,
	// which had no per-market raise target.
	LegacyCurveA = bigIntFromString("1060848709")

	// MinOrderSize is the dust floor for order inputs and sell payouts,
	// 0.0000001 units of quote currency.
	MinOrderSize = bigIntFromString("100000000000")

	// PrimaryMarketSupply is the default token allocation sold along the
	// curve; SecondaryMarketSupply is minted into the external pool at
	// graduation. Together they are MaxTotalSupply.
	PrimaryMarketSupply   = bigIntFromString("800000000000000000000000000")
	SecondaryMarketSupply = bigIntFromString("200000000000000000000000000")
	MaxTotalSupply        = bigIntFromString("1000000000000000000000000000")
)

func bigIntFromString(v string) *big.Int {
	out, ok := new(big.Int).SetString(v, 10)
	if !ok {
		panic("invalid big integer literal")
	}
	return out
}

// BuyResult is the full outcome of a bonding-curve buy order.
type BuyResult struct {
	TokensOut *big.Int
	Cost      *big.Int
	Fee       *big.Int
	Refund    *big.Int
	Graduates bool
}

// SellResult is the outcome of a bonding-curve sell order. Payout is the
// gross curve payout; the recipient receives Payout - Fee.
type SellResult struct {
	Payout *big.Int
	Fee    *big.Int
}

// QuoteResult is a read-only order preview with a slippage-adjusted bound.
type QuoteResult struct {
	AmountOut        *big.Int
	Fee              *big.Int
	MinimumAmountOut *big.Int
}

// FeeBreakdown splits a single fee amount across the four stakeholders.
// Creator, platform and order-referrer shares round down; the protocol
// share is the remainder and absorbs rounding dust.
type FeeBreakdown struct {
	Creator       *big.Int
	Platform      *big.Int
	OrderReferrer *big.Int
	Protocol      *big.Int
}

// Total returns the exact sum of the four shares.
func (f FeeBreakdown) Total() *big.Int {
	total := new(big.Int).Add(f.Creator, f.Platform)
	total.Add(total, f.OrderReferrer)
	return total.Add(total, f.Protocol)
}

// FeeSplit is a basis-point split configuration. The four rates must sum
// to at most MaxBasisPoint.
type FeeSplit struct {
	CreatorBps       int64
	PlatformBps      int64
	OrderReferrerBps int64
	ProtocolBps      int64
}

func (s FeeSplit) TotalBps() int64 {
	return s.CreatorBps + s.PlatformBps + s.OrderReferrerBps + s.ProtocolBps
}

// DefaultFeeSplit mirrors the protocol deployment values.
var DefaultFeeSplit = FeeSplit{
	CreatorBps:       CreatorFeeBps,
	PlatformBps:      PlatformFeeBps,
	OrderReferrerBps: OrderReferrerFeeBps,
	ProtocolBps:      ProtocolFeeBps,
}
