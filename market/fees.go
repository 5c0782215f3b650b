package market

import (
	"context"
	"math/big"

	curvemath "github.com/launchlab/launchcurve-go/bonding_curve/math"
	bc "github.com/launchlab/launchcurve-go/bonding_curve/shared"
)

// totalFee charges the order-level fee: amount * TotalFeeBps / 10000,
// rounded down.
func totalFee(amount *big.Int, bps int64) *big.Int {
	fee := new(big.Int).Mul(amount, big.NewInt(bps))
	return fee.Quo(fee, big.NewInt(bc.MaxBasisPoint))
}

// SplitFee divides a fee across the four stakeholders. Creator, platform
// and order-referrer shares round down; the protocol takes the rest of the
// disbursable amount, absorbing rounding dust. When the split sums below
// 10000 bps the undisbursed remainder stays with the payer.
func SplitFee(fee *big.Int, split bc.FeeSplit) (bc.FeeBreakdown, error) {
	if split.CreatorBps < 0 || split.PlatformBps < 0 || split.OrderReferrerBps < 0 || split.ProtocolBps < 0 ||
		split.TotalBps() > bc.MaxBasisPoint {
		return bc.FeeBreakdown{}, bc.ErrFeeSplitInvalid
	}
	denom := big.NewInt(bc.MaxBasisPoint)
	creator, err := curvemath.MulDiv(fee, big.NewInt(split.CreatorBps), denom, bc.RoundingDown)
	if err != nil {
		return bc.FeeBreakdown{}, err
	}
	platform, err := curvemath.MulDiv(fee, big.NewInt(split.PlatformBps), denom, bc.RoundingDown)
	if err != nil {
		return bc.FeeBreakdown{}, err
	}
	referrer, err := curvemath.MulDiv(fee, big.NewInt(split.OrderReferrerBps), denom, bc.RoundingDown)
	if err != nil {
		return bc.FeeBreakdown{}, err
	}
	disbursable, err := curvemath.MulDiv(fee, big.NewInt(split.TotalBps()), denom, bc.RoundingDown)
	if err != nil {
		return bc.FeeBreakdown{}, err
	}
	protocol := new(big.Int).Sub(disbursable, creator)
	protocol.Sub(protocol, platform)
	protocol.Sub(protocol, referrer)
	return bc.FeeBreakdown{
		Creator:       creator,
		Platform:      platform,
		OrderReferrer: referrer,
		Protocol:      protocol,
	}, nil
}

// disburseFee splits the fee and forwards it to the rewards escrow. An
// order without a referrer routes the referrer share to the platform
// recipient.
func (m *Market) disburseFee(ctx context.Context, fee *big.Int, orderReferrer string) (bc.FeeBreakdown, error) {
	breakdown, err := SplitFee(fee, m.cfg.FeeSplit)
	if err != nil {
		return bc.FeeBreakdown{}, err
	}
	if orderReferrer == "" {
		orderReferrer = m.platformReferrer
	}

	recipients := make([]string, 0, 4)
	amounts := make([]*big.Int, 0, 4)
	reasons := make([]string, 0, 4)
	appendShare := func(recipient string, amount *big.Int, reason string) {
		if amount.Sign() == 0 {
			return
		}
		recipients = append(recipients, recipient)
		amounts = append(amounts, amount)
		reasons = append(reasons, reason)
	}
	appendShare(m.creator, breakdown.Creator, "creator_fee")
	appendShare(m.platformReferrer, breakdown.Platform, "platform_referrer_fee")
	appendShare(orderReferrer, breakdown.OrderReferrer, "order_referrer_fee")
	appendShare(m.protocolRecipient, breakdown.Protocol, "protocol_fee")

	if len(recipients) == 0 {
		return breakdown, nil
	}
	if err := m.escrow.DepositBatch(ctx, recipients, amounts, reasons); err != nil {
		return bc.FeeBreakdown{}, err
	}
	return breakdown, nil
}
