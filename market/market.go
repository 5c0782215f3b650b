package market

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"go.uber.org/zap"

	bondingcurve "github.com/launchlab/launchcurve-go/bonding_curve"
	bc "github.com/launchlab/launchcurve-go/bonding_curve/shared"
)

// Market owns the state machine of a single token launch: it prices orders
// against the bonding curve while PhaseBondingCurve, clamps the final buy
// at the allocated ceiling, and performs the one-time graduation to the
// external liquidity pool. All mutating calls are all-or-nothing: every
// precondition and all pricing run before the single commit point.
type Market struct {
	cfg bc.MarketConfig

	guard  reentryGuard
	pauser pauser
	nonces *nonceTracker

	mu    sync.RWMutex
	state MarketState

	token    Ledger
	quote    Ledger
	pool     LiquidityPool
	escrow   FeeEscrow
	verifier SignatureVerifier

	address           string
	escrowAddress     string
	creator           string
	platformReferrer  string
	protocolRecipient string

	log     *zap.Logger
	metrics *Metrics
	now     func() int64
}

// Deps wires the market to its collaborators. Token and Quote are two
// instances of the same ledger abstraction: one for the launched token,
// one for the quote currency.
type Deps struct {
	Token    Ledger
	Quote    Ledger
	Pool     LiquidityPool
	Escrow   FeeEscrow
	Verifier SignatureVerifier

	// Address is the market's own account on both ledgers; it holds the
	// quote reserve and the token reserve.
	Address       string
	EscrowAddress string

	Creator           string
	PlatformReferrer  string
	ProtocolRecipient string
}

type Option func(*Market)

func WithLogger(log *zap.Logger) Option {
	return func(m *Market) { m.log = log }
}

func WithMetrics(metrics *Metrics) Option {
	return func(m *Market) { m.metrics = metrics }
}

// WithClock overrides the unix-seconds clock used for reserve deadlines.
func WithClock(now func() int64) Option {
	return func(m *Market) { m.now = now }
}

func NewMarket(cfg bc.MarketConfig, deps Deps, opts ...Option) (*Market, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	// Reject unsolvable curves at creation, not on the first order.
	if _, err := bondingcurve.CurveCoefficient(cfg.AllocatedSupply, cfg.DesiredRaise); err != nil {
		return nil, err
	}
	if deps.Token == nil || deps.Quote == nil || deps.Pool == nil || deps.Escrow == nil {
		return nil, fmt.Errorf("market requires token, quote, pool and escrow collaborators")
	}
	if deps.Address == "" || deps.EscrowAddress == "" || deps.Creator == "" ||
		deps.PlatformReferrer == "" || deps.ProtocolRecipient == "" {
		return nil, fmt.Errorf("market requires address, escrow, creator, platform and protocol recipients")
	}

	m := &Market{
		cfg:               cfg,
		nonces:            newNonceTracker(),
		state:             newMarketState(),
		token:             deps.Token,
		quote:             deps.Quote,
		pool:              deps.Pool,
		escrow:            deps.Escrow,
		verifier:          deps.Verifier,
		address:           deps.Address,
		escrowAddress:     deps.EscrowAddress,
		creator:           deps.Creator,
		platformReferrer:  deps.PlatformReferrer,
		protocolRecipient: deps.ProtocolRecipient,
		log:               zap.NewNop(),
		now:               func() int64 { return time.Now().Unix() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Buy fills a bonding-curve buy order for recipient, paid by buyer. An
// order that would overshoot the allocated ceiling is clamped to the
// remainder and the excess payment refunded; an order that lands exactly
// on the ceiling graduates without clamping math. Both paths leave the
// market graduated with the full allocation minted.
func (m *Market) Buy(ctx context.Context, buyer, recipient, orderReferrer string, ethIn, minOut *big.Int) (bc.BuyResult, error) {
	if err := m.guard.enter(); err != nil {
		return bc.BuyResult{}, err
	}
	defer m.guard.exit()

	result, err := m.buy(ctx, buyer, recipient, orderReferrer, ethIn, minOut)
	if err != nil {
		m.metrics.recordFailure("buy", err)
		m.log.Debug("buy rejected", zap.String("buyer", buyer), zap.Error(err))
		return bc.BuyResult{}, err
	}
	m.metrics.recordOrder("buy", result.Cost)
	m.metrics.recordState(m.CurrentSupply(), m.QuoteReserve())
	m.log.Info("buy filled",
		zap.String("buyer", buyer),
		zap.String("recipient", recipient),
		zap.String("tokens_out", result.TokensOut.String()),
		zap.String("cost", result.Cost.String()),
		zap.String("fee", result.Fee.String()),
		zap.String("refund", result.Refund.String()),
		zap.Bool("graduates", result.Graduates),
	)
	return result, nil
}

func (m *Market) buy(ctx context.Context, buyer, recipient, orderReferrer string, ethIn, minOut *big.Int) (bc.BuyResult, error) {
	if err := m.pauser.check(); err != nil {
		return bc.BuyResult{}, err
	}
	if ethIn == nil || ethIn.Sign() <= 0 {
		return bc.BuyResult{}, bc.ErrInvalidOrderSize
	}
	if ethIn.Cmp(m.cfg.MinOrderSize) < 0 {
		return bc.BuyResult{}, bc.ErrOrderTooSmall
	}

	m.mu.RLock()
	phase := m.state.Phase
	x0 := new(big.Int).Set(m.state.CurrentSupply)
	reserve := new(big.Int).Set(m.state.QuoteReserve)
	m.mu.RUnlock()

	if phase != bc.PhaseBondingCurve {
		return bc.BuyResult{}, bc.ErrWrongPhase
	}
	if m.quote.BalanceOf(buyer).Cmp(ethIn) < 0 {
		return bc.BuyResult{}, bc.ErrInsufficientFunds
	}

	fee := totalFee(ethIn, m.cfg.TotalFeeBps)
	cost := new(big.Int).Sub(ethIn, fee)

	trueOrderSize, err := bondingcurve.EthBuyQuote(x0, m.cfg.AllocatedSupply, cost, m.cfg.DesiredRaise)
	if err != nil {
		return bc.BuyResult{}, err
	}
	if minOut != nil && trueOrderSize.Cmp(minOut) < 0 {
		return bc.BuyResult{}, bc.ErrSlippageExceeded
	}

	maxRemaining := new(big.Int).Sub(m.cfg.AllocatedSupply, x0)
	refund := big.NewInt(0)
	graduates := trueOrderSize.Cmp(maxRemaining) == 0
	if trueOrderSize.Cmp(maxRemaining) > 0 {
		// Partial fill: close out the curve at the ceiling, charge the
		// exact cost of the clamped size, refund the rest.
		trueOrderSize = maxRemaining
		cost, err = bondingcurve.TokenBuyQuote(x0, m.cfg.AllocatedSupply, trueOrderSize, m.cfg.DesiredRaise)
		if err != nil {
			return bc.BuyResult{}, err
		}
		fee = totalFee(cost, m.cfg.TotalFeeBps)
		refund = new(big.Int).Sub(ethIn, new(big.Int).Add(cost, fee))
		if refund.Sign() < 0 {
			return bc.BuyResult{}, bc.ErrInsufficientPayment
		}
		graduates = true
	}
	if trueOrderSize.Sign() == 0 {
		return bc.BuyResult{}, bc.ErrOrderTooSmall
	}

	// External collaborators run before the commit point so a failure
	// aborts with no state mutated.
	var poolHandle string
	if graduates {
		poolQuote := new(big.Int).Add(reserve, cost)
		poolHandle, err = m.pool.CreatePool(ctx, m.cfg.SecondaryAllocation, poolQuote)
		if err != nil {
			return bc.BuyResult{}, fmt.Errorf("create pool: %w", err)
		}
	}
	if _, err := m.disburseFee(ctx, fee, orderReferrer); err != nil {
		return bc.BuyResult{}, fmt.Errorf("disburse fee: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.quote.Transfer(buyer, m.address, ethIn); err != nil {
		return bc.BuyResult{}, err
	}
	if fee.Sign() > 0 {
		if err := m.quote.Transfer(m.address, m.escrowAddress, fee); err != nil {
			return bc.BuyResult{}, err
		}
	}
	if refund.Sign() > 0 {
		if err := m.quote.Transfer(m.address, buyer, refund); err != nil {
			return bc.BuyResult{}, err
		}
	}
	if err := m.token.Mint(recipient, trueOrderSize); err != nil {
		return bc.BuyResult{}, err
	}
	m.state.CurrentSupply.Add(m.state.CurrentSupply, trueOrderSize)
	m.state.QuoteReserve.Add(m.state.QuoteReserve, cost)

	if graduates {
		if err := m.graduateLocked(poolHandle); err != nil {
			return bc.BuyResult{}, err
		}
	}

	return bc.BuyResult{
		TokensOut: trueOrderSize,
		Cost:      cost,
		Fee:       fee,
		Refund:    refund,
		Graduates: graduates,
	}, nil
}

// graduateLocked finishes the one-way transition: the secondary allocation
// and the whole quote reserve move to the pool, and the phase flips. The
// phase check in buy/sell is the only guard needed; once PhaseGraduated is
// set this path is unreachable.
func (m *Market) graduateLocked(poolHandle string) error {
	if err := m.token.Mint(poolHandle, m.cfg.SecondaryAllocation); err != nil {
		return err
	}
	if m.state.QuoteReserve.Sign() > 0 {
		if err := m.quote.Transfer(m.address, poolHandle, m.state.QuoteReserve); err != nil {
			return err
		}
	}
	m.state.QuoteReserve = big.NewInt(0)
	m.state.Phase = bc.PhaseGraduated
	m.state.PoolHandle = poolHandle

	m.metrics.recordGraduation()
	m.log.Info("market graduated",
		zap.String("pool", poolHandle),
		zap.String("current_supply", m.state.CurrentSupply.String()),
	)
	return nil
}

// Sell fills a bonding-curve sell order: seller burns tokensIn, recipient
// receives the curve payout net of fee. Valid only before graduation;
// afterwards sells route to the external pool directly.
func (m *Market) Sell(ctx context.Context, seller, recipient, orderReferrer string, tokensIn, minPayout *big.Int) (bc.SellResult, error) {
	if err := m.guard.enter(); err != nil {
		return bc.SellResult{}, err
	}
	defer m.guard.exit()

	result, err := m.sell(ctx, seller, recipient, orderReferrer, tokensIn, minPayout)
	if err != nil {
		m.metrics.recordFailure("sell", err)
		m.log.Debug("sell rejected", zap.String("seller", seller), zap.Error(err))
		return bc.SellResult{}, err
	}
	m.metrics.recordOrder("sell", result.Payout)
	m.metrics.recordState(m.CurrentSupply(), m.QuoteReserve())
	m.log.Info("sell filled",
		zap.String("seller", seller),
		zap.String("recipient", recipient),
		zap.String("tokens_in", tokensIn.String()),
		zap.String("payout", result.Payout.String()),
		zap.String("fee", result.Fee.String()),
	)
	return result, nil
}

func (m *Market) sell(ctx context.Context, seller, recipient, orderReferrer string, tokensIn, minPayout *big.Int) (bc.SellResult, error) {
	if err := m.pauser.check(); err != nil {
		return bc.SellResult{}, err
	}
	if tokensIn == nil || tokensIn.Sign() <= 0 {
		return bc.SellResult{}, bc.ErrInvalidOrderSize
	}

	m.mu.RLock()
	phase := m.state.Phase
	x0 := new(big.Int).Set(m.state.CurrentSupply)
	reserve := new(big.Int).Set(m.state.QuoteReserve)
	m.mu.RUnlock()

	if phase != bc.PhaseBondingCurve {
		return bc.SellResult{}, bc.ErrWrongPhase
	}
	if m.token.BalanceOf(seller).Cmp(tokensIn) < 0 {
		return bc.SellResult{}, bc.ErrInsufficientFunds
	}

	payout, err := bondingcurve.TokenSellQuote(x0, m.cfg.AllocatedSupply, tokensIn, m.cfg.DesiredRaise)
	if err != nil {
		return bc.SellResult{}, err
	}
	if minPayout != nil && payout.Cmp(minPayout) < 0 {
		return bc.SellResult{}, bc.ErrSlippageExceeded
	}
	if payout.Cmp(m.cfg.MinOrderSize) < 0 {
		return bc.SellResult{}, bc.ErrOrderTooSmall
	}
	if payout.Cmp(reserve) > 0 {
		return bc.SellResult{}, bc.ErrInsufficientLiquidity
	}

	fee := totalFee(payout, m.cfg.TotalFeeBps)
	net := new(big.Int).Sub(payout, fee)

	if _, err := m.disburseFee(ctx, fee, orderReferrer); err != nil {
		return bc.SellResult{}, fmt.Errorf("disburse fee: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.token.Burn(seller, tokensIn); err != nil {
		return bc.SellResult{}, err
	}
	if fee.Sign() > 0 {
		if err := m.quote.Transfer(m.address, m.escrowAddress, fee); err != nil {
			return bc.SellResult{}, err
		}
	}
	if net.Sign() > 0 {
		if err := m.quote.Transfer(m.address, recipient, net); err != nil {
			return bc.SellResult{}, err
		}
	}
	m.state.CurrentSupply.Sub(m.state.CurrentSupply, tokensIn)
	m.state.QuoteReserve.Sub(m.state.QuoteReserve, payout)

	return bc.SellResult{Payout: payout, Fee: fee}, nil
}

// QuoteBuy previews a buy without touching state. MinimumAmountOut applies
// the caller's slippage tolerance to the quoted size.
func (m *Market) QuoteBuy(ethIn *big.Int, slippageBps uint16) (bc.QuoteResult, error) {
	if ethIn == nil || ethIn.Sign() <= 0 {
		return bc.QuoteResult{}, bc.ErrInvalidOrderSize
	}

	m.mu.RLock()
	phase := m.state.Phase
	x0 := new(big.Int).Set(m.state.CurrentSupply)
	m.mu.RUnlock()

	if phase != bc.PhaseBondingCurve {
		return bc.QuoteResult{}, bc.ErrWrongPhase
	}
	fee := totalFee(ethIn, m.cfg.TotalFeeBps)
	remaining := new(big.Int).Sub(ethIn, fee)
	out, err := bondingcurve.EthBuyQuote(x0, m.cfg.AllocatedSupply, remaining, m.cfg.DesiredRaise)
	if err != nil {
		return bc.QuoteResult{}, err
	}
	return bc.QuoteResult{
		AmountOut:        out,
		Fee:              fee,
		MinimumAmountOut: applySlippage(out, slippageBps),
	}, nil
}

// QuoteSell previews a sell; AmountOut is the payout net of fee.
func (m *Market) QuoteSell(tokensIn *big.Int, slippageBps uint16) (bc.QuoteResult, error) {
	if tokensIn == nil || tokensIn.Sign() <= 0 {
		return bc.QuoteResult{}, bc.ErrInvalidOrderSize
	}

	m.mu.RLock()
	phase := m.state.Phase
	x0 := new(big.Int).Set(m.state.CurrentSupply)
	m.mu.RUnlock()

	if phase != bc.PhaseBondingCurve {
		return bc.QuoteResult{}, bc.ErrWrongPhase
	}
	payout, err := bondingcurve.TokenSellQuote(x0, m.cfg.AllocatedSupply, tokensIn, m.cfg.DesiredRaise)
	if err != nil {
		return bc.QuoteResult{}, err
	}
	fee := totalFee(payout, m.cfg.TotalFeeBps)
	net := new(big.Int).Sub(payout, fee)
	return bc.QuoteResult{
		AmountOut:        net,
		Fee:              fee,
		MinimumAmountOut: applySlippage(net, slippageBps),
	}, nil
}

func applySlippage(amount *big.Int, slippageBps uint16) *big.Int {
	if slippageBps == 0 {
		return new(big.Int).Set(amount)
	}
	out := new(big.Int).Mul(amount, big.NewInt(int64(bc.MaxBasisPoint-int64(slippageBps))))
	return out.Quo(out, big.NewInt(bc.MaxBasisPoint))
}

// Pause blocks Buy and Sell until Resume. Quotes keep working.
func (m *Market) Pause()  { m.pauser.pause() }
func (m *Market) Resume() { m.pauser.resume() }

func (m *Market) Paused() bool { return m.pauser.isPaused() }

func (m *Market) Phase() bc.Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Phase
}

func (m *Market) CurrentSupply() *big.Int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return new(big.Int).Set(m.state.CurrentSupply)
}

func (m *Market) ReservedSupply() *big.Int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return new(big.Int).Set(m.state.ReservedSupply)
}

func (m *Market) QuoteReserve() *big.Int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return new(big.Int).Set(m.state.QuoteReserve)
}

// PoolHandle is empty until graduation.
func (m *Market) PoolHandle() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.PoolHandle
}

func (m *Market) Config() bc.MarketConfig { return m.cfg }
