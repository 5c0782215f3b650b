package market

import (
	"context"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	bc "github.com/launchlab/launchcurve-go/bonding_curve/shared"
)

// ReserveRequest is a signed instruction to move tokens between a holder's
// balance and the market's reserved-supply pool. Amount is a wad token
// amount; Deadline is unix seconds.
type ReserveRequest struct {
	Signer    string
	Amount    *big.Int
	Nonce     uint64
	Deadline  int64
	Signature []byte
}

// ReserveNonce returns the nonce the signer's next request must carry.
func (m *Market) ReserveNonce(signer string) uint64 {
	return m.nonces.peek(signer)
}

// reserveMessage is the canonical byte form covered by a request
// signature. The operation tag and market address bind a signature to one
// action on one market.
func (m *Market) reserveMessage(op string, req ReserveRequest) []byte {
	return []byte(fmt.Sprintf("%s|%s|%s|%s|%d|%d",
		op, m.address, req.Signer, req.Amount.String(), req.Nonce, req.Deadline))
}

// DepositToReserve moves req.Amount tokens from the signer to the market's
// reserve account. The request is replay-protected by nonce and bounded by
// deadline.
func (m *Market) DepositToReserve(ctx context.Context, req ReserveRequest) error {
	if err := m.guard.enter(); err != nil {
		return err
	}
	defer m.guard.exit()

	if err := m.reserveOp(ctx, "reserve_deposit", req, m.depositLocked); err != nil {
		m.log.Debug("reserve deposit rejected", zap.String("signer", req.Signer), zap.Error(err))
		return err
	}
	m.log.Info("reserve deposit",
		zap.String("signer", req.Signer),
		zap.String("amount", req.Amount.String()),
		zap.Uint64("nonce", req.Nonce),
	)
	return nil
}

// WithdrawFromReserve moves req.Amount tokens from the market's reserve
// account back to the signer.
func (m *Market) WithdrawFromReserve(ctx context.Context, req ReserveRequest) error {
	if err := m.guard.enter(); err != nil {
		return err
	}
	defer m.guard.exit()

	if err := m.reserveOp(ctx, "reserve_withdraw", req, m.withdrawLocked); err != nil {
		m.log.Debug("reserve withdrawal rejected", zap.String("signer", req.Signer), zap.Error(err))
		return err
	}
	m.log.Info("reserve withdrawal",
		zap.String("signer", req.Signer),
		zap.String("amount", req.Amount.String()),
		zap.Uint64("nonce", req.Nonce),
	)
	return nil
}

func (m *Market) reserveOp(_ context.Context, op string, req ReserveRequest, apply func(ReserveRequest) error) error {
	if err := m.pauser.check(); err != nil {
		return err
	}
	if req.Signer == "" || req.Amount == nil || req.Amount.Sign() <= 0 {
		return bc.ErrInvalidInput
	}
	if req.Deadline < m.now() {
		return bc.ErrDeadlineExpired
	}
	if m.verifier != nil {
		if err := m.verifier.Verify(req.Signer, m.reserveMessage(op, req), req.Signature); err != nil {
			return bc.ErrInvalidSignature
		}
	}
	// The nonce is consumed only after every other check passed, so a
	// rejected request can be fixed and resubmitted unchanged.
	if err := m.nonces.use(req.Signer, req.Nonce); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return apply(req)
}

func (m *Market) depositLocked(req ReserveRequest) error {
	if m.token.BalanceOf(req.Signer).Cmp(req.Amount) < 0 {
		return bc.ErrInsufficientFunds
	}
	if err := m.token.Transfer(req.Signer, m.address, req.Amount); err != nil {
		return err
	}
	m.state.ReservedSupply.Add(m.state.ReservedSupply, req.Amount)
	return nil
}

func (m *Market) withdrawLocked(req ReserveRequest) error {
	if m.state.ReservedSupply.Cmp(req.Amount) < 0 {
		return bc.ErrInsufficientFunds
	}
	if err := m.token.Transfer(m.address, req.Signer, req.Amount); err != nil {
		return err
	}
	m.state.ReservedSupply.Sub(m.state.ReservedSupply, req.Amount)
	return nil
}
