package market

import (
	"context"
	"math/big"
)

// The market consumes its environment through four collaborator
// interfaces. The host wires real implementations; the in-memory ones in
// this package back the test suite.

// Ledger is standard fungible bookkeeping. One instance tracks the market
// token, a second tracks the quote currency.
type Ledger interface {
	Mint(to string, amount *big.Int) error
	Burn(from string, amount *big.Int) error
	Transfer(from, to string, amount *big.Int) error
	BalanceOf(addr string) *big.Int
}

// LiquidityPool receives the secondary allocation and the accumulated
// quote reserve at graduation. Post-graduation trading happens against it
// directly and is not routed through the market.
type LiquidityPool interface {
	CreatePool(ctx context.Context, baseAmount, quoteAmount *big.Int) (string, error)
	SwapExactIn(ctx context.Context, pool string, quoteForBase bool, amountIn *big.Int) (*big.Int, error)
	MintPosition(ctx context.Context, pool string, baseAmount, quoteAmount *big.Int) (uint64, error)
	CollectFees(ctx context.Context, positionID uint64) (*big.Int, *big.Int, error)
}

// FeeEscrow records fee disbursements. Fire and forget; the market only
// cares whether the call succeeded.
type FeeEscrow interface {
	DepositBatch(ctx context.Context, recipients []string, amounts []*big.Int, reasons []string) error
}

// SignatureVerifier validates signed reserve requests.
type SignatureVerifier interface {
	Verify(signer string, message, signature []byte) error
}
