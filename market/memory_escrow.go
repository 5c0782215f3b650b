package market

import (
	"context"
	"fmt"
	"math/big"
	"sync"
)

// MemoryEscrow accumulates disbursed fees per recipient.
type MemoryEscrow struct {
	mu       sync.Mutex
	balances map[string]*big.Int
	failNext error
}

func NewMemoryEscrow() *MemoryEscrow {
	return &MemoryEscrow{balances: make(map[string]*big.Int)}
}

func (e *MemoryEscrow) DepositBatch(ctx context.Context, recipients []string, amounts []*big.Int, reasons []string) error {
	if len(recipients) != len(amounts) || len(recipients) != len(reasons) {
		return fmt.Errorf("deposit batch length mismatch: %d recipients, %d amounts, %d reasons",
			len(recipients), len(amounts), len(reasons))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.failNext != nil {
		err := e.failNext
		e.failNext = nil
		return err
	}
	for i, recipient := range recipients {
		b, ok := e.balances[recipient]
		if !ok {
			b = big.NewInt(0)
			e.balances[recipient] = b
		}
		b.Add(b, amounts[i])
	}
	return nil
}

// BalanceOf reports the accumulated escrow balance of a recipient.
func (e *MemoryEscrow) BalanceOf(recipient string) *big.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if b, ok := e.balances[recipient]; ok {
		return new(big.Int).Set(b)
	}
	return big.NewInt(0)
}

// FailNext makes the next DepositBatch return err, for abort-path tests.
func (e *MemoryEscrow) FailNext(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failNext = err
}
