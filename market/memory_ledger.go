package market

import (
	"math/big"
	"sync"

	bc "github.com/launchlab/launchcurve-go/bonding_curve/shared"
)

// MemoryLedger is a map-backed Ledger for tests and simulations.
type MemoryLedger struct {
	mu       sync.Mutex
	balances map[string]*big.Int
	supply   *big.Int
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		balances: make(map[string]*big.Int),
		supply:   big.NewInt(0),
	}
}

func (l *MemoryLedger) Mint(to string, amount *big.Int) error {
	if amount.Sign() < 0 {
		return bc.ErrInvalidInput
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credit(to, amount)
	l.supply.Add(l.supply, amount)
	return nil
}

func (l *MemoryLedger) Burn(from string, amount *big.Int) error {
	if amount.Sign() < 0 {
		return bc.ErrInvalidInput
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.debit(from, amount); err != nil {
		return err
	}
	l.supply.Sub(l.supply, amount)
	return nil
}

func (l *MemoryLedger) Transfer(from, to string, amount *big.Int) error {
	if amount.Sign() < 0 {
		return bc.ErrInvalidInput
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.debit(from, amount); err != nil {
		return err
	}
	l.credit(to, amount)
	return nil
}

func (l *MemoryLedger) BalanceOf(addr string) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.balances[addr]; ok {
		return new(big.Int).Set(b)
	}
	return big.NewInt(0)
}

// TotalSupply is the sum of all balances.
func (l *MemoryLedger) TotalSupply() *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return new(big.Int).Set(l.supply)
}

func (l *MemoryLedger) credit(addr string, amount *big.Int) {
	b, ok := l.balances[addr]
	if !ok {
		b = big.NewInt(0)
		l.balances[addr] = b
	}
	b.Add(b, amount)
}

func (l *MemoryLedger) debit(addr string, amount *big.Int) error {
	b, ok := l.balances[addr]
	if !ok || b.Cmp(amount) < 0 {
		return bc.ErrInsufficientFunds
	}
	b.Sub(b, amount)
	return nil
}
