package market

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	bc "github.com/launchlab/launchcurve-go/bonding_curve/shared"
)

// MemoryPool is a constant-product pool good enough to receive a
// graduation and serve post-graduation swap tests.
type MemoryPool struct {
	mu           sync.Mutex
	nextPool     int
	nextPosition uint64
	pools        map[string]*poolReserves
}

type poolReserves struct {
	base  *big.Int
	quote *big.Int
}

func NewMemoryPool() *MemoryPool {
	return &MemoryPool{pools: make(map[string]*poolReserves)}
}

func (p *MemoryPool) CreatePool(ctx context.Context, baseAmount, quoteAmount *big.Int) (string, error) {
	if baseAmount.Sign() <= 0 || quoteAmount.Sign() <= 0 {
		return "", bc.ErrInvalidInput
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextPool++
	handle := fmt.Sprintf("pool-%d", p.nextPool)
	p.pools[handle] = &poolReserves{
		base:  new(big.Int).Set(baseAmount),
		quote: new(big.Int).Set(quoteAmount),
	}
	return handle, nil
}

// SwapExactIn prices x*y=k with no pool fee.
func (p *MemoryPool) SwapExactIn(ctx context.Context, pool string, quoteForBase bool, amountIn *big.Int) (*big.Int, error) {
	if amountIn.Sign() <= 0 {
		return nil, bc.ErrInvalidOrderSize
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	r, ok := p.pools[pool]
	if !ok {
		return nil, fmt.Errorf("unknown pool %q", pool)
	}
	reserveIn, reserveOut := r.quote, r.base
	if !quoteForBase {
		reserveIn, reserveOut = r.base, r.quote
	}
	denom := new(big.Int).Add(reserveIn, amountIn)
	out := new(big.Int).Mul(reserveOut, amountIn)
	out.Quo(out, denom)
	if out.Cmp(reserveOut) >= 0 {
		return nil, bc.ErrInsufficientLiquidity
	}
	reserveIn.Add(reserveIn, amountIn)
	reserveOut.Sub(reserveOut, out)
	return out, nil
}

func (p *MemoryPool) MintPosition(ctx context.Context, pool string, baseAmount, quoteAmount *big.Int) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.pools[pool]; !ok {
		return 0, fmt.Errorf("unknown pool %q", pool)
	}
	p.nextPosition++
	return p.nextPosition, nil
}

func (p *MemoryPool) CollectFees(ctx context.Context, positionID uint64) (*big.Int, *big.Int, error) {
	return big.NewInt(0), big.NewInt(0), nil
}

// Reserves reports the current pool reserves, for tests.
func (p *MemoryPool) Reserves(pool string) (base, quote *big.Int, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	r, found := p.pools[pool]
	if !found {
		return nil, nil, false
	}
	return new(big.Int).Set(r.base), new(big.Int).Set(r.quote), true
}
