package market

import (
	"sync"
	"sync/atomic"

	bc "github.com/launchlab/launchcurve-go/bonding_curve/shared"
)

// Capability components injected into the market rather than inherited.

// reentryGuard rejects a call that re-enters while a mutating operation is
// in flight. It cannot be a mutex: fee disbursement and pool creation call
// out to collaborators that could call back in on the same goroutine, and
// a mutex would deadlock there instead of failing the inner call.
type reentryGuard struct {
	entered atomic.Bool
}

func (g *reentryGuard) enter() error {
	if !g.entered.CompareAndSwap(false, true) {
		return bc.ErrReentrantCall
	}
	return nil
}

func (g *reentryGuard) exit() {
	g.entered.Store(false)
}

// pauser is a pause flag over Buy and Sell. Quotes and accessors keep
// working while paused.
type pauser struct {
	paused atomic.Bool
}

func (p *pauser) pause()         { p.paused.Store(true) }
func (p *pauser) resume()        { p.paused.Store(false) }
func (p *pauser) isPaused() bool { return p.paused.Load() }

func (p *pauser) check() error {
	if p.paused.Load() {
		return bc.ErrMarketPaused
	}
	return nil
}

// nonceTracker keeps a monotonic counter per signer. A request must carry
// the signer's current counter value; the counter advances on use, so a
// replayed request always fails.
type nonceTracker struct {
	mu   sync.Mutex
	next map[string]uint64
}

func newNonceTracker() *nonceTracker {
	return &nonceTracker{next: make(map[string]uint64)}
}

func (n *nonceTracker) peek(signer string) uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.next[signer]
}

func (n *nonceTracker) use(signer string, nonce uint64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if nonce != n.next[signer] {
		return bc.ErrInvalidNonce
	}
	n.next[signer] = nonce + 1
	return nil
}
