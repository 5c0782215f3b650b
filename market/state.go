package market

import (
	"math/big"

	bin "github.com/gagliardetto/binary"

	bc "github.com/launchlab/launchcurve-go/bonding_curve/shared"
)

// MarketState is owned and mutated exclusively by the Market. CurrentSupply
// only grows while the phase is PhaseBondingCurve and freezes at
// graduation.
type MarketState struct {
	Phase          bc.Phase
	CurrentSupply  *big.Int
	ReservedSupply *big.Int
	QuoteReserve   *big.Int
	PoolHandle     string
}

func newMarketState() MarketState {
	return MarketState{
		Phase:          bc.PhaseBondingCurve,
		CurrentSupply:  big.NewInt(0),
		ReservedSupply: big.NewInt(0),
		QuoteReserve:   big.NewInt(0),
	}
}

const snapshotVersion = 1

// marketSnapshot is the borsh wire form of MarketState. Supplies are wad
// amounts below 2^128, so they travel as u128.
type marketSnapshot struct {
	Version        uint8
	Phase          uint8
	CurrentSupply  bin.Uint128
	ReservedSupply bin.Uint128
	QuoteReserve   bin.Uint128
	PoolHandle     string
}

// Snapshot borsh-encodes the current market state for host persistence.
func (m *Market) Snapshot() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	current, err := u128FromBig(m.state.CurrentSupply)
	if err != nil {
		return nil, err
	}
	reserved, err := u128FromBig(m.state.ReservedSupply)
	if err != nil {
		return nil, err
	}
	reserve, err := u128FromBig(m.state.QuoteReserve)
	if err != nil {
		return nil, err
	}
	return bin.MarshalBorsh(&marketSnapshot{
		Version:        snapshotVersion,
		Phase:          uint8(m.state.Phase),
		CurrentSupply:  current,
		ReservedSupply: reserved,
		QuoteReserve:   reserve,
		PoolHandle:     m.state.PoolHandle,
	})
}

// RestoreState replaces the market state with a previously taken snapshot.
func (m *Market) RestoreState(data []byte) error {
	var snap marketSnapshot
	if err := bin.UnmarshalBorsh(&snap, data); err != nil {
		return err
	}
	if snap.Version != snapshotVersion {
		return bc.ErrInvalidInput
	}
	if snap.Phase > uint8(bc.PhaseGraduated) {
		return bc.ErrInvalidInput
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Phase = bc.Phase(snap.Phase)
	m.state.CurrentSupply = snap.CurrentSupply.BigInt()
	m.state.ReservedSupply = snap.ReservedSupply.BigInt()
	m.state.QuoteReserve = snap.QuoteReserve.BigInt()
	m.state.PoolHandle = snap.PoolHandle
	return nil
}

var lowWordMask = new(big.Int).SetUint64(^uint64(0))

func u128FromBig(v *big.Int) (bin.Uint128, error) {
	if v.Sign() < 0 || v.BitLen() > 128 {
		return bin.Uint128{}, bc.ErrOverflow
	}
	// Uint64 on a value wider than 64 bits is undefined; mask first.
	var out bin.Uint128
	out.Lo = new(big.Int).And(v, lowWordMask).Uint64()
	out.Hi = new(big.Int).Rsh(v, 64).Uint64()
	return out, nil
}
