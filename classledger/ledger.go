// Package classledger tracks supply and per-owner balances for a fixed
// domain of item classes. Mints are batch-limited and strictly ordered;
// public paths pay the vault in native currency or through the external
// coin's allowance, while privileged paths skip gating and payment.
//
// The conservation invariant holds at all times: for every class, the sum
// of owner balances equals the recorded total supply.
package classledger

import (
	"sync"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-mintgate/coin"
	"github.com/pflow-xyz/go-mintgate/fault"
	"github.com/pflow-xyz/go-mintgate/gate"
	"github.com/pflow-xyz/go-mintgate/identity"
	"github.com/pflow-xyz/go-mintgate/journal"
	"github.com/pflow-xyz/go-mintgate/metadata"
	"github.com/pflow-xyz/go-mintgate/vault"
)

// Ledger is the multi-class token ledger.
type Ledger struct {
	mu    sync.RWMutex
	cfg   Config
	roles *identity.Registry
	phase *gate.Gate
	pay   *vault.Vault
	sc    *coin.Ledger
	meta  *metadata.Resolver
	log   journal.Journal

	supply   map[uint64]uint64
	balances map[uint64]map[identity.Address]uint64
}

// New creates an empty class ledger. All collaborators are required; the
// ledger never reaches into their state directly, only through guard checks
// and settlement calls.
func New(cfg Config, roles *identity.Registry, phase *gate.Gate, pay *vault.Vault,
	sc *coin.Ledger, meta *metadata.Resolver, log journal.Journal) *Ledger {
	return &Ledger{
		cfg:      cfg.withDefaults(),
		roles:    roles,
		phase:    phase,
		pay:      pay,
		sc:       sc,
		meta:     meta,
		log:      log,
		supply:   make(map[uint64]uint64),
		balances: make(map[uint64]map[identity.Address]uint64),
	}
}

// Supply returns the total minted supply of a class.
func (l *Ledger) Supply(id uint64) (uint64, error) {
	if err := l.validateClass(id); err != nil {
		return 0, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.supply[id], nil
}

// BalanceOf returns owner's balance of a class. Never-touched entries are
// zero; zero-balance entries persist after burns.
func (l *Ledger) BalanceOf(owner identity.Address, id uint64) (uint64, error) {
	if err := l.validateClass(id); err != nil {
		return 0, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[id][owner], nil
}

// URI resolves the metadata URI for a class. A class with no minted supply
// does not exist from the resolver's point of view.
func (l *Ledger) URI(id uint64) (string, error) {
	l.mu.RLock()
	minted := id >= 1 && id <= l.cfg.ClassCount && l.supply[id] > 0
	l.mu.RUnlock()
	if !minted {
		return "", fault.New(fault.NotFound, "Token does not exist")
	}
	return l.meta.URI(id), nil
}

// Mint sells qty units of one class to recipient, settled in native
// currency sent with the call.
func (l *Ledger) Mint(caller, to identity.Address, id, qty uint64, paid *uint256.Int) error {
	if err := l.phase.RequireNotPaused(caller); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.validateMint(id, qty); err != nil {
		return err
	}
	if err := l.phase.RequireStarted(caller); err != nil {
		return err
	}
	if err := l.pay.CollectNative(paid, l.nativePrice(qty)); err != nil {
		return err
	}
	l.credit(to, id, qty)
	return l.log.Append(&journal.Event{
		Type: journal.TokenMinted, Actor: caller, Owner: to, ClassID: id, Quantity: qty,
	})
}

// MintWithCoin sells qty units of one class to recipient, settled by
// drawing the caller's pre-approved coin allowance. No native value is
// required.
func (l *Ledger) MintWithCoin(caller, to identity.Address, id, qty uint64) error {
	if err := l.phase.RequireNotPaused(caller); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.validateMint(id, qty); err != nil {
		return err
	}
	if err := l.phase.RequireStarted(caller); err != nil {
		return err
	}
	if err := l.pay.CollectAllowance(l.sc, caller, l.coinPrice(qty)); err != nil {
		return err
	}
	l.credit(to, id, qty)
	return l.log.Append(&journal.Event{
		Type: journal.TokenMinted, Actor: caller, Owner: to, ClassID: id, Quantity: qty,
	})
}

// MintByMinter mints without gating or payment. Minter or owner only.
func (l *Ledger) MintByMinter(caller, to identity.Address, id, qty uint64) error {
	if err := l.roles.RequireMinter(caller); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.validateMint(id, qty); err != nil {
		return err
	}
	l.credit(to, id, qty)
	return l.log.Append(&journal.Event{
		Type: journal.TokenMinted, Actor: caller, Owner: to, ClassID: id, Quantity: qty,
	})
}

// MintBatch sells several classes in one call, settled in native currency.
// Class ids must be strictly ascending and at most MaxBatchClasses long.
func (l *Ledger) MintBatch(caller, to identity.Address, ids, amounts []uint64, paid *uint256.Int) error {
	if err := l.phase.RequireNotPaused(caller); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	total, err := l.validateMintBatch(ids, amounts)
	if err != nil {
		return err
	}
	if err := l.phase.RequireStarted(caller); err != nil {
		return err
	}
	if err := l.pay.CollectNative(paid, l.nativePrice(total)); err != nil {
		return err
	}
	l.creditBatch(to, ids, amounts)
	return l.log.Append(&journal.Event{
		Type: journal.TokensMinted, Actor: caller, Owner: to, ClassIDs: ids, Amounts: amounts,
	})
}

// MintBatchWithCoin sells several classes in one call, settled via the
// caller's coin allowance.
func (l *Ledger) MintBatchWithCoin(caller, to identity.Address, ids, amounts []uint64) error {
	if err := l.phase.RequireNotPaused(caller); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	total, err := l.validateMintBatch(ids, amounts)
	if err != nil {
		return err
	}
	if err := l.phase.RequireStarted(caller); err != nil {
		return err
	}
	if err := l.pay.CollectAllowance(l.sc, caller, l.coinPrice(total)); err != nil {
		return err
	}
	l.creditBatch(to, ids, amounts)
	return l.log.Append(&journal.Event{
		Type: journal.TokensMinted, Actor: caller, Owner: to, ClassIDs: ids, Amounts: amounts,
	})
}

// MintBatchByMinter mints several classes without gating or payment.
// Minter or owner only.
func (l *Ledger) MintBatchByMinter(caller, to identity.Address, ids, amounts []uint64) error {
	if err := l.roles.RequireMinter(caller); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.validateMintBatch(ids, amounts); err != nil {
		return err
	}
	l.creditBatch(to, ids, amounts)
	return l.log.Append(&journal.Event{
		Type: journal.TokensMinted, Actor: caller, Owner: to, ClassIDs: ids, Amounts: amounts,
	})
}

// Burn destroys amount units of one class from the caller's balance.
func (l *Ledger) Burn(caller identity.Address, id, amount uint64) error {
	if err := l.phase.RequireNotPaused(caller); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.validateClass(id); err != nil {
		return err
	}
	if amount == 0 {
		return fault.New(fault.InvalidInput, "Invalid burn amount!")
	}
	if l.balances[id][caller] < amount {
		return fault.New(fault.OwnershipViolation, "Not enough tokens to burn")
	}
	l.debit(caller, id, amount)
	return l.log.Append(&journal.Event{
		Type: journal.TokenBurned, Actor: caller, Owner: caller, ClassID: id, Quantity: amount,
	})
}

// BurnBatch destroys several classes from the caller's balance in one call.
// Shape and ordering rules match the batch mint paths.
func (l *Ledger) BurnBatch(caller identity.Address, ids, amounts []uint64) error {
	if err := l.phase.RequireNotPaused(caller); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.validateBatchShape(ids, amounts); err != nil {
		return err
	}
	for i, id := range ids {
		if err := l.validateClass(id); err != nil {
			return err
		}
		if i > 0 && id <= ids[i-1] {
			return fault.New(fault.InvalidInput, "Repeated id!")
		}
		if amounts[i] == 0 {
			return fault.New(fault.InvalidInput, "Invalid burn amount!")
		}
		if l.balances[id][caller] < amounts[i] {
			return fault.New(fault.OwnershipViolation, "Sorry, not enough tokens")
		}
	}
	for i, id := range ids {
		l.debit(caller, id, amounts[i])
	}
	return l.log.Append(&journal.Event{
		Type: journal.TokensBurned, Actor: caller, Owner: caller, ClassIDs: ids, Amounts: amounts,
	})
}

// validateClass checks id against the fixed class domain.
func (l *Ledger) validateClass(id uint64) error {
	if id < 1 || id > l.cfg.ClassCount {
		return fault.New(fault.InvalidInput, "Invalid id!")
	}
	return nil
}

// validateMint runs the single-class pipeline: class, quantity, supply cap.
// Callers hold the lock.
func (l *Ledger) validateMint(id, qty uint64) error {
	if err := l.validateClass(id); err != nil {
		return err
	}
	if qty < 1 || qty > l.cfg.MaxPerMint {
		return fault.New(fault.InvalidInput, "Invalid mint quantity!")
	}
	if l.supply[id]+qty > l.cfg.ClassCap {
		return fault.New(fault.SupplyExceeded, "Sorry, max quantity exceeded!")
	}
	return nil
}

// validateMintBatch runs the batch pipeline and returns the total quantity.
// Ids must be strictly ascending: a descending pair trips the same
// "Repeated id!" rejection as a duplicate, which keeps batches canonical.
// Callers hold the lock.
func (l *Ledger) validateMintBatch(ids, amounts []uint64) (uint64, error) {
	if err := l.validateBatchShape(ids, amounts); err != nil {
		return 0, err
	}
	var total uint64
	for i, id := range ids {
		if err := l.validateClass(id); err != nil {
			return 0, err
		}
		if i > 0 && id <= ids[i-1] {
			return 0, fault.New(fault.InvalidInput, "Repeated id!")
		}
		if amounts[i] < 1 || amounts[i] > l.cfg.MaxPerMint {
			return 0, fault.New(fault.InvalidInput, "Invalid mint quantity!")
		}
		if l.supply[id]+amounts[i] > l.cfg.ClassCap {
			return 0, fault.New(fault.SupplyExceeded, "Sorry, max quantity exceeded!")
		}
		total += amounts[i]
	}
	return total, nil
}

func (l *Ledger) validateBatchShape(ids, amounts []uint64) error {
	if len(ids) != len(amounts) {
		return fault.New(fault.InvalidInput, "Sizes do not match")
	}
	if len(ids) > l.cfg.MaxBatchClasses {
		return fault.New(fault.InvalidInput, "Max mint amount per transaction exceeded")
	}
	return nil
}

// credit applies a validated mint. Callers hold the lock.
func (l *Ledger) credit(to identity.Address, id, qty uint64) {
	owners, ok := l.balances[id]
	if !ok {
		owners = make(map[identity.Address]uint64)
		l.balances[id] = owners
	}
	owners[to] += qty
	l.supply[id] += qty
}

func (l *Ledger) creditBatch(to identity.Address, ids, amounts []uint64) {
	for i, id := range ids {
		l.credit(to, id, amounts[i])
	}
}

// debit applies a validated burn. Callers hold the lock.
func (l *Ledger) debit(from identity.Address, id, amount uint64) {
	l.balances[id][from] -= amount
	l.supply[id] -= amount
}

func (l *Ledger) nativePrice(qty uint64) *uint256.Int {
	return new(uint256.Int).Mul(l.cfg.UnitPrice, uint256.NewInt(qty))
}

func (l *Ledger) coinPrice(qty uint64) *uint256.Int {
	return new(uint256.Int).Mul(l.cfg.CoinUnitPrice, uint256.NewInt(qty))
}

// SupplySnapshot returns the per-class supplies as a dense slice indexed by
// class id - 1, for commitment and proof generation.
func (l *Ledger) SupplySnapshot() []uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]uint64, l.cfg.ClassCount)
	for id := uint64(1); id <= l.cfg.ClassCount; id++ {
		out[id-1] = l.supply[id]
	}
	return out
}

// Cap returns the per-class supply cap in effect.
func (l *Ledger) Cap() uint64 { return l.cfg.ClassCap }
