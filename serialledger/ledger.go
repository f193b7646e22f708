// Package serialledger tracks single-owner tokens with sequential ids.
// Ids are assigned from 1 upward and never reused: burning removes the
// ownership record but the id stays retired. Public mints pay the vault
// in native currency; privileged mints skip gating and payment.
package serialledger

import (
	"sync"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-mintgate/fault"
	"github.com/pflow-xyz/go-mintgate/gate"
	"github.com/pflow-xyz/go-mintgate/identity"
	"github.com/pflow-xyz/go-mintgate/journal"
	"github.com/pflow-xyz/go-mintgate/metadata"
	"github.com/pflow-xyz/go-mintgate/vault"
)

// Collection limits for the serial ledger.
const (
	// MaxSupply is the lifetime id budget; ids run 1..MaxSupply.
	MaxSupply = 12
	// MaxPerMint caps the quantity of one mint call.
	MaxPerMint = 2
)

// Config carries the ledger limits and price. Zero-valued fields fall back
// to the defaults above.
type Config struct {
	MaxSupply  uint64
	MaxPerMint uint64

	// UnitPrice is the native price per minted token, in wei.
	UnitPrice *uint256.Int
}

// DefaultConfig returns the production limits: 12 tokens lifetime, at most
// 2 per call, 0.01 ether each.
func DefaultConfig() Config {
	return Config{
		MaxSupply:  MaxSupply,
		MaxPerMint: MaxPerMint,
		UnitPrice:  uint256.NewInt(10_000_000_000_000_000),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxSupply == 0 {
		c.MaxSupply = d.MaxSupply
	}
	if c.MaxPerMint == 0 {
		c.MaxPerMint = d.MaxPerMint
	}
	if c.UnitPrice == nil {
		c.UnitPrice = d.UnitPrice
	}
	return c
}

// Ledger is the sequential-id token ledger.
type Ledger struct {
	mu    sync.RWMutex
	cfg   Config
	roles *identity.Registry
	phase *gate.Gate
	pay   *vault.Vault
	meta  *metadata.Resolver
	log   journal.Journal

	// minted counts ids ever assigned; the next id is minted+1.
	minted uint64
	// owners holds live tokens only. A minted-then-burned id is absent
	// here but still counted in minted.
	owners map[uint64]identity.Address
}

// New creates an empty serial ledger.
func New(cfg Config, roles *identity.Registry, phase *gate.Gate, pay *vault.Vault,
	meta *metadata.Resolver, log journal.Journal) *Ledger {
	return &Ledger{
		cfg:    cfg.withDefaults(),
		roles:  roles,
		phase:  phase,
		pay:    pay,
		meta:   meta,
		log:    log,
		owners: make(map[uint64]identity.Address),
	}
}

// TotalMinted returns the count of ids ever assigned, burned or not.
func (l *Ledger) TotalMinted() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.minted
}

// OwnerOf reports the current owner of a token, if it exists.
func (l *Ledger) OwnerOf(id uint64) (identity.Address, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	owner, ok := l.owners[id]
	return owner, ok
}

// WalletOf returns the ids owned by owner in ascending order.
func (l *Ledger) WalletOf(owner identity.Address) []uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var ids []uint64
	for id := uint64(1); id <= l.minted; id++ {
		if l.owners[id] == owner {
			ids = append(ids, id)
		}
	}
	return ids
}

// URI resolves the metadata URI for a live token.
func (l *Ledger) URI(id uint64) (string, error) {
	l.mu.RLock()
	_, ok := l.owners[id]
	l.mu.RUnlock()
	if !ok {
		return "", fault.New(fault.NotFound, "ERC721Metadata: URI query for nonexistent token")
	}
	return l.meta.URI(id), nil
}

// Mint sells qty tokens to the caller, settled in native currency sent
// with the call.
func (l *Ledger) Mint(caller identity.Address, qty uint64, paid *uint256.Int) error {
	if err := l.phase.RequireNotPaused(caller); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.phase.RequireStarted(caller); err != nil {
		return err
	}
	if err := l.validateMint(qty); err != nil {
		return err
	}
	if err := l.pay.CollectNative(paid, l.price(qty)); err != nil {
		return err
	}
	return l.assign(caller, caller, qty)
}

// MintByMinter mints qty tokens to the caller without gating or payment.
// Minter or owner only.
func (l *Ledger) MintByMinter(caller identity.Address, qty uint64) error {
	if err := l.roles.RequireMinter(caller); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.validateMint(qty); err != nil {
		return err
	}
	return l.assign(caller, caller, qty)
}

// MintForAddress mints qty tokens to an arbitrary recipient without gating
// or payment. Admin or owner only.
func (l *Ledger) MintForAddress(caller identity.Address, qty uint64, to identity.Address) error {
	if err := l.roles.RequireAdmin(caller); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.validateMint(qty); err != nil {
		return err
	}
	return l.assign(caller, to, qty)
}

// Burn retires a token owned by the caller. There are no phase gates on
// burning: owners may always destroy what they hold.
func (l *Ledger) Burn(caller identity.Address, id uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	owner, ok := l.owners[id]
	if !ok {
		return fault.New(fault.NotFound, "That token does not exist")
	}
	if owner != caller {
		return fault.New(fault.OwnershipViolation, "This token is not yours!")
	}
	delete(l.owners, id)
	return l.log.Append(&journal.Event{
		Type: journal.TokenBurned, Actor: caller, Owner: caller, TokenID: id,
	})
}

// validateMint checks quantity and the lifetime id budget. Callers hold
// the lock.
func (l *Ledger) validateMint(qty uint64) error {
	if qty < 1 || qty > l.cfg.MaxPerMint {
		return fault.New(fault.InvalidInput, "Invalid mint amount!")
	}
	if l.minted+qty > l.cfg.MaxSupply {
		return fault.New(fault.SupplyExceeded, "Max supply exceeded!")
	}
	return nil
}

// assign hands out the next qty ids and journals one event per token.
// Callers hold the lock and have already validated the budget, so the
// ledger mutation itself cannot fail mid-batch.
func (l *Ledger) assign(actor, to identity.Address, qty uint64) error {
	for i := uint64(0); i < qty; i++ {
		l.minted++
		l.owners[l.minted] = to
		err := l.log.Append(&journal.Event{
			Type: journal.TokenMinted, Actor: actor, Owner: to, TokenID: l.minted,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *Ledger) price(qty uint64) *uint256.Int {
	return new(uint256.Int).Mul(l.cfg.UnitPrice, uint256.NewInt(qty))
}
