// Package coin implements the external fungible token used for
// allowance-settled mints. It follows the ERC-20 allowance pattern: a payer
// pre-authorizes a spending cap that the ledger then draws against.
package coin

import (
	"sync"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-mintgate/fault"
	"github.com/pflow-xyz/go-mintgate/identity"
)

// Ledger holds fungible balances and allowances in base units.
type Ledger struct {
	mu         sync.RWMutex
	roles      *identity.Registry
	balances   map[identity.Address]*uint256.Int
	allowances map[identity.Address]map[identity.Address]*uint256.Int
}

// New creates an empty coin ledger owned through the given registry.
func New(roles *identity.Registry) *Ledger {
	return &Ledger{
		roles:      roles,
		balances:   make(map[identity.Address]*uint256.Int),
		allowances: make(map[identity.Address]map[identity.Address]*uint256.Int),
	}
}

// BalanceOf returns a's balance. Never-touched accounts hold zero.
func (l *Ledger) BalanceOf(a identity.Address) *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if b, ok := l.balances[a]; ok {
		return new(uint256.Int).Set(b)
	}
	return uint256.NewInt(0)
}

// Allowance returns the amount spender may draw from owner.
func (l *Ledger) Allowance(owner, spender identity.Address) *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if byOwner, ok := l.allowances[owner]; ok {
		if a, ok := byOwner[spender]; ok {
			return new(uint256.Int).Set(a)
		}
	}
	return uint256.NewInt(0)
}

// Mint credits amount to a. Owner-only.
func (l *Ledger) Mint(caller, to identity.Address, amount *uint256.Int) error {
	if err := l.roles.RequireOwner(caller); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credit(to, amount)
	return nil
}

// Approve sets spender's allowance over caller's balance.
func (l *Ledger) Approve(caller, spender identity.Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	byOwner, ok := l.allowances[caller]
	if !ok {
		byOwner = make(map[identity.Address]*uint256.Int)
		l.allowances[caller] = byOwner
	}
	byOwner[spender] = new(uint256.Int).Set(amount)
	return nil
}

// Transfer moves amount from caller to recipient.
func (l *Ledger) Transfer(caller, to identity.Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.move(caller, to, amount)
}

// TransferFrom moves amount from the payer to the recipient, drawing down
// spender's allowance. The allowance must already cover the amount.
func (l *Ledger) TransferFrom(spender, from, to identity.Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	byOwner := l.allowances[from]
	granted, ok := byOwner[spender]
	if !ok || granted.Lt(amount) {
		return fault.New(fault.PaymentInsufficient, "ERC20: insufficient allowance")
	}
	if err := l.move(from, to, amount); err != nil {
		return err
	}
	granted.Sub(granted, amount)
	return nil
}

// move transfers between accounts. Callers hold the lock.
func (l *Ledger) move(from, to identity.Address, amount *uint256.Int) error {
	src, ok := l.balances[from]
	if !ok || src.Lt(amount) {
		return fault.New(fault.PaymentInsufficient, "ERC20: transfer amount exceeds balance")
	}
	src.Sub(src, amount)
	l.credit(to, amount)
	return nil
}

// credit adds to an account. Callers hold the lock.
func (l *Ledger) credit(to identity.Address, amount *uint256.Int) {
	dst, ok := l.balances[to]
	if !ok {
		dst = uint256.NewInt(0)
		l.balances[to] = dst
	}
	dst.Add(dst, amount)
}
