// Package vault settles payments for the ledgers: it collects native-currency
// value sent with a call, pulls pre-approved amounts from the external coin,
// and releases the accumulated native balance to the owner. The vault holds
// no other persistent state; the host performs the actual value transfers.
package vault

import (
	"sync"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-mintgate/coin"
	"github.com/pflow-xyz/go-mintgate/fault"
	"github.com/pflow-xyz/go-mintgate/identity"
)

// Vault accumulates native-currency payments on behalf of a collection.
type Vault struct {
	mu      sync.Mutex
	roles   *identity.Registry
	account identity.Address
	balance *uint256.Int
}

// New creates an empty vault. account is the address the vault receives
// coin settlements under.
func New(roles *identity.Registry, account identity.Address) *Vault {
	return &Vault{
		roles:   roles,
		account: account,
		balance: uint256.NewInt(0),
	}
}

// Account returns the vault's receiving address for coin settlements.
func (v *Vault) Account() identity.Address { return v.account }

// Balance returns the accumulated native balance in wei.
func (v *Vault) Balance() *uint256.Int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return new(uint256.Int).Set(v.balance)
}

// CollectNative keeps the caller-supplied payment if it covers required.
// Excess is not refunded; it stays with the collection.
func (v *Vault) CollectNative(paid, required *uint256.Int) error {
	if paid == nil || paid.Lt(required) {
		return fault.New(fault.PaymentInsufficient, "Insufficient funds!")
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.balance.Add(v.balance, paid)
	return nil
}

// CollectAllowance pulls exactly required from payer via the coin's
// allowance mechanism. The payer must have approved the vault's account
// for at least the required amount beforehand.
func (v *Vault) CollectAllowance(c *coin.Ledger, payer identity.Address, required *uint256.Int) error {
	if c.Allowance(payer, v.account).Lt(required) {
		return fault.New(fault.PaymentInsufficient, "You don't approve enough tokens.")
	}
	return c.TransferFrom(v.account, payer, v.account, required)
}

// Withdraw releases the entire accumulated native balance to the owner and
// returns the released amount. Owner-only.
func (v *Vault) Withdraw(caller identity.Address) (*uint256.Int, error) {
	if err := v.roles.RequireOwner(caller); err != nil {
		return nil, err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	released := v.balance
	v.balance = uint256.NewInt(0)
	return released, nil
}
