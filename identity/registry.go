// Package identity holds the capability registry that gates every mutating
// operation in the ledger core. Roles are explicit sets queried by guard
// checks rather than an inheritance hierarchy, so guard composition stays
// testable in isolation. The host authenticates callers; every operation
// here takes the already-authenticated address as an explicit argument.
package identity

import (
	"sync"

	"github.com/pflow-xyz/go-mintgate/fault"
)

// Address is an opaque, host-authenticated caller identity.
type Address string

// Registry owns the role state: a single transferable owner plus
// boolean-toggleable admin, minter, and whitelist sets.
type Registry struct {
	mu        sync.RWMutex
	owner     Address
	admins    map[Address]bool
	minters   map[Address]bool
	whitelist map[Address]bool
}

// NewRegistry creates a registry with the given initial owner.
func NewRegistry(owner Address) *Registry {
	return &Registry{
		owner:     owner,
		admins:    make(map[Address]bool),
		minters:   make(map[Address]bool),
		whitelist: make(map[Address]bool),
	}
}

// Owner returns the current owner.
func (r *Registry) Owner() Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.owner
}

// IsOwner reports whether a is the current owner.
func (r *Registry) IsOwner(a Address) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return a == r.owner
}

// IsAdmin reports whether a passes admin checks.
// The owner always does, without being listed in the admin set.
func (r *Registry) IsAdmin(a Address) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return a == r.owner || r.admins[a]
}

// IsMinter reports whether a is in the minter set.
func (r *Registry) IsMinter(a Address) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.minters[a]
}

// IsWhitelisted reports whether a is in the whitelist set.
func (r *Registry) IsWhitelisted(a Address) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.whitelist[a]
}

// RequireOwner rejects unless caller is the owner.
func (r *Registry) RequireOwner(caller Address) error {
	if !r.IsOwner(caller) {
		return fault.New(fault.AccessDenied, "Ownable: caller is not the owner")
	}
	return nil
}

// RequireAdmin rejects unless caller passes admin checks.
func (r *Registry) RequireAdmin(caller Address) error {
	if !r.IsAdmin(caller) {
		return fault.New(fault.AccessDenied, "Only admin!")
	}
	return nil
}

// RequireMinter rejects unless caller is a minter or the owner.
func (r *Registry) RequireMinter(caller Address) error {
	if !r.IsMinter(caller) && !r.IsOwner(caller) {
		return fault.New(fault.AccessDenied, "Only minter!")
	}
	return nil
}

// TransferOwnership hands the owner role to newOwner. Owner-only.
func (r *Registry) TransferOwnership(caller, newOwner Address) error {
	if err := r.RequireOwner(caller); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.owner = newOwner
	return nil
}

// SetAdmin toggles a's membership in the admin set. Owner-only.
// Re-setting the current value is a no-op success.
func (r *Registry) SetAdmin(caller, a Address, enabled bool) error {
	if err := r.RequireOwner(caller); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins[a] = enabled
	return nil
}

// SetMinter toggles a's membership in the minter set. Admin-only.
func (r *Registry) SetMinter(caller, a Address, enabled bool) error {
	if err := r.RequireAdmin(caller); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.minters[a] = enabled
	return nil
}

// SetWhitelist toggles a's membership in the whitelist set. Admin-only.
func (r *Registry) SetWhitelist(caller, a Address, enabled bool) error {
	if err := r.RequireAdmin(caller); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.whitelist[a] = enabled
	return nil
}
