// Package gate owns the three sale-phase flags (paused, started, revealed)
// and the guard checks consumed by both ledgers. Flags are mutated only
// through the role-gated setters here; no other component writes them.
package gate

import (
	"sync"

	"github.com/pflow-xyz/go-mintgate/fault"
	"github.com/pflow-xyz/go-mintgate/identity"
)

// Gate holds the sale-phase flags for a collection.
type Gate struct {
	mu       sync.RWMutex
	roles    *identity.Registry
	paused   bool
	started  bool
	revealed bool
}

// Config sets the initial flag values for a gate.
type Config struct {
	Paused   bool
	Started  bool
	Revealed bool
}

// New creates a gate backed by the given role registry.
func New(roles *identity.Registry, cfg Config) *Gate {
	return &Gate{
		roles:    roles,
		paused:   cfg.Paused,
		started:  cfg.Started,
		revealed: cfg.Revealed,
	}
}

// Paused returns the paused flag.
func (g *Gate) Paused() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.paused
}

// Started returns the started flag.
func (g *Gate) Started() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.started
}

// Revealed returns the revealed flag.
func (g *Gate) Revealed() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.revealed
}

// RequireNotPaused rejects while the collection is paused, except for
// admins: admins must be able to operate while mint is paused for the
// general public.
func (g *Gate) RequireNotPaused(caller identity.Address) error {
	if g.Paused() && !g.roles.IsAdmin(caller) {
		return fault.New(fault.StateGate, "The contract is paused!")
	}
	return nil
}

// RequireStarted rejects public mints before the sale opens. Whitelisted
// callers may mint early; admins get no bypass here.
func (g *Gate) RequireStarted(caller identity.Address) error {
	if !g.Started() && !g.roles.IsWhitelisted(caller) {
		return fault.New(fault.StateGate, "Sales have not started yet")
	}
	return nil
}

// SetPaused sets the paused flag. Admin-only.
func (g *Gate) SetPaused(caller identity.Address, paused bool) error {
	if err := g.roles.RequireAdmin(caller); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paused = paused
	return nil
}

// SetRevealed sets the revealed flag. Admin-only.
func (g *Gate) SetRevealed(caller identity.Address, revealed bool) error {
	if err := g.roles.RequireAdmin(caller); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.revealed = revealed
	return nil
}

// StartSales opens the public sale. Admin-only. There is no way back.
func (g *Gate) StartSales(caller identity.Address) error {
	if err := g.roles.RequireAdmin(caller); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.started = true
	return nil
}
