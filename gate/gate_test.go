package gate

import (
	"testing"

	"github.com/pflow-xyz/go-mintgate/fault"
	"github.com/pflow-xyz/go-mintgate/identity"
)

const (
	owner identity.Address = "owner"
	admin identity.Address = "admin"
	vip   identity.Address = "vip"
	user  identity.Address = "user"
)

func newTestGate(t *testing.T, cfg Config) *Gate {
	t.Helper()
	roles := identity.NewRegistry(owner)
	if err := roles.SetAdmin(owner, admin, true); err != nil {
		t.Fatal(err)
	}
	if err := roles.SetWhitelist(admin, vip, true); err != nil {
		t.Fatal(err)
	}
	return New(roles, cfg)
}

func TestPauseGate(t *testing.T) {
	g := newTestGate(t, Config{Paused: true})

	err := g.RequireNotPaused(user)
	if err == nil || err.Error() != "The contract is paused!" {
		t.Errorf("public caller while paused: got %v", err)
	}
	if !fault.Is(err, fault.StateGate) {
		t.Errorf("kind = %v, want StateGate", fault.KindOf(err))
	}

	// Admins and the owner operate through the pause.
	if err := g.RequireNotPaused(admin); err != nil {
		t.Errorf("admin while paused: %v", err)
	}
	if err := g.RequireNotPaused(owner); err != nil {
		t.Errorf("owner while paused: %v", err)
	}

	// Whitelist is a start-gate bypass, not a pause bypass.
	if err := g.RequireNotPaused(vip); err == nil {
		t.Error("whitelisted caller passed the pause gate")
	}
}

func TestStartGate(t *testing.T) {
	g := newTestGate(t, Config{})

	err := g.RequireStarted(user)
	if err == nil || err.Error() != "Sales have not started yet" {
		t.Errorf("public caller before start: got %v", err)
	}

	// Admins get no early access; the whitelist does.
	if err := g.RequireStarted(admin); err == nil {
		t.Error("admin bypassed the start gate")
	}
	if err := g.RequireStarted(vip); err != nil {
		t.Errorf("whitelisted caller before start: %v", err)
	}

	if err := g.StartSales(admin); err != nil {
		t.Fatal(err)
	}
	if err := g.RequireStarted(user); err != nil {
		t.Errorf("public caller after start: %v", err)
	}
}

func TestFlagSetters(t *testing.T) {
	g := newTestGate(t, Config{Paused: true})

	if err := g.SetPaused(user, false); err == nil {
		t.Error("plain user unpaused the collection")
	}
	if err := g.SetPaused(admin, false); err != nil {
		t.Fatal(err)
	}
	if g.Paused() {
		t.Error("still paused after SetPaused(false)")
	}

	if err := g.SetRevealed(user, true); err == nil {
		t.Error("plain user revealed the collection")
	}
	if err := g.SetRevealed(admin, true); err != nil {
		t.Fatal(err)
	}
	if !g.Revealed() {
		t.Error("not revealed after SetRevealed(true)")
	}

	if err := g.StartSales(user); err == nil {
		t.Error("plain user started the sale")
	}
}

func TestInitialFlags(t *testing.T) {
	g := newTestGate(t, Config{Started: true, Revealed: true})
	if g.Paused() || !g.Started() || !g.Revealed() {
		t.Errorf("flags = paused %v started %v revealed %v", g.Paused(), g.Started(), g.Revealed())
	}
}
