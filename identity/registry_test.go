package identity

import (
	"testing"

	"github.com/pflow-xyz/go-mintgate/fault"
)

const (
	owner  Address = "owner"
	admin  Address = "admin"
	minter Address = "minter"
	user   Address = "user"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry(owner)
	if err := r.SetAdmin(owner, admin, true); err != nil {
		t.Fatal(err)
	}
	if err := r.SetMinter(admin, minter, true); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestOwnerIsAdmin(t *testing.T) {
	r := newTestRegistry(t)
	if !r.IsAdmin(owner) {
		t.Error("owner should pass admin checks without being listed")
	}
	if err := r.RequireAdmin(owner); err != nil {
		t.Errorf("RequireAdmin(owner) = %v", err)
	}
	if r.IsMinter(owner) {
		t.Error("owner is not in the minter set")
	}
	if err := r.RequireMinter(owner); err != nil {
		t.Errorf("RequireMinter(owner) = %v, owner should pass", err)
	}
}

func TestRequireMessages(t *testing.T) {
	r := newTestRegistry(t)
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"owner", r.RequireOwner(user), "Ownable: caller is not the owner"},
		{"admin", r.RequireAdmin(user), "Only admin!"},
		{"minter", r.RequireAdmin(minter), "Only admin!"},
		{"minter role", r.RequireMinter(admin), "Only minter!"},
	}
	for _, tt := range tests {
		if tt.err == nil || tt.err.Error() != tt.want {
			t.Errorf("%s: got %v, want %q", tt.name, tt.err, tt.want)
		}
		if !fault.Is(tt.err, fault.AccessDenied) {
			t.Errorf("%s: kind = %v, want AccessDenied", tt.name, fault.KindOf(tt.err))
		}
	}
}

func TestSetterAuthority(t *testing.T) {
	r := newTestRegistry(t)

	// Admin toggles minter and whitelist but not admin.
	if err := r.SetAdmin(admin, user, true); err == nil {
		t.Error("admin set another admin; owner-only")
	}
	if err := r.SetMinter(admin, user, true); err != nil {
		t.Errorf("SetMinter by admin: %v", err)
	}
	if err := r.SetWhitelist(admin, user, true); err != nil {
		t.Errorf("SetWhitelist by admin: %v", err)
	}
	if err := r.SetMinter(user, minter, false); err == nil {
		t.Error("plain user toggled a minter")
	}
}

func TestSetterIdempotent(t *testing.T) {
	r := newTestRegistry(t)
	if err := r.SetAdmin(owner, admin, true); err != nil {
		t.Errorf("re-granting admin: %v", err)
	}
	if err := r.SetAdmin(owner, user, false); err != nil {
		t.Errorf("revoking a never-granted role: %v", err)
	}
	if r.IsAdmin(user) {
		t.Error("user became admin")
	}
}

func TestTransferOwnership(t *testing.T) {
	r := newTestRegistry(t)
	if err := r.TransferOwnership(user, user); err == nil {
		t.Fatal("non-owner transferred ownership")
	}
	if err := r.TransferOwnership(owner, user); err != nil {
		t.Fatal(err)
	}
	if r.Owner() != user {
		t.Errorf("owner = %q, want %q", r.Owner(), user)
	}
	// The previous owner keeps nothing.
	if r.IsAdmin(owner) {
		t.Error("former owner still passes admin checks")
	}
	// The previously granted admin set survives the transfer.
	if !r.IsAdmin(admin) {
		t.Error("admin set lost on ownership transfer")
	}
}
