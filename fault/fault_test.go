package fault

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := New(AccessDenied, "Only admin!")
	if err.Error() != "Only admin!" {
		t.Errorf("got %q, want %q", err.Error(), "Only admin!")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		kind Kind
		msg  string
	}{
		{AccessDenied, "Ownable: caller is not the owner"},
		{StateGate, "The contract is paused!"},
		{InvalidInput, "Invalid id!"},
		{SupplyExceeded, "Max supply exceeded!"},
		{PaymentInsufficient, "Insufficient funds!"},
		{OwnershipViolation, "This token is not yours!"},
		{NotFound, "That token does not exist"},
	}
	for _, tt := range tests {
		err := New(tt.kind, tt.msg)
		if got := KindOf(err); got != tt.kind {
			t.Errorf("KindOf(%q) = %v, want %v", tt.msg, got, tt.kind)
		}
		if !Is(err, tt.kind) {
			t.Errorf("Is(%q, %v) = false", tt.msg, tt.kind)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("mint: %w", New(SupplyExceeded, "Sorry, max quantity exceeded!"))
	if KindOf(err) != SupplyExceeded {
		t.Errorf("wrapped kind lost: got %v", KindOf(err))
	}
}

func TestKindOfForeign(t *testing.T) {
	if got := KindOf(errors.New("plain")); got != 0 {
		t.Errorf("foreign error classified as %v", got)
	}
	if Is(nil, AccessDenied) {
		t.Error("nil error matched a kind")
	}
}
