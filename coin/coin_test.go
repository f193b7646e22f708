package coin

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-mintgate/fault"
	"github.com/pflow-xyz/go-mintgate/identity"
)

const (
	owner identity.Address = "owner"
	payer identity.Address = "payer"
	vault identity.Address = "vault"
)

func coins(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), uint256.NewInt(1_000_000_000_000_000_000))
}

func TestMintOwnerOnly(t *testing.T) {
	l := New(identity.NewRegistry(owner))
	if err := l.Mint(payer, payer, coins(1)); err == nil {
		t.Fatal("non-owner minted coins")
	}
	if err := l.Mint(owner, payer, coins(5)); err != nil {
		t.Fatal(err)
	}
	if got := l.BalanceOf(payer); !got.Eq(coins(5)) {
		t.Errorf("balance = %s, want %s", got, coins(5))
	}
}

func TestTransfer(t *testing.T) {
	l := New(identity.NewRegistry(owner))
	if err := l.Mint(owner, payer, coins(3)); err != nil {
		t.Fatal(err)
	}
	if err := l.Transfer(payer, vault, coins(2)); err != nil {
		t.Fatal(err)
	}
	if got := l.BalanceOf(payer); !got.Eq(coins(1)) {
		t.Errorf("payer balance = %s, want %s", got, coins(1))
	}
	err := l.Transfer(payer, vault, coins(2))
	if err == nil || err.Error() != "ERC20: transfer amount exceeds balance" {
		t.Errorf("overdraw: got %v", err)
	}
}

func TestTransferFrom(t *testing.T) {
	l := New(identity.NewRegistry(owner))
	if err := l.Mint(owner, payer, coins(10)); err != nil {
		t.Fatal(err)
	}

	err := l.TransferFrom(vault, payer, vault, coins(1))
	if err == nil || err.Error() != "ERC20: insufficient allowance" {
		t.Errorf("no allowance: got %v", err)
	}
	if !fault.Is(err, fault.PaymentInsufficient) {
		t.Errorf("kind = %v, want PaymentInsufficient", fault.KindOf(err))
	}

	if err := l.Approve(payer, vault, coins(4)); err != nil {
		t.Fatal(err)
	}
	if err := l.TransferFrom(vault, payer, vault, coins(3)); err != nil {
		t.Fatal(err)
	}

	// The allowance draws down with each spend.
	if got := l.Allowance(payer, vault); !got.Eq(coins(1)) {
		t.Errorf("remaining allowance = %s, want %s", got, coins(1))
	}
	if err := l.TransferFrom(vault, payer, vault, coins(2)); err == nil {
		t.Error("spent past the remaining allowance")
	}
	if got := l.BalanceOf(vault); !got.Eq(coins(3)) {
		t.Errorf("vault balance = %s, want %s", got, coins(3))
	}
}

func TestAllowanceCoversBalance(t *testing.T) {
	l := New(identity.NewRegistry(owner))
	if err := l.Mint(owner, payer, coins(1)); err != nil {
		t.Fatal(err)
	}
	// Approval larger than the balance: the transfer still fails on funds.
	if err := l.Approve(payer, vault, coins(10)); err != nil {
		t.Fatal(err)
	}
	err := l.TransferFrom(vault, payer, vault, coins(2))
	if err == nil || err.Error() != "ERC20: transfer amount exceeds balance" {
		t.Errorf("got %v", err)
	}
}
