package supplyproof

import (
	"math/big"
	"sync"
	"testing"

	"github.com/pflow-xyz/go-mintgate/classledger"
	"github.com/pflow-xyz/go-mintgate/commit"
)

// Setup compiles the circuit and runs the Groth16 ceremony, which is slow;
// the tests share one system.
var (
	sysOnce sync.Once
	sys     *System
	sysErr  error
)

func testSystem(t *testing.T) *System {
	t.Helper()
	if testing.Short() {
		t.Skip("groth16 setup is slow")
	}
	sysOnce.Do(func() {
		sys, sysErr = Setup()
	})
	if sysErr != nil {
		t.Fatal(sysErr)
	}
	return sys
}

func TestProveAndVerify(t *testing.T) {
	s := testSystem(t)

	supplies := []uint64{10, 3, 0, 0, 7, 0, 1, 0, 0, 5, 2, 10}
	proof, commitment, err := s.Prove(supplies, classledger.ClassCap)
	if err != nil {
		t.Fatal(err)
	}
	if commitment.Cmp(commit.Supplies(supplies)) != 0 {
		t.Error("returned commitment differs from the native hash")
	}
	if err := s.Verify(proof, commitment, classledger.ClassCap); err != nil {
		t.Errorf("valid proof rejected: %v", err)
	}

	// A tampered commitment must not verify.
	bad := new(big.Int).Add(commitment, big.NewInt(1))
	if err := s.Verify(proof, bad, classledger.ClassCap); err == nil {
		t.Error("proof verified against a tampered commitment")
	}

	// Neither does a tighter public cap.
	if err := s.Verify(proof, commitment, 9); err == nil {
		t.Error("proof verified against a cap below one of the supplies")
	}
}

func TestProveRejectsOverCap(t *testing.T) {
	s := testSystem(t)

	supplies := []uint64{0, 0, 11, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	if _, _, err := s.Prove(supplies, classledger.ClassCap); err == nil {
		t.Error("proved a supply above the cap")
	}
}

func TestProveRejectsWrongShape(t *testing.T) {
	s := testSystem(t)

	if _, _, err := s.Prove([]uint64{1, 2, 3}, classledger.ClassCap); err == nil {
		t.Error("accepted a supply slice of the wrong length")
	}
}
