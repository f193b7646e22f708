// Package supplyproof proves in zero knowledge that every class supply in
// the ledger respects the per-class cap. The supplies stay private; the
// verifier sees only the cap and the MiMC commitment over the supplies,
// which must match the commitment published by the ledger operator.
package supplyproof

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/std/hash/mimc"

	"github.com/pflow-xyz/go-mintgate/classledger"
	"github.com/pflow-xyz/go-mintgate/commit"
)

// Circuit binds the private supplies to the public commitment and checks
// each supply against the public cap.
type Circuit struct {
	Supplies [classledger.ClassCount]frontend.Variable `gnark:",secret"`

	Cap        frontend.Variable `gnark:",public"`
	Commitment frontend.Variable `gnark:",public"`
}

// Define asserts supply_i <= cap for every class and recomputes the MiMC
// commitment in-circuit.
func (c *Circuit) Define(api frontend.API) error {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	for _, s := range c.Supplies {
		api.AssertIsLessOrEqual(s, c.Cap)
		h.Write(s)
	}
	api.AssertIsEqual(h.Sum(), c.Commitment)
	return nil
}

// System holds the compiled circuit and Groth16 keys.
type System struct {
	cs constraint.ConstraintSystem
	pk groth16.ProvingKey
	vk groth16.VerifyingKey
}

// Setup compiles the circuit on BN254 and runs the Groth16 setup.
func Setup() (*System, error) {
	cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &Circuit{})
	if err != nil {
		return nil, fmt.Errorf("compile supply circuit: %w", err)
	}
	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return nil, fmt.Errorf("groth16 setup: %w", err)
	}
	return &System{cs: cs, pk: pk, vk: vk}, nil
}

// Prove generates a proof that supplies respect supplyCap. It returns the
// proof together with the commitment the verifier must be given.
func (s *System) Prove(supplies []uint64, supplyCap uint64) (groth16.Proof, *big.Int, error) {
	if len(supplies) != classledger.ClassCount {
		return nil, nil, fmt.Errorf("expected %d supplies, got %d", classledger.ClassCount, len(supplies))
	}
	commitment := commit.Supplies(supplies)

	var assignment Circuit
	for i, v := range supplies {
		assignment.Supplies[i] = v
	}
	assignment.Cap = supplyCap
	assignment.Commitment = commitment

	w, err := frontend.NewWitness(&assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, nil, fmt.Errorf("build witness: %w", err)
	}
	proof, err := groth16.Prove(s.cs, s.pk, w)
	if err != nil {
		return nil, nil, fmt.Errorf("prove supply caps: %w", err)
	}
	return proof, commitment, nil
}

// Verify checks a proof against the published commitment and cap.
func (s *System) Verify(proof groth16.Proof, commitment *big.Int, supplyCap uint64) error {
	assignment := Circuit{Cap: supplyCap, Commitment: commitment}
	w, err := frontend.NewWitness(&assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return fmt.Errorf("build public witness: %w", err)
	}
	return groth16.Verify(proof, s.vk, w)
}
