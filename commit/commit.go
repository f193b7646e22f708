// Package commit computes the MiMC commitment over the class ledger's
// per-class supplies. The same hash runs natively here and inside the
// supply-cap circuit, so a commitment published off-band can be checked
// against a proof without revealing the supplies themselves.
package commit

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// Supplies hashes the dense supply slice (index = class id - 1) into one
// BN254 field element. Each supply is absorbed as a canonical 32-byte
// element, matching the per-variable writes of the in-circuit hash.
func Supplies(supplies []uint64) *big.Int {
	h := mimc.NewMiMC()
	for _, s := range supplies {
		var e fr.Element
		e.SetUint64(s)
		b := e.Bytes()
		h.Write(b[:])
	}
	return new(big.Int).SetBytes(h.Sum(nil))
}
