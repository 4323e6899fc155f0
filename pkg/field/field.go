// Package field bridges externally-encoded scalars (as produced by the ACIR
// front end, over its own arbitrary field) into the scalar field used by the
// circuit being built here.
package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
)

// Bridge performs the canonical reduction spec.md §4.3 calls "the field
// bridge": parse a big-endian byte buffer as an unsigned integer, then
// reduce it modulo the target field's prime. It carries no other state.
type Bridge struct {
	modulus *big.Int
}

// New returns a Bridge targeting the scalar field of the curve backing this
// repository's proving system (BN254, standing in for Goldilocks — see
// SPEC_FULL.md §0).
func New() *Bridge {
	return &Bridge{modulus: ecc.BN254.ScalarField()}
}

// Reduce converts a big-endian external scalar into a target-field element.
// Out-of-range input values (the external field's modulus can exceed the
// target's) are folded in, matching the "non-canonical reduction" the
// original translator performs via from_noncanonical_biguint.
func (b *Bridge) Reduce(external []byte) *big.Int {
	v := new(big.Int).SetBytes(external)
	return v.Mod(v, b.modulus)
}

// Modulus returns the target field's prime.
func (b *Bridge) Modulus() *big.Int {
	return new(big.Int).Set(b.modulus)
}
