// Package ecdsascaffold is partial scaffolding for secp256k1 ECDSA
// signature verification. It is intentionally not reachable from the
// circuit translator's opcode dispatch (pkg/circuit) — no BlackBoxFuncCall
// variant in this backend's ACIR model resolves to it. It exists because
// the system this backend is modeled on carries the same partial,
// never-wired translator (ecdsa_secp256k1_translator.rs in the retrieved
// original source); this package is its Go-idiom counterpart, grounded
// structurally on pkg/crypto/bls's key types and sync.Once initialization.
package ecdsascaffold

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/secp256k1"
	"github.com/consensys/gnark-crypto/ecc/secp256k1/fr"
)

var (
	initOnce  sync.Once
	generator secp256k1.G1Affine
)

// Sizes of the encoded forms this scaffolding expects.
const (
	PublicKeySize = 64 // uncompressed X||Y, 32 bytes each
	SignatureSize = 64 // R||S, 32 bytes each
)

// Initialize sets up the curve generator. Safe to call more than once.
func Initialize() {
	initOnce.Do(func() {
		_, _, g, _ := secp256k1.Generators()
		generator = g
	})
}

// PublicKey is an uncompressed secp256k1 curve point.
type PublicKey struct {
	point secp256k1.G1Affine
}

// ParsePublicKey decodes a 64-byte uncompressed public key (X||Y).
func ParsePublicKey(data []byte) (*PublicKey, error) {
	if len(data) != PublicKeySize {
		return nil, fmt.Errorf("ecdsascaffold: public key must be %d bytes, got %d", PublicKeySize, len(data))
	}
	var point secp256k1.G1Affine
	point.X.SetBytes(data[:32])
	point.Y.SetBytes(data[32:])
	if !point.IsOnCurve() {
		return nil, fmt.Errorf("ecdsascaffold: point is not on the secp256k1 curve")
	}
	return &PublicKey{point: point}, nil
}

// Signature is an (r, s) ECDSA signature pair over secp256k1's scalar field.
type Signature struct {
	R, S fr.Element
}

// ParseSignature decodes a 64-byte signature (R||S).
func ParseSignature(data []byte) (*Signature, error) {
	if len(data) != SignatureSize {
		return nil, fmt.Errorf("ecdsascaffold: signature must be %d bytes, got %d", SignatureSize, len(data))
	}
	var sig Signature
	sig.R.SetBytes(data[:32])
	sig.S.SetBytes(data[32:])
	return &sig, nil
}

// Verify is unimplemented: it exists to mark the shape the full ECDSA
// verification gadget would take (message hash, public key, signature) ->
// (valid bool, error), matching how ecdsa_secp256k1_translator.rs is
// structured in the source this backend is grounded on, without the
// corresponding circuit-side translator to back it.
func Verify(messageHash *big.Int, pub *PublicKey, sig *Signature) (bool, error) {
	return false, fmt.Errorf("ecdsascaffold: verification not implemented; scaffolding only")
}
