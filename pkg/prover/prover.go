// Package prover compiles an ACIR program into a gnark PLONK circuit, runs
// the (development) trusted setup, and generates/verifies proofs against
// it. Structurally grounded on pkg/crypto/bls_zkp/prover.go (a mutex-guarded
// struct holding the compiled constraint system and its keys, an
// Initialize/Compile step separate from proof generation, keys
// read/written via WriteTo/ReadFrom), swapped from Groth16/R1CS to
// PLONK/SCS to match spec.md's "PLONK-family" proving system.
package prover

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/scs"
	"github.com/consensys/gnark/test/unsafekzg"

	"github.com/eryxlabs/acir-plonk-backend/pkg/acir"
	circ "github.com/eryxlabs/acir-plonk-backend/pkg/circuit"
)

// Prover holds one compiled circuit and its proving/verifying keys.
type Prover struct {
	mu sync.RWMutex

	ccs constraint.ConstraintSystem
	pk  plonk.ProvingKey
	vk  plonk.VerifyingKey

	plan     *acir.WitnessPlan
	strategy circ.Strategy

	compiled bool
	keyed    bool
}

// New returns an empty, uncompiled Prover. strategy selects the bit-split
// or lookup-table lowering for Range/And/Xor opcodes.
func New(strategy circ.Strategy) *Prover {
	return &Prover{strategy: strategy}
}

// Compile builds the plan and the gnark constraint system for a program.
// Must run before Setup, Prove, or WriteVerifyingKey.
func (p *Prover) Compile(program *acir.Program) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	plan := acir.BuildPlan(program)
	circuit := circ.NewCircuit(program, plan, p.strategy)

	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), scs.NewBuilder, circuit)
	if err != nil {
		return fmt.Errorf("prover: compile circuit: %w", err)
	}

	p.ccs = ccs
	p.plan = plan
	p.compiled = true
	return nil
}

// Setup runs a development trusted setup via gnark's unsafekzg test helper,
// standing in for a production KZG ceremony — documented in DESIGN.md, the
// same role the "write_vk" CLI action plays in the original system.
func (p *Prover) Setup() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.compiled {
		return fmt.Errorf("prover: setup before compile")
	}
	srs, srsLagrange, err := unsafekzg.NewSRS(p.ccs)
	if err != nil {
		return fmt.Errorf("prover: generate srs: %w", err)
	}
	pk, vk, err := plonk.Setup(p.ccs, srs, srsLagrange)
	if err != nil {
		return fmt.Errorf("prover: setup: %w", err)
	}
	p.pk, p.vk = pk, vk
	p.keyed = true
	return nil
}

// Plan exposes the witness plan computed during Compile, needed by callers
// to build a circuit assignment from a witness stack.
func (p *Prover) Plan() *acir.WitnessPlan {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.plan
}

// Prove generates a proof for the given fully-assigned circuit.
func (p *Prover) Prove(assigned *circ.Circuit) (plonk.Proof, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.keyed {
		return nil, fmt.Errorf("prover: prove before setup")
	}
	fullWitness, err := frontend.NewWitness(assigned, ecc.BN254.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("prover: build witness: %w", err)
	}
	proof, err := plonk.Prove(p.ccs, p.pk, fullWitness)
	if err != nil {
		return nil, fmt.Errorf("prover: prove: %w", err)
	}
	return proof, nil
}

// VerifyStandalone checks a proof artifact against a verifying key, needing
// neither the compiled program nor a live Prover — matching verify_action.rs,
// which verifies from nothing but a vk file and a proof file. gnark's
// plonk.Verify, unlike plonky2's verify_compressed, takes the public inputs
// as an explicit argument rather than reading them back out of the proof, so
// the Artifact this package serializes bundles them alongside the proof
// bytes (see WriteProofArtifact) to keep the CLI's two-flag verify UX.
func VerifyStandalone(vk plonk.VerifyingKey, artifact *Artifact) error {
	proof, err := decodeProof(artifact.ProofBytes)
	if err != nil {
		return err
	}
	publicValues := make([]frontend.Variable, len(artifact.PublicInputs))
	for i, b := range artifact.PublicInputs {
		publicValues[i] = new(big.Int).SetBytes(b)
	}
	assignment := circ.NewPublicAssignment(publicValues)
	publicWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return fmt.Errorf("prover: build public witness: %w", err)
	}
	if err := plonk.Verify(proof, vk, publicWitness); err != nil {
		return fmt.Errorf("prover: verify: %w", err)
	}
	return nil
}

// WriteVerifyingKey serializes the verifying key, matching write_vk_action.rs's
// "compile then emit verifier data" shape.
func (p *Prover) WriteVerifyingKey(w io.Writer) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.keyed {
		return fmt.Errorf("prover: write verifying key before setup")
	}
	if _, err := p.vk.WriteTo(w); err != nil {
		return fmt.Errorf("prover: write verifying key: %w", err)
	}
	return nil
}

// ReadVerifyingKey loads a previously written verifying key, matching
// deserialize_verifying_key_within_file_path.
func ReadVerifyingKey(r io.Reader) (plonk.VerifyingKey, error) {
	vk := plonk.NewVerifyingKey(ecc.BN254)
	if _, err := vk.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("prover: read verifying key: %w", err)
	}
	return vk, nil
}

// Artifact is the on-disk proof file: the raw PLONK proof plus the public
// inputs it was generated against, gob-encoded. Bundling the public inputs
// here (rather than requiring a separate flag) keeps the prove/verify CLI
// surface matching spec.md's two-flag shape despite gnark's Verify needing
// them explicitly where plonky2's did not.
type Artifact struct {
	ProofBytes   []byte
	PublicInputs [][]byte
}

// WriteProofArtifact serializes a proof and its public inputs.
func WriteProofArtifact(w io.Writer, proof plonk.Proof, publicInputs [][]byte) error {
	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return fmt.Errorf("prover: encode proof: %w", err)
	}
	a := Artifact{ProofBytes: buf.Bytes(), PublicInputs: publicInputs}
	if err := gob.NewEncoder(w).Encode(a); err != nil {
		return fmt.Errorf("prover: encode proof artifact: %w", err)
	}
	return nil
}

// ReadProofArtifact deserializes a proof artifact previously written by
// WriteProofArtifact.
func ReadProofArtifact(r io.Reader) (*Artifact, error) {
	var a Artifact
	if err := gob.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("prover: decode proof artifact: %w", err)
	}
	return &a, nil
}

func decodeProof(data []byte) (plonk.Proof, error) {
	proof := plonk.NewProof(ecc.BN254)
	if _, err := proof.ReadFrom(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("prover: decode proof: %w", err)
	}
	return proof, nil
}
