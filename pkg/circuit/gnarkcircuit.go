// Package circuit lowers one ACIR program into a gnark circuit: opcode
// dispatch (translator.go), assert-zero (assertzero.go), memory
// (memory.go), SHA-256 compression (sha256.go) and bitwise/range
// (bitwise.go), all built on the MSB-first bit type in binarydigits.go.
package circuit

import (
	"fmt"

	"github.com/consensys/gnark/frontend"

	"github.com/eryxlabs/acir-plonk-backend/pkg/acir"
	"github.com/eryxlabs/acir-plonk-backend/pkg/field"
)

// Circuit adapts one ACIR Program to gnark's frontend.Circuit interface.
// Public and Private are sized from a WitnessPlan before compilation — see
// SPEC_FULL.md §3.6 for why the plan has to exist before frontend.Compile
// runs. program and plan are unexported so gnark's reflection-based schema
// walker (which only visits exported fields) never tries to interpret them.
type Circuit struct {
	Public  []frontend.Variable `gnark:",public"`
	Private []frontend.Variable

	program  *acir.Program
	plan     *acir.WitnessPlan
	strategy Strategy
}

// NewCircuit builds an empty (unassigned) Circuit shaped for compilation:
// Public/Private are allocated to the sizes the plan requires, with no
// values set.
func NewCircuit(program *acir.Program, plan *acir.WitnessPlan, strategy Strategy) *Circuit {
	return &Circuit{
		Public:   make([]frontend.Variable, len(plan.Public)),
		Private:  make([]frontend.Variable, len(plan.Private)),
		program:  program,
		plan:     plan,
		strategy: strategy,
	}
}

// Define walks the program's opcodes, emitting gates via api.
func (c *Circuit) Define(api frontend.API) error {
	t := NewTranslator(api, c.plan, c.Public, c.Private, c.strategy)
	return t.Translate(c.program)
}

// NewPublicAssignment builds a Circuit carrying only public values, usable
// to construct a public-only gnark witness for standalone verification
// (where the caller has a proof and a verifying key but never compiled the
// program itself).
func NewPublicAssignment(publicValues []frontend.Variable) *Circuit {
	return &Circuit{Public: publicValues}
}

// Assign builds a fully-valued Circuit suitable for witness computation,
// taking each free witness's value from a solved witness stack (external
// witness→scalar map, see pkg/serialization). Every witness the plan marked
// free must have an entry; this mirrors the original's "the witness stack
// supplies a value for every free target" contract.
func Assign(program *acir.Program, plan *acir.WitnessPlan, strategy Strategy, values map[acir.Witness]acir.ScalarBytes) (*Circuit, error) {
	bridge := field.New()
	c := NewCircuit(program, plan, strategy)

	for i, w := range plan.Public {
		bytes, ok := values[w]
		if !ok {
			return nil, fmt.Errorf("circuit: missing value for public witness %d", w)
		}
		c.Public[i] = bridge.Reduce(bytes)
	}
	for i, w := range plan.Private {
		bytes, ok := values[w]
		if !ok {
			return nil, fmt.Errorf("circuit: missing value for private witness %d", w)
		}
		c.Private[i] = bridge.Reduce(bytes)
	}
	return c, nil
}
