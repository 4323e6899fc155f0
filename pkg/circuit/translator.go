package circuit

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/lookup/logderivlookup"

	"github.com/eryxlabs/acir-plonk-backend/pkg/acir"
	"github.com/eryxlabs/acir-plonk-backend/pkg/acirerr"
	"github.com/eryxlabs/acir-plonk-backend/pkg/field"
)

// Strategy picks how Range/And/Xor opcodes are lowered. Grounded on
// opcode_translators/strategy_picker.rs: the choice is made once, at
// translator construction, not per opcode.
type Strategy int

const (
	// StrategyBitSplit lowers Range via ToBinary and And/Xor via per-bit
	// gates. This is the default and has no width limitation beyond
	// spec.md's 33-bit cap.
	StrategyBitSplit Strategy = iota
	// StrategyLookupTable lowers 8-bit Range/Xor via a logderivlookup
	// table instead of per-bit decomposition. Only applies when the
	// opcode's width is exactly 8; wider opcodes fall back to bit-split.
	StrategyLookupTable
)

// Translator walks one ACIR program's opcodes and emits the equivalent
// gates against a gnark frontend.API. It is the Go analogue of
// CircuitBuilderFromAcirToPlonky2 in circuit_translation/mod.rs.
type Translator struct {
	api      frontend.API
	bridge   *field.Bridge
	plan     *acir.WitnessPlan
	public   []frontend.Variable
	private  []frontend.Variable
	strategy Strategy

	bindings map[acir.Witness]frontend.Variable
	blocks   map[acir.BlockId]*memoryBlock

	rangeTable *logderivlookup.Table // lazily built, 256-entry identity table
	xorTable   *logderivlookup.Table // lazily built, 65536-entry xor table
}

// NewTranslator constructs a Translator bound to a compiling circuit. public
// and private must already be sized and populated per plan (see
// gnarkcircuit.go).
func NewTranslator(api frontend.API, plan *acir.WitnessPlan, public, private []frontend.Variable, strategy Strategy) *Translator {
	return &Translator{
		api:      api,
		bridge:   field.New(),
		plan:     plan,
		public:   public,
		private:  private,
		strategy: strategy,
		bindings: make(map[acir.Witness]frontend.Variable),
		blocks:   make(map[acir.BlockId]*memoryBlock),
	}
}

// Translate walks every opcode in order, dispatching each to its
// sub-translator. BrilligCall and Directive are no-ops for circuit
// translation, matching spec.md.
func (t *Translator) Translate(p *acir.Program) error {
	t.registerParameters(p)

	for i, op := range p.Opcodes {
		var err error
		switch op.Kind {
		case acir.OpAssertZero:
			err = t.translateAssertZero(op.AssertZero)
		case acir.OpMemoryInit:
			err = t.translateMemoryInit(op.MemoryInit)
		case acir.OpMemoryOp:
			err = t.translateMemoryOp(op.MemoryOp)
		case acir.OpRange:
			err = t.translateRange(op.Range)
		case acir.OpAnd:
			err = t.translateBitwise(op.And, false)
		case acir.OpXor:
			err = t.translateBitwise(op.Xor, true)
		case acir.OpSha256Compression:
			err = t.translateSha256(op.Sha256)
		case acir.OpBrilligCall, acir.OpDirective:
			// no-op
		default:
			err = fmt.Errorf("unrecognized opcode kind %d", op.Kind)
		}
		if err != nil {
			return acirerr.AtOpcode(i, op.Kind, err)
		}
	}
	return nil
}

// registerParameters binds every public and private parameter to its
// circuit-struct slot up front, per spec.md's invariant that public inputs
// are registered before any opcode is translated.
func (t *Translator) registerParameters(p *acir.Program) {
	for _, w := range p.PublicParameters {
		if idx, ok := t.plan.PublicIndex(w); ok {
			t.bindings[w] = t.public[idx]
		}
	}
	for _, w := range p.PrivateParameters {
		if idx, ok := t.plan.PrivateIndex(w); ok {
			t.bindings[w] = t.private[idx]
		}
	}
}

// getOrCreateFree returns the binding for a witness that is expected to
// have a free slot (a public input, private parameter, or intermediate
// operand): the append-only get-or-create pattern of
// _get_or_create_target_for_witness, specialized to the case where the
// slot was already reserved by the witness plan.
func (t *Translator) getOrCreateFree(w acir.Witness) (frontend.Variable, error) {
	if v, ok := t.bindings[w]; ok {
		return v, nil
	}
	if idx, ok := t.plan.PublicIndex(w); ok {
		v := t.public[idx]
		t.bindings[w] = v
		return v, nil
	}
	if idx, ok := t.plan.PrivateIndex(w); ok {
		v := t.private[idx]
		t.bindings[w] = v
		return v, nil
	}
	return nil, acirerr.ErrUnboundWitness
}

// bindDerived records the value a sub-translator computed for a witness.
// If that witness already has a binding — it is a public input or parameter
// whose value this opcode happens to compute, e.g. a program "return value"
// — the two must simply be equal, the same role plonky2's builder.connect
// plays between a pre-registered public target and a later-computed one.
// Otherwise this witness was never given a free slot (it is wholly
// determined by other witnesses), and the computed value becomes its
// binding.
func (t *Translator) bindDerived(w acir.Witness, v frontend.Variable) {
	if existing, ok := t.bindings[w]; ok {
		t.api.AssertIsEqual(existing, v)
		return
	}
	t.bindings[w] = v
}
