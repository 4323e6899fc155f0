package circuit

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/scs"
	"github.com/consensys/gnark/test"

	"github.com/eryxlabs/acir-plonk-backend/pkg/acir"
)

// buildAndCheck compiles the program's unassigned shape under strategy,
// assigns it from values, and checks the prover accepts (or rejects, when
// wantFail is set).
func buildAndCheck(t *testing.T, program *acir.Program, values map[acir.Witness]acir.ScalarBytes, strategy Strategy, wantFail bool) {
	t.Helper()
	plan := acir.BuildPlan(program)
	empty := NewCircuit(program, plan, strategy)
	assigned, err := Assign(program, plan, strategy, values)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	assert := test.NewAssert(t)
	if wantFail {
		assert.ProverFailed(empty, assigned, test.WithCurves(ecc.BN254))
		return
	}
	assert.ProverSucceeded(empty, assigned, test.WithCurves(ecc.BN254))
}

func linear(coeff byte, w acir.Witness) acir.LinearTerm {
	return acir.LinearTerm{Coefficient: acir.ScalarBytes{coeff}, Witness: w}
}

func scalarU32(v uint32) acir.ScalarBytes {
	return acir.ScalarBytes(big.NewInt(int64(v)).Bytes())
}

// TestAssertZeroEqualityConstraint builds w1 - w2 == 0 and checks it accepts
// equal inputs and rejects unequal ones.
func TestAssertZeroEqualityConstraint(t *testing.T) {
	bridge := newTestBridge()
	program := &acir.Program{
		PublicParameters:  []acir.Witness{1},
		PrivateParameters: []acir.Witness{2},
		Opcodes: []acir.Opcode{
			{Kind: acir.OpAssertZero, AssertZero: &acir.Expression{
				// w1 - w2 == 0, expressed as 1*w1 + (p-1)*w2.
				Linear: []acir.LinearTerm{
					linear(1, 1),
					{Coefficient: bridge.negOneBytes(), Witness: 2},
				},
			}},
		},
	}

	values := map[acir.Witness]acir.ScalarBytes{1: {7}, 2: {7}}
	buildAndCheck(t, program, values, StrategyBitSplit, false)

	badValues := map[acir.Witness]acir.ScalarBytes{1: {7}, 2: {8}}
	buildAndCheck(t, program, badValues, StrategyBitSplit, true)
}

// TestAssertZeroQuadratic builds "2*x*x - 32 == 0" (spec.md §8 scenario 3)
// and checks it accepts x=4 and rejects x=5.
func TestAssertZeroQuadratic(t *testing.T) {
	bridge := newTestBridge()
	program := &acir.Program{
		PublicParameters: []acir.Witness{1},
		Opcodes: []acir.Opcode{
			{Kind: acir.OpAssertZero, AssertZero: &acir.Expression{
				Constant: bridge.negBytes(32),
				Quadratic: []acir.QuadraticTerm{
					{Coefficient: acir.ScalarBytes{2}, Left: 1, Right: 1},
				},
			}},
		},
	}

	buildAndCheck(t, program, map[acir.Witness]acir.ScalarBytes{1: {4}}, StrategyBitSplit, false)
	buildAndCheck(t, program, map[acir.Witness]acir.ScalarBytes{1: {5}}, StrategyBitSplit, true)
}

func TestXorBitSplit(t *testing.T) {
	bridge := newTestBridge()
	program := &acir.Program{
		PublicParameters: []acir.Witness{1, 2, 3},
		Opcodes: []acir.Opcode{
			{Kind: acir.OpXor, Xor: &acir.BitwiseCall{Lhs: 1, Rhs: 2, LhsBits: 8, RhsBits: 8, Output: 4}},
			{Kind: acir.OpAssertZero, AssertZero: &acir.Expression{
				Linear: []acir.LinearTerm{
					linear(1, 4),
					{Coefficient: bridge.negOneBytes(), Witness: 3},
				},
			}},
		},
	}

	values := map[acir.Witness]acir.ScalarBytes{1: {0b1010}, 2: {0b0110}, 3: {0b1100}}
	buildAndCheck(t, program, values, StrategyBitSplit, false)
}

// TestXorLookupTable exercises the 8-bit logderivlookup path in bitwise.go,
// never reached by TestXorBitSplit which always compiles under StrategyBitSplit.
func TestXorLookupTable(t *testing.T) {
	bridge := newTestBridge()
	program := &acir.Program{
		PublicParameters: []acir.Witness{1, 2, 3},
		Opcodes: []acir.Opcode{
			{Kind: acir.OpXor, Xor: &acir.BitwiseCall{Lhs: 1, Rhs: 2, LhsBits: 8, RhsBits: 8, Output: 4}},
			{Kind: acir.OpAssertZero, AssertZero: &acir.Expression{
				Linear: []acir.LinearTerm{
					linear(1, 4),
					{Coefficient: bridge.negOneBytes(), Witness: 3},
				},
			}},
		},
	}

	values := map[acir.Witness]acir.ScalarBytes{1: {0b1010}, 2: {0b0110}, 3: {0b1100}}
	buildAndCheck(t, program, values, StrategyLookupTable, false)
}

// TestRangeLookupTable exercises the 8-bit range-check lookup path in
// bitwise.go (rangeLookupTable), which TestRangeBoundaryWidths never reaches
// since it always compiles under StrategyBitSplit.
func TestRangeLookupTable(t *testing.T) {
	program := &acir.Program{
		PublicParameters: []acir.Witness{1},
		Opcodes: []acir.Opcode{
			{Kind: acir.OpRange, Range: &acir.RangeCall{Witness: 1, NumBits: 8}},
		},
	}

	buildAndCheck(t, program, map[acir.Witness]acir.ScalarBytes{1: {255}}, StrategyLookupTable, false)
}

// TestAndBitSplit exercises translateBitwise's AND branch, which has no
// lookup-table variant and always bit-splits.
func TestAndBitSplit(t *testing.T) {
	bridge := newTestBridge()
	program := &acir.Program{
		PublicParameters: []acir.Witness{1, 2, 3},
		Opcodes: []acir.Opcode{
			{Kind: acir.OpAnd, And: &acir.BitwiseCall{Lhs: 1, Rhs: 2, LhsBits: 8, RhsBits: 8, Output: 4}},
			{Kind: acir.OpAssertZero, AssertZero: &acir.Expression{
				Linear: []acir.LinearTerm{
					linear(1, 4),
					{Coefficient: bridge.negOneBytes(), Witness: 3},
				},
			}},
		},
	}

	values := map[acir.Witness]acir.ScalarBytes{1: {0b1010}, 2: {0b0110}, 3: {0b0010}}
	buildAndCheck(t, program, values, StrategyBitSplit, false)
}

// TestRangeBoundaryWidths checks spec.md §8's width-8 boundary: a value that
// fits in 8 bits is accepted, and 2^8 (one bit too wide) is rejected.
func TestRangeBoundaryWidths(t *testing.T) {
	program := &acir.Program{
		PublicParameters: []acir.Witness{1},
		Opcodes: []acir.Opcode{
			{Kind: acir.OpRange, Range: &acir.RangeCall{Witness: 1, NumBits: 8}},
		},
	}

	buildAndCheck(t, program, map[acir.Witness]acir.ScalarBytes{1: {255}}, StrategyBitSplit, false)
	buildAndCheck(t, program, map[acir.Witness]acir.ScalarBytes{1: scalarU32(256)}, StrategyBitSplit, true)
}

// TestRangeWidthTooWideRejectedAtBuildTime checks spec.md §8's "width >= 34
// rejected at build time" rule: translateRange returns acirerr.ErrOutOfRangeWidth
// before any gate is emitted, so frontend.Compile itself must fail, not the
// prover.
func TestRangeWidthTooWideRejectedAtBuildTime(t *testing.T) {
	program := &acir.Program{
		PublicParameters: []acir.Witness{1},
		Opcodes: []acir.Opcode{
			{Kind: acir.OpRange, Range: &acir.RangeCall{Witness: 1, NumBits: maxRangeBits + 1}},
		},
	}
	plan := acir.BuildPlan(program)
	circuit := NewCircuit(program, plan, StrategyBitSplit)
	if _, err := frontend.Compile(ecc.BN254.ScalarField(), scs.NewBuilder, circuit); err == nil {
		t.Fatalf("expected compile to fail for a %d-bit range check", maxRangeBits+1)
	}
}

// TestMemoryReadWrite writes one slot of a 3-element (power-of-two padded to
// 4) block and checks both the written slot and an untouched slot read back
// correctly (spec.md §8 scenario 5). The out-of-range read is covered by
// TestMemoryOutOfRangeReadRejected.
func TestMemoryReadWrite(t *testing.T) {
	program := &acir.Program{
		PublicParameters: []acir.Witness{10, 11},
		Opcodes: []acir.Opcode{
			{Kind: acir.OpMemoryInit, MemoryInit: &acir.MemoryInit{Block: 1, Init: []acir.Witness{20, 21, 22}}},
			{Kind: acir.OpMemoryOp, MemoryOp: &acir.MemoryOp{ // write 99 at index 0
				Block:     1,
				Operation: acir.Expression{Constant: acir.ScalarBytes{1}},
				Index:     acir.Expression{Linear: []acir.LinearTerm{linear(1, 30)}},
				Value:     acir.Expression{Linear: []acir.LinearTerm{linear(1, 31)}},
			}},
			{Kind: acir.OpMemoryOp, MemoryOp: &acir.MemoryOp{ // read index 0 into w10 (public)
				Block:     1,
				Operation: acir.Expression{Constant: acir.ScalarBytes{0}},
				Index:     acir.Expression{Linear: []acir.LinearTerm{linear(1, 30)}},
				Value:     acir.Expression{Linear: []acir.LinearTerm{linear(1, 10)}},
			}},
			{Kind: acir.OpMemoryOp, MemoryOp: &acir.MemoryOp{ // read untouched index 1 into w11 (public)
				Block:     1,
				Operation: acir.Expression{Constant: acir.ScalarBytes{0}},
				Index:     acir.Expression{Linear: []acir.LinearTerm{linear(1, 32)}},
				Value:     acir.Expression{Linear: []acir.LinearTerm{linear(1, 11)}},
			}},
		},
	}
	values := map[acir.Witness]acir.ScalarBytes{
		20: {1}, 21: {2}, 22: {3}, // init vector
		30: {0},  // write/read index
		31: {99}, // value written
		32: {1},  // untouched read index
		10: {99}, // expected read-back at index 0
		11: {2},  // expected read-back at index 1 (unchanged)
	}
	buildAndCheck(t, program, values, StrategyBitSplit, false)
}

// TestMemoryOutOfRangeReadRejected reads the first padded (logically
// out-of-range) slot of a 3-element block padded to 4, which must fail the
// in-range obligation (spec.md §8: "at index L rejected").
func TestMemoryOutOfRangeReadRejected(t *testing.T) {
	program := &acir.Program{
		PublicParameters: []acir.Witness{10},
		Opcodes: []acir.Opcode{
			{Kind: acir.OpMemoryInit, MemoryInit: &acir.MemoryInit{Block: 1, Init: []acir.Witness{20, 21, 22}}},
			{Kind: acir.OpMemoryOp, MemoryOp: &acir.MemoryOp{ // read index 3, logicalLen is 3 (valid indices 0..2)
				Block:     1,
				Operation: acir.Expression{Constant: acir.ScalarBytes{0}},
				Index:     acir.Expression{Linear: []acir.LinearTerm{linear(1, 30)}},
				Value:     acir.Expression{Linear: []acir.LinearTerm{linear(1, 10)}},
			}},
		},
	}
	values := map[acir.Witness]acir.ScalarBytes{
		20: {1}, 21: {2}, 22: {3},
		30: {3},
		10: {0},
	}
	buildAndCheck(t, program, values, StrategyBitSplit, true)
}

// TestSha256Compression checks the published empty-string SHA-256 digest
// (spec.md §8 scenario 6): message word0 = 0x80000000, words 1-15 = 0, the
// standard initial hash values, expecting
// e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855.
func TestSha256Compression(t *testing.T) {
	var inputs [16]acir.Witness
	for i := range inputs {
		inputs[i] = acir.Witness(1 + i) // witnesses 1..16
	}
	var hashValues [8]acir.Witness
	for i := range hashValues {
		hashValues[i] = acir.Witness(17 + i) // witnesses 17..24
	}
	var outputs [8]acir.Witness
	for i := range outputs {
		outputs[i] = acir.Witness(25 + i) // witnesses 25..32, derived
	}

	expectedPublic := [8]acir.Witness{101, 102, 103, 104, 105, 106, 107, 108}

	bridge := newTestBridge()
	opcodes := []acir.Opcode{
		{Kind: acir.OpSha256Compression, Sha256: &acir.Sha256Call{
			Inputs:     inputs,
			HashValues: hashValues,
			Outputs:    outputs,
		}},
	}
	for i := 0; i < 8; i++ {
		opcodes = append(opcodes, acir.Opcode{Kind: acir.OpAssertZero, AssertZero: &acir.Expression{
			Linear: []acir.LinearTerm{
				linear(1, outputs[i]),
				{Coefficient: bridge.negOneBytes(), Witness: expectedPublic[i]},
			},
		}})
	}

	program := &acir.Program{
		PublicParameters: expectedPublic[:],
		Opcodes:          opcodes,
	}

	values := map[acir.Witness]acir.ScalarBytes{
		inputs[0]: scalarU32(0x80000000),
		// inputs[1..15] default to zero padding.
		hashValues[0]: scalarU32(0x6a09e667),
		hashValues[1]: scalarU32(0xbb67ae85),
		hashValues[2]: scalarU32(0x3c6ef372),
		hashValues[3]: scalarU32(0xa54ff53a),
		hashValues[4]: scalarU32(0x510e527f),
		hashValues[5]: scalarU32(0x9b05688c),
		hashValues[6]: scalarU32(0x1f83d9ab),
		hashValues[7]: scalarU32(0x5be0cd19),

		expectedPublic[0]: scalarU32(0xe3b0c442),
		expectedPublic[1]: scalarU32(0x98fc1c14),
		expectedPublic[2]: scalarU32(0x9afbf4c8),
		expectedPublic[3]: scalarU32(0x996fb924),
		expectedPublic[4]: scalarU32(0x27ae41e4),
		expectedPublic[5]: scalarU32(0x649b934c),
		expectedPublic[6]: scalarU32(0xa495991b),
		expectedPublic[7]: scalarU32(0x7852b855),
	}
	for i := 1; i < 16; i++ {
		values[inputs[i]] = scalarU32(0)
	}

	buildAndCheck(t, program, values, StrategyBitSplit, false)
}
