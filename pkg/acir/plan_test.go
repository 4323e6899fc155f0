package acir

import "testing"

func TestBuildPlanOrdersPublicThenPrivateThenIntermediates(t *testing.T) {
	p := &Program{
		PublicParameters:  []Witness{1},
		PrivateParameters: []Witness{2},
		Opcodes: []Opcode{
			{Kind: OpAssertZero, AssertZero: &Expression{
				Linear: []LinearTerm{{Coefficient: ScalarBytes{1}, Witness: 3}},
			}},
		},
	}
	plan := BuildPlan(p)

	if idx, ok := plan.PublicIndex(1); !ok || idx != 0 {
		t.Fatalf("witness 1 should be public slot 0, got %d,%v", idx, ok)
	}
	if idx, ok := plan.PrivateIndex(2); !ok || idx != 0 {
		t.Fatalf("witness 2 should be private slot 0, got %d,%v", idx, ok)
	}
	if idx, ok := plan.PrivateIndex(3); !ok || idx != 1 {
		t.Fatalf("witness 3 should be private slot 1, got %d,%v", idx, ok)
	}
}

func constWitness(w Witness) Expression {
	return Expression{Linear: []LinearTerm{{Coefficient: ScalarBytes{1}, Witness: w}}}
}

func TestBuildPlanMemoryReadResultIsDerivedNotFree(t *testing.T) {
	p := &Program{
		Opcodes: []Opcode{
			{Kind: OpMemoryInit, MemoryInit: &MemoryInit{Block: 1, Init: []Witness{10, 11}}},
			{Kind: OpMemoryOp, MemoryOp: &MemoryOp{
				Block:     1,
				Operation: Expression{Constant: ScalarBytes{0}},
				Index:     constWitness(20),
				Value:     constWitness(21),
			}},
		},
	}
	plan := BuildPlan(p)

	if _, ok := plan.PrivateIndex(21); ok {
		t.Fatalf("read destination witness 21 must not have a free slot")
	}
	if _, ok := plan.PrivateIndex(20); !ok {
		t.Fatalf("index witness 20 must have a free slot")
	}
}

func TestBuildPlanMemoryWriteValueIsFree(t *testing.T) {
	p := &Program{
		Opcodes: []Opcode{
			{Kind: OpMemoryInit, MemoryInit: &MemoryInit{Block: 1, Init: []Witness{10}}},
			{Kind: OpMemoryOp, MemoryOp: &MemoryOp{
				Block:     1,
				Operation: Expression{Constant: ScalarBytes{1}},
				Index:     constWitness(20),
				Value:     constWitness(21),
			}},
		},
	}
	plan := BuildPlan(p)

	if _, ok := plan.PrivateIndex(21); !ok {
		t.Fatalf("write value witness 21 must have a free slot")
	}
}

func TestBuildPlanBitwiseOutputIsDerived(t *testing.T) {
	p := &Program{
		Opcodes: []Opcode{
			{Kind: OpXor, Xor: &BitwiseCall{Lhs: 1, Rhs: 2, LhsBits: 8, RhsBits: 8, Output: 3}},
		},
	}
	plan := BuildPlan(p)

	if _, ok := plan.PrivateIndex(3); ok {
		t.Fatalf("xor output must not have a free slot")
	}
	if _, ok := plan.PrivateIndex(1); !ok {
		t.Fatalf("xor lhs must have a free slot")
	}
}

func TestBuildPlanReusesExistingBinding(t *testing.T) {
	p := &Program{
		Opcodes: []Opcode{
			{Kind: OpXor, Xor: &BitwiseCall{Lhs: 1, Rhs: 2, Output: 3}},
			{Kind: OpAssertZero, AssertZero: &Expression{
				Linear: []LinearTerm{{Coefficient: ScalarBytes{1}, Witness: 3}},
			}},
		},
	}
	plan := BuildPlan(p)
	if _, ok := plan.PrivateIndex(3); ok {
		t.Fatalf("witness 3 was bound as a derived output earlier; assert-zero must not re-free it")
	}
}
