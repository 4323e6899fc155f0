package acir

// WitnessPlan records, for one Program, which witnesses need an externally
// supplied value (a "free" slot in the circuit's witness vector) versus
// which are derived forward by a sub-translator from other witnesses and
// therefore never independently assigned. See SPEC_FULL.md §0 and §3.6 for
// why this distinction exists: gnark's frontend auto-computes the value of
// any wire built from arithmetic, unlike the plonky2 frontend this system
// was originally written against.
//
// Public holds the program's public parameters in their original order.
// Private holds every other free witness (private parameters, then
// intermediates) in first-appearance order, matching the get-or-create
// order the real translator would produce.
type WitnessPlan struct {
	Public  []Witness
	Private []Witness

	publicIndex  map[Witness]int
	privateIndex map[Witness]int
	bound        map[Witness]bool
}

// PublicIndex returns the slot of a public witness and whether it is one.
func (p *WitnessPlan) PublicIndex(w Witness) (int, bool) {
	i, ok := p.publicIndex[w]
	return i, ok
}

// PrivateIndex returns the slot of a free (non-public) witness and whether
// it has one. Derived witnesses (memory-read results, bitwise/SHA-256
// outputs) never get a slot; they return ok == false.
func (p *WitnessPlan) PrivateIndex(w Witness) (int, bool) {
	i, ok := p.privateIndex[w]
	return i, ok
}

// BuildPlan replays a Program's opcodes, tracking for each witness whether
// it has already been "bound" (has a value source: either a free slot
// assigned here, or a derived value a sub-translator will compute) and
// assigning a free slot the first time a witness appears as a plain operand
// rather than as the output of a derivation.
func BuildPlan(p *Program) *WitnessPlan {
	plan := &WitnessPlan{
		publicIndex:  map[Witness]int{},
		privateIndex: map[Witness]int{},
		bound:        map[Witness]bool{},
	}

	for _, w := range p.PublicParameters {
		if plan.bound[w] {
			continue
		}
		plan.bound[w] = true
		plan.publicIndex[w] = len(plan.Public)
		plan.Public = append(plan.Public, w)
	}

	freeOperand := func(w Witness) {
		if plan.bound[w] {
			return
		}
		plan.bound[w] = true
		plan.privateIndex[w] = len(plan.Private)
		plan.Private = append(plan.Private, w)
	}
	derivedOutput := func(w Witness) {
		plan.bound[w] = true
	}

	for _, w := range p.PrivateParameters {
		freeOperand(w)
	}

	for _, op := range p.Opcodes {
		switch op.Kind {
		case OpAssertZero:
			e := op.AssertZero
			for _, t := range e.Linear {
				freeOperand(t.Witness)
			}
			for _, t := range e.Quadratic {
				freeOperand(t.Left)
				freeOperand(t.Right)
			}
		case OpMemoryInit:
			for _, w := range op.MemoryInit.Init {
				freeOperand(w)
			}
		case OpMemoryOp:
			mo := op.MemoryOp
			if idx, ok := mo.Index.AsSingleWitness(); ok {
				freeOperand(idx)
			}
			if isWrite(mo) {
				if v, ok := mo.Value.AsSingleWitness(); ok {
					freeOperand(v)
				}
			} else {
				if v, ok := mo.Value.AsSingleWitness(); ok {
					derivedOutput(v)
				}
			}
		case OpRange:
			freeOperand(op.Range.Witness)
		case OpAnd, OpXor:
			bc := op.And
			if op.Kind == OpXor {
				bc = op.Xor
			}
			freeOperand(bc.Lhs)
			freeOperand(bc.Rhs)
			derivedOutput(bc.Output)
		case OpSha256Compression:
			s := op.Sha256
			for _, w := range s.Inputs {
				freeOperand(w)
			}
			for _, w := range s.HashValues {
				freeOperand(w)
			}
			for _, w := range s.Outputs {
				derivedOutput(w)
			}
		case OpBrilligCall, OpDirective:
			// no-ops for circuit translation.
		}
	}

	return plan
}

// isWrite evaluates a MemoryOp's constant operation selector. Per spec.md
// §4.4, a non-constant or out-of-{0,1} operation expression is a malformed
// program; BuildPlan treats such an opcode as a read (the conservative,
// non-mutating interpretation) and leaves the fatal check to the real
// translator, which has the field bridge available to report it precisely.
func isWrite(mo *MemoryOp) bool {
	c, ok := mo.Operation.AsConstant()
	if !ok || len(c) == 0 {
		return false
	}
	for _, b := range c[:len(c)-1] {
		if b != 0 {
			return false
		}
	}
	return c[len(c)-1] == 1
}
