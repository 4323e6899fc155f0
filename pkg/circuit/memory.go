package circuit

import (
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/eryxlabs/acir-plonk-backend/pkg/acir"
	"github.com/eryxlabs/acir-plonk-backend/pkg/acirerr"
)

var bigOne = big.NewInt(1)

// memoryBlock is one ACIR memory block: a vector padded to a power of two
// (so indexed access can be addressed by a fixed-width bit string) together
// with the block's true, unpadded logical length (so in-range checks don't
// let a read wander into padding). Grounded on spec.md §4.4; the retrieved
// memory_translator.rs predates padding and in-range checks entirely.
type memoryBlock struct {
	vector     []frontend.Variable
	logicalLen int
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	if p == 0 {
		p = 1
	}
	return p
}

func bitsFor(n int) int {
	b := 0
	for (1 << b) < n {
		b++
	}
	return b
}

// translateMemoryInit seeds a block's vector from its init witnesses and
// pads it to the next power of two with zero filler.
func (t *Translator) translateMemoryInit(mi *acir.MemoryInit) error {
	vec := make([]frontend.Variable, len(mi.Init))
	for i, w := range mi.Init {
		v, err := t.getOrCreateFree(w)
		if err != nil {
			return err
		}
		vec[i] = v
	}
	padded := nextPowerOfTwo(len(vec))
	for len(vec) < padded {
		vec = append(vec, 0)
	}
	t.blocks[mi.Block] = &memoryBlock{vector: vec, logicalLen: len(mi.Init)}
	return nil
}

// translateMemoryOp lowers a read or write against a previously initialized
// block. The operation selector must resolve at build time to the constant
// 0 (read) or 1 (write); index and value must each be single-witness
// expressions, per spec.md §4.4.
func (t *Translator) translateMemoryOp(mo *acir.MemoryOp) error {
	block, ok := t.blocks[mo.Block]
	if !ok {
		return acirerr.ErrUnknownBlock
	}

	write, err := t.resolveOperationSelector(mo.Operation)
	if err != nil {
		return err
	}

	indexWitness, ok := mo.Index.AsSingleWitness()
	if !ok {
		return acirerr.ErrMalformedMemoryOp
	}
	valueWitness, ok := mo.Value.AsSingleWitness()
	if !ok {
		return acirerr.ErrMalformedMemoryOp
	}
	indexVar, err := t.getOrCreateFree(indexWitness)
	if err != nil {
		return err
	}

	// In-range obligation: index must address a real (unpadded) slot.
	if block.logicalLen > 0 {
		t.api.AssertIsLessOrEqual(indexVar, block.logicalLen-1)
	}

	width := bitsFor(len(block.vector))
	idxBits := FromVariable(t.api, indexVar, width)

	if write {
		valueVar, err := t.getOrCreateFree(valueWitness)
		if err != nil {
			return err
		}
		newVector := make([]frontend.Variable, len(block.vector))
		for slot := range block.vector {
			eq := t.slotMatchesIndex(idxBits, slot)
			newVector[slot] = t.api.Select(eq, valueVar, block.vector[slot])
		}
		block.vector = newVector
		return nil
	}

	result := t.indexedAccess(block.vector, idxBits.Bits())
	t.bindDerived(valueWitness, result)
	return nil
}

// resolveOperationSelector evaluates a MemoryOp's operation expression,
// which must be a build-time constant 0 or 1. The comparison happens on the
// plain *big.Int the field bridge produces, not on a circuit wire — the
// selector decides which gates get emitted, so it must be known outside the
// circuit entirely.
func (t *Translator) resolveOperationSelector(e acir.Expression) (write bool, err error) {
	c, ok := e.AsConstant()
	if !ok {
		return false, acirerr.ErrMalformedMemoryOp
	}
	v := t.bridge.Reduce(c)
	switch {
	case v.Sign() == 0:
		return false, nil
	case v.Cmp(bigOne) == 0:
		return true, nil
	default:
		return false, acirerr.ErrMalformedMemoryOp
	}
}

// indexedAccess selects the vector entry addressed by bitsMSBFirst via a
// recursive binary selection tree (a mux tree): each level halves the
// candidate range, consuming one address bit. Circuit depth is O(log L);
// gnark has no constant-cost "indexed access" gate the way plonky2 does, so
// total gate count here is O(L), a documented complexity regression (see
// DESIGN.md) rather than a silent one.
func (t *Translator) indexedAccess(vec []frontend.Variable, bitsMSBFirst []frontend.Variable) frontend.Variable {
	if len(vec) == 1 {
		return vec[0]
	}
	half := len(vec) / 2
	bit := bitsMSBFirst[0]
	low := t.indexedAccess(vec[:half], bitsMSBFirst[1:])
	high := t.indexedAccess(vec[half:], bitsMSBFirst[1:])
	return t.api.Select(bit, high, low)
}

// slotMatchesIndex builds the boolean indicator "index == slot" from the
// index's bit decomposition and the slot's known constant bits, by
// multiplying per-bit equality terms together (each itself boolean, since
// the inputs are boolean).
func (t *Translator) slotMatchesIndex(idxBits BinaryDigits, slot int) frontend.Variable {
	bits := idxBits.Bits()
	width := len(bits)
	acc := frontend.Variable(1)
	for i := 0; i < width; i++ {
		constBit := (slot >> (width - 1 - i)) & 1
		var term frontend.Variable
		if constBit == 1 {
			term = bits[i]
		} else {
			term = t.api.Sub(1, bits[i])
		}
		acc = t.api.Mul(acc, term)
	}
	return acc
}
