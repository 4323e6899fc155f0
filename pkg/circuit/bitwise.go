package circuit

import (
	"github.com/consensys/gnark/std/lookup/logderivlookup"

	"github.com/eryxlabs/acir-plonk-backend/pkg/acir"
	"github.com/eryxlabs/acir-plonk-backend/pkg/acirerr"
)

const maxRangeBits = 33

// translateRange lowers a Range opcode. With StrategyBitSplit (the
// default), api.ToBinary's boolean-constrained decomposition IS the range
// check; widths above 33 bits are rejected per spec.md. With
// StrategyLookupTable and an 8-bit width, a 256-entry identity table stands
// in for range_check_strategies.rs's RangeCheckWithLookupTable: an
// out-of-table value makes the lookup argument unsatisfiable, which is the
// constraint.
func (t *Translator) translateRange(rc *acir.RangeCall) error {
	if rc.NumBits > maxRangeBits {
		return acirerr.ErrOutOfRangeWidth
	}
	v, err := t.getOrCreateFree(rc.Witness)
	if err != nil {
		return err
	}
	if t.strategy == StrategyLookupTable && rc.NumBits == 8 {
		table := t.rangeLookupTable()
		result := table.Lookup(v)
		t.api.AssertIsEqual(result[0], v)
		return nil
	}
	t.api.ToBinary(v, int(rc.NumBits))
	return nil
}

func (t *Translator) rangeLookupTable() *logderivlookup.Table {
	if t.rangeTable != nil {
		return t.rangeTable
	}
	tbl := logderivlookup.New(t.api)
	for i := 0; i < 256; i++ {
		tbl.Insert(i)
	}
	t.rangeTable = tbl
	return tbl
}

func (t *Translator) xorLookupTable() *logderivlookup.Table {
	if t.xorTable != nil {
		return t.xorTable
	}
	tbl := logderivlookup.New(t.api)
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			tbl.Insert(a ^ b)
		}
	}
	t.xorTable = tbl
	return tbl
}

// translateBitwise lowers an And or Xor opcode. XOR additionally supports
// the 8-bit lookup-table strategy (xor_strategies.rs's XorWithLookupTable,
// compressing the pair (lhs,rhs) into a single index 256*lhs+rhs exactly as
// _xor_to_compressed_value does); AND has no lookup variant in the source
// this is grounded on and always bit-splits.
func (t *Translator) translateBitwise(bc *acir.BitwiseCall, isXor bool) error {
	if bc.LhsBits != bc.RhsBits {
		return acirerr.ErrMismatchedBitwiseWidths
	}
	lhs, err := t.getOrCreateFree(bc.Lhs)
	if err != nil {
		return err
	}
	rhs, err := t.getOrCreateFree(bc.Rhs)
	if err != nil {
		return err
	}

	if isXor && t.strategy == StrategyLookupTable && bc.LhsBits == 8 {
		table := t.xorLookupTable()
		index := t.api.Add(t.api.Mul(256, lhs), rhs)
		result := table.Lookup(index)
		t.bindDerived(bc.Output, result[0])
		return nil
	}

	width := int(bc.LhsBits)
	lhsBits := FromVariable(t.api, lhs, width)
	rhsBits := FromVariable(t.api, rhs, width)
	var outBits BinaryDigits
	if isXor {
		outBits = Xor(t.api, lhsBits, rhsBits)
	} else {
		outBits = And(t.api, lhsBits, rhsBits)
	}
	t.bindDerived(bc.Output, outBits.ToVariable(t.api))
	return nil
}
