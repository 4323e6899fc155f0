package acir

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	p := &Program{
		PublicParameters:  []Witness{1},
		PrivateParameters: []Witness{2},
		Opcodes: []Opcode{
			{Kind: OpAssertZero, AssertZero: &Expression{
				Constant: ScalarBytes{9},
				Linear:   []LinearTerm{{Coefficient: ScalarBytes{1}, Witness: 2}},
			}},
			{Kind: OpRange, Range: &RangeCall{Witness: 2, NumBits: 8}},
		},
	}

	data, err := EncodeBytes(p)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Opcodes) != 2 || got.Opcodes[1].Range.NumBits != 8 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}
