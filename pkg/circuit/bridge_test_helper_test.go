package circuit

import (
	"math/big"

	"github.com/eryxlabs/acir-plonk-backend/pkg/acir"
	"github.com/eryxlabs/acir-plonk-backend/pkg/field"
)

// testBridge exposes the field modulus to tests that need to express
// "subtract" as "add the additive inverse" in ACIR's coefficient encoding.
type testBridge struct {
	b *field.Bridge
}

func newTestBridge() testBridge {
	return testBridge{b: field.New()}
}

func (t testBridge) negOneBytes() acir.ScalarBytes {
	return t.negBytes(1)
}

// negBytes returns the additive inverse of n in the circuit's scalar field,
// in the same canonical big-endian form ScalarBytes expects.
func (t testBridge) negBytes(n int64) acir.ScalarBytes {
	neg := t.b.Modulus()
	neg.Sub(neg, big.NewInt(n))
	return acir.ScalarBytes(neg.Bytes())
}
