package circuit

import (
	"github.com/consensys/gnark/frontend"

	"github.com/eryxlabs/acir-plonk-backend/pkg/acir"
)

// translateAssertZero lowers one ACIR AssertZero expression to gate
// arithmetic and a final zero assertion. Grounded directly on
// assert_zero_translator.rs: accumulate the constant, then every linear
// term, then every quadratic term, and assert the running total is zero.
func (t *Translator) translateAssertZero(e *acir.Expression) error {
	acc := t.bridgeConstant(e.Constant)

	for _, lt := range e.Linear {
		factor := t.bridgeConstant(lt.Coefficient)
		target, err := t.getOrCreateFree(lt.Witness)
		if err != nil {
			return err
		}
		acc = t.api.Add(acc, t.api.Mul(factor, target))
	}

	for _, qt := range e.Quadratic {
		factor := t.bridgeConstant(qt.Coefficient)
		left, err := t.getOrCreateFree(qt.Left)
		if err != nil {
			return err
		}
		right, err := t.getOrCreateFree(qt.Right)
		if err != nil {
			return err
		}
		product := t.api.Mul(left, right)
		acc = t.api.Add(acc, t.api.Mul(factor, product))
	}

	t.api.AssertIsEqual(acc, 0)
	return nil
}

// bridgeConstant reduces an external-field constant into the circuit's
// scalar field via the field bridge.
func (t *Translator) bridgeConstant(c acir.ScalarBytes) frontend.Variable {
	return t.bridge.Reduce(c)
}
