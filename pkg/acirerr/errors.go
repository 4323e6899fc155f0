// Package acirerr defines the sentinel fatal errors this backend raises for
// malformed input while lowering an ACIR program, each wrapped with the
// failing opcode's position, so callers can match with errors.Is while CLI
// output still names the offending opcode. An opcode of unrecognized kind is
// also fatal, but is reported with a plain error that wraps none of these
// sentinels.
package acirerr

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedMemoryOp is returned when a MemoryOp's operation
	// sub-expression does not resolve at build time to the constant 0 or 1,
	// or its index/value sub-expressions are not single witnesses.
	ErrMalformedMemoryOp = errors.New("acir: malformed memory operation")

	// ErrOutOfRangeWidth is returned when a Range opcode requests more than
	// the 33 bits this backend supports.
	ErrOutOfRangeWidth = errors.New("acir: range width exceeds supported maximum")

	// ErrMismatchedBitwiseWidths is returned when an And/Xor opcode's two
	// operands declare different bit widths.
	ErrMismatchedBitwiseWidths = errors.New("acir: bitwise operands have mismatched widths")

	// ErrUnknownBlock is returned when a MemoryOp references a block that
	// was never initialized by a MemoryInit opcode.
	ErrUnknownBlock = errors.New("acir: memory operation on unknown block")

	// ErrUnboundWitness is returned when an opcode references a witness
	// that no earlier opcode bound and that is not a declared parameter.
	ErrUnboundWitness = errors.New("acir: reference to unbound witness")
)

// AtOpcode wraps a sentinel error with the index and kind of the opcode that
// triggered it.
func AtOpcode(index int, kind fmt.Stringer, err error) error {
	return fmt.Errorf("opcode %d (%s): %w", index, kind, err)
}
