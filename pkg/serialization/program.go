// Package serialization implements the on-disk collaborator formats this
// backend reads and writes: the JSON-wrapped, base64-encoded ACIR program
// file, the gzip+tar witness-stack archive, and raw-byte proof/verifying-key
// files — matching noir_and_plonky2_serialization.rs exactly in shape.
package serialization

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/eryxlabs/acir-plonk-backend/pkg/acir"
)

type programFile struct {
	Bytecode string `json:"bytecode"`
}

// ReadProgram reads an ACIR program file: a JSON object whose "bytecode"
// field is the base64 encoding of the program's wire form.
func ReadProgram(path string) (*acir.Program, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("serialization: read program file: %w", err)
	}
	var pf programFile
	if err := json.Unmarshal(raw, &pf); err != nil {
		return nil, fmt.Errorf("serialization: parse program json: %w", err)
	}
	bytecode, err := base64.StdEncoding.DecodeString(pf.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("serialization: decode program bytecode: %w", err)
	}
	program, err := acir.DecodeBytes(bytecode)
	if err != nil {
		return nil, fmt.Errorf("serialization: decode program: %w", err)
	}
	return program, nil
}

// WriteProgram writes a program file in the same shape ReadProgram expects;
// used by this repository's own tests and fixtures, the way a Noir compiler
// would produce one for a real proving run.
func WriteProgram(path string, program *acir.Program) error {
	bytecode, err := acir.EncodeBytes(program)
	if err != nil {
		return fmt.Errorf("serialization: encode program: %w", err)
	}
	pf := programFile{Bytecode: base64.StdEncoding.EncodeToString(bytecode)}
	raw, err := json.Marshal(pf)
	if err != nil {
		return fmt.Errorf("serialization: marshal program json: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("serialization: write program file: %w", err)
	}
	return nil
}
