package acir

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
)

// Encode serializes a Program to its wire form. The real ACIR bytecode
// format is a bincode encoding private to the Noir toolchain; this backend
// treats the upstream encoder/decoder as an external collaborator and uses
// encoding/gob as a stand-in, documented in DESIGN.md.
func Encode(w io.Writer, p *Program) error {
	if err := gob.NewEncoder(w).Encode(p); err != nil {
		return fmt.Errorf("acir: encode program: %w", err)
	}
	return nil
}

// Decode reads a Program previously written by Encode.
func Decode(r io.Reader) (*Program, error) {
	var p Program
	if err := gob.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("acir: decode program: %w", err)
	}
	return &p, nil
}

// EncodeBytes is a convenience wrapper returning the encoded form directly.
func EncodeBytes(p *Program) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeBytes is a convenience wrapper decoding from an in-memory buffer.
func DecodeBytes(data []byte) (*Program, error) {
	return Decode(bytes.NewReader(data))
}
