package serialization

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/eryxlabs/acir-plonk-backend/pkg/acir"
)

const witnessStackEntryName = "witnesses"

// WitnessValues is the fully-solved witness stack: every witness the
// program's opcodes reference, mapped to its external-field scalar bytes.
type WitnessValues map[acir.Witness]acir.ScalarBytes

// ReadWitnessStack opens {path}.gz, matching
// deserialize_witnesses_within_file_path: gzip, then a tar archive holding
// exactly one entry (the real ACIR witness stack's serialized bincode
// form; here, a gob-encoded WitnessValues map — see DESIGN.md).
func ReadWitnessStack(path string) (WitnessValues, error) {
	f, err := os.Open(path + ".gz")
	if err != nil {
		return nil, fmt.Errorf("serialization: open witness stack: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("serialization: gzip witness stack: %w", err)
	}
	defer gz.Close()

	archive := tar.NewReader(gz)
	_, err = archive.Next()
	if err != nil {
		return nil, fmt.Errorf("serialization: read witness stack archive: %w", err)
	}

	var values WitnessValues
	if err := gob.NewDecoder(archive).Decode(&values); err != nil {
		return nil, fmt.Errorf("serialization: decode witness stack: %w", err)
	}
	return values, nil
}

// WriteWitnessStack writes the archive ReadWitnessStack expects, for this
// repository's own fixtures and tests.
func WriteWitnessStack(path string, values WitnessValues) error {
	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(values); err != nil {
		return fmt.Errorf("serialization: encode witness stack: %w", err)
	}

	var tarBuf bytes.Buffer
	tw := tar.NewWriter(&tarBuf)
	hdr := &tar.Header{
		Name: witnessStackEntryName,
		Mode: 0o644,
		Size: int64(payload.Len()),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("serialization: write tar header: %w", err)
	}
	if _, err := io.Copy(tw, &payload); err != nil {
		return fmt.Errorf("serialization: write tar body: %w", err)
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("serialization: close tar writer: %w", err)
	}

	f, err := os.Create(path + ".gz")
	if err != nil {
		return fmt.Errorf("serialization: create witness stack file: %w", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if _, err := gz.Write(tarBuf.Bytes()); err != nil {
		return fmt.Errorf("serialization: gzip witness stack: %w", err)
	}
	return gz.Close()
}
