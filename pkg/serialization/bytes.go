package serialization

import (
	"fmt"
	"os"
)

// ReadBytes reads a raw-byte artifact file (a proof or a verifying key),
// matching read_file_to_bytes.
func ReadBytes(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("serialization: read %s: %w", path, err)
	}
	return data, nil
}

// WriteBytes writes a raw-byte artifact file, matching write_bytes_to_file_path.
func WriteBytes(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("serialization: write %s: %w", path, err)
	}
	return nil
}
