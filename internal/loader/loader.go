// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/emulator"
)

// Load reads the ROM file at the given path.
func Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := LoadReader(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}

// LoadReader reads a ROM image from the reader. The image has to fit into the
// program memory that starts at 0x200, an empty image is valid.
func LoadReader(r io.Reader) ([]byte, error) {
	// read one byte more than allowed to detect oversized images without
	// consuming arbitrary large inputs
	data, err := io.ReadAll(io.LimitReader(r, chip8.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading rom: %w", err)
	}

	if len(data) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("%w: more than %d bytes", emulator.ErrROMTooLarge, chip8.MaxProgramSize)
	}
	return data, nil
}
