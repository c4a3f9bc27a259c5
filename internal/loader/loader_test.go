package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load rom file", func(t *testing.T) {
		data := []byte{0x00, 0xE0, 0x12, 0x00}
		tmpFile := createTempFile(t, data)

		rom, err := Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, [4]byte(data), [4]byte(rom))
	})

	t.Run("largest rom", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, chip8.MaxProgramSize))

		rom, err := Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, rom, chip8.MaxProgramSize)
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, err := Load("/nonexistent/file.ch8")
		assert.Error(t, err)
		assert.ErrorContains(t, err, "opening file /nonexistent/file.ch8")
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, nil)

		rom, err := Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, rom, 0)
	})

	t.Run("error on oversized file", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, chip8.MaxProgramSize+1))

		_, err := Load(tmpFile)
		assert.True(t, errors.Is(err, emulator.ErrROMTooLarge))
	})
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("device error")
}

func TestLoadReader(t *testing.T) {
	rom, err := LoadReader(bytes.NewReader([]byte{0xA2, 0x2A}))
	assert.NoError(t, err)
	assert.Equal(t, [2]byte{0xA2, 0x2A}, [2]byte(rom))

	_, err = LoadReader(bytes.NewReader(make([]byte, 0x1000)))
	assert.True(t, errors.Is(err, emulator.ErrROMTooLarge))

	_, err = LoadReader(failingReader{})
	assert.ErrorContains(t, err, "device error")
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
