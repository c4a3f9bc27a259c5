package fileprocessor

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "test.ch8")
	assert.NoError(t, os.WriteFile(input, []byte{0x00, 0xE0, 0x12, 0x02}, 0600))

	tests := []struct {
		name     string
		format   string
		expected string
	}{
		{
			name:     "listing",
			format:   options.FormatListing,
			expected: "0000 00E0 Clears the screen\n0002 1202 Jumps to address 0x202\n",
		},
		{
			name:     "assembly",
			format:   options.FormatAssembly,
			expected: "_label_0202:\n    jp _label_0202\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.Program{
				Parameters: options.Parameters{
					Input:  input,
					Output: GenerateOutputFilename(input, tt.format),
				},
				Flags: options.Flags{Quiet: true},
				OutputFlags: options.OutputFlags{
					Format:        tt.format,
					NoHexComments: true,
					NoOffsets:     true,
				},
			}

			assert.NoError(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts))

			data, err := os.ReadFile(opts.Output)
			assert.NoError(t, err)
			assert.True(t, strings.HasSuffix(string(data), tt.expected), string(data))
		})
	}
}

func TestProcessFileErrors(t *testing.T) {
	opts := options.Program{
		Parameters: options.Parameters{
			Input:  "/nonexistent/file.ch8",
			Output: filepath.Join(t.TempDir(), "out.txt"),
		},
	}
	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts)
	assert.ErrorContains(t, err, "opening file")

	opts.Output = filepath.Join(t.TempDir(), "missing", "out.txt")
	err = ProcessFile(context.Background(), log.NewTestLogger(t), opts)
	assert.ErrorContains(t, err, "creating output file")
}

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.ch8", "b.ch8", "c.txt"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{0x00, 0xE0}, 0600))
	}

	files, err := GetFilesToProcess(&options.Program{
		Parameters: options.Parameters{Batch: filepath.Join(dir, "*.ch8")},
	})
	assert.NoError(t, err)
	assert.Len(t, files, 2)

	_, err = GetFilesToProcess(&options.Program{
		Parameters: options.Parameters{Batch: filepath.Join(dir, "*.rom")},
	})
	assert.ErrorContains(t, err, "no files found")

	files, err = GetFilesToProcess(&options.Program{
		Parameters: options.Parameters{Input: "game.ch8"},
	})
	assert.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "game.ch8", files[0])
}

func TestGenerateOutputFilename(t *testing.T) {
	assert.Equal(t, "roms/pong.asm", GenerateOutputFilename("roms/pong.ch8", options.FormatAssembly))
	assert.Equal(t, "roms/pong.txt", GenerateOutputFilename("roms/pong.ch8", options.FormatListing))
	assert.Equal(t, "pong.asm", GenerateOutputFilename("pong", options.FormatAssembly))
}

func TestNopCloser(t *testing.T) {
	var buf bytes.Buffer
	nc := &nopCloser{&buf}

	n, err := nc.Write([]byte("test"))
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.NoError(t, nc.Close())
	assert.Equal(t, "test", buf.String())
}

func TestPrintBanner(t *testing.T) {
	logger := log.NewTestLogger(t)

	// should not panic in any mode
	PrintBanner(logger, options.Program{}, "1.0.0", "abcdef0123", "2024-01-01")
	PrintBanner(logger, options.Program{Flags: options.Flags{Quiet: true}}, "dev", "", "")
}
