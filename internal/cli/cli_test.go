package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags_DisasmOptions(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		hexComments    bool
		offsetComments bool
		format         string
	}{
		{
			name:           "default flags",
			args:           []string{"test.ch8"},
			hexComments:    true,
			offsetComments: true,
			format:         options.FormatListing,
		},
		{
			name:           "nohexcomments flag",
			args:           []string{"-nohexcomments", "test.ch8"},
			offsetComments: true,
			format:         options.FormatListing,
		},
		{
			name:        "nooffsets flag",
			args:        []string{"-nooffsets", "test.ch8"},
			hexComments: true,
			format:      options.FormatListing,
		},
		{
			name:   "assembly format",
			args:   []string{"-f", "ASM", "-nohexcomments", "-nooffsets", "test.ch8"},
			format: options.FormatAssembly,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := Parse("prog", tt.args)
			assert.NoError(t, err)
			assert.Equal(t, "test.ch8", opts.Input)
			assert.Equal(t, tt.format, opts.Format)

			disasmOpts := opts.Disassembler()
			assert.Equal(t, tt.hexComments, disasmOpts.HexComments)
			assert.Equal(t, tt.offsetComments, disasmOpts.OffsetComments)
		})
	}
}

func TestParseFlags_EmulationOptions(t *testing.T) {
	opts, err := Parse("prog", []string{"-run", "-clock", "1000", "-cycles", "5000",
		"-seed", "42", "-keyboard", "-dump", "-trace", "-debug", "game.ch8"})
	assert.NoError(t, err)

	assert.True(t, opts.Run)
	assert.Equal(t, 1000, opts.ClockRate)
	assert.Equal(t, uint64(5000), opts.MaxCycles)
	assert.Equal(t, uint64(42), opts.Seed)
	assert.True(t, opts.Keyboard)
	assert.True(t, opts.Dump)
	assert.True(t, opts.Trace)
	assert.True(t, opts.Debug)
	assert.Equal(t, "game.ch8", opts.Input)

	opts, err = Parse("prog", []string{"game.ch8"})
	assert.NoError(t, err)
	assert.False(t, opts.Run)
	assert.Equal(t, 500, opts.ClockRate)
}

func TestParseFlags_Batch(t *testing.T) {
	opts, err := Parse("prog", []string{"-batch", "roms/*.ch8"})
	assert.NoError(t, err)
	assert.Equal(t, "roms/*.ch8", opts.Batch)
	assert.Equal(t, "", opts.Input)
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		usage      bool
		errContain string
	}{
		{name: "no input", args: nil, usage: true},
		{name: "unknown flag", args: []string{"-x", "test.ch8"}, usage: true, errContain: "-x"},
		{name: "flag after file", args: []string{"test.ch8", "-run"}, usage: true, errContain: "-run"},
		{name: "invalid format", args: []string{"-f", "html", "test.ch8"}, errContain: "unsupported output format"},
		{name: "invalid clock", args: []string{"-clock", "0", "test.ch8"}, errContain: "invalid clock rate"},
		{name: "run in batch", args: []string{"-run", "-batch", "*.ch8"}, errContain: "batch mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("prog", tt.args)
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
			if tt.errContain != "" {
				assert.ErrorContains(t, err, tt.errContain)
			}
		})
	}
}

func TestParseFlagsUsesProcessArguments(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"prog", "-run", "test.ch8"}

	opts, err := ParseFlags()
	assert.NoError(t, err)
	assert.True(t, opts.Run)
	assert.Equal(t, "test.ch8", opts.Input)
}
