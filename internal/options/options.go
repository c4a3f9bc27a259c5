// Package options contains the program options.
package options

import (
	"github.com/retroenv/chip8vm/internal/disasm"
)

// Output formats of the disassembler.
const (
	FormatListing  = "listing"
	FormatAssembly = "asm"
)

// Parameters contains file path options.
type Parameters struct {
	Input  string `arg:"positional" usage:"ROM file to process"`
	Output string `flag:"o" usage:"output file (default: stdout)"`
	Batch  string `flag:"batch" usage:"batch process files matching pattern (e.g. *.ch8)"`
}

// Flags contains behavior options.
type Flags struct {
	Run   bool `flag:"run" usage:"run the ROM instead of disassembling it"`
	Debug bool `flag:"debug" usage:"enable debug logging"`
	Quiet bool `flag:"q" usage:"quiet mode"`
}

// OutputFlags contains disassembler output formatting options.
type OutputFlags struct {
	Format        string `flag:"f" usage:"output format: listing, asm" default:"listing"`
	NoHexComments bool   `flag:"nohexcomments" usage:"omit hex opcode bytes in comments"`
	NoOffsets     bool   `flag:"nooffsets" usage:"omit memory addresses in comments"`
}

// EmulationFlags contains emulation options.
type EmulationFlags struct {
	ClockRate int    `flag:"clock" usage:"cycle clock rate in Hz" default:"500"`
	MaxCycles uint64 `flag:"cycles" usage:"stop after the given number of cycles, 0 for no limit"`
	Seed      uint64 `flag:"seed" usage:"seed of the random number generator, 0 for a random seed"`
	Keyboard  bool   `flag:"keyboard" usage:"read keypad input from the terminal"`
	Dump      bool   `flag:"dump" usage:"print the screen and registers when the emulation ends"`
	Trace     bool   `flag:"trace" usage:"log every executed opcode, requires -debug"`
}

// Program options of the virtual machine.
type Program struct {
	Parameters
	Flags
	OutputFlags
	EmulationFlags
}

// Disassembler returns the assembly output options.
func (p Program) Disassembler() disasm.Options {
	return disasm.Options{
		HexComments:    !p.NoHexComments,
		OffsetComments: !p.NoOffsets,
	}
}
