package chip8

import (
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// CHIP-8 memory layout constants.
const (
	// FontStart is the address of the built in hexadecimal font.
	FontStart = 0x000

	// FontGlyphSize is the number of bytes of a single font glyph.
	FontGlyphSize = 5

	// ProgramStart is the memory address where CHIP-8 programs begin execution.
	// Programs are loaded at address 0x200 in the virtual machine's memory space,
	// but stored starting at offset 0x0 in ROM files.
	ProgramStart = 0x200

	// MaxAddress is the highest valid address in CHIP-8 memory space.
	MaxAddress = 0xFFF

	// MemorySize is the size of the CHIP-8 address space in bytes.
	MemorySize = MaxAddress + 1

	// MaxProgramSize is the largest program that fits between ProgramStart and MaxAddress.
	MaxProgramSize = MemorySize - ProgramStart

	// OpcodeSize is the size of CHIP-8 instructions in bytes.
	OpcodeSize = 2
)

// Lookup returns the opcode table entry that matches the given opcode word.
func Lookup(word uint16) (Opcode, bool) {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8cpu.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value {
			return Opcode{op: op, word: word}, true
		}
	}
	return Opcode{}, false
}

// TargetInProgram returns the 12 bit address operand of the opcode word if it points
// into a program of the given size loaded at ProgramStart.
func TargetInProgram(word uint16, programSize int) (uint16, bool) {
	target := word & 0x0FFF
	if target < ProgramStart || int(target) >= ProgramStart+programSize {
		return 0, false
	}
	return target, true
}
