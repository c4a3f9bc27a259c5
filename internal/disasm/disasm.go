// Package disasm implements the static CHIP-8 disassembler: a word by word decoding of
// a ROM image into instructions, a plain text listing and assembly source output.
package disasm

import (
	"fmt"
	"io"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/instruction"
)

// Disassemble decodes the data as consecutive big-endian opcode words starting at
// offset 0. It stops at the first word that is not a valid opcode and returns the
// decode error. A trailing odd byte is ignored.
func Disassemble(data []byte) ([]instruction.Instruction, error) {
	instructions := make([]instruction.Instruction, 0, len(data)/chip8.OpcodeSize)

	for offset := 0; offset+1 < len(data); offset += chip8.OpcodeSize {
		word := uint16(data[offset])<<8 | uint16(data[offset+1])
		ins, err := instruction.Decode(word)
		if err != nil {
			return nil, fmt.Errorf("decoding offset 0x%04X: %w", offset, err)
		}
		instructions = append(instructions, ins)
	}

	return instructions, nil
}

// Render writes one line per instruction containing the offset of the instruction
// relative to the start of the ROM, the opcode word and the instruction description.
func Render(w io.Writer, instructions []instruction.Instruction) error {
	for i, ins := range instructions {
		offset := i * chip8.OpcodeSize
		if _, err := fmt.Fprintf(w, "%04X %04X %s\n", offset, ins.Encode(), ins.Describe()); err != nil {
			return fmt.Errorf("writing listing line: %w", err)
		}
	}
	return nil
}
