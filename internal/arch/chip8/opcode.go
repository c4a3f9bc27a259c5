package chip8

import (
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Opcode represents a matched CHIP-8 opcode table entry together with the word
// it was matched for.
type Opcode struct {
	op   chip8cpu.Opcode
	word uint16
}

// IsNil returns true if the opcode does not reference an instruction.
func (o Opcode) IsNil() bool {
	return o.op.Instruction == nil
}

// Name returns the instruction name.
func (o Opcode) Name() string {
	if o.op.Instruction == nil {
		return ""
	}
	return o.op.Instruction.Name
}

// IsCall returns true if the opcode calls a subroutine.
func (o Opcode) IsCall() bool {
	return o.op.Instruction == chip8cpu.CallInst
}

// IsJump returns true if the opcode is an absolute or V0 relative jump.
func (o Opcode) IsJump() bool {
	return o.op.Instruction == chip8cpu.JpInst
}

// IsReturn returns true if the opcode returns from a subroutine.
func (o Opcode) IsReturn() bool {
	return o.op.Instruction == chip8cpu.RetInst
}

// IsSkip returns true if the opcode conditionally skips the next instruction.
func (o Opcode) IsSkip() bool {
	if o.op.Instruction == nil {
		return false
	}
	return chip8cpu.SkipInstructions.Contains(o.op.Instruction.Name)
}

// IsDataReference returns true if the opcode loads an address into I (ANNN).
func (o Opcode) IsDataReference() bool {
	return o.op.Instruction == chip8cpu.LdInst && o.word&0xF000 == 0xA000
}

// ReadsMemory returns true if the instruction reads from memory.
func (o Opcode) ReadsMemory() bool {
	if o.op.Instruction == nil {
		return false
	}
	return chip8cpu.MemoryReadInstructions.Contains(o.op.Instruction.Name)
}

// WritesMemory returns true if the instruction writes to memory.
func (o Opcode) WritesMemory() bool {
	if o.op.Instruction == nil {
		return false
	}
	return chip8cpu.MemoryWriteInstructions.Contains(o.op.Instruction.Name)
}
