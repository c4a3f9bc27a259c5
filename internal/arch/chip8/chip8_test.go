package chip8

import (
	"testing"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestMemoryLayout(t *testing.T) {
	assert.Equal(t, 0x1000, MemorySize)
	assert.Equal(t, 0xE00, MaxProgramSize)
	assert.Equal(t, 80, 16*FontGlyphSize)
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		expected *chip8cpu.Instruction
	}{
		{"clear screen", 0x00E0, chip8cpu.ClsInst},
		{"return", 0x00EE, chip8cpu.RetInst},
		{"jump", 0x1234, chip8cpu.JpInst},
		{"call", 0x2345, chip8cpu.CallInst},
		{"skip equal", 0x3A01, chip8cpu.SeInst},
		{"skip not equal", 0x4A01, chip8cpu.SneInst},
		{"load value", 0x6A01, chip8cpu.LdInst},
		{"add value", 0x7A01, chip8cpu.AddInst},
		{"draw", 0xD125, chip8cpu.DrwInst},
		{"skip key", 0xE19E, chip8cpu.SkpInst},
		{"skip no key", 0xE1A1, chip8cpu.SknpInst},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, ok := Lookup(tt.word)
			assert.True(t, ok)
			assert.False(t, op.IsNil())
			assert.Equal(t, tt.expected.Name, op.Name())
		})
	}
}

func TestOpcode_ControlFlow(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		isJump   bool
		isCall   bool
		isReturn bool
		isSkip   bool
	}{
		{"jump", 0x1204, true, false, false, false},
		{"call", 0x2300, false, true, false, false},
		{"return", 0x00EE, false, false, true, false},
		{"skip equal value", 0x3100, false, false, false, true},
		{"skip equal register", 0x5120, false, false, false, true},
		{"skip key pressed", 0xE59E, false, false, false, true},
		{"load", 0x6100, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, ok := Lookup(tt.word)
			assert.True(t, ok)
			assert.Equal(t, tt.isJump, op.IsJump())
			assert.Equal(t, tt.isCall, op.IsCall())
			assert.Equal(t, tt.isReturn, op.IsReturn())
			assert.Equal(t, tt.isSkip, op.IsSkip())
		})
	}
}

func TestOpcode_IsDataReference(t *testing.T) {
	op, ok := Lookup(0xA2F0)
	assert.True(t, ok)
	assert.True(t, op.IsDataReference())

	op, ok = Lookup(0x62F0)
	assert.True(t, ok)
	assert.False(t, op.IsDataReference())
}

func TestOpcode_Nil(t *testing.T) {
	var op Opcode
	assert.True(t, op.IsNil())
	assert.Equal(t, "", op.Name())
	assert.False(t, op.IsSkip())
	assert.False(t, op.ReadsMemory())
	assert.False(t, op.WritesMemory())
}

func TestTargetInProgram(t *testing.T) {
	tests := []struct {
		name        string
		word        uint16
		programSize int
		expected    uint16
		valid       bool
	}{
		{"program start", 0x1200, 4, 0x200, true},
		{"last byte", 0x1203, 4, 0x203, true},
		{"after program", 0x1204, 4, 0, false},
		{"interpreter area", 0x2050, 4, 0, false},
		{"full program", 0xAFFF, MaxProgramSize, 0xFFF, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, ok := TargetInProgram(tt.word, tt.programSize)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.expected, target)
		})
	}
}
