// Package chip8 provides the CHIP-8 memory layout and opcode classification.
//
// # Memory Layout
//
// CHIP-8 systems have 4KB of memory (0x000-MaxAddress):
//   - FontStart-0x04F: built in hexadecimal font, 16 glyphs of FontGlyphSize bytes
//   - 0x050-0x1FF: reserved for the interpreter
//   - ProgramStart-MaxAddress: user program and data area, at most MaxProgramSize bytes
//
// The display buffer (64x32 pixels) and the call stack are kept outside of the
// 4KB address space.
//
// # Opcode Classification
//
// Lookup matches a 16 bit opcode word against the retrogolib CHIP-8 opcode table
// and returns an Opcode that reports control flow and memory access properties.
// The disassembler uses it to place labels at jump, call and data reference targets:
//
//	op, ok := chip8.Lookup(0x2210)
//	if ok && op.IsCall() {
//		// 0x210 is a subroutine entry point
//	}
package chip8
