package emulator

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/instruction"
)

// Step emulates a single clock cycle: it fetches the opcode at the program counter,
// decodes and executes it. It should typically be called at DefaultClockRate.
//
// On error the machine state is left unchanged. An *instruction.UnrecognizedOpcodeError
// is returned for opcodes that match no instruction, ErrStackOverflow and
// ErrStackUnderflow for subroutine calls and returns exceeding the stack.
func (e *Emulator) Step() (State, error) {
	word := e.fetch()
	ins, err := instruction.Decode(word)
	if err != nil {
		return State{}, fmt.Errorf("decoding opcode at 0x%03X: %w", e.pc, err)
	}

	redraw, err := e.execute(ins)
	if err != nil {
		return State{}, fmt.Errorf("executing '%s' at 0x%03X: %w", ins, e.pc, err)
	}
	return State{Screen: e.screen, Redraw: redraw}, nil
}

// Fetch returns the big-endian opcode word at the program counter without
// executing it.
func (e *Emulator) Fetch() uint16 {
	return e.fetch()
}

func (e *Emulator) fetch() uint16 {
	hi := e.memory[e.pc&chip8.MaxAddress]
	lo := e.memory[(e.pc+1)&chip8.MaxAddress]
	return uint16(hi)<<8 | uint16(lo)
}

// execute runs the instruction and updates the program counter. It returns whether
// the screen changed.
func (e *Emulator) execute(ins instruction.Instruction) (bool, error) {
	next := e.pc + chip8.OpcodeSize
	redraw := false
	x, y := ins.X, ins.Y

	switch ins.Kind {
	case instruction.CallMachineLanguageSubroutine:
		// native code of the original hosts is not emulated

	case instruction.ClearScreen:
		e.screen = Screen{}
		redraw = true

	case instruction.Return:
		if e.sp == 0 {
			return false, ErrStackUnderflow
		}
		e.sp--
		next = e.stack[e.sp]

	case instruction.JumpAbsolute:
		next = ins.Address

	case instruction.CallSubroutine:
		if int(e.sp) >= StackSize {
			return false, ErrStackOverflow
		}
		e.stack[e.sp] = next
		e.sp++
		next = ins.Address

	case instruction.JumpRelative:
		next = (ins.Address + uint16(e.v[0])) & chip8.MaxAddress

	case instruction.SkipIfEqualValue:
		next += skip(e.v[x] == ins.Value)
	case instruction.SkipIfNotEqualValue:
		next += skip(e.v[x] != ins.Value)
	case instruction.SkipIfEqualRegister:
		next += skip(e.v[x] == e.v[y])
	case instruction.SkipIfNotEqualRegister:
		next += skip(e.v[x] != e.v[y])
	case instruction.SkipIfKeyPressed:
		next += skip(e.keypad[e.v[x]&0x0F])
	case instruction.SkipIfKeyNotPressed:
		next += skip(!e.keypad[e.v[x]&0x0F])

	case instruction.SetValue:
		e.v[x] = ins.Value
	case instruction.AddValue:
		e.v[x] += ins.Value

	case instruction.SetRegister, instruction.Or, instruction.And, instruction.Xor,
		instruction.AddRegister, instruction.SubtractYFromX, instruction.ShiftRight,
		instruction.SubtractXFromY, instruction.ShiftLeft:
		e.executeArithmetic(ins)

	case instruction.SetIndex:
		e.i = ins.Address
	case instruction.AndRandom:
		e.v[x] = e.random() & ins.Value

	case instruction.Draw:
		e.draw(x, y, ins.Value)
		redraw = true

	case instruction.AwaitKeyPress:
		if !e.keyLatched {
			// the program counter stays on this instruction, which is fetched
			// again by the next cycle
			return false, nil
		}
		e.v[x] = uint8(e.lastPressedKey)
		e.keyLatched = false

	case instruction.StoreDelayTimer, instruction.SetDelayTimer, instruction.SetSoundTimer,
		instruction.AddIndex, instruction.SetIndexFontCharacter, instruction.StoreBCD,
		instruction.WriteMemory, instruction.ReadMemory:
		e.executeMisc(ins)

	default:
		return false, &instruction.UnrecognizedOpcodeError{Opcode: instruction.Encode(ins)}
	}

	e.pc = next
	return redraw, nil
}

func skip(condition bool) uint16 {
	if condition {
		return chip8.OpcodeSize
	}
	return 0
}

// executeArithmetic executes the register to register operations of the 8XY? group.
func (e *Emulator) executeArithmetic(ins instruction.Instruction) {
	x, y := ins.X, ins.Y
	vx, vy := e.v[x], e.v[y]

	switch ins.Kind {
	case instruction.SetRegister:
		e.v[x] = vy
	case instruction.Or:
		e.v[x] = vx | vy
	case instruction.And:
		e.v[x] = vx & vy
	case instruction.Xor:
		e.v[x] = vx ^ vy

	case instruction.AddRegister:
		sum := uint16(vx) + uint16(vy)
		e.v[FlagRegister] = flag(sum > 0xFF)
		e.v[x] = uint8(sum)

	case instruction.SubtractYFromX:
		e.v[FlagRegister] = flag(vx >= vy)
		e.v[x] = vx - vy

	case instruction.SubtractXFromY:
		e.v[FlagRegister] = flag(vy >= vx)
		e.v[x] = vy - vx

	case instruction.ShiftRight:
		e.v[FlagRegister] = vx & 0x01
		e.v[x] = vx >> 1

	case instruction.ShiftLeft:
		e.v[FlagRegister] = (vx & 0x80) >> 7
		e.v[x] = vx << 1
	}
}

// executeMisc executes the timer, index and memory operations of the FX?? group.
func (e *Emulator) executeMisc(ins instruction.Instruction) {
	x := ins.X

	switch ins.Kind {
	case instruction.StoreDelayTimer:
		e.v[x] = e.delayTimer
	case instruction.SetDelayTimer:
		e.delayTimer = e.v[x]
	case instruction.SetSoundTimer:
		e.soundTimer = e.v[x]

	case instruction.AddIndex:
		sum := e.i + uint16(e.v[x])
		e.v[FlagRegister] = flag(sum > chip8.MaxAddress)
		e.i = sum

	case instruction.SetIndexFontCharacter:
		e.i = chip8.FontStart + uint16(e.v[x]&0x0F)*chip8.FontGlyphSize

	case instruction.StoreBCD:
		value := e.v[x]
		e.writeMemory(e.i, value/100)
		e.writeMemory(e.i+1, (value/10)%10)
		e.writeMemory(e.i+2, value%10)

	case instruction.WriteMemory:
		for r := uint16(0); r <= uint16(x); r++ {
			e.writeMemory(e.i+r, e.v[r])
		}

	case instruction.ReadMemory:
		for r := uint16(0); r <= uint16(x); r++ {
			e.v[r] = e.ReadMemory(e.i + r)
		}
	}
}

// draw XORs a sprite of the given number of rows, read from memory at I, onto the
// screen at (VX, VY). Pixels wrap around the screen edges. VF is set to 1 if any
// set pixel got cleared.
func (e *Emulator) draw(x, y, rows uint8) {
	startX := int(e.v[x])
	startY := int(e.v[y])

	e.v[FlagRegister] = 0
	for row := range int(rows) {
		pixels := e.ReadMemory(e.i + uint16(row))
		for col := range 8 {
			if pixels&(0x80>>col) == 0 {
				continue
			}
			if e.screen.toggle(startX+col, startY+row) {
				e.v[FlagRegister] = 1
			}
		}
	}
}

func (e *Emulator) writeMemory(address uint16, value byte) {
	e.memory[address&chip8.MaxAddress] = value
}

func flag(condition bool) uint8 {
	if condition {
		return 1
	}
	return 0
}
