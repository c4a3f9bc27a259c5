package instruction

import "fmt"

// UnrecognizedOpcodeError is returned when a 16 bit word does not match any entry
// of the CHIP-8 opcode table.
type UnrecognizedOpcodeError struct {
	Opcode uint16
}

func (e *UnrecognizedOpcodeError) Error() string {
	return fmt.Sprintf("unrecognized opcode 0x%04X", e.Opcode)
}

// fixed low byte suffixes of the EX and FX instruction groups.
var (
	keySuffixes = map[uint8]Kind{
		0x9E: SkipIfKeyPressed,
		0xA1: SkipIfKeyNotPressed,
	}
	miscSuffixes = map[uint8]Kind{
		0x07: StoreDelayTimer,
		0x0A: AwaitKeyPress,
		0x15: SetDelayTimer,
		0x18: SetSoundTimer,
		0x1E: AddIndex,
		0x29: SetIndexFontCharacter,
		0x33: StoreBCD,
		0x55: WriteMemory,
		0x65: ReadMemory,
	}
	// register to register operations of the 8XY? group, indexed by the lowest nibble.
	aluOperations = map[uint8]Kind{
		0x0: SetRegister,
		0x1: Or,
		0x2: And,
		0x3: Xor,
		0x4: AddRegister,
		0x5: SubtractYFromX,
		0x6: ShiftRight,
		0x7: SubtractXFromY,
		0xE: ShiftLeft,
	}
)

// Decode decodes a big-endian 16 bit opcode word into an instruction.
func Decode(word uint16) (Instruction, error) {
	group := uint8(word >> 12)
	x := uint8(word>>8) & RegisterMask
	y := uint8(word>>4) & RegisterMask
	n := uint8(word) & 0x0F
	nn := uint8(word)
	nnn := word & AddressMask

	switch group {
	case 0x0:
		switch word {
		case 0x00E0:
			return NewClearScreen(), nil
		case 0x00EE:
			return NewReturn(), nil
		default:
			return NewCallMachineLanguageSubroutine(nnn), nil
		}
	case 0x1:
		return NewJumpAbsolute(nnn), nil
	case 0x2:
		return NewCallSubroutine(nnn), nil
	case 0x3:
		return NewSkipIfEqualValue(x, nn), nil
	case 0x4:
		return NewSkipIfNotEqualValue(x, nn), nil
	case 0x5:
		if n == 0 {
			return NewSkipIfEqualRegister(x, y), nil
		}
	case 0x6:
		return NewSetValue(x, nn), nil
	case 0x7:
		return NewAddValue(x, nn), nil
	case 0x8:
		if kind, ok := aluOperations[n]; ok {
			return withXY(kind, x, y), nil
		}
	case 0x9:
		if n == 0 {
			return NewSkipIfNotEqualRegister(x, y), nil
		}
	case 0xA:
		return NewSetIndex(nnn), nil
	case 0xB:
		return NewJumpRelative(nnn), nil
	case 0xC:
		return NewAndRandom(x, nn), nil
	case 0xD:
		return NewDraw(x, y, n), nil
	case 0xE:
		if kind, ok := keySuffixes[nn]; ok {
			return withX(kind, x), nil
		}
	case 0xF:
		if kind, ok := miscSuffixes[nn]; ok {
			return withX(kind, x), nil
		}
	}

	return Instruction{}, &UnrecognizedOpcodeError{Opcode: word}
}

// Encode returns the 16 bit opcode word of the instruction. Operands are masked to
// their field widths, so the result always decodes successfully, to i itself when i
// was built by Decode or a New* constructor.
func Encode(i Instruction) uint16 {
	nnn := i.Address & AddressMask
	x := uint16(i.X&RegisterMask) << 8
	y := uint16(i.Y&RegisterMask) << 4
	nn := uint16(i.Value)

	switch i.Kind {
	case CallMachineLanguageSubroutine:
		return nnn
	case ClearScreen:
		return 0x00E0
	case Return:
		return 0x00EE
	case JumpAbsolute:
		return 0x1000 | nnn
	case CallSubroutine:
		return 0x2000 | nnn
	case SkipIfEqualValue:
		return 0x3000 | x | nn
	case SkipIfNotEqualValue:
		return 0x4000 | x | nn
	case SkipIfEqualRegister:
		return 0x5000 | x | y
	case SetValue:
		return 0x6000 | x | nn
	case AddValue:
		return 0x7000 | x | nn
	case SetRegister:
		return 0x8000 | x | y
	case Or:
		return 0x8001 | x | y
	case And:
		return 0x8002 | x | y
	case Xor:
		return 0x8003 | x | y
	case AddRegister:
		return 0x8004 | x | y
	case SubtractYFromX:
		return 0x8005 | x | y
	case ShiftRight:
		return 0x8006 | x | y
	case SubtractXFromY:
		return 0x8007 | x | y
	case ShiftLeft:
		return 0x800E | x | y
	case SkipIfNotEqualRegister:
		return 0x9000 | x | y
	case SetIndex:
		return 0xA000 | nnn
	case JumpRelative:
		return 0xB000 | nnn
	case AndRandom:
		return 0xC000 | x | nn
	case Draw:
		return 0xD000 | x | y | uint16(i.Value&RowsMask)
	case SkipIfKeyPressed:
		return 0xE09E | x
	case SkipIfKeyNotPressed:
		return 0xE0A1 | x
	case StoreDelayTimer:
		return 0xF007 | x
	case AwaitKeyPress:
		return 0xF00A | x
	case SetDelayTimer:
		return 0xF015 | x
	case SetSoundTimer:
		return 0xF018 | x
	case AddIndex:
		return 0xF01E | x
	case SetIndexFontCharacter:
		return 0xF029 | x
	case StoreBCD:
		return 0xF033 | x
	case WriteMemory:
		return 0xF055 | x
	case ReadMemory:
		return 0xF065 | x
	default:
		// an out of range kind is not constructible through this package
		return 0
	}
}

// Encode returns the 16 bit opcode word of the instruction.
func (i Instruction) Encode() uint16 {
	return Encode(i)
}
