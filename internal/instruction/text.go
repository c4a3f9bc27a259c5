package instruction

import "fmt"

// Describe returns a human readable English sentence for the instruction with all
// operands in hexadecimal. It is used for listings and logging only.
func (i Instruction) Describe() string {
	x, y := i.X, i.Y

	switch i.Kind {
	case CallMachineLanguageSubroutine:
		return fmt.Sprintf("Calls the machine language subroutine at 0x%03X", i.Address)
	case ClearScreen:
		return "Clears the screen"
	case Return:
		return "Returns from a subroutine"
	case JumpAbsolute:
		return fmt.Sprintf("Jumps to address 0x%03X", i.Address)
	case CallSubroutine:
		return fmt.Sprintf("Calls subroutine at 0x%03X", i.Address)
	case SkipIfEqualValue:
		return fmt.Sprintf("Skips the next instruction if V%X equals 0x%02X", x, i.Value)
	case SkipIfNotEqualValue:
		return fmt.Sprintf("Skips the next instruction if V%X doesn't equal 0x%02X", x, i.Value)
	case SkipIfEqualRegister:
		return fmt.Sprintf("Skips the next instruction if V%X equals V%X", x, y)
	case SetValue:
		return fmt.Sprintf("Sets V%X to 0x%02X", x, i.Value)
	case AddValue:
		return fmt.Sprintf("Adds 0x%02X to V%X", i.Value, x)
	case SetRegister:
		return fmt.Sprintf("Sets V%X to the value of V%X", x, y)
	case Or:
		return fmt.Sprintf("Sets V%X to V%X OR V%X", x, x, y)
	case And:
		return fmt.Sprintf("Sets V%X to V%X AND V%X", x, x, y)
	case Xor:
		return fmt.Sprintf("Sets V%X to V%X XOR V%X", x, x, y)
	case AddRegister:
		return fmt.Sprintf("Adds V%X to V%X. VF = carry bit", y, x)
	case SubtractYFromX:
		return fmt.Sprintf("Sets V%X to V%X - V%X. VF = not borrow bit", x, x, y)
	case ShiftRight:
		return fmt.Sprintf("Shifts V%X right by 1. VF = LSB of V%X before shift", x, x)
	case SubtractXFromY:
		return fmt.Sprintf("Sets V%X to V%X - V%X. VF = not borrow bit", x, y, x)
	case ShiftLeft:
		return fmt.Sprintf("Shifts V%X left by 1. VF = MSB of V%X before shift", x, x)
	case SkipIfNotEqualRegister:
		return fmt.Sprintf("Skips the next instruction if V%X doesn't equal V%X", x, y)
	case SetIndex:
		return fmt.Sprintf("Sets I to the address 0x%03X", i.Address)
	case JumpRelative:
		return fmt.Sprintf("Jumps to the address 0x%03X + V0", i.Address)
	case AndRandom:
		return fmt.Sprintf("Sets V%X to <random number> AND 0x%02X", x, i.Value)
	case Draw:
		return fmt.Sprintf("Draws sprite at (V%X, V%X) with 0x%X rows", x, y, i.Value)
	case SkipIfKeyPressed:
		return fmt.Sprintf("Skips the next instruction if the key stored in V%X is pressed", x)
	case SkipIfKeyNotPressed:
		return fmt.Sprintf("Skips the next instruction if the key stored in V%X is not pressed", x)
	case StoreDelayTimer:
		return fmt.Sprintf("Stores the value of the delay timer in V%X", x)
	case AwaitKeyPress:
		return fmt.Sprintf("Awaits a key press and stores it in V%X", x)
	case SetDelayTimer:
		return fmt.Sprintf("Sets the delay timer to V%X", x)
	case SetSoundTimer:
		return fmt.Sprintf("Sets the sound timer to V%X", x)
	case AddIndex:
		return fmt.Sprintf("Adds V%X to I. VF = overflow past 0xFFF", x)
	case SetIndexFontCharacter:
		return fmt.Sprintf("Sets I to the location of the font sprite for the character in V%X", x)
	case StoreBCD:
		return fmt.Sprintf("Stores the binary-coded decimal representation of V%X at I, I+1 and I+2", x)
	case WriteMemory:
		return fmt.Sprintf("Stores V0 to V%X in memory starting at address I", x)
	case ReadMemory:
		return fmt.Sprintf("Fills V0 to V%X with values from memory starting at address I", x)
	default:
		return fmt.Sprintf("Unknown instruction kind %d", i.Kind)
	}
}

// HexAddress formats a 12 bit address as an assembler hex literal.
func HexAddress(address uint16) string {
	return fmt.Sprintf("$%03X", address)
}

// String returns the instruction in assembler syntax.
func (i Instruction) String() string {
	return i.Format(HexAddress)
}

// Format returns the instruction in assembler syntax, using addressName to render
// 12 bit address operands. This allows a caller to substitute labels for addresses.
func (i Instruction) Format(addressName func(address uint16) string) string {
	x, y := i.X, i.Y

	switch i.Kind {
	case CallMachineLanguageSubroutine:
		return "sys " + addressName(i.Address)
	case ClearScreen:
		return "cls"
	case Return:
		return "ret"
	case JumpAbsolute:
		return "jp " + addressName(i.Address)
	case CallSubroutine:
		return "call " + addressName(i.Address)
	case SkipIfEqualValue:
		return fmt.Sprintf("se V%X, $%02X", x, i.Value)
	case SkipIfNotEqualValue:
		return fmt.Sprintf("sne V%X, $%02X", x, i.Value)
	case SkipIfEqualRegister:
		return fmt.Sprintf("se V%X, V%X", x, y)
	case SetValue:
		return fmt.Sprintf("ld V%X, $%02X", x, i.Value)
	case AddValue:
		return fmt.Sprintf("add V%X, $%02X", x, i.Value)
	case SetRegister:
		return fmt.Sprintf("ld V%X, V%X", x, y)
	case Or:
		return fmt.Sprintf("or V%X, V%X", x, y)
	case And:
		return fmt.Sprintf("and V%X, V%X", x, y)
	case Xor:
		return fmt.Sprintf("xor V%X, V%X", x, y)
	case AddRegister:
		return fmt.Sprintf("add V%X, V%X", x, y)
	case SubtractYFromX:
		return fmt.Sprintf("sub V%X, V%X", x, y)
	case ShiftRight:
		return fmt.Sprintf("shr V%X, V%X", x, y)
	case SubtractXFromY:
		return fmt.Sprintf("subn V%X, V%X", x, y)
	case ShiftLeft:
		return fmt.Sprintf("shl V%X, V%X", x, y)
	case SkipIfNotEqualRegister:
		return fmt.Sprintf("sne V%X, V%X", x, y)
	case SetIndex:
		return "ld I, " + addressName(i.Address)
	case JumpRelative:
		return "jp V0, " + addressName(i.Address)
	case AndRandom:
		return fmt.Sprintf("rnd V%X, $%02X", x, i.Value)
	case Draw:
		return fmt.Sprintf("drw V%X, V%X, %d", x, y, i.Value)
	case SkipIfKeyPressed:
		return fmt.Sprintf("skp V%X", x)
	case SkipIfKeyNotPressed:
		return fmt.Sprintf("sknp V%X", x)
	case StoreDelayTimer:
		return fmt.Sprintf("ld V%X, DT", x)
	case AwaitKeyPress:
		return fmt.Sprintf("ld V%X, K", x)
	case SetDelayTimer:
		return fmt.Sprintf("ld DT, V%X", x)
	case SetSoundTimer:
		return fmt.Sprintf("ld ST, V%X", x)
	case AddIndex:
		return fmt.Sprintf("add I, V%X", x)
	case SetIndexFontCharacter:
		return fmt.Sprintf("ld F, V%X", x)
	case StoreBCD:
		return fmt.Sprintf("ld B, V%X", x)
	case WriteMemory:
		return fmt.Sprintf("ld [I], V%X", x)
	case ReadMemory:
		return fmt.Sprintf("ld V%X, [I]", x)
	default:
		return fmt.Sprintf(".word $%04X", Encode(i))
	}
}
