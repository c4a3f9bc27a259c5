// Package instruction contains the CHIP-8 instruction set: a closed set of 35 instruction
// shapes, their 16-bit encoding and their textual representations.
package instruction

// Kind identifies one of the 35 CHIP-8 instruction shapes.
type Kind uint8

// Instruction kinds, annotated with their opcode pattern.
const (
	CallMachineLanguageSubroutine Kind = iota // 0NNN
	ClearScreen                               // 00E0
	Return                                    // 00EE
	JumpAbsolute                              // 1NNN
	CallSubroutine                            // 2NNN
	SkipIfEqualValue                          // 3XNN
	SkipIfNotEqualValue                       // 4XNN
	SkipIfEqualRegister                       // 5XY0
	SetValue                                  // 6XNN
	AddValue                                  // 7XNN
	SetRegister                               // 8XY0
	Or                                        // 8XY1
	And                                       // 8XY2
	Xor                                       // 8XY3
	AddRegister                               // 8XY4
	SubtractYFromX                            // 8XY5
	ShiftRight                                // 8XY6
	SubtractXFromY                            // 8XY7
	ShiftLeft                                 // 8XYE
	SkipIfNotEqualRegister                    // 9XY0
	SetIndex                                  // ANNN
	JumpRelative                              // BNNN
	AndRandom                                 // CXNN
	Draw                                      // DXYN
	SkipIfKeyPressed                          // EX9E
	SkipIfKeyNotPressed                       // EXA1
	StoreDelayTimer                           // FX07
	AwaitKeyPress                             // FX0A
	SetDelayTimer                             // FX15
	SetSoundTimer                             // FX18
	AddIndex                                  // FX1E
	SetIndexFontCharacter                     // FX29
	StoreBCD                                  // FX33
	WriteMemory                               // FX55
	ReadMemory                                // FX65

	kindCount
)

var kindNames = [kindCount]string{
	CallMachineLanguageSubroutine: "CallMachineLanguageSubroutine",
	ClearScreen:                   "ClearScreen",
	Return:                        "Return",
	JumpAbsolute:                  "JumpAbsolute",
	CallSubroutine:                "CallSubroutine",
	SkipIfEqualValue:              "SkipIfEqualValue",
	SkipIfNotEqualValue:           "SkipIfNotEqualValue",
	SkipIfEqualRegister:           "SkipIfEqualRegister",
	SetValue:                      "SetValue",
	AddValue:                      "AddValue",
	SetRegister:                   "SetRegister",
	Or:                            "Or",
	And:                           "And",
	Xor:                           "Xor",
	AddRegister:                   "AddRegister",
	SubtractYFromX:                "SubtractYFromX",
	ShiftRight:                    "ShiftRight",
	SubtractXFromY:                "SubtractXFromY",
	ShiftLeft:                     "ShiftLeft",
	SkipIfNotEqualRegister:        "SkipIfNotEqualRegister",
	SetIndex:                      "SetIndex",
	JumpRelative:                  "JumpRelative",
	AndRandom:                     "AndRandom",
	Draw:                          "Draw",
	SkipIfKeyPressed:              "SkipIfKeyPressed",
	SkipIfKeyNotPressed:           "SkipIfKeyNotPressed",
	StoreDelayTimer:               "StoreDelayTimer",
	AwaitKeyPress:                 "AwaitKeyPress",
	SetDelayTimer:                 "SetDelayTimer",
	SetSoundTimer:                 "SetSoundTimer",
	AddIndex:                      "AddIndex",
	SetIndexFontCharacter:         "SetIndexFontCharacter",
	StoreBCD:                      "StoreBCD",
	WriteMemory:                   "WriteMemory",
	ReadMemory:                    "ReadMemory",
}

// String returns the name of the instruction kind.
func (k Kind) String() string {
	if k >= kindCount {
		return "Unknown"
	}
	return kindNames[k]
}

// Operand masks.
const (
	AddressMask  = 0x0FFF
	RegisterMask = 0x0F
	RowsMask     = 0x0F
)

// Instruction is a decoded CHIP-8 instruction. Only the operand fields used by its Kind
// are set, all others are zero, which keeps instructions comparable with ==.
//
// Values returned by Decode and the New* constructors have their operands masked to
// the field widths and survive an Encode/Decode round trip. A literal with wider
// operands, for example Instruction{Kind: SetValue, X: 0x1F}, encodes to the masked
// word and decodes to the masked instruction.
type Instruction struct {
	Kind    Kind
	Address uint16 // 12 bit address for NNN forms
	X       uint8  // first register index
	Y       uint8  // second register index
	Value   uint8  // 8 bit constant, or the 4 bit row count of a Draw
}

// IsSkip returns true if the instruction conditionally skips the following instruction.
func (i Instruction) IsSkip() bool {
	switch i.Kind {
	case SkipIfEqualValue, SkipIfNotEqualValue, SkipIfEqualRegister, SkipIfNotEqualRegister,
		SkipIfKeyPressed, SkipIfKeyNotPressed:
		return true
	default:
		return false
	}
}

// HasAddress returns true if the instruction carries a 12 bit address operand.
func (i Instruction) HasAddress() bool {
	switch i.Kind {
	case CallMachineLanguageSubroutine, JumpAbsolute, CallSubroutine, SetIndex, JumpRelative:
		return true
	default:
		return false
	}
}

func withAddress(kind Kind, address uint16) Instruction {
	return Instruction{Kind: kind, Address: address & AddressMask}
}

func withX(kind Kind, x uint8) Instruction {
	return Instruction{Kind: kind, X: x & RegisterMask}
}

func withXValue(kind Kind, x, value uint8) Instruction {
	return Instruction{Kind: kind, X: x & RegisterMask, Value: value}
}

func withXY(kind Kind, x, y uint8) Instruction {
	return Instruction{Kind: kind, X: x & RegisterMask, Y: y & RegisterMask}
}

// NewCallMachineLanguageSubroutine returns a 0NNN instruction.
func NewCallMachineLanguageSubroutine(address uint16) Instruction {
	return withAddress(CallMachineLanguageSubroutine, address)
}

// NewClearScreen returns a 00E0 instruction.
func NewClearScreen() Instruction { return Instruction{Kind: ClearScreen} }

// NewReturn returns a 00EE instruction.
func NewReturn() Instruction { return Instruction{Kind: Return} }

// NewJumpAbsolute returns a 1NNN instruction.
func NewJumpAbsolute(address uint16) Instruction { return withAddress(JumpAbsolute, address) }

// NewCallSubroutine returns a 2NNN instruction.
func NewCallSubroutine(address uint16) Instruction { return withAddress(CallSubroutine, address) }

// NewSkipIfEqualValue returns a 3XNN instruction.
func NewSkipIfEqualValue(x, value uint8) Instruction {
	return withXValue(SkipIfEqualValue, x, value)
}

// NewSkipIfNotEqualValue returns a 4XNN instruction.
func NewSkipIfNotEqualValue(x, value uint8) Instruction {
	return withXValue(SkipIfNotEqualValue, x, value)
}

// NewSkipIfEqualRegister returns a 5XY0 instruction.
func NewSkipIfEqualRegister(x, y uint8) Instruction { return withXY(SkipIfEqualRegister, x, y) }

// NewSetValue returns a 6XNN instruction.
func NewSetValue(x, value uint8) Instruction { return withXValue(SetValue, x, value) }

// NewAddValue returns a 7XNN instruction.
func NewAddValue(x, value uint8) Instruction { return withXValue(AddValue, x, value) }

// NewSetRegister returns a 8XY0 instruction.
func NewSetRegister(x, y uint8) Instruction { return withXY(SetRegister, x, y) }

// NewOr returns a 8XY1 instruction.
func NewOr(x, y uint8) Instruction { return withXY(Or, x, y) }

// NewAnd returns a 8XY2 instruction.
func NewAnd(x, y uint8) Instruction { return withXY(And, x, y) }

// NewXor returns a 8XY3 instruction.
func NewXor(x, y uint8) Instruction { return withXY(Xor, x, y) }

// NewAddRegister returns a 8XY4 instruction.
func NewAddRegister(x, y uint8) Instruction { return withXY(AddRegister, x, y) }

// NewSubtractYFromX returns a 8XY5 instruction.
func NewSubtractYFromX(x, y uint8) Instruction { return withXY(SubtractYFromX, x, y) }

// NewShiftRight returns a 8XY6 instruction. Y is carried for the encoding only.
func NewShiftRight(x, y uint8) Instruction { return withXY(ShiftRight, x, y) }

// NewSubtractXFromY returns a 8XY7 instruction.
func NewSubtractXFromY(x, y uint8) Instruction { return withXY(SubtractXFromY, x, y) }

// NewShiftLeft returns a 8XYE instruction. Y is carried for the encoding only.
func NewShiftLeft(x, y uint8) Instruction { return withXY(ShiftLeft, x, y) }

// NewSkipIfNotEqualRegister returns a 9XY0 instruction.
func NewSkipIfNotEqualRegister(x, y uint8) Instruction {
	return withXY(SkipIfNotEqualRegister, x, y)
}

// NewSetIndex returns a ANNN instruction.
func NewSetIndex(address uint16) Instruction { return withAddress(SetIndex, address) }

// NewJumpRelative returns a BNNN instruction.
func NewJumpRelative(address uint16) Instruction { return withAddress(JumpRelative, address) }

// NewAndRandom returns a CXNN instruction.
func NewAndRandom(x, value uint8) Instruction { return withXValue(AndRandom, x, value) }

// NewDraw returns a DXYN instruction.
func NewDraw(x, y, rows uint8) Instruction {
	return Instruction{Kind: Draw, X: x & RegisterMask, Y: y & RegisterMask, Value: rows & RowsMask}
}

// NewSkipIfKeyPressed returns a EX9E instruction.
func NewSkipIfKeyPressed(x uint8) Instruction { return withX(SkipIfKeyPressed, x) }

// NewSkipIfKeyNotPressed returns a EXA1 instruction.
func NewSkipIfKeyNotPressed(x uint8) Instruction { return withX(SkipIfKeyNotPressed, x) }

// NewStoreDelayTimer returns a FX07 instruction.
func NewStoreDelayTimer(x uint8) Instruction { return withX(StoreDelayTimer, x) }

// NewAwaitKeyPress returns a FX0A instruction.
func NewAwaitKeyPress(x uint8) Instruction { return withX(AwaitKeyPress, x) }

// NewSetDelayTimer returns a FX15 instruction.
func NewSetDelayTimer(x uint8) Instruction { return withX(SetDelayTimer, x) }

// NewSetSoundTimer returns a FX18 instruction.
func NewSetSoundTimer(x uint8) Instruction { return withX(SetSoundTimer, x) }

// NewAddIndex returns a FX1E instruction.
func NewAddIndex(x uint8) Instruction { return withX(AddIndex, x) }

// NewSetIndexFontCharacter returns a FX29 instruction.
func NewSetIndexFontCharacter(x uint8) Instruction { return withX(SetIndexFontCharacter, x) }

// NewStoreBCD returns a FX33 instruction.
func NewStoreBCD(x uint8) Instruction { return withX(StoreBCD, x) }

// NewWriteMemory returns a FX55 instruction.
func NewWriteMemory(x uint8) Instruction { return withX(WriteMemory, x) }

// NewReadMemory returns a FX65 instruction.
func NewReadMemory(x uint8) Instruction { return withX(ReadMemory, x) }
