// Package emulator implements the CHIP-8 interpreter engine: the machine state,
// the fetch-decode-execute cycle and the 60 Hz timer tick.
//
// An Emulator has no internal locking. All calls to Step, TickTimers and SetKeyState
// as well as reads of its state have to be serialized by the caller.
package emulator

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Hardware constants.
const (
	NumberOfRegisters = 16
	StackSize         = 16
	NumberOfKeys      = 16

	// FlagRegister is the index of VF, which doubles as carry, borrow and collision flag.
	FlagRegister = 0xF

	// TimerClockRate is the fixed rate in Hz at which TickTimers has to be called.
	TimerClockRate = 60

	// DefaultClockRate is the default rate in Hz at which Step should be called.
	DefaultClockRate = 500
)

var (
	// ErrROMTooLarge is returned when a ROM does not fit into program memory.
	ErrROMTooLarge = errors.New("rom too large")
	// ErrStackOverflow is returned when a subroutine call exceeds the stack depth.
	// It is the sentinel of the retrogolib CHIP-8 CPU, errors.Is matches either name.
	ErrStackOverflow = chip8cpu.ErrStackOverflow
	// ErrStackUnderflow is returned when returning from a subroutine with an empty stack.
	ErrStackUnderflow = chip8cpu.ErrStackUnderflow
	// ErrInvalidKey is returned for key codes outside of 0x0-0xF.
	ErrInvalidKey = errors.New("invalid key")
)

// Key is a key of the 16 key hexadecimal keypad.
type Key uint8

// Keypad keys.
const (
	Key0 Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
)

// State is the result of a single cycle.
type State struct {
	Screen Screen // copy of the framebuffer after the cycle
	Redraw bool   // set when the cycle cleared the screen or drew a sprite
}

// Registers is a copy of the CPU registers.
type Registers struct {
	V          [NumberOfRegisters]uint8
	I          uint16
	PC         uint16
	SP         uint8
	DelayTimer uint8
	SoundTimer uint8
}

// Option configures an Emulator.
type Option func(*Emulator)

// WithRandom sets the source of uniformly distributed random bytes used by
// the CXNN instruction.
func WithRandom(random func() uint8) Option {
	return func(e *Emulator) {
		e.random = random
	}
}

// WithSeed makes the random byte source deterministic.
func WithSeed(seed uint64) Option {
	return func(e *Emulator) {
		rng := rand.New(rand.NewPCG(seed, seed))
		e.random = func() uint8 {
			return uint8(rng.UintN(256))
		}
	}
}

// Emulator emulates the CHIP-8 virtual machine.
type Emulator struct {
	memory [chip8.MemorySize]byte
	v      [NumberOfRegisters]uint8
	i      uint16
	stack  [StackSize]uint16
	sp     uint8
	pc     uint16

	delayTimer uint8
	soundTimer uint8

	keypad         [NumberOfKeys]bool
	lastPressedKey Key
	keyLatched     bool

	screen Screen
	random func() uint8
}

// New returns a new emulator with the font set and the given ROM loaded into memory.
// An empty ROM is valid.
func New(rom []byte, opts ...Option) (*Emulator, error) {
	if len(rom) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("%w: %d bytes, at most %d bytes supported",
			ErrROMTooLarge, len(rom), chip8.MaxProgramSize)
	}

	e := &Emulator{
		pc: chip8.ProgramStart,
		random: func() uint8 {
			return uint8(rand.UintN(256))
		},
	}
	copy(e.memory[chip8.FontStart:], fontSet[:])
	copy(e.memory[chip8.ProgramStart:], rom)

	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Registers returns a copy of the registers.
func (e *Emulator) Registers() Registers {
	return Registers{
		V:          e.v,
		I:          e.i,
		PC:         e.pc,
		SP:         e.sp,
		DelayTimer: e.delayTimer,
		SoundTimer: e.soundTimer,
	}
}

// Screen returns a copy of the framebuffer.
func (e *Emulator) Screen() Screen {
	return e.screen
}

// ReadMemory returns the byte at the given address, the address wraps at 0xFFF.
func (e *Emulator) ReadMemory(address uint16) byte {
	return e.memory[address&chip8.MaxAddress]
}

// KeyPressed returns whether the key is currently held down.
func (e *Emulator) KeyPressed(key Key) bool {
	if key >= NumberOfKeys {
		return false
	}
	return e.keypad[key]
}

// SetKeyState sets the pressed state of a key. A press is additionally latched for
// a pending or following key wait instruction, replacing any earlier unconsumed press.
func (e *Emulator) SetKeyState(key Key, pressed bool) error {
	if key >= NumberOfKeys {
		return fmt.Errorf("%w: 0x%X", ErrInvalidKey, uint8(key))
	}

	e.keypad[key] = pressed
	if pressed {
		e.lastPressedKey = key
		e.keyLatched = true
	}
	return nil
}

// TickTimers decrements the delay and sound timers. It returns true on the tick that
// brings the sound timer from 1 to 0, which signals a beep pulse.
// It has to be called at TimerClockRate independent of the cycle clock rate.
func (e *Emulator) TickTimers() bool {
	if e.delayTimer > 0 {
		e.delayTimer--
	}

	beep := false
	if e.soundTimer > 0 {
		beep = e.soundTimer == 1
		e.soundTimer--
	}
	return beep
}
