// Package keypad maps physical keyboard keys to the 16 key hexadecimal keypad and
// provides a terminal based key source.
package keypad

import (
	"unicode"

	"github.com/retroenv/chip8vm/internal/emulator"
)

// layout maps the left hand block of a QWERTY keyboard to the keypad:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var layout = map[rune]emulator.Key{
	'1': emulator.Key1, '2': emulator.Key2, '3': emulator.Key3, '4': emulator.KeyC,
	'q': emulator.Key4, 'w': emulator.Key5, 'e': emulator.Key6, 'r': emulator.KeyD,
	'a': emulator.Key7, 's': emulator.Key8, 'd': emulator.Key9, 'f': emulator.KeyE,
	'z': emulator.KeyA, 'x': emulator.Key0, 'c': emulator.KeyB, 'v': emulator.KeyF,
}

// Map returns the keypad key for the physical key, ignoring the case.
func Map(r rune) (emulator.Key, bool) {
	key, ok := layout[unicode.ToLower(r)]
	return key, ok
}
