package emulator

import "strings"

// Screen dimensions in pixels.
const (
	ScreenWidth  = 64
	ScreenHeight = 32
	ScreenSize   = ScreenWidth * ScreenHeight
)

// Screen is the monochrome framebuffer, stored row-major with one byte per pixel
// holding 0 or 1. Being an array, assigning a Screen copies it.
type Screen [ScreenSize]uint8

// Pixel returns the pixel at the given position, coordinates wrap around the edges.
func (s *Screen) Pixel(x, y int) uint8 {
	return s[index(x, y)]
}

// Lit returns the number of set pixels.
func (s *Screen) Lit() int {
	n := 0
	for _, p := range s {
		n += int(p)
	}
	return n
}

// String renders the screen as text, one line per row with '#' for set pixels.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(ScreenSize + ScreenHeight)
	for y := range ScreenHeight {
		for x := range ScreenWidth {
			if s[y*ScreenWidth+x] != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// toggle XORs the pixel at the given wrapped position and returns true if
// a set pixel was cleared.
func (s *Screen) toggle(x, y int) bool {
	i := index(x, y)
	collision := s[i] == 1
	s[i] ^= 1
	return collision
}

func index(x, y int) int {
	x %= ScreenWidth
	if x < 0 {
		x += ScreenWidth
	}
	y %= ScreenHeight
	if y < 0 {
		y += ScreenHeight
	}
	return y*ScreenWidth + x
}
