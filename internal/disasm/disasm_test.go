package disasm

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/instruction"
	"github.com/retroenv/retrogolib/assert"
)

func TestDisassemble(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected []instruction.Instruction
	}{
		{
			name:     "clear screen",
			data:     []byte{0x00, 0xE0},
			expected: []instruction.Instruction{instruction.NewClearScreen()},
		},
		{
			name: "multiple words",
			data: []byte{0x60, 0x2A, 0xA2, 0x10, 0xD0, 0x15},
			expected: []instruction.Instruction{
				instruction.NewSetValue(0, 0x2A),
				instruction.NewSetIndex(0x210),
				instruction.NewDraw(0, 1, 5),
			},
		},
		{
			name:     "trailing odd byte",
			data:     []byte{0x00, 0xEE, 0x12},
			expected: []instruction.Instruction{instruction.NewReturn()},
		},
		{
			name:     "empty",
			data:     nil,
			expected: []instruction.Instruction{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instructions, err := Disassemble(tt.data)
			assert.NoError(t, err)
			assert.Len(t, instructions, len(tt.expected))
			for i, ins := range instructions {
				assert.Equal(t, tt.expected[i], ins)
			}
		})
	}
}

func TestDisassembleUnrecognized(t *testing.T) {
	_, err := Disassemble([]byte{0x00, 0xE0, 0x80, 0x09, 0x00, 0xEE})
	assert.Error(t, err)

	var opErr *instruction.UnrecognizedOpcodeError
	assert.True(t, errors.As(err, &opErr))
	assert.Equal(t, uint16(0x8009), opErr.Opcode)
	assert.ErrorContains(t, err, "offset 0x0002")
}

func TestRender(t *testing.T) {
	instructions := []instruction.Instruction{
		instruction.NewClearScreen(),
		instruction.NewJumpAbsolute(0x200),
	}

	buf := &bytes.Buffer{}
	assert.NoError(t, Render(buf, instructions))

	expected := "0000 00E0 Clears the screen\n" +
		"0002 1200 Jumps to address 0x200\n"
	assert.Equal(t, expected, buf.String())
}

func TestRenderDisassembledRoundTrip(t *testing.T) {
	data := []byte{0x00, 0xE0, 0x6A, 0x02, 0x22, 0x04, 0x00, 0xEE}
	instructions, err := Disassemble(data)
	assert.NoError(t, err)

	buf := &bytes.Buffer{}
	assert.NoError(t, Render(buf, instructions))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	for i, line := range lines {
		prefix := fmt.Sprintf("%04X %02X%02X ", i*2, data[i*2], data[i*2+1])
		assert.True(t, strings.HasPrefix(line, prefix), "line %d: %s", i, line)
	}
}

func TestWriteAssembly(t *testing.T) {
	data := []byte{
		0x22, 0x06, // call 0x206
		0xA2, 0x08, // ld I, 0x208
		0x12, 0x04, // jp 0x204
		0x00, 0xEE, // ret
		0xF0, // sprite data
	}

	buf := &bytes.Buffer{}
	assert.NoError(t, WriteAssembly(buf, data, Options{}))

	expected := `; CHIP-8 ROM Disassembly
; Code base address: $0200
; Program starts at $200 in CHIP-8 memory space

.org $200

Start:
    call _func_0206
    ld I, _data_0208
_label_0204:
    jp _label_0204

_func_0206:
    ret

_data_0208:
    .byte $F0
`
	assert.Equal(t, expected, buf.String())
}

func TestWriteAssemblyComments(t *testing.T) {
	data := []byte{0x00, 0xE0, 0x80, 0x09}

	buf := &bytes.Buffer{}
	assert.NoError(t, WriteAssembly(buf, data, Options{
		HexComments:    true,
		OffsetComments: true,
	}))

	output := buf.String()
	assert.Contains(t, output, fmt.Sprintf("%-32s ; %s\n", "    cls", "$0200  00 E0"))
	assert.Contains(t, output, fmt.Sprintf("%-32s ; %s\n", "    .byte $80, $09", "$0202  80 09"))
}

func TestWriteAssemblyTargetsOutsideProgram(t *testing.T) {
	data := []byte{
		0x13, 0x00, // jp 0x300, outside of the program
		0xA0, 0x50, // ld I, 0x050, font area
		0x12, 0x01, // jp 0x201, inside an instruction
	}

	buf := &bytes.Buffer{}
	assert.NoError(t, WriteAssembly(buf, data, Options{}))

	output := buf.String()
	assert.Contains(t, output, "    jp $300\n")
	assert.Contains(t, output, "    ld I, $050\n")
	assert.Contains(t, output, "    jp $201\n")
	assert.False(t, strings.Contains(output, "_label_"))
}

func TestWriteAssemblyBlockSeparators(t *testing.T) {
	data := []byte{
		0x30, 0x01, // se V0, $01
		0x12, 0x00, // jp Start, guarded by the skip
		0x00, 0xEE, // ret
		0x00, 0xE0, // cls
	}

	buf := &bytes.Buffer{}
	assert.NoError(t, WriteAssembly(buf, data, Options{}))

	assert.Contains(t, buf.String(), "Start:\n    se V0, $01\n    jp Start\n    ret\n\n    cls\n")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteErrors(t *testing.T) {
	err := Render(failingWriter{}, []instruction.Instruction{instruction.NewClearScreen()})
	assert.ErrorContains(t, err, "disk full")

	err = WriteAssembly(failingWriter{}, []byte{0x00, 0xE0}, Options{})
	assert.ErrorContains(t, err, "disk full")
}
