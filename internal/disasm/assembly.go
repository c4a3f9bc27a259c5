package disasm

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/instruction"
	"github.com/retroenv/retrogolib/set"
)

const (
	entryLabel  = "Start"
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
	dataNaming  = "_data_%04x"
)

// Options controls the assembly output.
type Options struct {
	HexComments    bool // append the opcode bytes as comment
	OffsetComments bool // append the memory address as comment
}

// WriteAssembly writes the ROM data as assembly source. Words that are not valid
// opcodes and a trailing odd byte are written as .byte data. Jump, call and index
// targets that point to an instruction inside the program get a label.
func WriteAssembly(w io.Writer, data []byte, opts Options) error {
	labels := collectLabels(data)

	if err := writeHeader(w); err != nil {
		return err
	}

	addressName := func(address uint16) string {
		if name, ok := labels[address]; ok {
			return name
		}
		return instruction.HexAddress(address)
	}

	previousSkips := false
	for offset := 0; offset < len(data); offset += chip8.OpcodeSize {
		address := uint16(chip8.ProgramStart + offset)
		if name, ok := labels[address]; ok {
			if _, err := fmt.Fprintf(w, "%s:\n", name); err != nil {
				return fmt.Errorf("writing label %s: %w", name, err)
			}
		}

		bytes := data[offset:min(offset+chip8.OpcodeSize, len(data))]
		comment := lineComment(address, bytes, opts)

		line := dataLine(bytes)
		ins, decodeErr := decodeWord(bytes)
		if decodeErr == nil {
			line = "    " + ins.Format(addressName)
		}

		if err := writeLine(w, line, comment); err != nil {
			return err
		}

		if decodeErr == nil && endsBlock(bytes, previousSkips) {
			if _, err := fmt.Fprintln(w); err != nil {
				return fmt.Errorf("writing block separator: %w", err)
			}
		}
		previousSkips = isSkip(bytes)
	}

	return nil
}

func writeHeader(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "; CHIP-8 ROM Disassembly\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, "; Code base address: $%04X\n", chip8.ProgramStart); err != nil {
		return fmt.Errorf("writing code base address: %w", err)
	}
	if _, err := fmt.Fprintf(w, "; Program starts at $200 in CHIP-8 memory space\n\n"); err != nil {
		return fmt.Errorf("writing memory space comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, ".org $200\n\n"); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}
	return nil
}

func writeLine(w io.Writer, line, comment string) error {
	if comment == "" {
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
		return nil
	}

	if _, err := fmt.Fprintf(w, "%-32s ; %s\n", line, comment); err != nil {
		return fmt.Errorf("writing line with comment: %w", err)
	}
	return nil
}

// decodeWord decodes a full opcode word. A single trailing byte is reported as
// unrecognized so that it gets written as data.
func decodeWord(bytes []byte) (instruction.Instruction, error) {
	if len(bytes) < chip8.OpcodeSize {
		return instruction.Instruction{}, &instruction.UnrecognizedOpcodeError{Opcode: uint16(bytes[0]) << 8}
	}
	word := uint16(bytes[0])<<8 | uint16(bytes[1])
	return instruction.Decode(word)
}

// endsBlock returns whether the opcode unconditionally leaves the linear code flow,
// which is the case for returns and jumps that are not guarded by a skip.
func endsBlock(bytes []byte, previousSkips bool) bool {
	if len(bytes) < chip8.OpcodeSize || previousSkips {
		return false
	}
	op, ok := chip8.Lookup(uint16(bytes[0])<<8 | uint16(bytes[1]))
	if !ok {
		return false
	}
	return op.IsReturn() || op.IsJump()
}

func isSkip(bytes []byte) bool {
	if len(bytes) < chip8.OpcodeSize {
		return false
	}
	op, ok := chip8.Lookup(uint16(bytes[0])<<8 | uint16(bytes[1]))
	return ok && op.IsSkip()
}

func dataLine(bytes []byte) string {
	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("    .byte $%02X", bytes[0]))
	for _, b := range bytes[1:] {
		buf.WriteString(fmt.Sprintf(", $%02X", b))
	}
	return buf.String()
}

func lineComment(address uint16, bytes []byte, opts Options) string {
	var comments []string

	if opts.OffsetComments {
		comments = append(comments, fmt.Sprintf("$%04X", address))
	}

	if opts.HexComments {
		hex := make([]string, 0, len(bytes))
		for _, b := range bytes {
			hex = append(hex, fmt.Sprintf("%02X", b))
		}
		comments = append(comments, strings.Join(hex, " "))
	}

	return strings.Join(comments, "  ")
}

// collectLabels returns the label names of all addresses that are referenced by
// a jump, call or index load and point to an instruction start inside the program.
func collectLabels(data []byte) map[uint16]string {
	calls := set.New[uint16]()
	jumps := set.New[uint16]()
	referenced := set.New[uint16]()
	var addresses []uint16

	for offset := 0; offset+1 < len(data); offset += chip8.OpcodeSize {
		word := uint16(data[offset])<<8 | uint16(data[offset+1])
		op, ok := chip8.Lookup(word)
		if !ok {
			continue
		}

		target, ok := chip8.TargetInProgram(word, len(data))
		if !ok || target%chip8.OpcodeSize != 0 {
			continue
		}

		switch {
		case op.IsCall():
			calls.Add(target)
		case op.IsJump():
			jumps.Add(target)
		case op.IsDataReference():
		default:
			continue
		}

		if !referenced.Contains(target) {
			referenced.Add(target)
			addresses = append(addresses, target)
		}
	}
	slices.Sort(addresses)

	labels := make(map[uint16]string, len(addresses)+1)
	labels[chip8.ProgramStart] = entryLabel

	for _, address := range addresses {
		if address == chip8.ProgramStart {
			continue
		}

		switch {
		case calls.Contains(address):
			labels[address] = fmt.Sprintf(funcNaming, address)
		case jumps.Contains(address):
			labels[address] = fmt.Sprintf(labelNaming, address)
		default:
			labels[address] = fmt.Sprintf(dataNaming, address)
		}
	}

	return labels
}
