// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/chip8vm/internal/options"
)

// ParseFlags parses the command line flags of the process.
func ParseFlags() (options.Program, error) {
	return Parse(os.Args[0], os.Args[1:])
}

// Parse parses the given command line arguments and returns the program options.
func Parse(name string, args []string) (options.Program, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(args)
	args = flags.Args()
	if err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	if len(args) == 0 && opts.Batch == "" {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if opts.Batch == "" {
		opts.Input = args[0]
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and the flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8vm [options] <ROM file>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Format = strings.ToLower(opts.Format)

	validFormats := []string{options.FormatListing, options.FormatAssembly}
	valid := false
	for _, format := range validFormats {
		if opts.Format == format {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unsupported output format: %s. Valid options: %s",
			opts.Format, strings.Join(validFormats, ", "))
	}

	if opts.ClockRate <= 0 {
		return fmt.Errorf("invalid clock rate %d, it has to be positive", opts.ClockRate)
	}

	if opts.Run && opts.Batch != "" {
		return fmt.Errorf("batch mode is not supported when running a ROM")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "name of the output file, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically output file naming, for example *.ch8")
	flags.StringVar(&opts.Format, "f", options.FormatListing, "disassembler output format (listing/asm)")
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output memory addresses in comments")

	flags.BoolVar(&opts.Run, "run", false, "run the ROM in the virtual machine instead of disassembling it")
	flags.IntVar(&opts.ClockRate, "clock", emulator.DefaultClockRate, "cycle clock rate in Hz")
	flags.Uint64Var(&opts.MaxCycles, "cycles", 0, "stop the emulation after the given number of cycles, 0 runs until interrupted")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses a random seed")
	flags.BoolVar(&opts.Keyboard, "keyboard", false, "read keypad input from the terminal (1234/QWER/ASDF/ZXCV, Escape quits)")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed opcode, requires debug logging")
	flags.BoolVar(&opts.Dump, "dump", false, "print the screen and the registers when the emulation ends")

	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
