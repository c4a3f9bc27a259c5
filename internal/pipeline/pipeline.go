// Package pipeline orchestrates the disassembly and emulation workflows.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/detector"
	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/chip8vm/internal/keypad"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnsupportedSystem is returned for ROM files of other systems.
var ErrUnsupportedSystem = errors.New("unsupported system")

// Pipeline orchestrates the complete ROM processing workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	input    io.Reader // keypad input source
}

// New creates a new processing pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		input:    os.Stdin,
	}
}

// Execute loads the ROM file and either disassembles or runs it.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, writer io.Writer) error {
	rom, err := loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}

	if system := p.detector.Detect(opts.Input, rom); system != arch.CHIP8System {
		return fmt.Errorf("%w: file %s looks like a %s rom", ErrUnsupportedSystem, opts.Input, system)
	}

	p.printInfo(opts, rom)

	if opts.Run {
		return p.Emulate(ctx, rom, opts, writer)
	}
	return p.Disassemble(ctx, rom, opts, writer)
}

// Disassemble writes the ROM as listing or assembly source to the writer.
func (p *Pipeline) Disassemble(ctx context.Context, rom []byte, opts options.Program, writer io.Writer) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}

	switch opts.Format {
	case options.FormatAssembly:
		if err := disasm.WriteAssembly(writer, rom, opts.Disassembler()); err != nil {
			return fmt.Errorf("writing assembly: %w", err)
		}

	case options.FormatListing, "":
		instructions, err := disasm.Disassemble(rom)
		if err != nil {
			return fmt.Errorf("disassembling: %w", err)
		}
		if err := disasm.Render(writer, instructions); err != nil {
			return fmt.Errorf("rendering listing: %w", err)
		}

	default:
		return fmt.Errorf("unsupported output format '%s'", opts.Format)
	}

	return nil
}

// Emulate runs the ROM until the cycle limit is reached, the context gets canceled
// or the engine fails. Cancellation ends the emulation without error. The final
// screen and registers are written to the writer if requested.
func (p *Pipeline) Emulate(ctx context.Context, rom []byte, opts options.Program, writer io.Writer) error {
	var emuOpts []emulator.Option
	if opts.Seed != 0 {
		emuOpts = append(emuOpts, emulator.WithSeed(opts.Seed))
	}
	emu, err := emulator.New(rom, emuOpts...)
	if err != nil {
		return fmt.Errorf("creating emulator: %w", err)
	}

	runnerOpts := []runner.Option{
		runner.WithClockRate(opts.ClockRate),
		runner.WithMaxCycles(opts.MaxCycles),
		runner.WithPresenter(runner.PresenterFunc(p.present)),
	}
	if opts.Trace {
		runnerOpts = append(runnerOpts, runner.WithTrace())
	}
	r := runner.New(p.logger, emu, runnerOpts...)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if opts.Keyboard {
		host := keypad.NewHost(p.logger, p.input, r, cancel)
		if err := host.Start(); err != nil {
			return fmt.Errorf("starting keypad host: %w", err)
		}
		defer host.Stop()
	}

	err = r.Run(ctx)
	switch {
	case errors.Is(err, context.Canceled):
		p.logger.Info("Emulation stopped", log.Int("cycles", int(r.Cycles())))
	case err != nil:
		return fmt.Errorf("running rom: %w", err)
	default:
		p.logger.Info("Emulation finished", log.Int("cycles", int(r.Cycles())))
	}

	if opts.Dump {
		if err := dump(writer, r); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) present(frame runner.Frame) {
	if frame.Beep {
		p.logger.Info("Beep")
	}
	if frame.Redraw {
		p.logger.Debug("Screen updated", log.Int("lit_pixels", frame.Screen.Lit()))
	}
}

// dump writes the screen and the registers of the runner.
func dump(w io.Writer, r *runner.Runner) error {
	frame := r.Frame()
	regs := r.Registers()

	if _, err := fmt.Fprint(w, frame.Screen.String()); err != nil {
		return fmt.Errorf("writing screen: %w", err)
	}
	for i, v := range regs.V {
		if _, err := fmt.Fprintf(w, "V%X=%02X ", i, v); err != nil {
			return fmt.Errorf("writing registers: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "\nI=%03X PC=%03X SP=%X DT=%02X ST=%02X\n",
		regs.I, regs.PC, regs.SP, regs.DelayTimer, regs.SoundTimer); err != nil {
		return fmt.Errorf("writing registers: %w", err)
	}
	return nil
}

// printInfo prints information about the ROM being processed.
func (p *Pipeline) printInfo(opts options.Program, rom []byte) {
	if opts.Quiet {
		return
	}

	mode := "disassemble"
	if opts.Run {
		mode = "run"
	}
	p.logger.Info("Processing CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", len(rom)),
		log.String("mode", mode),
	)
}
