// Package runner drives an emulator with its two independent clocks. It is the
// single execution boundary of an engine: every engine call is serialized by one
// mutex, which makes it safe to feed key events and consume frames from other
// goroutines while the clocks run.
package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
)

var errCycleLimit = errors.New("cycle limit reached")

// Frame is an immutable snapshot of the screen together with the events that
// happened since the previous frame was consumed.
type Frame struct {
	Screen emulator.Screen
	Redraw bool // the screen changed
	Beep   bool // the sound timer expired
}

// Presenter consumes frames that contain a redraw or beep event.
type Presenter interface {
	Present(frame Frame)
}

// PresenterFunc adapts a function to the Presenter interface.
type PresenterFunc func(frame Frame)

// Present calls f(frame).
func (f PresenterFunc) Present(frame Frame) {
	f(frame)
}

// Option configures a Runner.
type Option func(*Runner)

// WithClockRate sets the cycle clock rate in Hz. Non positive rates are ignored.
func WithClockRate(hz int) Option {
	return func(r *Runner) {
		if hz > 0 {
			r.clockRate = hz
		}
	}
}

// WithMaxCycles stops the run without error after the given number of cycles.
// Zero means no limit.
func WithMaxCycles(cycles uint64) Option {
	return func(r *Runner) {
		r.maxCycles = cycles
	}
}

// WithTrace logs every executed opcode at debug level.
func WithTrace() Option {
	return func(r *Runner) {
		r.trace = true
	}
}

// WithPresenter sets the presenter that pending frames get handed to at the
// timer clock rate.
func WithPresenter(presenter Presenter) Option {
	return func(r *Runner) {
		r.presenter = presenter
	}
}

// Runner owns an emulator and serializes all access to it.
type Runner struct {
	logger    *log.Logger
	clockRate int
	maxCycles uint64
	presenter Presenter
	trace     bool

	mu     sync.Mutex
	emu    *emulator.Emulator
	cycles uint64
	redraw bool
	beep   bool
}

// New returns a runner for the given emulator. The runner takes ownership of the
// emulator, it must not be accessed directly anymore.
func New(logger *log.Logger, emu *emulator.Emulator, opts ...Option) *Runner {
	r := &Runner{
		logger:    logger,
		clockRate: emulator.DefaultClockRate,
		emu:       emu,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts the cycle clock and the 60 Hz timer clock and blocks until the context
// gets canceled, the cycle limit is reached or the engine fails. Engine errors halt
// the emulation and are returned wrapped, reaching the cycle limit returns nil.
// A frame event that is still pending when the clocks stop is presented before
// Run returns.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Debug("Starting emulation",
		log.Int("clock_rate", r.clockRate),
		log.Int("timer_rate", emulator.TimerClockRate))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.runCycles(ctx)
	})
	g.Go(func() error {
		return r.runTimers(ctx)
	})

	err := g.Wait()
	r.present()

	if errors.Is(err, errCycleLimit) {
		r.logger.Debug("Cycle limit reached", log.Int("cycles", int(r.Cycles())))
		return nil
	}
	return err
}

func (r *Runner) runCycles(ctx context.Context) error {
	period := max(time.Second/time.Duration(r.clockRate), time.Microsecond)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("cycle clock: %w", ctx.Err())
		case <-ticker.C:
			if err := r.Step(); err != nil {
				return err
			}
		}
	}
}

func (r *Runner) runTimers(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / emulator.TimerClockRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timer clock: %w", ctx.Err())
		case <-ticker.C:
			r.Tick()
			r.present()
		}
	}
}

// present hands a pending frame to the presenter outside of the lock.
func (r *Runner) present() {
	if r.presenter == nil {
		return
	}

	r.mu.Lock()
	pending := r.redraw || r.beep
	r.mu.Unlock()
	if !pending {
		return
	}

	r.presenter.Present(r.Frame())
}

// Step executes a single cycle. Once the cycle limit is reached no further cycles
// are executed. Engine errors are returned with the cycle number, logging them is
// left to the caller.
func (r *Runner) Step() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxCycles > 0 && r.cycles >= r.maxCycles {
		return errCycleLimit
	}

	if r.trace {
		r.traceOpcode()
	}

	state, err := r.emu.Step()
	if err != nil {
		return fmt.Errorf("halted at cycle %d: %w", r.cycles, err)
	}

	r.cycles++
	if state.Redraw {
		r.redraw = true
	}
	return nil
}

func (r *Runner) traceOpcode() {
	pc := r.emu.Registers().PC
	word := r.emu.Fetch()
	op, _ := chip8.Lookup(word)

	name := op.Name()
	if op.IsNil() {
		name = "unknown"
	}

	var access string
	switch {
	case op.ReadsMemory():
		access = "read"
	case op.WritesMemory():
		access = "write"
	}

	r.logger.Debug("Executing",
		log.Hex("pc", pc),
		log.Hex("opcode", word),
		log.String("mnemonic", name),
		log.String("memory", access))
}

// Tick decrements the emulator timers.
func (r *Runner) Tick() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emu.TickTimers() {
		r.beep = true
	}
}

// SetKeyState sets the pressed state of a keypad key.
func (r *Runner) SetKeyState(key emulator.Key, pressed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.emu.SetKeyState(key, pressed); err != nil {
		return fmt.Errorf("setting key state: %w", err)
	}
	return nil
}

// Frame returns the current screen together with the redraw and beep events that
// occurred since the last call, and clears them.
func (r *Runner) Frame() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()

	frame := Frame{
		Screen: r.emu.Screen(),
		Redraw: r.redraw,
		Beep:   r.beep,
	}
	r.redraw = false
	r.beep = false
	return frame
}

// Registers returns a copy of the emulator registers.
func (r *Runner) Registers() emulator.Registers {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.emu.Registers()
}

// Cycles returns the number of executed cycles.
func (r *Runner) Cycles() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cycles
}
