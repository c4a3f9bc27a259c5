package keypad

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// DefaultHoldDuration is the time a key stays pressed after its last key event.
// Terminals report no key releases, so a release is synthesized once a key did
// not repeat within this duration.
const DefaultHoldDuration = 150 * time.Millisecond

const (
	ctrlC  = 0x03
	escape = 0x1B
)

// KeySetter receives key state changes.
type KeySetter interface {
	SetKeyState(key emulator.Key, pressed bool) error
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithHoldDuration sets the duration a key stays pressed after its last key event.
func WithHoldDuration(d time.Duration) HostOption {
	return func(h *Host) {
		h.holdDuration = d
	}
}

// Host reads key presses from a terminal or any other reader and forwards them
// to a KeySetter.
type Host struct {
	logger       *log.Logger
	input        io.Reader
	keys         KeySetter
	interrupt    func()
	holdDuration time.Duration

	mu       sync.Mutex
	releases map[emulator.Key]*time.Timer
	stopped  bool

	done         chan struct{}
	stopOnce     sync.Once
	fd           int
	oldTermState *term.State
}

// NewHost returns a host that reads from the input. The interrupt callback is
// called when Ctrl+C or Escape is read, raw terminal mode disables the signal
// generation of the terminal.
func NewHost(logger *log.Logger, input io.Reader, keys KeySetter, interrupt func(), opts ...HostOption) *Host {
	h := &Host{
		logger:       logger,
		input:        input,
		keys:         keys,
		interrupt:    interrupt,
		holdDuration: DefaultHoldDuration,
		releases:     map[emulator.Key]*time.Timer{},
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Start puts the terminal into raw mode if the input is a terminal and begins
// reading in a goroutine. Call Stop to restore the terminal.
func (h *Host) Start() error {
	if file, ok := h.input.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		h.fd = int(file.Fd())
		oldState, err := term.MakeRaw(h.fd)
		if err != nil {
			close(h.done)
			return err
		}
		h.oldTermState = oldState
	}

	go h.read()
	return nil
}

// Done returns a channel that is closed when the input is exhausted.
func (h *Host) Done() <-chan struct{} {
	return h.done
}

// Stop releases all held keys and restores the terminal state. A blocking read
// of the input is not interrupted.
func (h *Host) Stop() {
	h.stopOnce.Do(func() {
		h.mu.Lock()
		h.stopped = true
		for key, timer := range h.releases {
			timer.Stop()
			h.setKeyState(key, false)
		}
		clear(h.releases)
		h.mu.Unlock()

		if h.oldTermState != nil {
			_ = term.Restore(h.fd, h.oldTermState)
			h.oldTermState = nil
		}
	})
}

func (h *Host) read() {
	defer close(h.done)
	buf := make([]byte, 1)

	for {
		n, err := h.input.Read(buf)
		if n > 0 {
			h.handleByte(buf[0])
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				h.logger.Error("Reading key input failed", log.Err(err))
			}
			return
		}
	}
}

func (h *Host) handleByte(b byte) {
	if b == ctrlC || b == escape {
		if h.interrupt != nil {
			h.interrupt()
		}
		return
	}

	key, ok := Map(rune(b))
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}

	h.setKeyState(key, true)

	if timer, ok := h.releases[key]; ok && timer.Stop() {
		timer.Reset(h.holdDuration)
		return
	}

	// the callback blocks on the lock until the timer is stored
	var timer *time.Timer
	timer = time.AfterFunc(h.holdDuration, func() {
		h.release(key, timer)
	})
	h.releases[key] = timer
}

func (h *Host) release(key emulator.Key, timer *time.Timer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped || h.releases[key] != timer {
		return
	}

	delete(h.releases, key)
	h.setKeyState(key, false)
}

func (h *Host) setKeyState(key emulator.Key, pressed bool) {
	if err := h.keys.SetKeyState(key, pressed); err != nil {
		h.logger.Error("Setting key state failed", log.Err(err))
	}
}
