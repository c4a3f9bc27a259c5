// Package detector handles system detection of ROM files.
package detector

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// inesMagic is the header signature of iNES files.
var inesMagic = []byte{'N', 'E', 'S', 0x1A}

// Detector handles system detection from file headers and extensions.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the system of a ROM image. CHIP-8 images carry no header,
// so every image that is not recognized as a different system is treated as
// CHIP-8 program.
func (d *Detector) Detect(filename string, data []byte) arch.System {
	system := d.detectFromData(data)
	if system == "" {
		system = d.detectFromFile(filename)
	}

	d.logger.Debug("Detected system",
		log.Stringer("system", system),
		log.String("file", filename))
	return system
}

func (d *Detector) detectFromData(data []byte) arch.System {
	if bytes.HasPrefix(data, inesMagic) {
		return arch.NES
	}
	return ""
}

// detectFromFile determines the system type based on file extension.
func (d *Detector) detectFromFile(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".nes":
		return arch.NES
	default:
		// .ch8, .c8 and .rom as well as raw binaries
		return arch.CHIP8System
	}
}
