package command

import (
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/power/pkg/types"
)

// HardwareDefaultLength selects the hardware default WAKEOUT pulse length.
const HardwareDefaultLength = -1

// WakeoutDefault is the WAKEOUT pulse length used when a wakeout command
// gives none. It lives as long as the Env that owns it.
type WakeoutDefault struct {
	mu     sync.Mutex
	length int
}

// NewWakeoutDefault returns a default initialised to length.
func NewWakeoutDefault(length int) *WakeoutDefault {
	return &WakeoutDefault{length: length}
}

// Get returns the current default in microseconds.
func (w *WakeoutDefault) Get() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.length
}

// Set replaces the default.
func (w *WakeoutDefault) Set(length int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.length = length
}

// Env is everything a command handler works against.
type Env struct {
	Out      io.Writer
	Registry types.Registry
	Power    types.PowerController
	Wakeout  *WakeoutDefault
	Log      zerolog.Logger

	// Table is the command table; nil selects StandardTable.
	Table *Table
}

func (e *Env) commands() *Table {
	if e.Table == nil {
		e.Table = StandardTable()
	}
	return e.Table
}

func (e *Env) wakeout() *WakeoutDefault {
	if e.Wakeout == nil {
		e.Wakeout = NewWakeoutDefault(HardwareDefaultLength)
	}
	return e.Wakeout
}
