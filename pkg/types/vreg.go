package types

import (
	"fmt"
	"sync/atomic"
)

// VregRail is one GPIO-controlled physical rail of a regulator.
type VregRail struct {
	GPIO         uint32 `yaml:"gpio"`
	HoldTime     uint32 `yaml:"hold_time"` // microseconds
	ActiveHigh   bool   `yaml:"active_high"`
	DefaultValue uint32 `yaml:"default"`
}

// Vreg is a logical power rail and the rails backing it. Enabled and the use
// count are mutated by the power subsystem while other readers may be
// reporting them, so both are atomic.
type Vreg struct {
	Name  string
	Rails []VregRail

	enabled  atomic.Bool
	useCount atomic.Uint32
}

// NumRails returns the number of underlying rails.
func (v *Vreg) NumRails() int { return len(v.Rails) }

// PowerEnabled reports whether the rails are currently driven on.
func (v *Vreg) PowerEnabled() bool { return v.enabled.Load() }

// UseCount returns the current reference count.
func (v *Vreg) UseCount() uint32 { return v.useCount.Load() }

// Get takes a reference, enabling the rails on the first one. It returns the
// new count.
func (v *Vreg) Get() uint32 {
	n := v.useCount.Add(1)
	if n == 1 {
		v.enabled.Store(true)
	}
	return n
}

// Put drops a reference, disabling the rails when the last one goes. Putting
// a regulator with no references fails with ErrRefcountUnderflow.
func (v *Vreg) Put() (uint32, error) {
	for {
		cur := v.useCount.Load()
		if cur == 0 {
			return 0, fmt.Errorf("%w: vreg %s", ErrRefcountUnderflow, v.Name)
		}
		if v.useCount.CompareAndSwap(cur, cur-1) {
			if cur == 1 {
				v.enabled.Store(false)
			}
			return cur - 1, nil
		}
	}
}
