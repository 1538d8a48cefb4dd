package types

import "fmt"

// InternalErrorLabel is rendered for any enum value outside its closed set.
const InternalErrorLabel = "<internal error>"

// DebounceState is the state of the hysteresis filter over a detect line.
// The stable states are the settled ones; the debounce states are transient.
type DebounceState int

// Debounce states.
const (
	DebounceInvalid DebounceState = iota
	DebounceInactiveDebounce
	DebounceActiveDebounce
	DebounceInactiveStable
	DebounceActiveStable

	debounceStateCount
)

// String returns the human-readable label of the state.
func (s DebounceState) String() string {
	switch s {
	case DebounceInvalid:
		return "invalid"
	case DebounceInactiveDebounce:
		return "inactive debounce"
	case DebounceActiveDebounce:
		return "active debounce"
	case DebounceInactiveStable:
		return "inactive stable"
	case DebounceActiveStable:
		return "active stable"
	default:
		return InternalErrorLabel
	}
}

// ParseDebounceState accepts either the label ("active stable") or its
// snake_case configuration form ("active_stable").
func ParseDebounceState(s string) (DebounceState, error) {
	for d := DebounceInvalid; d < debounceStateCount; d++ {
		if d.String() == s || snake(d.String()) == s {
			return d, nil
		}
	}
	return DebounceInvalid, fmt.Errorf("%w: debounce state %q", ErrUnknownLabel, s)
}

// HotplugState is the board's settled belief about whether a module is
// plugged into an interface.
type HotplugState int

// Hot-plug states.
const (
	HotplugUnknown HotplugState = iota
	HotplugPlugged
	HotplugUnplugged

	hotplugStateCount
)

func (s HotplugState) String() string {
	switch s {
	case HotplugUnknown:
		return "unknown"
	case HotplugPlugged:
		return "plugged"
	case HotplugUnplugged:
		return "unplugged"
	default:
		return InternalErrorLabel
	}
}

// ParseHotplugState maps a label to a HotplugState.
func ParseHotplugState(s string) (HotplugState, error) {
	for h := HotplugUnknown; h < hotplugStateCount; h++ {
		if h.String() == s {
			return h, nil
		}
	}
	return HotplugUnknown, fmt.Errorf("%w: hotplug state %q", ErrUnknownLabel, s)
}

func snake(label string) string {
	b := []byte(label)
	for i, c := range b {
		if c == ' ' {
			b[i] = '_'
		}
	}
	return string(b)
}
