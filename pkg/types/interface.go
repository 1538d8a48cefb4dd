package types

import (
	"fmt"
	"sync/atomic"
)

// PortID is a switch port identifier. InvalidPort marks an interface with no
// switch port binding.
type PortID int

// InvalidPort is the "no switch port" sentinel.
const InvalidPort PortID = -1

// Valid reports whether p names a switch port.
func (p PortID) Valid() bool { return p >= 0 }

// InterfaceType classifies an interface slot.
type InterfaceType int

// Interface types.
const (
	InterfaceTypeUnknown InterfaceType = iota
	InterfaceTypeBuiltin
	InterfaceTypeModulePort
	InterfaceTypeModulePort2

	interfaceTypeCount
)

// String returns the configuration name of the interface type.
func (t InterfaceType) String() string {
	switch t {
	case InterfaceTypeUnknown:
		return "unknown"
	case InterfaceTypeBuiltin:
		return "builtin"
	case InterfaceTypeModulePort:
		return "module_port"
	case InterfaceTypeModulePort2:
		return "module_port2"
	default:
		return InternalErrorLabel
	}
}

// ParseInterfaceType maps a configuration name to an InterfaceType.
func ParseInterfaceType(s string) (InterfaceType, error) {
	for t := InterfaceTypeUnknown; t < interfaceTypeCount; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return InterfaceTypeUnknown, fmt.Errorf("%w: interface type %q", ErrUnknownLabel, s)
}

// InterfaceOrder is the configured order of a module port.
type InterfaceOrder int

// Interface orders.
const (
	OrderUnknown InterfaceOrder = iota
	OrderPrimary
	OrderSecondary

	orderCount
)

func (o InterfaceOrder) String() string {
	switch o {
	case OrderUnknown:
		return "unknown"
	case OrderPrimary:
		return "primary"
	case OrderSecondary:
		return "secondary"
	default:
		return InternalErrorLabel
	}
}

// ParseInterfaceOrder maps a label to an InterfaceOrder.
func ParseInterfaceOrder(s string) (InterfaceOrder, error) {
	for o := OrderUnknown; o < orderCount; o++ {
		if o.String() == s {
			return o, nil
		}
	}
	return OrderUnknown, fmt.Errorf("%w: order %q", ErrUnknownLabel, s)
}

// DetectInput is the detect (and, on module_port, wake) GPIO of a module
// port together with the debounce filter state kept by the hot-plug
// subsystem. The debounce fields are updated asynchronously and are only
// accessed atomically.
type DetectInput struct {
	GPIO       uint32
	ActiveHigh bool

	state atomic.Int32
	last  atomic.Int32
}

// DebounceState returns the current debounce filter state.
func (d *DetectInput) DebounceState() DebounceState {
	return DebounceState(d.state.Load())
}

// LastState returns the debounce state preceding the current one.
func (d *DetectInput) LastState() DebounceState {
	return DebounceState(d.last.Load())
}

// SetDebounceState moves the filter to s, remembering the previous state.
// Only the owner of the debounce state machine calls it.
func (d *DetectInput) SetDebounceState(s DebounceState) {
	d.last.Store(d.state.Swap(int32(s)))
}

// InitDebounceState sets both the current and last states without a transition.
func (d *DetectInput) InitDebounceState(current, last DebounceState) {
	d.state.Store(int32(current))
	d.last.Store(int32(last))
}

// Polarity returns "high" or "low" for the detect line's active level.
func (d *DetectInput) Polarity() string {
	if d.ActiveHigh {
		return "high"
	}
	return "low"
}

// Interface is one physical interface slot. It is created and owned by the
// Registry; callers treat the identity fields as read-only.
type Interface struct {
	Name         string
	SwitchPortID PortID
	Type         InterfaceType
	Order        InterfaceOrder

	VsysVreg   *Vreg
	RefclkVreg *Vreg

	// WakeGPIO is only meaningful on module_port2 interfaces, which drive
	// WAKEOUT on a GPIO separate from the detect line.
	WakeGPIO uint32
	DetectIn DetectInput

	hotplug atomic.Int32
}

// IsModulePort reports whether the interface faces a pluggable module.
func (i *Interface) IsModulePort() bool {
	return i.Type == InterfaceTypeModulePort || i.Type == InterfaceTypeModulePort2
}

// Hotplug returns the settled hot-plug state with an atomic load.
func (i *Interface) Hotplug() HotplugState {
	return HotplugState(i.hotplug.Load())
}

// SetHotplug stores a new hot-plug state.
func (i *Interface) SetHotplug(s HotplugState) {
	i.hotplug.Store(int32(s))
}
