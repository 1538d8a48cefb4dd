package types

import (
	"context"
	"errors"
)

// Registry enumerates the interfaces of the board.
type Registry interface {
	// Interfaces returns every interface in enumeration order.
	Interfaces() []*Interface

	// Lookup returns the interface with exactly the given name.
	Lookup(name string) (*Interface, bool)

	// InterfaceIDByPort returns the interface ID bound to a switch port,
	// or 0 when no interface is bound to it.
	InterfaceIDByPort(port PortID) uint32
}

// PowerController exposes the atomic single-interface primitives of the
// power and hot-plug subsystem.
type PowerController interface {
	PowerOn(ctx context.Context, iface *Interface) error
	PowerOff(ctx context.Context, iface *Interface) error

	// GenerateWakeout pulses WAKEOUT on the interface. A negative lengthUS
	// selects the hardware default pulse length.
	GenerateWakeout(ctx context.Context, iface *Interface, breakaway bool, lengthUS int) error

	// HotplugState returns the current hot-plug classification.
	HotplugState(iface *Interface) HotplugState
}

// Standard errors.
var (
	ErrInvalidInterface  = errors.New("invalid interface")
	ErrUnknownLabel      = errors.New("unknown label")
	ErrRefcountUnderflow = errors.New("regulator reference count underflow")
)
