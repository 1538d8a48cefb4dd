// Package iface resolves an operator's <interface> argument against the board
// registry and applies per-interface operations to the result.
package iface

import (
	"fmt"
	"io"

	"github.com/mesh-intelligence/power/pkg/types"
)

// Target is the resolved set of interfaces a command applies to: either every
// registered interface or exactly one.
type Target struct {
	all   bool
	iface *types.Interface
}

// AllInterfaces is the "every interface" target.
var AllInterfaces = Target{all: true}

// Single returns a target naming one interface.
func Single(iface *types.Interface) Target {
	return Target{iface: iface}
}

// All reports whether the target is every interface.
func (t Target) All() bool { return t.all }

// Interface returns the single targeted interface, or nil for AllInterfaces.
func (t Target) Interface() *types.Interface { return t.iface }

// Resolve maps name to a Target. "all" and "ALL" select every interface;
// anything else must match a registered name exactly. An unknown name prints
// the legal values to w and fails with ErrInvalidInterface.
func Resolve(w io.Writer, reg types.Registry, name string) (Target, error) {
	if name == "all" || name == "ALL" {
		return AllInterfaces, nil
	}
	iface, ok := reg.Lookup(name)
	if !ok {
		fmt.Fprintf(w, "Invalid interface: %s\n", name)
		PrintLegal(w, reg)
		return Target{}, fmt.Errorf("%w: %s", types.ErrInvalidInterface, name)
	}
	return Single(iface), nil
}

// PrintLegal writes the legal <interface> values of the board.
func PrintLegal(w io.Writer, reg types.Registry) {
	fmt.Fprintf(w, "\nLegal <interface> values on this board:\n")
	fmt.Fprintf(w, "  \"all\" -- all interfaces\n")
	for _, iface := range reg.Interfaces() {
		if iface.SwitchPortID.Valid() {
			fmt.Fprintf(w, "  %s\t(switch port %d)\n", iface.Name, iface.SwitchPortID)
		} else {
			fmt.Fprintf(w, "  %s\t(no switch port)\n", iface.Name)
		}
	}
}
