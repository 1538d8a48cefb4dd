package iface

import (
	"context"
	"io"

	"github.com/mesh-intelligence/power/pkg/types"
)

// Op is an operation on a single interface.
type Op func(ctx context.Context, iface *types.Interface) error

// Apply runs op on the target. For AllInterfaces it walks the registry in
// enumeration order and returns the first error without visiting the
// remaining interfaces. Interfaces already visited are left as op left them.
func Apply(ctx context.Context, reg types.Registry, target Target, op Op) error {
	if !target.all {
		return op(ctx, target.iface)
	}
	for _, iface := range reg.Interfaces() {
		if err := op(ctx, iface); err != nil {
			return err
		}
	}
	return nil
}

// Do resolves name, printing resolution errors to w, and applies op to the
// result.
func Do(ctx context.Context, w io.Writer, reg types.Registry, name string, op Op) error {
	target, err := Resolve(w, reg, name)
	if err != nil {
		return err
	}
	return Apply(ctx, reg, target, op)
}
