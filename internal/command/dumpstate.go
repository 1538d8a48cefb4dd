package command

import (
	"context"

	"github.com/mesh-intelligence/power/internal/iface"
	"github.com/mesh-intelligence/power/pkg/types"
)

func dumpstateUsage(env *Env) error {
	return commandUsage(env, nameDumpstate, "<interface>: dump power system state", true)
}

// runDumpstate handles "dumpstate <interface>".
func runDumpstate(ctx context.Context, env *Env, argv []string) error {
	if len(argv) != 3 {
		return dumpstateUsage(env)
	}
	r := Reporter{Out: env.Out, Registry: env.Registry, Power: env.Power}
	return iface.Do(ctx, env.Out, env.Registry, argv[2], func(_ context.Context, i *types.Interface) error {
		r.Report(i)
		return nil
	})
}
