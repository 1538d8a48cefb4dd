package command

import (
	"context"

	"github.com/mesh-intelligence/power/internal/iface"
	"github.com/mesh-intelligence/power/pkg/types"
)

func setPowerUsage(env *Env) error {
	return commandUsage(env, namePower, "<interface> <0|1>: usage:", true,
		"    <interface>: Interface to set power state of.",
		"    <0|1>: specify \"0\" to power off, \"1\" to power on.",
		"",
		"NOTE: This may interfere with the power subsystem's",
		"      refcounting. Use only if you know what you're doing.",
	)
}

// runSetPower handles "power <interface> <0|1>". Any nonzero value powers on.
func runSetPower(ctx context.Context, env *Env, argv []string) error {
	if len(argv) != 4 {
		return setPowerUsage(env)
	}
	enable := parseLong(argv[3]) != 0

	return iface.Do(ctx, env.Out, env.Registry, argv[2], func(ctx context.Context, i *types.Interface) error {
		env.Log.Debug().Str("iface", i.Name).Bool("enable", enable).Msg("set power")
		if enable {
			return env.Power.PowerOn(ctx, i)
		}
		return env.Power.PowerOff(ctx, i)
	})
}
