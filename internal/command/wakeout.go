package command

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/power/internal/iface"
	"github.com/mesh-intelligence/power/pkg/types"
)

func wakeoutUsage(env *Env) error {
	return commandUsage(env, nameWakeout, "<interface> [<length>]: usage:", true,
		"   <interface>: Interface to send WAKEOUT to.",
		"   <length>: Pulse length in us.",
	)
}

// runWakeout handles "wakeout <interface> [<length>]". Without a length the
// current default is used; a negative length selects the hardware default.
func runWakeout(ctx context.Context, env *Env, argv []string) error {
	if len(argv) != 3 && len(argv) != 4 {
		return wakeoutUsage(env)
	}
	length := env.wakeout().Get()
	if len(argv) == 4 {
		length = parseLong(argv[3])
	}

	return iface.Do(ctx, env.Out, env.Registry, argv[2], func(ctx context.Context, i *types.Interface) error {
		env.Log.Debug().Str("iface", i.Name).Int("length_us", length).Msg("wakeout")
		return env.Power.GenerateWakeout(ctx, i, false, length)
	})
}

func wakeoutLengthUsage(env *Env) error {
	return commandUsage(env, nameWakeoutLength, "[<length>]: usage:", false,
		"   <length>: Pulse duration in us. -1 to use the default hardcoded value",
	)
}

// runWakeoutLength handles "wakeout_length [<length>]", reporting the
// default after optionally replacing it.
func runWakeoutLength(_ context.Context, env *Env, argv []string) error {
	if len(argv) != 2 && len(argv) != 3 {
		return wakeoutLengthUsage(env)
	}
	def := env.wakeout()
	if len(argv) == 3 {
		def.Set(parseLong(argv[2]))
	}
	fmt.Fprintf(env.Out, "%s %s: WAKEOUT pulse length is set to %d\n", argv[0], argv[1], def.Get())
	return nil
}
