package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/power/internal/iface"
	"github.com/mesh-intelligence/power/pkg/types"
)

// Run dispatches argv to its command and returns the exit status. Fewer than
// two arguments, or an argv[1] matching no command, prints the full usage and
// fails.
func Run(ctx context.Context, env *Env, argv []string) int {
	table := env.commands()
	if len(argv) < 2 {
		return ExitStatus(usage(env, exitUserError))
	}
	cmd, ok := table.Lookup(argv[1])
	if !ok {
		env.Log.Debug().Str("token", argv[1]).Msg("unknown command")
		return ExitStatus(usage(env, exitUserError))
	}

	log := env.Log.With().Str("command", cmd.Long).Logger()
	err := cmd.Run(ctx, env, argv)
	status := ExitStatus(err)

	var usageErr *UsageError
	switch {
	case err == nil:
		log.Debug().Msg("command succeeded")
	case errors.As(err, &usageErr):
		log.Debug().Int("status", status).Msg("usage printed")
	case errors.Is(err, types.ErrInvalidInterface):
		log.Warn().Err(err).Msg("invalid interface")
	default:
		log.Error().Err(err).Int("status", status).Msg("command failed")
	}
	return status
}

// usage prints the full usage and ends the invocation with status.
func usage(env *Env, status int) error {
	env.commands().PrintUsage(env.Out)
	return &UsageError{Status: status}
}

func runHelp(_ context.Context, env *Env, _ []string) error {
	return usage(env, exitSuccess)
}

// commandUsage prints a per-command usage header and body, optionally
// followed by the legal interface list, and fails the command.
func commandUsage(env *Env, name, header string, withInterfaces bool, body ...string) error {
	fmt.Fprintf(env.Out, "%s %s %s\n", Progname, name, header)
	for _, line := range body {
		fmt.Fprintln(env.Out, line)
	}
	if withInterfaces {
		iface.PrintLegal(env.Out, env.Registry)
	}
	return &UsageError{Command: name, Status: exitUserError}
}
