// Package cli implements the power command line: global flags, configuration
// loading, board setup and batch mode around the command dispatcher.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/power/internal/board"
	"github.com/mesh-intelligence/power/internal/command"
	"github.com/mesh-intelligence/power/internal/logging"
)

// Version is the power command version.
const Version = "0.1.0"

// Exit codes for failures outside a command.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values.
type rootFlags struct {
	configDir string
	board     string
	logLevel  string
	batch     string
}

// exitError carries a non-zero exit status out of cobra.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// NewRootCmd creates the "power" command. Global flags must precede the
// command token; everything from the token on is passed to the dispatcher
// untouched, so negative lengths are not mistaken for flags.
func NewRootCmd(stdin io.Reader) *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:   command.Progname + " [flags] <command> [args...]",
		Short: "Query and control interface power and hot-plug state",
		Long: `power queries or changes the power state of interface slots, pulses
WAKEOUT to a slot, sets the default WAKEOUT pulse length and dumps the
power, regulator and hot-plug state of one or all interfaces.

Run "power help" for the list of commands.`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			code := run(cmd, &flags, stdin, args)
			if code != exitSuccess {
				return &exitError{code: code}
			}
			return nil
		},
	}

	root.Flags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/power)")
	root.Flags().StringVar(&flags.board, "board", "", "board description file (default: built-in simulated board)")
	root.Flags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error (default: warn)")
	root.Flags().StringVar(&flags.batch, "batch", "", `read one command per line from a file ("-" for stdin)`)
	root.Flags().SetInterspersed(false)

	// A token cobra cannot parse as a flag is an unknown command.
	root.SetFlagErrorFunc(func(cmd *cobra.Command, _ error) error {
		command.StandardTable().PrintUsage(cmd.OutOrStdout())
		return &exitError{code: exitUserError}
	})

	return root
}

// Run executes the power command with args and returns the exit status.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCmd(stdin)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintln(stderr, err)
	return exitUserError
}

// Execute runs the power command against the process arguments and exits.
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(cmd *cobra.Command, flags *rootFlags, stdin io.Reader, args []string) int {
	stderr := cmd.ErrOrStderr()

	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", command.Progname, err)
		return exitSysError
	}

	if err := logging.Init(logging.Config{Level: cfg.LogLevel, Output: cfg.LogOutput, File: cfg.LogFile}, cmd.OutOrStdout(), stderr); err != nil {
		fmt.Fprintf(stderr, "%s: log level: %v\n", command.Progname, err)
		return exitUserError
	}
	log := logging.WithComponent("command").With().Str("invocation", uuid.NewString()).Logger()

	b, err := board.Load(cfg.BoardFile, board.WithLogger(logging.WithComponent("board")))
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", command.Progname, err)
		return exitSysError
	}
	log.Debug().Str("board", b.Name()).Str("board_file", cfg.BoardFile).Int("wakeout_length", cfg.WakeoutLength).Msg("board loaded")

	env := &command.Env{
		Out:      cmd.OutOrStdout(),
		Registry: b,
		Power:    b,
		Wakeout:  command.NewWakeoutDefault(cfg.WakeoutLength),
		Log:      log,
	}

	if flags.batch != "" {
		if len(args) > 0 {
			fmt.Fprintf(stderr, "%s: --batch takes no command arguments\n", command.Progname)
			return exitUserError
		}
		return runBatchSource(cmd.Context(), env, flags.batch, stdin, stderr)
	}
	return command.Run(cmd.Context(), env, append([]string{command.Progname}, args...))
}
