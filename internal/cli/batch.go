package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/shlex"

	"github.com/mesh-intelligence/power/internal/command"
)

// runBatchSource opens the batch source ("-" is stdin) and runs it.
func runBatchSource(ctx context.Context, env *command.Env, source string, stdin io.Reader, stderr io.Writer) int {
	r := stdin
	if source != "-" {
		f, err := os.Open(source)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", command.Progname, err)
			return exitSysError
		}
		defer f.Close()
		r = f
	}
	return runBatch(ctx, env, r, stderr)
}

// runBatch runs one command per line against a shared environment, so a
// wakeout_length set on one line applies to the lines after it. Blank lines
// and lines starting with '#' are skipped. The first non-zero status stops
// the batch and is returned.
func runBatch(ctx context.Context, env *command.Env, r io.Reader, stderr io.Writer) int {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields, err := shlex.Split(line)
		if err != nil {
			fmt.Fprintf(stderr, "%s: line %d: %v\n", command.Progname, lineNo, err)
			return exitUserError
		}

		status := command.Run(ctx, env, append([]string{command.Progname}, fields...))
		if status != exitSuccess {
			env.Log.Warn().Int("line", lineNo).Int("status", status).Msg("batch stopped")
			return status
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(stderr, "%s: read batch: %v\n", command.Progname, err)
		return exitSysError
	}
	return exitSuccess
}
