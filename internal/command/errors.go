package command

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/power/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// UsageError reports that usage text was printed. Status is the exit status
// the invocation ends with; printing usage always ends the command.
type UsageError struct {
	Command string
	Status  int
}

func (e *UsageError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("usage (status %d)", e.Status)
	}
	return fmt.Sprintf("%s: usage (status %d)", e.Command, e.Status)
}

// ExitStatus maps a handler result to a process exit status.
func ExitStatus(err error) int {
	if err == nil {
		return exitSuccess
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return usage.Status
	}
	if errors.Is(err, types.ErrInvalidInterface) {
		return exitUserError
	}
	return exitSysError
}
