// Package command implements the power command: the command table, top-level
// dispatch, the per-command handlers and the interface state reporter.
package command

import (
	"context"
	"fmt"
	"io"
)

// Progname is the name commands are reported under in usage text.
const Progname = "power"

// ID identifies a command. Table order follows ID order.
type ID int

// Command identifiers.
const (
	Help ID = iota
	SetPower
	Wakeout
	WakeoutLength
	Dumpstate

	idCount
)

// Long names are shared between the table and the per-command usage text.
const (
	nameHelp          = "help"
	namePower         = "power"
	nameWakeout       = "wakeout"
	nameWakeoutLength = "wakeout_length"
	nameDumpstate     = "dumpstate"
)

// Handler runs a command. argv is the full argument vector, argv[1] being the
// command token.
type Handler func(ctx context.Context, env *Env, argv []string) error

// Command is one entry of the command table.
type Command struct {
	ID    ID
	Short byte
	Long  string
	Help  string
	Run   Handler
}

// Table is the ordered, immutable command table.
type Table struct {
	commands []Command
}

// NewTable builds a table from one entry per ID, given in ID order. It panics
// if an ID is missing, duplicated or out of order, or if two entries share a
// name or flag.
func NewTable(commands ...Command) *Table {
	if len(commands) != int(idCount) {
		panic(fmt.Sprintf("command: table has %d entries, want %d", len(commands), idCount))
	}
	seen := make(map[string]bool, 2*len(commands))
	for i, c := range commands {
		if c.ID != ID(i) {
			panic(fmt.Sprintf("command: entry %d (%s) has id %d", i, c.Long, c.ID))
		}
		if c.Run == nil || c.Long == "" || c.Short == 0 {
			panic("command: incomplete entry for " + c.Long)
		}
		short := string(c.Short)
		if seen[c.Long] || seen[short] {
			panic("command: duplicate name or flag for " + c.Long)
		}
		seen[c.Long], seen[short] = true, true
	}
	return &Table{commands: commands}
}

// StandardTable returns the table of the power command.
func StandardTable() *Table {
	return NewTable(
		Command{Help, 'h', nameHelp, "print this usage and exit", runHelp},
		Command{SetPower, 'p', namePower, "get/set interface power", runSetPower},
		Command{Wakeout, 'w', nameWakeout, "pulse WAKEOUT", runWakeout},
		Command{WakeoutLength, 'l', nameWakeoutLength, "get/set WAKEOUT pulse duration", runWakeoutLength},
		Command{Dumpstate, 'd', nameDumpstate, "dump system power state", runDumpstate},
	)
}

// Commands returns the entries in table order.
func (t *Table) Commands() []Command {
	out := make([]Command, len(t.commands))
	copy(out, t.commands)
	return out
}

// Get returns the entry for id.
func (t *Table) Get(id ID) Command {
	return t.commands[id]
}

// Lookup finds the first entry whose long name equals token, or whose short
// flag equals token when token is a single character.
func (t *Table) Lookup(token string) (Command, bool) {
	for _, c := range t.commands {
		if token == c.Long || (len(token) == 1 && token[0] == c.Short) {
			return c, true
		}
	}
	return Command{}, false
}

// PrintUsage writes the usage line of every command.
func (t *Table) PrintUsage(w io.Writer) {
	fmt.Fprintf(w, "%s: usage:\n", Progname)
	for _, c := range t.commands {
		fmt.Fprintf(w, "    %s [%c|%s]: %s\n", Progname, c.Short, c.Long, c.Help)
	}
}
