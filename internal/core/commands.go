package core

import (
	"fmt"
	"strings"
	"time"
)

// Command is a host-local action invoked from the input line with a slash
// prefix. Invocations and their results are recorded in the transcript as
// tool-interaction entities.
type Command interface {
	Name() string
	Description() string
	Execute(state *TranscriptState, args []string) (string, error)
}

// CommandSet resolves slash commands by name.
type CommandSet struct {
	commands map[string]Command
}

func NewCommandSet(commands ...Command) *CommandSet {
	set := &CommandSet{commands: make(map[string]Command, len(commands))}
	for _, c := range commands {
		set.commands[c.Name()] = c
	}
	return set
}

// BuiltinCommands returns the default host commands.
func BuiltinCommands() *CommandSet {
	return NewCommandSet(&timeCommand{}, &statsCommand{}, &helpCommand{})
}

// Resolve parses a "/name args" input line. ok is false for anything that is
// not a known command invocation.
func (cs *CommandSet) Resolve(text string) (Command, []string, bool) {
	if !strings.HasPrefix(text, "/") {
		return nil, nil, false
	}
	fields := strings.Fields(strings.TrimPrefix(text, "/"))
	if len(fields) == 0 {
		return nil, nil, false
	}
	command, exists := cs.commands[fields[0]]
	if !exists {
		return nil, nil, false
	}
	return command, fields[1:], true
}

// Names lists the registered command names.
func (cs *CommandSet) Names() []string {
	names := make([]string, 0, len(cs.commands))
	for name := range cs.commands {
		names = append(names, name)
	}
	return names
}

type timeCommand struct{}

func (c *timeCommand) Name() string        { return "time" }
func (c *timeCommand) Description() string { return "Show the current date and time" }

func (c *timeCommand) Execute(state *TranscriptState, args []string) (string, error) {
	now := time.Now()
	format := time.RFC3339
	if len(args) > 0 {
		switch args[0] {
		case "iso":
			format = time.RFC3339
		case "human":
			format = "January 2, 2006 at 3:04 PM MST"
		case "date":
			format = "2006-01-02"
		case "time":
			format = "15:04:05"
		case "unix":
			return fmt.Sprintf("%d", now.Unix()), nil
		default:
			format = args[0]
		}
	}
	return now.Format(format), nil
}

type statsCommand struct{}

func (c *statsCommand) Name() string        { return "stats" }
func (c *statsCommand) Description() string { return "Show transcript statistics" }

func (c *statsCommand) Execute(state *TranscriptState, args []string) (string, error) {
	snapshot := state.Snapshot()
	counts := make(map[string]int)
	for _, e := range snapshot.Entities() {
		counts[e.Role.DisplayName()]++
	}
	parts := make([]string, 0, len(counts))
	for _, name := range []string{"User", "Assistant", "System", "Tool Call", "Tool Response", "Hidden"} {
		if counts[name] > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", name, counts[name]))
		}
	}
	return fmt.Sprintf("%d entities (%s)", snapshot.Len(), strings.Join(parts, ", ")), nil
}

type helpCommand struct{}

func (c *helpCommand) Name() string        { return "help" }
func (c *helpCommand) Description() string { return "List available commands" }

func (c *helpCommand) Execute(state *TranscriptState, args []string) (string, error) {
	return "Commands: /time [format], /stats, /help", nil
}
