package bot

import (
	"context"
	"fmt"
	"strings"
)

const commandPrefix = "/"

type handlerFunc func(ctx context.Context, msg Message, args string) error

type command struct {
	name        string
	description string
	adminOnly   bool
	run         handlerFunc
}

// dispatcher maps command names to handlers. Names are unique.
type dispatcher struct {
	commands map[string]command
	order    []string
}

func newDispatcher() *dispatcher {
	return &dispatcher{commands: make(map[string]command)}
}

func (d *dispatcher) register(cmd command) error {
	name := strings.ToLower(cmd.name)
	if name == "" {
		return fmt.Errorf("register command: empty name")
	}
	if _, dup := d.commands[name]; dup {
		return fmt.Errorf("register command: /%s already registered", name)
	}
	cmd.name = name
	d.commands[name] = cmd
	d.order = append(d.order, name)
	return nil
}

func (d *dispatcher) lookup(name string) (command, bool) {
	cmd, ok := d.commands[strings.ToLower(name)]
	return cmd, ok
}

// public returns the non-admin commands in registration order.
func (d *dispatcher) public() []command {
	out := make([]command, 0, len(d.order))
	for _, name := range d.order {
		if cmd := d.commands[name]; !cmd.adminOnly {
			out = append(out, cmd)
		}
	}
	return out
}

// ParseCommand recognizes "/name", "/name args" and "/name@botname args".
func ParseCommand(text string) (name, args string, ok bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, commandPrefix) {
		return "", "", false
	}
	head, rest, _ := strings.Cut(text[len(commandPrefix):], " ")
	head, _, _ = strings.Cut(head, "@")
	if head == "" {
		return "", "", false
	}
	return strings.ToLower(head), strings.TrimSpace(rest), true
}

// IsCommand reports whether text starts with the command prefix.
func IsCommand(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), commandPrefix)
}
