package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/mwantia/photofs/data"
)

// ErrExit is returned by a command that asks the session to end.
var ErrExit = errors.New("photofs: exit requested")

// Center holds the registered commands and dispatches command lines to them.
type Center struct {
	mu       sync.RWMutex
	commands map[string]Command
}

func NewCenter() *Center {
	return &Center{
		commands: make(map[string]Command),
	}
}

// Register adds a command. Names must be unique.
func (c *Center) Register(command Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := command.Name()
	if name == "" {
		return fmt.Errorf("%w: command name is empty", data.ErrInvalid)
	}
	if _, exists := c.commands[name]; exists {
		return fmt.Errorf("%w: command '%s' already registered", data.ErrExist, name)
	}

	c.commands[name] = command
	return nil
}

func (c *Center) Unregister(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.commands[name]; !exists {
		return false
	}
	delete(c.commands, name)
	return true
}

func (c *Center) Get(name string) (Command, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	command, ok := c.commands[name]
	return command, ok
}

// List returns the registered commands ordered by name.
func (c *Center) List() []Command {
	c.mu.RLock()
	defer c.mu.RUnlock()

	commands := make([]Command, 0, len(c.commands))
	for _, command := range c.commands {
		commands = append(commands, command)
	}
	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Name() < commands[j].Name()
	})
	return commands
}

// Execute runs the command named by args[0] with the remaining arguments.
func (c *Center) Execute(ctx context.Context, api API, writer io.Writer, args ...string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}

	command, ok := c.Get(args[0])
	if !ok {
		return 127, fmt.Errorf("%w: unknown command '%s'", data.ErrNotFound, args[0])
	}

	parsed, err := NewParser(command.GetFlags()).Parse(args[1:])
	if err != nil {
		return 2, fmt.Errorf("%s: %w", command.Name(), err)
	}

	return command.Execute(ctx, api, parsed, writer)
}

// ExecuteLine splits line and executes it.
func (c *Center) ExecuteLine(ctx context.Context, api API, writer io.Writer, line string) (int, error) {
	args, err := Split(line)
	if err != nil {
		return 2, err
	}
	return c.Execute(ctx, api, writer, args...)
}
