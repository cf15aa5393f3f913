package domain

import (
	"encoding/json"
	"fmt"
	"iter"
	"strings"
)

// Command is an instruction an automaton emits for its consumer.
type Command uint8

const (
	// Begin starts a new point buffer.
	Begin Command = iota
	// Append adds the current position as a new point.
	Append
	// Move updates the position of the most recently appended point.
	Move
	// Remove deletes the most recently appended point.
	Remove
	// End finalizes the selection and returns the automaton to idle.
	End
)

var commandNames = [...]string{"begin", "append", "move", "remove", "end"}

func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return fmt.Sprintf("Command(%d)", uint8(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Command) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Command) UnmarshalText(b []byte) error {
	want := strings.ToLower(string(b))
	for i, name := range commandNames {
		if name == want {
			*c = Command(i)
			return nil
		}
	}
	return fmt.Errorf("unknown command %q", string(b))
}

// MaxCommands is the most commands any single transition emits.
const MaxCommands = 3

// Commands is the ordered output of one transition. It is a small value type;
// the zero value is an empty sequence.
type Commands struct {
	items [MaxCommands]Command
	n     uint8
}

// CommandsOf builds a sequence from the given commands.
func CommandsOf(cmds ...Command) Commands {
	var c Commands
	for _, cmd := range cmds {
		c.Push(cmd)
	}
	return c
}

// Push appends a command. Exceeding MaxCommands is a programming error.
func (c *Commands) Push(cmd Command) {
	if int(c.n) >= MaxCommands {
		panic("domain: command sequence overflow")
	}
	c.items[c.n] = cmd
	c.n++
}

// Len returns the number of commands.
func (c Commands) Len() int { return int(c.n) }

// Empty reports whether no command was emitted.
func (c Commands) Empty() bool { return c.n == 0 }

// At returns the i-th command.
func (c Commands) At(i int) Command {
	if i < 0 || i >= int(c.n) {
		panic(fmt.Sprintf("domain: command index %d out of range [0,%d)", i, c.n))
	}
	return c.items[i]
}

// Last returns the final command, if any.
func (c Commands) Last() (Command, bool) {
	if c.n == 0 {
		return 0, false
	}
	return c.items[c.n-1], true
}

// Contains reports whether cmd is part of the sequence.
func (c Commands) Contains(cmd Command) bool {
	for i := 0; i < int(c.n); i++ {
		if c.items[i] == cmd {
			return true
		}
	}
	return false
}

// All yields the commands in emission order.
func (c Commands) All() iter.Seq[Command] {
	return func(yield func(Command) bool) {
		for i := 0; i < int(c.n); i++ {
			if !yield(c.items[i]) {
				return
			}
		}
	}
}

// Slice copies the commands into a new slice.
func (c Commands) Slice() []Command {
	out := make([]Command, c.n)
	copy(out, c.items[:c.n])
	return out
}

// Equal reports whether both sequences hold the same commands in order.
func (c Commands) Equal(other Commands) bool {
	if c.n != other.n {
		return false
	}
	for i := 0; i < int(c.n); i++ {
		if c.items[i] != other.items[i] {
			return false
		}
	}
	return true
}

func (c Commands) String() string {
	names := make([]string, 0, c.n)
	for cmd := range c.All() {
		names = append(names, cmd.String())
	}
	return "[" + strings.Join(names, " ") + "]"
}

// MarshalJSON encodes the sequence as an array of command names.
func (c Commands) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Slice())
}

// UnmarshalJSON decodes an array of command names.
func (c *Commands) UnmarshalJSON(b []byte) error {
	var cmds []Command
	if err := json.Unmarshal(b, &cmds); err != nil {
		return err
	}
	if len(cmds) > MaxCommands {
		return fmt.Errorf("too many commands: %d", len(cmds))
	}
	*c = CommandsOf(cmds...)
	return nil
}
