package session

import (
	"fmt"
	"strings"

	"github.com/mcoot/tetris-go/internal/model"
)

// Command is a player input the session dispatches to the engine
type Command int

const (
	CommandMoveLeft Command = iota
	CommandMoveRight
	CommandMoveDown
	CommandDrop
	CommandRotateClockwise
	CommandRotateCounterClockwise
	CommandHold
	CommandQuit
)

var commandNames = [...]string{
	CommandMoveLeft:               "move_left",
	CommandMoveRight:              "move_right",
	CommandMoveDown:               "move_down",
	CommandDrop:                   "drop",
	CommandRotateClockwise:        "rotate_clockwise",
	CommandRotateCounterClockwise: "rotate_counter_clockwise",
	CommandHold:                   "hold",
	CommandQuit:                   "quit",
}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return fmt.Sprintf("command(%d)", int(c))
	}
	return commandNames[c]
}

// Commands returns every command in declaration order
func Commands() []Command {
	result := make([]Command, len(commandNames))
	for i := range commandNames {
		result[i] = Command(i)
	}
	return result
}

// ParseCommand converts a command name (case-insensitive) to a Command
func ParseCommand(name string) (Command, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i, n := range commandNames {
		if n == normalized {
			return Command(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", model.ErrUnknownCommand, name)
}
