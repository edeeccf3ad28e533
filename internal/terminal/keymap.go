package terminal

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"

	"github.com/mcoot/tetris-go/internal/model"
	"github.com/mcoot/tetris-go/internal/services/session"
)

var specialKeys = map[tcell.Key]string{
	tcell.KeyLeft:  "left",
	tcell.KeyRight: "right",
	tcell.KeyUp:    "up",
	tcell.KeyDown:  "down",
	tcell.KeyEsc:   "esc",
	tcell.KeyEnter: "enter",
	tcell.KeyTab:   "tab",
}

// Keymap maps key names to session commands. Special keys use the names
// left, right, up, down, esc, enter, tab and space; any other key is named
// by its single character.
type Keymap struct {
	bindings map[string]session.Command
}

// KeymapFile is the YAML layout of a keymap file
type KeymapFile struct {
	Bindings map[string]string `yaml:"bindings"`
}

// Binding is one key and the command it triggers
type Binding struct {
	Key     string
	Command session.Command
}

// DefaultKeymap returns the standard bindings
func DefaultKeymap() Keymap {
	return Keymap{bindings: map[string]session.Command{
		"left":  session.CommandMoveLeft,
		"right": session.CommandMoveRight,
		"down":  session.CommandMoveDown,
		"space": session.CommandDrop,
		"a":     session.CommandRotateCounterClockwise,
		"d":     session.CommandRotateClockwise,
		"s":     session.CommandHold,
		"q":     session.CommandQuit,
	}}
}

// LoadKeymap reads a YAML keymap file and overlays it on the defaults
func LoadKeymap(path string) (Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Keymap{}, fmt.Errorf("read keymap: %w", err)
	}
	return ParseKeymap(data)
}

// ParseKeymap overlays YAML bindings on the defaults
func ParseKeymap(data []byte) (Keymap, error) {
	var file KeymapFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Keymap{}, fmt.Errorf("%w: %v", model.ErrInvalidKeymap, err)
	}

	km := DefaultKeymap()
	for key, name := range file.Bindings {
		normalized, err := normalizeKeyName(key)
		if err != nil {
			return Keymap{}, err
		}
		cmd, err := session.ParseCommand(name)
		if err != nil {
			return Keymap{}, fmt.Errorf("%w: key %q: %v", model.ErrInvalidKeymap, key, err)
		}
		km.bindings[normalized] = cmd
	}
	return km, nil
}

func normalizeKeyName(key string) (string, error) {
	if key == " " {
		return "space", nil
	}
	if utf8.RuneCountInString(key) == 1 {
		return key, nil
	}
	lower := strings.ToLower(strings.TrimSpace(key))
	if lower == "space" {
		return lower, nil
	}
	for _, name := range specialKeys {
		if name == lower {
			return lower, nil
		}
	}
	return "", fmt.Errorf("%w: unknown key %q", model.ErrInvalidKeymap, key)
}

// KeyName returns the keymap name of a key event, or "" for keys that
// cannot be bound
func KeyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		if ev.Rune() == ' ' {
			return "space"
		}
		return string(ev.Rune())
	}
	return specialKeys[ev.Key()]
}

// Lookup returns the command bound to a key event
func (k Keymap) Lookup(ev *tcell.EventKey) (session.Command, bool) {
	name := KeyName(ev)
	if name == "" {
		return 0, false
	}
	cmd, ok := k.bindings[name]
	return cmd, ok
}

// Bindings lists the bindings ordered by command, then key
func (k Keymap) Bindings() []Binding {
	result := make([]Binding, 0, len(k.bindings))
	for key, cmd := range k.bindings {
		result = append(result, Binding{Key: key, Command: cmd})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Command != result[j].Command {
			return result[i].Command < result[j].Command
		}
		return result[i].Key < result[j].Key
	})
	return result
}
