package terminal

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/mcoot/tetris-go/internal/services/session"
)

// Pump forwards mapped key presses from screen to out until ctx is
// cancelled, a quit command is forwarded, or the screen stops delivering
// events. Ctrl-C always quits. Pump never closes out.
func Pump(ctx context.Context, screen tcell.Screen, keymap Keymap, out chan<- session.Command) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()

			case *tcell.EventKey:
				cmd, mapped := keymap.Lookup(ev)
				if ev.Key() == tcell.KeyCtrlC {
					cmd, mapped = session.CommandQuit, true
				}
				if !mapped {
					continue
				}
				select {
				case out <- cmd:
				case <-ctx.Done():
					return ctx.Err()
				}
				if cmd == session.CommandQuit {
					return nil
				}
			}
		}
	}
}

// WaitForKey blocks until a key is pressed, ctx is cancelled, or the
// screen is finalised
func WaitForKey(ctx context.Context, screen tcell.Screen) error {
	events := make(chan tcell.Event, 1)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if _, isKey := ev.(*tcell.EventKey); isKey {
				return nil
			}
		}
	}
}
