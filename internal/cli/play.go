package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/mcoot/tetris-go/internal/api"
	"github.com/mcoot/tetris-go/internal/api/response"
	"github.com/mcoot/tetris-go/internal/api/stream"
	"github.com/mcoot/tetris-go/internal/factory"
	"github.com/mcoot/tetris-go/internal/services/scores"
	"github.com/mcoot/tetris-go/internal/services/session"
	"github.com/mcoot/tetris-go/internal/terminal"
)

// newScreen opens the terminal; tests replace it with a simulation screen
var newScreen = func() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

type playOptions struct {
	name     string
	keymap   string
	spectate string
	seed     uint64
}

func newPlayCmd() *cobra.Command {
	var opts playOptions

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		Long: `Play a game in the terminal and record the score.

Default keys: arrows move, a/d rotate, s swaps with the spare piece,
space drops, q quits. --keymap loads a YAML file of overrides:

  bindings:
    up: rotate_clockwise
    k: drop`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "Player name for the leaderboard")
	cmd.Flags().StringVar(&opts.keymap, "keymap", "", "YAML key binding overrides")
	cmd.Flags().StringVar(&opts.spectate, "spectate", "", "Serve the API with the live game on this address")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Seed for a reproducible piece sequence")

	return cmd
}

func runPlay(cmd *cobra.Command, opts playOptions) error {
	// Validate everything before the terminal is taken over
	name, err := scores.NormalizePlayerName(opts.name)
	if err != nil {
		return err
	}
	keymap := terminal.DefaultKeymap()
	if opts.keymap != "" {
		if keymap, err = terminal.LoadKeymap(opts.keymap); err != nil {
			return err
		}
	}

	logger, closeLog, err := cfg.NewLogger(io.Discard)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	app, err := factory.New(cfg.FactoryConfig(logger, opts.seed))
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("closing storage", slog.String("error", err.Error()))
		}
	}()

	sess, err := app.NewSession()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.spectate != "" {
		stopServer := startSpectating(ctx, app, sess, opts.spectate, logger)
		defer stopServer()
	}

	screen, err := newScreen()
	if err != nil {
		return err
	}
	result, err := playSession(ctx, screen, keymap, sess)
	screen.Fini()
	if err != nil {
		return err
	}

	record, err := app.ScoreService.Record(context.Background(), name, result)
	if err != nil {
		return err
	}

	out.Print(PlayResult{
		Reason: result.Reason.String(),
		Score:  response.ScoreFromModel(record),
	})
	return nil
}

// playSession runs sess against the screen until it ends. After a game
// over the final board stays up until a key is pressed.
func playSession(ctx context.Context, screen tcell.Screen, keymap terminal.Keymap, sess *session.Session) (session.Result, error) {
	renderer := terminal.NewRenderer(screen)
	commands := make(chan session.Command, 16)

	pumpCtx, cancelPump := context.WithCancel(ctx)
	pumpDone := make(chan struct{})
	go func() {
		defer close(pumpDone)
		defer close(commands)
		_ = terminal.Pump(pumpCtx, screen, keymap, commands)
	}()

	result, err := sess.Run(ctx, commands, renderer.Draw)
	cancelPump()
	<-pumpDone

	if err == nil && result.Reason == session.EndReasonGameOver {
		_ = terminal.WaitForKey(ctx, screen)
	}
	return result, err
}

// startSpectating serves the API with sess attached and streams its
// snapshots. It must be called before the session runs. The returned
// function stops the server and detaches the session.
func startSpectating(ctx context.Context, app *factory.App, sess *session.Session, addr string, logger *slog.Logger) func() {
	app.Tracker.Attach(sess)

	hub := stream.NewHub(logger)
	go hub.Run()
	sess.Observe(stream.NewPublisher(hub, logger).Publish)

	serverCfg := api.DefaultServerConfig()
	serverCfg.Addr = addr
	router := api.NewRouter(api.RouterConfig{
		Logger: logger,
		Scores: app.ScoreService,
		Game:   app.Tracker,
		Stream: hub,
	})
	server := api.NewServer(router, serverCfg, logger)

	serverCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := server.Run(serverCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("spectator server failed", slog.String("error", err.Error()))
		}
	}()

	return func() {
		// hub first: Shutdown waits for open streams to end
		hub.Close()
		cancel()
		<-done
		app.Tracker.Detach(sess)
	}
}
