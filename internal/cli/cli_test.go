package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tetris-go/internal/api"
	"github.com/mcoot/tetris-go/internal/api/apierr"
	"github.com/mcoot/tetris-go/internal/api/response"
	"github.com/mcoot/tetris-go/internal/factory"
	"github.com/mcoot/tetris-go/internal/services/session"
	"github.com/mcoot/tetris-go/internal/terminal"
	"github.com/mcoot/tetris-go/internal/testutil"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TETRIS_STORAGE", "TETRIS_REDIS_URL", "TETRIS_LOG_FILE", "TETRIS_SERVER", "TETRIS_ADDR"} {
		t.Setenv(key, "")
	}
}

func run(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	clearEnv(t)

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return buf.String(), err
}

// remoteAPI serves the API of a test app with one recorded score
func remoteAPI(t *testing.T) *httptest.Server {
	t.Helper()
	app := factory.NewTestApp()
	app.MockRandom.QueueString("REMOTE1")
	_, err := app.ScoreService.Record(context.Background(), "alice", session.Result{
		Score:     120,
		StartedAt: app.MockClock.Now().Add(-time.Minute),
		EndedAt:   app.MockClock.Now(),
	})
	require.NoError(t, err)

	srv := httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger: testutil.NopLogger(),
		Scores: app.ScoreService,
		Game:   app.Tracker,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{Storage: "memory", Output: "text"}, false},
		{"redis with url", Config{Storage: "redis", RedisURL: "redis://localhost:6379", Output: "json"}, false},
		{"redis without url", Config{Storage: "redis", Output: "text"}, true},
		{"unknown storage", Config{Storage: "sqlite", Output: "text"}, true},
		{"unknown output", Config{Storage: "memory", Output: "yaml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultConfigReadsEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TETRIS_STORAGE", "redis")
	t.Setenv("TETRIS_REDIS_URL", "redis://example:6379/1")

	c := DefaultConfig()
	assert.Equal(t, "redis", c.Storage)
	assert.Equal(t, "redis://example:6379/1", c.RedisURL)

	fc := c.FactoryConfig(testutil.NopLogger(), 7)
	require.NotNil(t, fc.RedisConfig)
	assert.Equal(t, "redis://example:6379/1", fc.RedisConfig.URL)
	assert.Equal(t, uint64(7), fc.Seed)
}

func TestNewLoggerWritesToLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.log")
	c := &Config{LogFile: path}

	var fallback bytes.Buffer
	logger, closeLog, err := c.NewLogger(&fallback)
	require.NoError(t, err)
	logger.Info("hello")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Empty(t, fallback.String())
}

func TestNewLoggerVerbose(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := (&Config{Verbose: true}).NewLogger(&buf)
	require.NoError(t, err)

	logger.Debug("details")
	assert.Contains(t, buf.String(), `"level":"DEBUG"`)
}

func TestInvalidFlagsRejected(t *testing.T) {
	_, err := run(t, context.Background(), "--storage", "redis", "scores")
	assert.ErrorContains(t, err, "--redis-url")

	_, err = run(t, context.Background(), "-o", "xml", "scores")
	assert.ErrorContains(t, err, "output format")
}

func TestLocalScoresEmpty(t *testing.T) {
	output, err := run(t, context.Background(), "scores")
	require.NoError(t, err)
	assert.Contains(t, output, "No scores recorded yet")
}

func TestRemoteScores(t *testing.T) {
	srv := remoteAPI(t)

	output, err := run(t, context.Background(), "--server", srv.URL, "-o", "json", "scores", "--limit", "5")
	require.NoError(t, err)

	var list response.ScoreList
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Scores, 1)
	assert.Equal(t, "alice", list.Scores[0].Player)
	assert.Equal(t, 120, list.Scores[0].Score)
}

func TestRemoteScoresText(t *testing.T) {
	srv := remoteAPI(t)

	output, err := run(t, context.Background(), "--server", srv.URL, "scores")
	require.NoError(t, err)
	assert.Contains(t, output, "RANK")
	assert.Contains(t, output, "alice")
	assert.Contains(t, output, "Showing 1 of 1")
}

func TestRemoteScoreShow(t *testing.T) {
	srv := remoteAPI(t)

	output, err := run(t, context.Background(), "--server", srv.URL, "scores", "show", "REMOTE1")
	require.NoError(t, err)
	assert.Contains(t, output, "Score REMOTE1 by alice")
	assert.Contains(t, output, "Points: 120")
}

func TestRemoteScoreNotFound(t *testing.T) {
	srv := remoteAPI(t)

	_, err := run(t, context.Background(), "--server", srv.URL, "scores", "show", "MISSING")

	var remote *RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, apierr.CodeScoreNotFound, remote.Code)
	assert.Equal(t, 404, remote.Status)
}

func TestHealth(t *testing.T) {
	srv := remoteAPI(t)

	output, err := run(t, context.Background(), "--server", srv.URL, "health")
	require.NoError(t, err)
	assert.Contains(t, output, "Status: ok")
}

func TestHealthRequiresServer(t *testing.T) {
	_, err := run(t, context.Background(), "health")
	assert.ErrorContains(t, err, "--server")
}

func TestServeStopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := run(t, ctx, "serve", "--addr", "127.0.0.1:0")
	assert.NoError(t, err)
}

func simulationScreen(t *testing.T, keys ...rune) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 40)
	for _, r := range keys {
		screen.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
	return screen
}

func TestPlayQuitRecordsScore(t *testing.T) {
	screen := simulationScreen(t, 'q')
	original := newScreen
	newScreen = func() (tcell.Screen, error) { return screen, nil }
	t.Cleanup(func() { newScreen = original })

	output, err := run(t, context.Background(), "-o", "json", "play", "--name", "tester", "--seed", "42")
	require.NoError(t, err)

	var result PlayResult
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, "quit", result.Reason)
	assert.Equal(t, "tester", result.Score.Player)
	assert.Equal(t, 0, result.Score.Score)
	assert.NotEmpty(t, result.Score.ID)
}

func TestPlayRejectsBadNameBeforeOpeningScreen(t *testing.T) {
	original := newScreen
	newScreen = func() (tcell.Screen, error) {
		t.Fatal("screen should not be opened")
		return nil, nil
	}
	t.Cleanup(func() { newScreen = original })

	_, err := run(t, context.Background(), "play", "--name", "this name is far too long to be accepted")
	assert.Error(t, err)
}

func TestPlayRejectsMissingKeymap(t *testing.T) {
	_, err := run(t, context.Background(), "play", "--keymap", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPlaySessionUntilGameOver(t *testing.T) {
	app := factory.NewTestApp()
	sess, err := app.NewSession()
	require.NoError(t, err)

	screen := simulationScreen(t)
	defer screen.Fini()

	// keep pressing space: drops during the game, then dismisses the banner
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-time.After(5 * time.Millisecond):
				screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
			}
		}
	}()

	result, err := playSession(context.Background(), screen, terminal.DefaultKeymap(), sess)
	close(done)

	require.NoError(t, err)
	assert.Equal(t, session.EndReasonGameOver, result.Reason)
	assert.Equal(t, 13, result.PiecesPlaced)
}
