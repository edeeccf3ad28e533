package stream

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tetris-go/internal/api/response"
	"github.com/mcoot/tetris-go/internal/services/tetris"
	"github.com/mcoot/tetris-go/internal/testutil"
)

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "snapshot",
			data:      `{"score":0}`,
			expected:  "event: snapshot\ndata: {\"score\":0}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "snapshot",
			data:      "{\n  \"score\": 1\n}",
			expected:  "event: snapshot\ndata: {\ndata:   \"score\": 1\ndata: }\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(formatMessage(tt.eventName, tt.data)))
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single line", "hello", []string{"hello"}},
		{"two lines", "line1\nline2", []string{"line1", "line2"}},
		{"trailing newline", "line1\n", []string{"line1"}},
		{"empty string", "", []string{""}},
		{"crlf line endings", "line1\r\nline2\r\n", []string{"line1", "line2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitLines(tt.input))
		})
	}
}

func newRunningHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	t.Cleanup(hub.Close)
	return hub
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := newRunningHub(t)

	client := NewClient("spectator1")
	require.True(t, hub.Register(client))
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, time.Millisecond)

	hub.BroadcastEvent("snapshot", "data")

	select {
	case msg := <-client.send:
		assert.Equal(t, "event: snapshot\ndata: data\n\n", string(msg))
	case <-time.After(time.Second):
		t.Error("client did not receive message")
	}
}

func TestHub_BroadcastToMultipleClients(t *testing.T) {
	hub := newRunningHub(t)

	clients := []*Client{NewClient("a"), NewClient("b"), NewClient("c")}
	for _, c := range clients {
		require.True(t, hub.Register(c))
	}
	assert.Eventually(t, func() bool { return hub.ClientCount() == 3 }, time.Second, time.Millisecond)

	hub.BroadcastEvent("update", "data")

	for i, c := range clients {
		select {
		case msg := <-c.send:
			assert.Equal(t, "event: update\ndata: data\n\n", string(msg), "client %d", i)
		case <-time.After(time.Second):
			t.Errorf("client %d did not receive message", i)
		}
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := newRunningHub(t)

	client := NewClient("spectator1")
	require.True(t, hub.Register(client))
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, time.Millisecond)

	hub.Unregister(client)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, time.Millisecond)

	_, open := <-client.send
	assert.False(t, open)
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	done := make(chan struct{})
	go func() {
		hub.Run()
		close(done)
	}()

	client := NewClient("spectator1")
	require.True(t, hub.Register(client))

	hub.Close()
	hub.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
	_, open := <-client.send
	assert.False(t, open)
	assert.Equal(t, 0, hub.ClientCount())

	assert.False(t, hub.Register(NewClient("late")))
	hub.Unregister(client)
}

func TestHub_LatestKeepsLastEvent(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	assert.Nil(t, hub.Latest())

	hub.BroadcastEvent("snapshot", "one")
	hub.BroadcastEvent("game_over", "two")
	assert.Equal(t, "event: game_over\ndata: two\n\n", string(hub.Latest()))
}

func TestPublisher_EventNames(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	publisher := NewPublisher(hub, testutil.NopLogger())

	publisher.Publish(tetris.Snapshot{Columns: 18, Rows: 27, Score: 40})
	latest := string(hub.Latest())
	assert.True(t, strings.HasPrefix(latest, "event: snapshot\n"), latest)

	publisher.Publish(tetris.Snapshot{Columns: 18, Rows: 27, Over: true})
	latest = string(hub.Latest())
	require.True(t, strings.HasPrefix(latest, "event: game_over\ndata: "), latest)

	payload := strings.TrimSuffix(strings.TrimPrefix(latest, "event: game_over\ndata: "), "\n\n")
	var snap response.GameSnapshot
	require.NoError(t, json.Unmarshal([]byte(payload), &snap))
	assert.True(t, snap.Over)
	assert.Equal(t, 18, snap.Columns)
	assert.Equal(t, []int{}, snap.HighlightRows)
}

type sseEvent struct {
	name string
	data string
}

func readEvent(t *testing.T, r *bufio.Reader) (sseEvent, error) {
	t.Helper()
	var ev sseEvent
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return ev, err
		}
		line = strings.TrimSuffix(line, "\n")
		switch {
		case line == "":
			if ev.name != "" {
				return ev, nil
			}
		case strings.HasPrefix(line, "event: "):
			ev.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			ev.data += strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestServeSSE(t *testing.T) {
	hub := newRunningHub(t)
	hub.BroadcastEvent("snapshot", `{"score":10}`)
	assert.Eventually(t, func() bool { return len(hub.broadcast) == 0 }, time.Second, time.Millisecond)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeSSE(w, r, hub)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	body := bufio.NewReader(resp.Body)

	ev, err := readEvent(t, body)
	require.NoError(t, err)
	assert.Equal(t, "connected", ev.name)

	// the last broadcast is replayed on connect
	ev, err = readEvent(t, body)
	require.NoError(t, err)
	assert.Equal(t, sseEvent{name: "snapshot", data: `{"score":10}`}, ev)

	hub.BroadcastEvent("game_over", `{"over":true}`)
	ev, err = readEvent(t, body)
	require.NoError(t, err)
	assert.Equal(t, sseEvent{name: "game_over", data: `{"over":true}`}, ev)

	hub.Close()
	_, err = readEvent(t, body)
	assert.ErrorIs(t, err, io.EOF)
}

func TestServeSSE_ClosedHub(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	hub.Close()

	rec := httptest.NewRecorder()
	ServeSSE(rec, httptest.NewRequest(http.MethodGet, "/", nil), hub)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
