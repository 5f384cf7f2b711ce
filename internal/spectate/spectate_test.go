package spectate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/display"
	"github.com/vovakirdan/tui-2048/internal/grid"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/session"
)

var quietLogger = log.NewWithOptions(io.Discard, log.Options{})

type fixture struct {
	hub     *Hub
	dir     *session.Directory
	server  *httptest.Server
	session *session.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(quietLogger)
	go hub.Run(ctx)

	v, err := registry.Get(registry.DefaultID)
	if err != nil {
		t.Fatalf("registry.Get() failed: %v", err)
	}

	const id = "watched-session"
	sess, err := session.New(session.Config{
		ID:      id,
		Variant: v,
		Display: NewBroadcaster(hub, id),
		Logger:  quietLogger,
		Seed:    7,
	})
	if err != nil {
		t.Fatalf("session.New() failed: %v", err)
	}
	if err := sess.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	dir := session.NewDirectory()
	dir.Add(sess)

	srv := httptest.NewServer(NewServer("", dir, hub, quietLogger).Handler())
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})

	return &fixture{hub: hub, dir: dir, server: srv, session: sess}
}

func (f *fixture) getJSON(t *testing.T, path string, out any) int {
	t.Helper()
	resp, err := http.Get(f.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("GET %s Content-Type = %q", path, ct)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp.StatusCode
}

func (f *fixture) dial(t *testing.T, id string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/sessions/" + id + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var m Message
	if err := conn.ReadJSON(&m); err != nil {
		t.Fatalf("ReadJSON() failed: %v", err)
	}
	return m
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	var body struct {
		Status   string `json:"status"`
		Sessions int    `json:"sessions"`
	}
	if code := f.getJSON(t, "/healthz", &body); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if body.Status != "ok" || body.Sessions != 1 {
		t.Errorf("health = %+v", body)
	}
}

func TestListAndGetSessions(t *testing.T) {
	f := newFixture(t)

	var infos []session.Info
	if code := f.getJSON(t, "/sessions", &infos); code != http.StatusOK {
		t.Fatalf("list status = %d", code)
	}
	if len(infos) != 1 || infos[0].ID != f.session.ID() {
		t.Fatalf("sessions = %+v", infos)
	}
	if infos[0].Variant != registry.DefaultID || infos[0].State != "active" {
		t.Errorf("info = %+v", infos[0])
	}

	var snap grid.Snapshot
	if code := f.getJSON(t, "/sessions/"+f.session.ID(), &snap); code != http.StatusOK {
		t.Fatalf("get status = %d", code)
	}
	if snap.Rows != 4 || snap.Cols != 4 || snap.Goal != 2048 {
		t.Errorf("snapshot = %+v", snap)
	}

	var errBody map[string]string
	if code := f.getJSON(t, "/sessions/nope", &errBody); code != http.StatusNotFound {
		t.Errorf("unknown session status = %d, want 404", code)
	}
	if errBody["error"] == "" {
		t.Error("expected an error message for an unknown session")
	}
}

func TestWatchUnknownSession(t *testing.T) {
	f := newFixture(t)

	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/sessions/nope/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("expected dial to fail for an unknown session")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("response = %v, want 404", resp)
	}
}

func TestWatchStreamsEvents(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t, f.session.ID())

	first := readMessage(t, conn)
	if first.Type != TypeSnapshot || first.Snapshot == nil {
		t.Fatalf("first message = %+v, want snapshot", first)
	}
	tiles := 0
	for _, row := range first.Snapshot.Board {
		for _, v := range row {
			if v != 0 {
				tiles++
			}
		}
	}
	if tiles != 2 {
		t.Errorf("snapshot has %d tiles, want 2", tiles)
	}
	if got := f.hub.ClientCount(f.session.ID()); got != 1 {
		t.Errorf("ClientCount() = %d, want 1", got)
	}

	moved := false
	for _, dir := range grid.Directions {
		ok, err := f.session.Move(dir)
		if err != nil {
			t.Fatalf("Move(%s) failed: %v", dir, err)
		}
		if ok {
			moved = true
			break
		}
	}
	if !moved {
		t.Fatal("no effective move from the start position")
	}

	sawMove := false
	for {
		m := readMessage(t, conn)
		if m.Type != TypeEvent || m.Event == nil {
			t.Fatalf("message = %+v, want event", m)
		}
		if m.SessionID != f.session.ID() {
			t.Errorf("SessionID = %q", m.SessionID)
		}
		if m.Event.Kind == display.EventMoveTile {
			sawMove = true
		}
		if m.Event.Kind == display.EventNewTile {
			if len(m.Board) != 4 || m.Board[m.Event.Row][m.Event.Col] != m.Event.Value {
				t.Errorf("board %v does not hold the spawned tile %+v", m.Board, *m.Event)
			}
			break
		}
	}
	if !sawMove {
		t.Error("expected a move_tile event before the spawn")
	}
}

func TestEndSessionDisconnects(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t, f.session.ID())
	readMessage(t, conn)

	f.hub.EndSession(f.session.ID())

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected the connection to close")
	}
}

func TestBroadcasterPublishes(t *testing.T) {
	hub := NewHub(quietLogger)
	b := NewBroadcaster(hub, "s1")

	g, err := grid.FromRows([][]int{{0, 4}, {0, 0}})
	if err != nil {
		t.Fatalf("FromRows() failed: %v", err)
	}

	b.Clear()
	b.NewTile(g, 0, 1)
	b.Result(grid.ResultWin, 2048)

	want := []display.EventKind{display.EventClear, display.EventNewTile, display.EventResult}
	for i, kind := range want {
		m := <-hub.broadcast
		if m.SessionID != "s1" || m.Type != TypeEvent {
			t.Fatalf("message %d = %+v", i, m)
		}
		if m.Event.Kind != kind {
			t.Errorf("message %d kind = %s, want %s", i, m.Event.Kind, kind)
		}
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub(quietLogger)

	done := make(chan struct{})
	go func() {
		for range broadcastBuffer + 10 {
			hub.Publish(&Message{Type: TypeEvent, SessionID: "s1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full queue")
	}
}
