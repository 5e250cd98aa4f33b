package feed

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tesla-tower/internal/config"
	"tesla-tower/internal/logger"
	"tesla-tower/internal/progress"
	"tesla-tower/internal/sim"
	"tesla-tower/internal/store"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

func snapshot(t *testing.T) sim.Snapshot {
	t.Helper()
	cfg := config.Default()
	prog := progress.New(store.NewMemStore(), 1, cfg, logger.Discard())
	s := sim.New(cfg, prog, rand.New(rand.NewSource(1)), logger.Discard())
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	return s.Snapshot()
}

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(logger.Discard())
	go hub.Run(ctx)
	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("clients = %d; want %d", hub.Clients(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestJSONSpectator(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)
	waitClients(t, hub, 1)

	hub.Publish(snapshot(t))
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if kind != websocket.TextMessage {
		t.Errorf("frame type = %d; want text", kind)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got["state"] != "running" || got["wave"] != float64(1) || got["player"] != "Player" {
		t.Errorf("snapshot header = %v %v %v", got["state"], got["wave"], got["player"])
	}
}

func TestMsgpackSpectator(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url+"?format=msgpack")
	waitClients(t, hub, 1)

	hub.Publish(snapshot(t))
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if kind != websocket.BinaryMessage {
		t.Errorf("frame type = %d; want binary", kind)
	}
	var got map[string]any
	if err := msgpack.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got["player"] != "Player" || got["theme"] != "classic" {
		t.Errorf("snapshot = %v", got)
	}
}

func TestDisconnectUnregisters(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)
	waitClients(t, hub, 1)
	conn.Close()
	waitClients(t, hub, 0)
}

func TestPublishDropsWhenBusy(t *testing.T) {
	hub := NewHub(logger.Discard())
	snap := snapshot(t)
	if !hub.Publish(snap) {
		t.Fatal("first publish dropped")
	}
	if hub.Publish(snap) {
		t.Error("second publish queued behind an undelivered one")
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("msgpack") != FormatMsgpack {
		t.Error("msgpack not recognized")
	}
	for _, s := range []string{"", "json", "xml"} {
		if ParseFormat(s) != FormatJSON {
			t.Errorf("ParseFormat(%q) is not JSON", s)
		}
	}
}
