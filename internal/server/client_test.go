package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/uhaszYsz/mmomicro/internal/engine"
	"github.com/uhaszYsz/mmomicro/pkg/api"
)

func dialWS(t *testing.T, s *engine.GameService) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(New(s, "0").Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, action, payload string) {
	t.Helper()
	cmd := api.ClientCommand{Action: action}
	if payload != "" {
		cmd.Payload = []byte(payload)
	}
	if err := conn.WriteJSON(cmd); err != nil {
		t.Fatalf("write %s: %v", action, err)
	}
}

// readUntil читает сообщения, пока не встретит нужный тип.
func readUntil(t *testing.T, conn *websocket.Conn, msgType string) api.ServerResponse {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(3 * time.Second)); err != nil {
		t.Fatalf("deadline: %v", err)
	}
	for {
		var msg api.ServerResponse
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("waiting for %s: %v", msgType, err)
		}
		if msg.Type == msgType {
			return msg
		}
	}
}

func TestClient_LoginReceivesStaticAndUpdate(t *testing.T) {
	s := newRunningService(t, nil)
	conn := dialWS(t, s)

	send(t, conn, "MOVE", `{"x":1,"y":1}`)
	if msg := readUntil(t, conn, api.MsgError); msg.Error == "" {
		t.Error("command before login must be rejected with a reason")
	}

	send(t, conn, api.ActionLogin, `{"name":"Alice","password":"secret"}`)
	static := readUntil(t, conn, api.MsgStatic)
	if len(static.Static) == 0 {
		t.Error("STATIC without payload")
	}
	update := readUntil(t, conn, api.MsgUpdate)
	if update.Player == nil || update.Player.Name != "Alice" {
		t.Fatalf("UPDATE player = %+v", update.Player)
	}
	if update.MyEntityID != update.Player.ID {
		t.Errorf("myEntityId = %q, want %q", update.MyEntityID, update.Player.ID)
	}
}

func TestClient_LoginRejections(t *testing.T) {
	s := newRunningService(t, nil)
	conn := dialWS(t, s)

	tests := []struct {
		name    string
		payload string
	}{
		{"malformed", `"nope"`},
		{"short name", `{"name":"A","password":"secret"}`},
		{"empty password", `{"name":"Alice","password":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			send(t, conn, api.ActionLogin, tt.payload)
			if msg := readUntil(t, conn, api.MsgError); msg.Error == "" {
				t.Error("empty error text")
			}
		})
	}

	// После отказов соединение остается пригодным для входа
	send(t, conn, api.ActionLogin, `{"name":"Alice","password":"secret"}`)
	readUntil(t, conn, api.MsgStatic)
}

func TestClient_RateLimited(t *testing.T) {
	s := newRunningService(t, func(cfg *engine.Config) {
		cfg.RateLimit = 0.001
		cfg.RateBurst = 1
	})
	conn := dialWS(t, s)

	// Вход расходует единственный токен
	send(t, conn, api.ActionLogin, `{"name":"Alice","password":"secret"}`)
	readUntil(t, conn, api.MsgUpdate)

	send(t, conn, "MOVE", `{"x":1,"y":1}`)
	msg := readUntil(t, conn, api.MsgError)
	if !strings.Contains(msg.Error, "Слишком много") {
		t.Errorf("error = %q, want rate limit rejection", msg.Error)
	}
}
