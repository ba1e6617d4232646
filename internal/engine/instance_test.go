package engine

import (
	"encoding/json"
	"testing"

	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/pkg/api"
)

func TestExecuteCommand_MoveMarksDirty(t *testing.T) {
	s := newTestService(t)
	p := addTestPlayer(t, s, "alice", domain.Position{X: 0, Y: 0})
	ch := s.Hub.Register(p.ID)

	s.Instance.executeCommand(command(domain.ActionMove, p.ID, `{"x":1,"y":1}`), testNow)

	if p.Pos != (domain.Position{X: 1, Y: 1}) {
		t.Fatalf("player at %v, want (1,1)", p.Pos)
	}
	if !s.Instance.dirty {
		t.Error("accepted command should mark the state dirty")
	}
	select {
	case msg := <-ch:
		t.Errorf("move should wait for the tick, got %s", msg.Type)
	default:
	}

	s.Instance.Tick(testNow)
	update := recvType(t, ch, api.MsgUpdate)
	if update.Player.Pos != p.Pos {
		t.Errorf("projected position %v, want %v", update.Player.Pos, p.Pos)
	}
	if len(update.Logs) == 0 {
		t.Error("move log missing from the update")
	}
}

func TestExecuteCommand_RejectionRepliesImmediately(t *testing.T) {
	s := newTestService(t)
	p := addTestPlayer(t, s, "alice", domain.Position{X: 0, Y: 0})
	ch := s.Hub.Register(p.ID)

	tests := []struct {
		name string
		cmd  domain.InternalCommand
	}{
		{"bad payload", command(domain.ActionMove, p.ID, `{"x":"far"}`)},
		{"not adjacent", command(domain.ActionMove, p.ID, `{"x":2,"y":2}`)},
		{"unknown target", command(domain.ActionAttack, p.ID, `{"targetId":"nobody"}`)},
		{"unregistered action", command(domain.ActionUnknown, p.ID, "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.Instance.executeCommand(tt.cmd, testNow)
			msg := recv(t, ch)
			if msg.Type != api.MsgError || msg.Error == "" {
				t.Errorf("reply = %+v, want ERROR with text", msg)
			}
			if p.Pos != (domain.Position{}) || p.InCombat() {
				t.Error("rejected command changed the world")
			}
		})
	}
}

func TestExecuteCommand_InitSendsStaticAndUpdate(t *testing.T) {
	s := newTestService(t)
	p := addTestPlayer(t, s, "alice", domain.Position{X: 0, Y: 0})
	ch := s.Hub.Register(p.ID)

	s.Instance.executeCommand(command(domain.ActionInit, p.ID, ""), testNow)

	static := recv(t, ch)
	if static.Type != api.MsgStatic {
		t.Fatalf("first message %s, want STATIC", static.Type)
	}
	var data api.StaticData
	if err := json.Unmarshal(static.Static, &data); err != nil {
		t.Fatalf("decode static: %v", err)
	}
	if data.Version != s.Instance.Content.Version || data.MapSize != 3 || len(data.BiomeMap) != 9 {
		t.Errorf("static = version %q size %d biomes %d", data.Version, data.MapSize, len(data.BiomeMap))
	}
	if len(data.Teams) == 0 || data.Teams[0].ID != domain.DefaultTeamID {
		t.Errorf("static teams = %+v, want default team first", data.Teams)
	}

	update := recv(t, ch)
	if update.Type != api.MsgUpdate || update.MyEntityID != p.ID {
		t.Errorf("second message %+v, want own UPDATE", update)
	}
}

func TestExecuteCommand_ExamineRepliesProfile(t *testing.T) {
	s := newTestService(t)
	pos := domain.Position{X: 1, Y: 2}
	a := addTestPlayer(t, s, "alice", pos)
	b := addTestPlayer(t, s, "bob", pos)
	b.PasswordHash = "secret-hash"
	ch := s.Hub.Register(a.ID)

	payload, _ := json.Marshal(api.EntityPayload{TargetID: b.ID})
	s.Instance.executeCommand(domain.InternalCommand{Action: domain.ActionExamine, Token: a.ID, Payload: payload}, testNow)

	msg := recv(t, ch)
	if msg.Type != api.MsgProfile || msg.Profile == nil || msg.Profile.ID != b.ID {
		t.Fatalf("reply = %+v, want PROFILE of bob", msg)
	}
	if msg.Profile.Inventory != nil || msg.Profile.Skills != nil {
		t.Error("public profile leaks private fields")
	}
}

func TestStaticPayload_CachedPerRevision(t *testing.T) {
	s := newTestService(t)
	i := s.Instance

	first, err := i.staticPayload()
	if err != nil {
		t.Fatalf("staticPayload: %v", err)
	}
	key := i.staticKey()

	addTestPlayer(t, s, "alice", domain.Position{})
	if i.staticKey() == key {
		t.Error("new player should bump the static revision (team members changed)")
	}
	second, err := i.staticPayload()
	if err != nil {
		t.Fatalf("staticPayload: %v", err)
	}
	if string(first) == string(second) {
		t.Error("static data did not change after the default team grew")
	}
}
