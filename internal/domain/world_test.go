package domain

import (
	"errors"
	"testing"
	"time"
)

func testRules() Rules {
	r := DefaultRules()
	r.MapSize = 10
	return r
}

func TestWorld_AddMoveRemove(t *testing.T) {
	world := NewWorld(testRules())

	p := NewPlayer("p1", "alice", Stats{HP: 100, MaxHP: 100})
	p.Pos = Position{X: 5, Y: 5}
	world.AddPlayer(p)

	if got := world.GetEntity("p1"); got != Entity(p) {
		t.Fatalf("GetEntity returned %v, want the registered player", got)
	}
	if n := len(world.CellAt(p.Pos).Players); n != 1 {
		t.Fatalf("cell players = %d, want 1", n)
	}

	if err := world.UpdateEntityPos(p, Position{X: 6, Y: 5}); err != nil {
		t.Fatalf("UpdateEntityPos: %v", err)
	}
	if n := len(world.CellAt(Position{X: 5, Y: 5}).Players); n != 0 {
		t.Errorf("old cell still holds %d players", n)
	}
	cell := world.CellAt(Position{X: 6, Y: 5})
	if len(cell.Players) != 1 || cell.Players[0] != p {
		t.Errorf("new cell players = %v, want [p1]", cell.Players)
	}

	// Тот же указатель через грид и справочник.
	cell.Players[0].Stats.HP = 42
	if world.Player("p1").Stats.HP != 42 {
		t.Error("grid and registry hold different instances")
	}

	if err := world.UpdateEntityPos(p, Position{X: 10, Y: 0}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("out of bounds move error = %v, want ErrOutOfBounds", err)
	}
	if p.Pos != (Position{X: 6, Y: 5}) {
		t.Errorf("failed move changed position to %v", p.Pos)
	}
}

func TestWorld_RemoveObjects(t *testing.T) {
	world := NewWorld(testRules())
	pos := Position{X: 1, Y: 1}
	site := NewConstructionSite("team_a", pos, world.Rules)
	siege := NewSiegeMachine("siege1", "team_b", site.ID, pos, world.Rules, time.Time{})
	mob := &Mob{Base: Base{ID: "m1", Pos: pos}}
	world.AddObject(site)
	world.AddObject(mob)
	world.AddObject(siege)

	world.RemoveObjects(map[string]bool{site.ID: true, siege.ID: true})

	if world.GetEntity(site.ID) != nil || world.GetEntity(siege.ID) != nil {
		t.Error("removed objects are still in the registry")
	}
	cell := world.CellAt(pos)
	if len(cell.Objects) != 1 || cell.Objects[0] != Entity(mob) {
		t.Errorf("cell objects = %v, want only the mob", cell.Objects)
	}
	if len(world.Objects) != 1 {
		t.Errorf("objects list length = %d, want 1", len(world.Objects))
	}
}

func TestWorld_FlushDestroyed(t *testing.T) {
	world := NewWorld(testRules())
	pos := Position{X: 2, Y: 3}
	site := NewConstructionSite("team_a", pos, world.Rules)
	world.AddObject(site)

	world.MarkDestroyed(site.ID)
	world.MarkDestroyed(site.ID)
	world.MarkDestroyed("ghost")

	if world.LiveEntity(site.ID) != nil {
		t.Error("LiveEntity returned a destroyed object")
	}
	if world.GetEntity(site.ID) == nil {
		t.Error("object removed before flush")
	}
	if n := world.FlushDestroyed(); n != 1 {
		t.Errorf("FlushDestroyed() = %d, want 1", n)
	}
	if n := world.FlushDestroyed(); n != 0 {
		t.Errorf("second FlushDestroyed() = %d, want 0", n)
	}
	if len(world.CellAt(pos).Objects) != 0 || world.GetEntity(site.ID) != nil {
		t.Error("destroyed object still present")
	}
}

func TestAttackers_BoundAndUnique(t *testing.T) {
	a := NewAttackers(5)
	for _, id := range []string{"a", "b", "a", "c", "d", "e", "b"} {
		if !a.Add(id) {
			t.Fatalf("Add(%q) rejected before the list was full", id)
		}
	}
	if a.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", a.Len())
	}
	if a.Add("f") {
		t.Error("Add accepted a sixth attacker")
	}
	if !a.Add("c") {
		t.Error("Add rejected an attacker that is already listed")
	}
	a.Remove("c")
	a.Remove("c")
	if a.Has("c") || a.Len() != 4 {
		t.Errorf("after Remove: has c = %v, len = %d", a.Has("c"), a.Len())
	}
}

func TestWorld_ChatBacklog(t *testing.T) {
	r := testRules()
	r.ChatBacklog = 3
	world := NewWorld(r)
	for i := 0; i < 5; i++ {
		world.AppendChat(ChatMessage{Text: string(rune('a' + i))})
	}
	if len(world.Chat) != 3 || world.Chat[0].Text != "c" || world.Chat[2].Text != "e" {
		t.Errorf("chat backlog = %v, want last three messages", world.Chat)
	}
}

func TestRules_SiteProgression(t *testing.T) {
	r := DefaultRules()
	for level := 1; level <= 4; level++ {
		if got, want := r.RequiredBricks(level), 10*level; got != want {
			t.Errorf("RequiredBricks(%d) = %d, want %d", level, got, want)
		}
		if got, want := r.SiteMaxHP(level), 500*float64(level); got != want {
			t.Errorf("SiteMaxHP(%d) = %v, want %v", level, got, want)
		}
	}
}

func TestWorld_RemovePlayer(t *testing.T) {
	world := NewWorld(testRules())
	p := NewPlayer("bot_1", "BotCog", Stats{HP: 10, MaxHP: 10})
	world.AddPlayer(p)
	world.Team(DefaultTeamID).AddMember(p.ID)

	if !world.RemovePlayer("bot_1") {
		t.Fatal("RemovePlayer returned false")
	}
	if world.GetEntity("bot_1") != nil || world.PlayerByName("botcog") != nil {
		t.Error("player still addressable after removal")
	}
	if len(world.Players) != 0 || len(world.CellAt(Position{}).Players) != 0 {
		t.Error("player still listed after removal")
	}
	if world.Team(DefaultTeamID).HasMember("bot_1") {
		t.Error("player still a team member")
	}
	if world.RemovePlayer("bot_1") {
		t.Error("second removal should report false")
	}
}
