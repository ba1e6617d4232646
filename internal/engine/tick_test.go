package engine

import (
	"testing"
	"time"

	"github.com/uhaszYsz/mmomicro/internal/domain"
)

func TestTick_SiegeMutualDestruction(t *testing.T) {
	s := newTestService(t)
	w := s.Instance.World
	pos := domain.Position{X: 2, Y: 2}
	clearCell(s, pos)

	site := domain.NewConstructionSite("team_d", pos, w.Rules)
	site.Stats.HP = 300
	w.AddObject(site)
	siege := domain.NewSiegeMachine("siege_1", "team_a", site.ID, pos, w.Rules, testNow)
	w.AddObject(siege)

	now := testNow
	for n := 0; n < 29; n++ {
		now = now.Add(time.Second)
		s.Instance.Tick(now)
	}
	if w.GetEntity(site.ID) == nil || w.GetEntity(siege.ID) == nil {
		t.Fatal("objects removed before the 30th strike")
	}
	if site.Stats.HP != 10 || siege.Stats.HP != 10 {
		t.Errorf("hp after 29 strikes = %v / %v, want 10 / 10", site.Stats.HP, siege.Stats.HP)
	}

	now = now.Add(time.Second)
	s.Instance.Tick(now)

	if w.GetEntity(site.ID) != nil || w.GetEntity(siege.ID) != nil {
		t.Error("site and siege should both be removed after the 30th strike")
	}
	if n := len(w.CellAt(pos).Objects); n != 0 {
		t.Errorf("cell still holds %d objects", n)
	}
}

func TestTick_DisengagesWhenTargetLeaves(t *testing.T) {
	s := newTestService(t)
	w := s.Instance.World
	pos := domain.Position{X: 1, Y: 1}
	clearCell(s, pos)

	a := addTestPlayer(t, s, "alice", pos)
	b := addTestPlayer(t, s, "bob", pos)
	b.Team = "team_b"
	a.AttackingPlayer = b.ID
	a.NextAttackAt = testNow.Add(time.Hour)

	if err := w.UpdateEntityPos(b, domain.Position{X: 2, Y: 1}); err != nil {
		t.Fatalf("move bob: %v", err)
	}
	s.Instance.Tick(testNow)

	if a.InCombat() {
		t.Errorf("alice still attacking %q after target left the cell", a.AttackingPlayer)
	}
}

func TestTick_MobCounterAttack(t *testing.T) {
	s := newTestService(t)
	w := s.Instance.World
	pos := domain.Position{X: 0, Y: 1}
	clearCell(s, pos)

	p := addTestPlayer(t, s, "alice", pos)
	p.NextAttackAt = testNow.Add(time.Hour) // игрок сам не бьет
	mob := &domain.Mob{
		Base:      domain.Base{ID: "mob_1", Name: "Wolf", Pos: pos},
		Level:     1,
		Stats:     domain.Stats{HP: 50, MaxHP: 50, Dmg: 7, Speed: 1, Accuracy: 100},
		Attackers: domain.NewAttackers(w.Rules.MaxAttackers),
	}
	w.AddObject(mob)
	mob.Attackers.Add(p.ID)
	p.Attacking = mob.ID

	if !s.Instance.Tick(testNow) {
		t.Error("tick with a counter-attack should publish")
	}
	if p.Stats.HP != 93 {
		t.Errorf("player hp = %v, want 93", p.Stats.HP)
	}
	if !mob.NextAttackAt.After(testNow) {
		t.Error("mob cooldown not set")
	}
}

func TestTick_RespawnsMob(t *testing.T) {
	s := newTestService(t)
	w := s.Instance.World
	pos := domain.Position{X: 2, Y: 0}
	clearCell(s, pos)

	mob := &domain.Mob{
		Base:      domain.Base{ID: "mob_r", Name: "Bear", Pos: pos},
		Level:     2,
		BaseStats: domain.MobBaseStats{HP: 100, Dmg: 10, Speed: 1},
		RespawnAt: testNow.Add(5 * time.Second),
		Attackers: domain.NewAttackers(w.Rules.MaxAttackers),
	}
	w.AddObject(mob)

	s.Instance.Tick(testNow)
	if mob.IsAlive() {
		t.Fatal("mob respawned before its timer")
	}
	s.Instance.Tick(testNow.Add(5 * time.Second))
	if !mob.IsAlive() || mob.Stats.MaxHP <= 100 {
		t.Errorf("mob after respawn: alive=%v maxHP=%v, want alive with level-2 stats", mob.IsAlive(), mob.Stats.MaxHP)
	}
}

func TestTick_CompletesConstruction(t *testing.T) {
	s := newTestService(t)
	w := s.Instance.World
	pos := domain.Position{X: 0, Y: 2}

	site := domain.NewConstructionSite("team_a", pos, w.Rules)
	site.CompleteAt = testNow.Add(time.Minute)
	w.AddObject(site)

	s.Instance.Tick(testNow)
	if site.Level != 1 {
		t.Fatalf("site upgraded early: level %d", site.Level)
	}
	s.Instance.Tick(testNow.Add(time.Minute))
	if site.Level != 2 || site.Stats.MaxHP != w.Rules.SiteMaxHP(2) {
		t.Errorf("site level %d maxHP %v, want 2 / %v", site.Level, site.Stats.MaxHP, w.Rules.SiteMaxHP(2))
	}
}

func TestTick_PublishesOnlyWhenChanged(t *testing.T) {
	s := newTestService(t)
	pos := domain.Position{X: 1, Y: 0}
	clearCell(s, pos)
	p := addTestPlayer(t, s, "alice", pos)
	ch := s.Hub.Register(p.ID)
	s.Instance.dirty = true // как после входа

	if !s.Instance.Tick(testNow) {
		t.Fatal("first tick after join should publish")
	}
	update := recv(t, ch)
	if update.Type != "UPDATE" || update.MyEntityID != p.ID || update.Player == nil {
		t.Fatalf("unexpected message %+v", update)
	}

	if s.Instance.Tick(testNow.Add(200 * time.Millisecond)) {
		t.Error("idle tick should not publish")
	}
}

func TestTick_LogsOnlySendsLogMessage(t *testing.T) {
	s := newTestService(t)
	pos := domain.Position{X: 1, Y: 0}
	clearCell(s, pos)
	p := addTestPlayer(t, s, "alice", pos)
	ch := s.Hub.Register(p.ID)

	s.Instance.AddLog("Объявление", "INFO", testNow)
	if !s.Instance.Tick(testNow) {
		t.Fatal("pending logs should be published")
	}
	msg := recv(t, ch)
	if msg.Type != "LOG" || msg.Player != nil {
		t.Fatalf("got %s with player %v, want bare LOG", msg.Type, msg.Player)
	}
	if len(msg.Logs) != 1 || msg.Logs[0].Text != "Объявление" {
		t.Errorf("logs = %+v", msg.Logs)
	}
	if s.Instance.hasPendingLogs() {
		t.Error("logs must be cleared after publishing")
	}
}
