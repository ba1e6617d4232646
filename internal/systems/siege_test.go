package systems

import (
	"testing"
	"time"

	"github.com/uhaszYsz/mmomicro/internal/domain"
)

func TestUpdateSiege_MutualDestruction(t *testing.T) {
	env := newTestEnv(t)
	pos := domain.Position{X: 4, Y: 4}
	site := domain.NewConstructionSite("team_d", pos, env.World.Rules)
	site.Stats.HP = 300
	env.World.AddObject(site)
	siege := domain.NewSiegeMachine("siege_1", "team_a", site.ID, pos, env.World.Rules, env.Now)
	env.World.AddObject(siege)

	strikes := 0
	for i := 0; i < 40 && !env.World.IsDestroyed(siege.ID); i++ {
		env.Now = env.Now.Add(time.Second)
		if UpdateSiege(env, siege) {
			strikes++
		}
	}

	if strikes != 30 {
		t.Errorf("strikes = %d, want 30", strikes)
	}
	if !env.World.IsDestroyed(site.ID) || !env.World.IsDestroyed(siege.ID) {
		t.Fatal("site and siege should both be destroyed")
	}
	if n := env.World.FlushDestroyed(); n != 2 {
		t.Errorf("flushed %d, want 2", n)
	}
	if env.World.GetEntity(site.ID) != nil || env.World.GetEntity(siege.ID) != nil {
		t.Error("destroyed objects still registered")
	}
	if len(env.World.CellAt(pos).Objects) != 0 {
		t.Error("destroyed objects still in the cell")
	}
}

func TestUpdateSiege_Interval(t *testing.T) {
	env := newTestEnv(t)
	pos := domain.Position{X: 1, Y: 4}
	site := domain.NewConstructionSite("team_d", pos, env.World.Rules)
	env.World.AddObject(site)
	siege := domain.NewSiegeMachine("siege_1", "team_a", site.ID, pos, env.World.Rules, env.Now)
	env.World.AddObject(siege)

	if UpdateSiege(env, siege) {
		t.Error("struck before the first interval")
	}
	env.Now = env.Now.Add(1500 * time.Millisecond)
	if !UpdateSiege(env, siege) {
		t.Fatal("did not strike when due")
	}
	if site.Stats.HP != 490 || siege.Stats.HP != 290 {
		t.Errorf("hp site=%v siege=%v, want 490 and 290", site.Stats.HP, siege.Stats.HP)
	}
	if UpdateSiege(env, siege) {
		t.Error("struck twice in one interval")
	}
}

func TestUpdateSiege_LostTarget(t *testing.T) {
	env := newTestEnv(t)
	pos := domain.Position{X: 1, Y: 4}
	siege := domain.NewSiegeMachine("siege_1", "team_a", "site_gone", pos, env.World.Rules, env.Now)
	env.World.AddObject(siege)

	env.Now = env.Now.Add(time.Second)
	UpdateSiege(env, siege)
	if !env.World.IsDestroyed(siege.ID) {
		t.Error("siege without a target should be removed")
	}
}
