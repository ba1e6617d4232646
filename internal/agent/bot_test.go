package agent

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/pkg/api"
)

func newWorld() (*domain.World, *domain.Player) {
	rules := domain.DefaultRules()
	rules.MapSize = 3
	w := domain.NewWorld(rules)
	bot := domain.NewPlayer("bot_1", "BotCog", domain.Stats{HP: 100, MaxHP: 100})
	bot.IsBot = true
	w.AddPlayer(bot)
	return w, bot
}

func TestDecide_DeadBotRespawns(t *testing.T) {
	w, bot := newWorld()
	bot.IsDead = true
	cmd, ok := Decide(rand.New(rand.NewSource(1)), w, bot)
	if !ok || cmd.Action != domain.ActionRespawn || cmd.Token != bot.ID {
		t.Errorf("Decide() = %+v, %v, want RESPAWN", cmd, ok)
	}
}

func TestDecide_Distribution(t *testing.T) {
	w, bot := newWorld()
	w.AddObject(&domain.Mob{
		Base:      domain.Base{ID: "mob_1", Name: "Goblin"},
		Stats:     domain.Stats{HP: 10, MaxHP: 10},
		Attackers: domain.NewAttackers(5),
	})
	rng := rand.New(rand.NewSource(42))

	counts := map[domain.ActionType]int{}
	const n = 10000
	for i := 0; i < n; i++ {
		cmd, ok := Decide(rng, w, bot)
		if !ok {
			counts[domain.ActionUnknown]++
			continue
		}
		counts[cmd.Action]++

		switch cmd.Action {
		case domain.ActionMove:
			var p api.PositionPayload
			if err := json.Unmarshal(cmd.Payload, &p); err != nil {
				t.Fatalf("move payload: %v", err)
			}
			to := domain.Position{X: p.X, Y: p.Y}
			if !w.InBounds(to) || !bot.Pos.IsAdjacent(to) {
				t.Fatalf("move to %v from %v", to, bot.Pos)
			}
		case domain.ActionAttack:
			var p api.EntityPayload
			if err := json.Unmarshal(cmd.Payload, &p); err != nil || p.TargetID != "mob_1" {
				t.Fatalf("attack payload %s: %v", cmd.Payload, err)
			}
		}
	}

	want := map[domain.ActionType]float64{
		domain.ActionMove:    0.30,
		domain.ActionAttack:  0.30,
		domain.ActionChat:    0.20,
		domain.ActionUnknown: 0.20,
	}
	for action, share := range want {
		got := float64(counts[action]) / n
		if got < share-0.03 || got > share+0.03 {
			t.Errorf("%v share = %.3f, want about %.2f", action, got, share)
		}
	}
}

func TestDecide_NoTargetIdles(t *testing.T) {
	w, bot := newWorld()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		if cmd, ok := Decide(rng, w, bot); ok && cmd.Action == domain.ActionAttack {
			t.Fatal("attack chosen in an empty cell")
		}
	}
}

func TestNextDelay(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		d := NextDelay(rng)
		if d < 2*time.Second || d > 7*time.Second {
			t.Fatalf("NextDelay() = %v", d)
		}
	}
}

func TestRandomName(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 100; i++ {
		if n := len(RandomName(rng)); n < 3 || n > 15 {
			t.Fatalf("name length %d", n)
		}
	}
}
