package systems

import (
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/pkg/content"
	"github.com/uhaszYsz/mmomicro/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	// Exit with the result of the tests
	os.Exit(m.Run())
}

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T) *Env {
	t.Helper()
	snap, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default: %v", err)
	}
	rules := domain.DefaultRules()
	rules.MapSize = 5
	return &Env{
		World:   domain.NewWorld(rules),
		Content: snap,
		Rng:     rand.New(rand.NewSource(1)),
		Now:     testNow,
	}
}

// addPlayer создает игрока с предсказуемыми характеристиками: всегда попадает, не критует, не уклоняется.
func addPlayer(env *Env, id string, pos domain.Position) *domain.Player {
	p := domain.NewPlayer(id, id, domain.Stats{
		HP: 100, MaxHP: 100, MP: 50, MaxMP: 50, Stamina: 10, MaxStamina: 10,
		Dmg: 10, Speed: 1, Accuracy: 100,
	})
	p.Pos = pos
	p.IsOnline = true
	env.World.AddPlayer(p)
	EnrollDefault(env.World, p)
	return p
}

func addMob(env *Env, id string, pos domain.Position, hp float64) *domain.Mob {
	m := &domain.Mob{
		Base:      domain.Base{ID: id, Name: id, Pos: pos},
		Level:     1,
		Stats:     domain.Stats{HP: hp, MaxHP: hp, Speed: 1, Accuracy: 100},
		Attackers: domain.NewAttackers(env.World.Rules.MaxAttackers),
	}
	env.World.AddObject(m)
	return m
}

func addTeam(env *Env, id string, members ...*domain.Player) *domain.Team {
	team := &domain.Team{ID: id, Name: id, JoinPolicy: domain.JoinPolicyOpen}
	env.World.AddTeam(team)
	for _, p := range members {
		env.World.Team(p.Team).RemoveMember(p.ID)
		p.Team = id
		team.AddMember(p.ID)
	}
	return team
}

func bricks(env *Env, n int) *domain.Item {
	return &domain.Item{Name: env.World.Rules.BrickItemName, Type: domain.ItemMaterial, Level: 1, Quality: "Common", Quantity: n}
}
