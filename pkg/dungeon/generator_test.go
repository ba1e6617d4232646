package dungeon

import (
	"math/rand"
	"testing"

	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/pkg/content"
)

func newTestWorld(t *testing.T) (*domain.World, *content.Snapshot) {
	t.Helper()
	snap, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default: %v", err)
	}
	return domain.NewWorld(domain.DefaultRules()), snap
}

func TestGenerateBiomes(t *testing.T) {
	world, snap := newTestWorld(t)
	GenerateBiomes(world, snap.Biomes, rand.New(rand.NewSource(7)))

	seen := map[string]int{}
	for i, b := range world.Biomes {
		if b == "" {
			t.Fatalf("cell %d has no biome", i)
		}
		seen[b]++
	}
	// У каждого биома есть хотя бы опорная клетка.
	for _, b := range snap.Biomes {
		if seen[b.Key] == 0 {
			t.Errorf("biome %s owns no cells", b.Key)
		}
	}
}

func TestGenerateBiomes_Deterministic(t *testing.T) {
	w1, snap := newTestWorld(t)
	w2, _ := newTestWorld(t)
	GenerateBiomes(w1, snap.Biomes, rand.New(rand.NewSource(42)))
	GenerateBiomes(w2, snap.Biomes, rand.New(rand.NewSource(42)))
	for i := range w1.Biomes {
		if w1.Biomes[i] != w2.Biomes[i] {
			t.Fatalf("cell %d: %s != %s for the same seed", i, w1.Biomes[i], w2.Biomes[i])
		}
	}
}

func TestPopulate(t *testing.T) {
	world, snap := newTestWorld(t)
	rng := rand.New(rand.NewSource(1))
	GenerateBiomes(world, snap.Biomes, rng)
	n := Populate(world, snap, rng)

	cells := world.Width * world.Height
	if n < cells*MinMobsPerTile || n > cells*MaxMobsPerTile {
		t.Fatalf("spawned %d mobs, want between %d and %d", n, cells*MinMobsPerTile, cells*MaxMobsPerTile)
	}
	for _, m := range world.Mobs() {
		if m.IsBoss {
			t.Fatalf("boss %s spawned by Populate", m.Name)
		}
		if m.Stats.HP != m.Stats.MaxHP || m.Stats.MaxHP != m.BaseStats.HP {
			t.Fatalf("mob %s: hp %v/%v, base %v", m.ID, m.Stats.HP, m.Stats.MaxHP, m.BaseStats.HP)
		}
		if world.GetEntity(m.ID) != domain.Entity(m) {
			t.Fatalf("mob %s not registered", m.ID)
		}
		tmpl, _ := snap.Enemy(m.Template)
		if tmpl.Biome != content.BiomeAll && tmpl.Biome != world.BiomeAt(m.Pos) {
			t.Fatalf("mob %s from %s spawned in %s", m.Name, tmpl.Biome, world.BiomeAt(m.Pos))
		}
	}
}

func TestSpawnBoss_Multipliers(t *testing.T) {
	_, snap := newTestWorld(t)
	rules := domain.DefaultRules()
	tmpl, _ := snap.Enemy("Titan")
	boss := SpawnBoss(tmpl, domain.Position{}, 1, "DESERT", rules)
	if boss.Stats.MaxHP != tmpl.BaseStats.HP*3 || boss.Stats.Dmg != tmpl.BaseStats.Dmg*2 {
		t.Errorf("boss stats hp=%v dmg=%v", boss.Stats.MaxHP, boss.Stats.Dmg)
	}
	if boss.Stats.Accuracy != rules.MobDefaultAccuracy {
		t.Errorf("boss accuracy = %v, want default %v", boss.Stats.Accuracy, rules.MobDefaultAccuracy)
	}
}

func TestMobRescale(t *testing.T) {
	tests := []struct {
		level       int
		wantHP, dmg float64
	}{
		{1, 50, 3},
		{2, 55, 3},
		{5, 70, 4},
		{11, 100, 6},
	}
	for _, tt := range tests {
		m := &domain.Mob{Level: tt.level, BaseStats: domain.MobBaseStats{HP: 50, Dmg: 3, Speed: 1.2}}
		m.Rescale(0.1, 100)
		if m.Stats.MaxHP != tt.wantHP || m.Stats.Dmg != tt.dmg {
			t.Errorf("level %d: hp=%v dmg=%v, want %v/%v", tt.level, m.Stats.MaxHP, m.Stats.Dmg, tt.wantHP, tt.dmg)
		}
	}
}
