package content

import (
	"errors"
	"testing"

	"github.com/uhaszYsz/mmomicro/internal/domain"
)

func TestDefault_Parses(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	if s.Version == "" {
		t.Error("snapshot has no version")
	}

	tests := []struct {
		name string
		ok   bool
	}{
		{"Goblin Scout", true},
		{"Iron Deposit", true},
		{"Ancient Dragon", true},
		{"Nobody", false},
	}
	for _, tt := range tests {
		if _, ok := s.Enemy(tt.name); ok != tt.ok {
			t.Errorf("Enemy(%q) found = %v, want %v", tt.name, ok, tt.ok)
		}
	}

	goblin, _ := s.Enemy("Goblin Scout")
	if goblin.Weakness != "hunting" || goblin.WeaknessXP != 10 {
		t.Errorf("Goblin Scout weakness = %q/%d, want hunting/10", goblin.Weakness, goblin.WeaknessXP)
	}

	r, ok := s.Recipe(0)
	if !ok || r.Result.Slot != domain.SlotHand || r.CraftingTimeMs != 10000 {
		t.Errorf("recipe 0 = %+v, want the wooden shield", r)
	}

	inv := s.StartingInventory()
	if got := inv.Count(domain.DefaultRules().BrickItemName); got != 100 {
		t.Errorf("starting bricks = %d, want 100", got)
	}
	inv[0].Quantity = 99
	if s.Player.Inventory[0].Quantity == 99 {
		t.Error("StartingInventory shares items with the snapshot")
	}
}

func TestSnapshot_VersionIsStable(t *testing.T) {
	a, _ := Default()
	b, _ := Default()
	if a.Version != b.Version {
		t.Errorf("same tables produced versions %s and %s", a.Version, b.Version)
	}

	edited, err := a.UpdateEnemyStats("Wolf", domain.MobBaseStats{HP: 999, Dmg: 1, Speed: 1})
	if err != nil {
		t.Fatalf("UpdateEnemyStats: %v", err)
	}
	if edited.Version == a.Version {
		t.Error("edit did not change the version")
	}
	if w, _ := a.Enemy("Wolf"); w.BaseStats.HP == 999 {
		t.Error("edit mutated the source snapshot")
	}
	if !EnemiesDiffer(a, edited) {
		t.Error("EnemiesDiffer missed a stat change")
	}
}

func TestEnemiesForBiome(t *testing.T) {
	s, _ := Default()
	for _, e := range s.EnemiesForBiome("FOREST", false) {
		if e.IsBoss {
			t.Errorf("boss %q returned without includeBosses", e.Name)
		}
		if e.Biome != "FOREST" && e.Biome != BiomeAll {
			t.Errorf("enemy %q from biome %s", e.Name, e.Biome)
		}
	}
	withBoss := s.EnemiesForBiome("VOLCANIC", true)
	found := false
	for _, e := range withBoss {
		found = found || e.IsBoss
	}
	if !found {
		t.Error("no boss returned with includeBosses")
	}
}

func TestRecipeEdits(t *testing.T) {
	s, _ := Default()
	next, id, err := s.SaveRecipe(Recipe{
		ID:             -1,
		Name:           "Brick Wall",
		Building:       "Carpentry Workshop",
		Materials:      []domain.Material{{Name: "🧱 Brick", Quantity: 2}},
		Result:         domain.Item{Name: "Wall", Type: domain.ItemMaterial, Quantity: 1},
		CraftingTimeMs: 1000,
	})
	if err != nil {
		t.Fatalf("SaveRecipe: %v", err)
	}
	if _, ok := next.Recipe(id); !ok {
		t.Fatalf("new recipe %d not indexed", id)
	}
	if _, ok := s.Recipe(id); ok {
		t.Error("source snapshot gained the recipe")
	}

	after, err := next.DeleteRecipe(0)
	if err != nil {
		t.Fatalf("DeleteRecipe: %v", err)
	}
	b, _ := after.Building("Carpentry Workshop")
	for _, rid := range b.RecipeIDs {
		if rid == 0 {
			t.Error("deleted recipe still listed by building")
		}
	}

	if _, err := after.DeleteRecipe(0); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete error = %v, want not found", err)
	}
}

func TestNextTier(t *testing.T) {
	s, _ := Default()
	tier := s.NextTier("Storage", 1)
	if tier == nil || tier.Level != 2 || tier.Materials[0].Quantity != 100 {
		t.Fatalf("NextTier(Storage, 1) = %+v", tier)
	}
	if s.NextTier("Storage", 10) != nil {
		t.Error("max level building has a next tier")
	}
}
