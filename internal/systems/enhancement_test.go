package systems

import (
	"errors"
	"testing"

	"github.com/uhaszYsz/mmomicro/internal/domain"
)

func TestEnchant(t *testing.T) {
	env := newTestEnv(t)
	p := addPlayer(env, "p", domain.Position{X: 2, Y: 3})
	teamWithSite(env, "team_e", p.Pos, p)
	sword := &domain.Item{Name: "Sword", Type: domain.ItemEquipment, Slot: domain.SlotWeapon, Quantity: 1, EnhancementSlots: 1}
	runes := &domain.Item{Name: "Strength Rune", Type: domain.ItemRune, Quantity: 2, Stats: domain.StatMods{"dmg": 5, "luck": 9}}
	p.Inventory = domain.Inventory{sword, runes, bricks(env, 10)}

	if _, err := Enchant(env, p, 0, 1); !errors.Is(err, domain.ErrPrecondition) {
		t.Fatalf("no station: err = %v, want precondition", err)
	}
	if _, err := BuildBuilding(env, p, "Enhancement Station"); err != nil {
		t.Fatalf("BuildBuilding: %v", err)
	}

	if _, err := Enchant(env, p, 1, 0); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("rune as target: err = %v, want validation", err)
	}
	if _, err := Enchant(env, p, 0, 1); err != nil {
		t.Fatalf("Enchant: %v", err)
	}
	if sword.Stats["dmg"] != 5 || len(sword.Enchantments) != 1 {
		t.Errorf("sword after enchant: %+v", sword)
	}
	if _, ok := sword.Stats["luck"]; ok {
		t.Error("unknown stat copied onto the item")
	}
	if runes.Quantity != 1 {
		t.Errorf("runes left = %d, want 1", runes.Quantity)
	}
	if _, err := Enchant(env, p, 0, 1); !errors.Is(err, domain.ErrPrecondition) {
		t.Errorf("no free slot: err = %v, want precondition", err)
	}
}
