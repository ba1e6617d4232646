package api

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/uhaszYsz/mmomicro/internal/domain"
)

func TestPlayerViews_Sanitized(t *testing.T) {
	p := domain.NewPlayer("p1", "Hero", domain.Stats{HP: 100, MaxHP: 100})
	p.PasswordHash = "$2a$10$secrethashvalue"
	p.Inventory = domain.Inventory{{Name: "Gem", Type: domain.ItemMaterial, Quantity: 3}}
	p.Skills["hunting"] = &domain.Skill{Level: 2}

	own, err := json.Marshal(OwnPlayerView(p))
	if err != nil {
		t.Fatalf("marshal own view: %v", err)
	}
	if strings.Contains(string(own), "secrethashvalue") {
		t.Error("own view leaks the password hash")
	}
	if !strings.Contains(string(own), "Gem") || !strings.Contains(string(own), "hunting") {
		t.Errorf("own view misses private fields: %s", own)
	}

	public, err := json.Marshal(PublicPlayerView(p))
	if err != nil {
		t.Fatalf("marshal public view: %v", err)
	}
	for _, secret := range []string{"secrethashvalue", "Gem", "hunting", "inventory"} {
		if strings.Contains(string(public), secret) {
			t.Errorf("public view contains %q: %s", secret, public)
		}
	}
}

func TestNewObjectView_PersonalStorage(t *testing.T) {
	site := domain.NewConstructionSite("team_a", domain.Position{X: 1, Y: 2}, domain.DefaultRules())
	site.Buildings = []*domain.Building{{
		Name: "Personal Storage",
		Type: domain.BuildingPersonalStorage,
		PersonalStorage: map[string]domain.Inventory{
			"owner": {{Name: "Gem", Quantity: 1}},
		},
	}}

	if v := NewObjectView(site, "owner"); len(v.PersonalStorage) != 1 || v.Type != domain.EntityTypeSite {
		t.Errorf("owner view = %+v", v)
	}
	if v := NewObjectView(site, "stranger"); len(v.PersonalStorage) != 0 {
		t.Errorf("stranger sees personal storage: %+v", v.PersonalStorage)
	}
}
