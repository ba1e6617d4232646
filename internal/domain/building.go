package domain

import "time"

// Типы зданий
const (
	BuildingStorage         = "storage"
	BuildingPersonalStorage = "personal_storage"
	BuildingCrafting        = "crafting"
	BuildingEnhancement     = "enhancement"
)

// Material - требование по материалу.
type Material struct {
	Name     string `json:"name" yaml:"name"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

// UpgradeTier - требования для перехода здания на уровень Level.
type UpgradeTier struct {
	Level     int        `json:"level" yaml:"level"`
	Materials []Material `json:"materials" yaml:"materials"`
}

// CraftTask - задание очереди крафта. Таймер есть только у головы очереди.
type CraftTask struct {
	ID          string        `json:"id"`
	PlayerID    string        `json:"playerId"`
	PlayerName  string        `json:"playerName"`
	RecipeID    int           `json:"recipeId"`
	RecipeName  string        `json:"recipeName"`
	Duration    time.Duration `json:"duration"`
	EnqueuedAt  time.Time     `json:"enqueuedAt"`
	StartedAt   time.Time     `json:"startTime"`
	CompletesAt time.Time     `json:"completionTime"`

	// Result - копия результата рецепта на момент постановки в очередь.
	Result *Item `json:"-"`
}

// Started - получила ли задача таймер.
func (t *CraftTask) Started() bool { return !t.CompletesAt.IsZero() }

// Building - здание на площадке.
type Building struct {
	Name      string       `json:"name"`
	Type      string       `json:"type"`
	Level     int          `json:"level"`
	Slots     int          `json:"slots"`
	RecipeIDs []int        `json:"recipeIds,omitempty"`
	Queue     []*CraftTask `json:"queue,omitempty"`

	// Donations - вклад в активное требование NextTier. nil на максимальном уровне.
	NextTier  *UpgradeTier   `json:"nextTier,omitempty"`
	Donations map[string]int `json:"donations,omitempty"`

	Storage         Inventory            `json:"inventory,omitempty"`
	PersonalStorage map[string]Inventory `json:"-"`
}

// HasRecipe - умеет ли здание выполнять рецепт.
func (b *Building) HasRecipe(id int) bool {
	for _, r := range b.RecipeIDs {
		if r == id {
			return true
		}
	}
	return false
}

// SetNextTier делает tier активным требованием и обнуляет вклад.
func (b *Building) SetNextTier(tier *UpgradeTier) {
	b.NextTier = tier
	if tier == nil {
		b.Donations = nil
		return
	}
	b.Donations = make(map[string]int, len(tier.Materials))
	for _, m := range tier.Materials {
		b.Donations[m.Name] = 0
	}
}

// Required возвращает требуемое количество материала в активном требовании.
func (b *Building) Required(name string) (int, bool) {
	if b.NextTier == nil {
		return 0, false
	}
	for _, m := range b.NextTier.Materials {
		if m.Name == name {
			return m.Quantity, true
		}
	}
	return 0, false
}

// RequirementsMet - собраны ли все материалы активного требования.
func (b *Building) RequirementsMet() bool {
	if b.NextTier == nil {
		return false
	}
	for _, m := range b.NextTier.Materials {
		if b.Donations[m.Name] < m.Quantity {
			return false
		}
	}
	return true
}
