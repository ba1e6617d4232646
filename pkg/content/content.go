// Package content - статические таблицы игры (мобы, здания, рецепты, стартовый набор).
// Снапшот неизменяем: правки админки создают новый снапшот с новой версией.
package content

import (
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/uhaszYsz/mmomicro/internal/domain"
	"gopkg.in/yaml.v3"
	"lukechampine.com/blake3"
)

// BiomeAll - шаблон моба, который встречается в любом биоме.
const BiomeAll = "ALL"

//go:embed default.yaml
var defaultTables []byte

type Biome struct {
	Key         string `yaml:"key" json:"key"`
	Name        string `yaml:"name" json:"name"`
	Color       string `yaml:"color" json:"color"`
	Description string `yaml:"description" json:"description"`
}

type EnemyTemplate struct {
	Name       string              `yaml:"name" json:"name"`
	Rarity     int                 `yaml:"rarity" json:"rarity"`
	BaseStats  domain.MobBaseStats `yaml:"baseStats" json:"baseStats"`
	Weakness   string              `yaml:"weakness" json:"weakness"`
	WeaknessXP int                 `yaml:"weaknessXp" json:"weaknessXp"`
	IsBoss     bool                `yaml:"isBoss" json:"isBoss"`
	Biome      string              `yaml:"biome" json:"biome"`
	Drops      []domain.Drop       `yaml:"drops" json:"drops"`
}

type BuildingTemplate struct {
	Name        string               `yaml:"name" json:"name"`
	Type        string               `yaml:"type" json:"type"`
	Description string               `yaml:"description" json:"description"`
	Bricks      int                  `yaml:"bricks" json:"bricks"`
	BaseSlots   int                  `yaml:"baseSlots" json:"baseSlots"`
	RecipeIDs   []int                `yaml:"recipeIds" json:"recipeIds"`
	Upgrades    []domain.UpgradeTier `yaml:"upgrades" json:"upgrades"`
}

type Recipe struct {
	ID             int               `yaml:"id" json:"id"`
	Name           string            `yaml:"name" json:"name"`
	Building       string            `yaml:"building" json:"building"`
	Materials      []domain.Material `yaml:"materials" json:"materials"`
	Result         domain.Item       `yaml:"result" json:"result"`
	CraftingTimeMs int64             `yaml:"craftingTimeMs" json:"craftingTime"`
}

func (r *Recipe) CraftingTime() time.Duration {
	return time.Duration(r.CraftingTimeMs) * time.Millisecond
}

type PlayerDefaults struct {
	BaseStats domain.Stats  `yaml:"baseStats" json:"baseStats"`
	Skills    []string      `yaml:"skills" json:"skills"`
	Inventory []domain.Item `yaml:"inventory" json:"inventory"`
}

// Tables - сериализуемое содержимое снапшота.
type Tables struct {
	Player    PlayerDefaults     `yaml:"player" json:"player"`
	Biomes    []Biome            `yaml:"biomes" json:"biomes"`
	Enemies   []EnemyTemplate    `yaml:"enemies" json:"enemies"`
	Buildings []BuildingTemplate `yaml:"buildings" json:"buildings"`
	Recipes   []Recipe           `yaml:"recipes" json:"recipes"`
}

// Snapshot - проиндексированные таблицы с версией (отпечаток blake3 от канонического YAML).
type Snapshot struct {
	Tables
	Version string

	enemies   map[string]*EnemyTemplate
	buildings map[string]*BuildingTemplate
	recipes   map[int]*Recipe
}

// Default возвращает встроенный набор таблиц.
func Default() (*Snapshot, error) {
	return Parse(defaultTables)
}

// Load читает таблицы из YAML-файла.
func Load(path string) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func Parse(raw []byte) (*Snapshot, error) {
	var t Tables
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("content yaml: %w", err)
	}
	return New(t)
}

// New проверяет таблицы и строит индексированный снапшот.
func New(t Tables) (*Snapshot, error) {
	s := &Snapshot{
		Tables:    t,
		enemies:   make(map[string]*EnemyTemplate, len(t.Enemies)),
		buildings: make(map[string]*BuildingTemplate, len(t.Buildings)),
		recipes:   make(map[int]*Recipe, len(t.Recipes)),
	}
	biomes := map[string]bool{BiomeAll: true}
	for _, b := range t.Biomes {
		biomes[b.Key] = true
	}
	for i := range s.Enemies {
		e := &s.Enemies[i]
		if _, dup := s.enemies[e.Name]; dup {
			return nil, fmt.Errorf("duplicate enemy %q", e.Name)
		}
		if !biomes[e.Biome] {
			return nil, fmt.Errorf("enemy %q: unknown biome %q", e.Name, e.Biome)
		}
		s.enemies[e.Name] = e
	}
	for i := range s.Buildings {
		b := &s.Buildings[i]
		switch b.Type {
		case domain.BuildingStorage, domain.BuildingPersonalStorage, domain.BuildingCrafting, domain.BuildingEnhancement:
		default:
			return nil, fmt.Errorf("building %q: unknown type %q", b.Name, b.Type)
		}
		s.buildings[b.Name] = b
	}
	for i := range s.Recipes {
		r := &s.Recipes[i]
		if _, dup := s.recipes[r.ID]; dup {
			return nil, fmt.Errorf("duplicate recipe id %d", r.ID)
		}
		s.recipes[r.ID] = r
	}

	canonical, err := yaml.Marshal(&s.Tables)
	if err != nil {
		return nil, fmt.Errorf("content fingerprint: %w", err)
	}
	sum := blake3.Sum256(canonical)
	s.Version = hex.EncodeToString(sum[:8])
	return s, nil
}

// CloneTables возвращает глубокую копию таблиц для редактирования.
func (s *Snapshot) CloneTables() (Tables, error) {
	var t Tables
	raw, err := yaml.Marshal(&s.Tables)
	if err != nil {
		return t, err
	}
	err = yaml.Unmarshal(raw, &t)
	return t, err
}

// Marshal возвращает YAML-представление таблиц.
func (s *Snapshot) Marshal() ([]byte, error) {
	return yaml.Marshal(&s.Tables)
}

func (s *Snapshot) Enemy(name string) (*EnemyTemplate, bool) {
	e, ok := s.enemies[name]
	return e, ok
}

// EnemiesForBiome - шаблоны биома и общие (ALL), боссы по запросу.
func (s *Snapshot) EnemiesForBiome(biome string, includeBosses bool) []*EnemyTemplate {
	var out []*EnemyTemplate
	for i := range s.Enemies {
		e := &s.Enemies[i]
		if (e.Biome == biome || e.Biome == BiomeAll) && (includeBosses || !e.IsBoss) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Snapshot) Building(name string) (*BuildingTemplate, bool) {
	b, ok := s.buildings[name]
	return b, ok
}

func (s *Snapshot) Recipe(id int) (*Recipe, bool) {
	r, ok := s.recipes[id]
	return r, ok
}

// NextTier возвращает требования для перехода здания с уровня level на level+1 или nil.
func (s *Snapshot) NextTier(building string, level int) *domain.UpgradeTier {
	b, ok := s.buildings[building]
	if !ok {
		return nil
	}
	for i := range b.Upgrades {
		if b.Upgrades[i].Level == level+1 {
			tier := b.Upgrades[i]
			tier.Materials = append([]domain.Material(nil), tier.Materials...)
			return &tier
		}
	}
	return nil
}

// StartingInventory возвращает новый экземпляр стартового набора.
func (s *Snapshot) StartingInventory() domain.Inventory {
	inv := make(domain.Inventory, 0, len(s.Player.Inventory))
	for i := range s.Player.Inventory {
		inv = append(inv, s.Player.Inventory[i].Clone())
	}
	return inv
}

// StartingSkills возвращает навыки первого уровня.
func (s *Snapshot) StartingSkills() map[string]*domain.Skill {
	skills := make(map[string]*domain.Skill, len(s.Player.Skills))
	for _, name := range s.Player.Skills {
		skills[name] = &domain.Skill{Level: 1}
	}
	return skills
}
