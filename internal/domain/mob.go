package domain

import (
	"math"
	"time"
)

// Drop - строка таблицы добычи.
type Drop struct {
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type" yaml:"type"`
	Slot        string   `json:"slot,omitempty" yaml:"slot,omitempty"`
	Stats       StatMods `json:"stats,omitempty" yaml:"stats,omitempty"`
	Chance      float64  `json:"chance" yaml:"chance"`
	MinQuantity int      `json:"minQuantity" yaml:"minQuantity"`
	MaxQuantity int      `json:"maxQuantity" yaml:"maxQuantity"`
	Level       int      `json:"level" yaml:"level"`
	Quality     string   `json:"quality" yaml:"quality"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// MobBaseStats - характеристики шаблона на уровне 1.
type MobBaseStats struct {
	HP       float64 `json:"hp" yaml:"hp"`
	Dmg      float64 `json:"dmg" yaml:"dmg"`
	Speed    float64 `json:"speed" yaml:"speed"`
	Accuracy float64 `json:"accuracy,omitempty" yaml:"accuracy,omitempty"`
}

// Mob - монстр. Цикл жизни: жив -> ожидает возрождения -> жив.
type Mob struct {
	Base
	Template   string       `json:"template"`
	Rarity     string       `json:"rarity"`
	Biome      string       `json:"biome"`
	IsBoss     bool         `json:"isBoss,omitempty"`
	Level      int          `json:"level"`
	BaseStats  MobBaseStats `json:"baseStats"`
	Stats      Stats        `json:"stats"`
	Weakness   string       `json:"weakness,omitempty"`
	WeaknessXP int          `json:"weaknessXp,omitempty"`
	Drops      []Drop       `json:"-"`

	Attackers    Attackers `json:"-"`
	NextAttackAt time.Time `json:"-"`
	// RespawnAt нулевое, пока моб жив.
	RespawnAt time.Time `json:"respawnUntil"`
}

func (m *Mob) GetType() string { return EntityTypeMob }
func (m *Mob) GetStats() *Stats { return &m.Stats }
func (m *Mob) AttackerList() *Attackers { return &m.Attackers }
func (m *Mob) IsRespawning() bool { return !m.RespawnAt.IsZero() }
func (m *Mob) IsAlive() bool { return !m.IsRespawning() && m.Stats.HP > 0 }

// Rescale пересчитывает характеристики под текущий уровень: множитель 1 + (level-1)*perLevel.
// Здоровье и урон округляются вниз, текущее здоровье становится полным.
func (m *Mob) Rescale(perLevel, defaultAccuracy float64) {
	mult := 1 + float64(m.Level-1)*perLevel
	acc := m.BaseStats.Accuracy
	if acc <= 0 {
		acc = defaultAccuracy
	}
	m.Stats.MaxHP = math.Floor(m.BaseStats.HP * mult)
	m.Stats.HP = m.Stats.MaxHP
	m.Stats.Dmg = math.Floor(m.BaseStats.Dmg * mult)
	m.Stats.Speed = m.BaseStats.Speed * mult
	m.Stats.Accuracy = acc
}
