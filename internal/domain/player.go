package domain

import "time"

// Skill - уровень и опыт навыка.
type Skill struct {
	Level int `json:"level"`
	Exp   int `json:"exp"`
}

// Buff - активный временный бонус.
type Buff struct {
	Stat       string    `json:"stat"`
	Percentage float64   `json:"percentage"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// Player - персонаж игрока (или бота).
type Player struct {
	Base
	PasswordHash string `json:"-"`
	Team         string `json:"team"`
	IsOnline     bool   `json:"isOnline"`
	IsDead       bool   `json:"isDead"`
	IsBot        bool   `json:"isBot,omitempty"`
	IsAdmin      bool   `json:"isAdmin,omitempty"`

	BaseStats Stats             `json:"baseStats"`
	Stats     Stats             `json:"stats"`
	Inventory Inventory         `json:"inventory"`
	Equipment map[string]*Item  `json:"equipment"`
	Skills    map[string]*Skill `json:"skills"`
	Buffs     []Buff            `json:"buffs"`

	// Цель боя: Attacking (моб или площадка) и AttackingPlayer никогда не заданы одновременно.
	Attacking       string    `json:"attacking,omitempty"`
	AttackingPlayer string    `json:"attackingPlayer,omitempty"`
	NextAttackAt    time.Time `json:"nextAttack"`

	// DamageDealt - накопленный урон по каждому мобу отдельно (для дележа добычи).
	DamageDealt map[string]float64 `json:"-"`
}

// NewPlayer создает игрока с базовыми характеристиками и пустой экипировкой.
func NewPlayer(id, name string, base Stats) *Player {
	p := &Player{
		Base:        Base{ID: id, Name: name},
		Team:        DefaultTeamID,
		BaseStats:   base,
		Stats:       base,
		Equipment:   make(map[string]*Item, len(EquipmentSlots)),
		Skills:      make(map[string]*Skill),
		DamageDealt: make(map[string]float64),
	}
	for _, slot := range EquipmentSlots {
		p.Equipment[slot] = nil
	}
	return p
}

func (p *Player) GetType() string  { return EntityTypePlayer }
func (p *Player) GetStats() *Stats { return &p.Stats }

// InCombat - задана ли хоть одна цель.
func (p *Player) InCombat() bool {
	return p.Attacking != "" || p.AttackingPlayer != ""
}

// SkillLevel возвращает уровень навыка и признак его наличия.
func (p *Player) SkillLevel(name string) (int, bool) {
	s, ok := p.Skills[name]
	if !ok || s == nil {
		return 0, false
	}
	return s.Level, true
}

func (p *Player) Bricks(brick string) int {
	return p.Inventory.Count(brick)
}
