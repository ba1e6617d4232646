package domain

import "time"

// SiegeMachine - осадная машина. Бьет свою цель раз в интервал и получает урон сама.
type SiegeMachine struct {
	Base
	Team         string    `json:"team"`
	TargetID     string    `json:"targetId"`
	Stats        Stats     `json:"stats"`
	SelfDamage   float64   `json:"selfDamage"`
	NextAttackAt time.Time `json:"nextAttack"`
}

func NewSiegeMachine(id, team, targetID string, pos Position, rules Rules, now time.Time) *SiegeMachine {
	return &SiegeMachine{
		Base:         Base{ID: id, Name: "Siege Machine", Pos: pos},
		Team:         team,
		TargetID:     targetID,
		Stats:        Stats{HP: rules.SiegeHP, MaxHP: rules.SiegeHP, Dmg: rules.SiegeDamage},
		SelfDamage:   rules.SiegeSelfDamage,
		NextAttackAt: now.Add(rules.SiegeInterval),
	}
}

func (s *SiegeMachine) GetType() string { return EntityTypeSiege }
func (s *SiegeMachine) GetStats() *Stats { return &s.Stats }
