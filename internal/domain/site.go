package domain

import (
	"fmt"
	"time"
)

// ConstructionSite - командная строительная площадка. Уничтожается при нулевой прочности.
type ConstructionSite struct {
	Base
	Team           string      `json:"team"`
	Level          int         `json:"level"`
	Stats          Stats       `json:"stats"`
	Bricks         int         `json:"bricks"`
	RequiredBricks int         `json:"requiredBricks"`
	Buildings      []*Building `json:"buildings"`

	// CompleteAt нулевое, пока улучшение не запущено.
	CompleteAt time.Time `json:"completionTime"`

	Attackers Attackers `json:"-"`
}

// SiteID - ID площадки детерминирован: одна площадка на команду и клетку.
func SiteID(team string, pos Position) string {
	return fmt.Sprintf("site_t%s_%d_%d", team, pos.X, pos.Y)
}

// NewConstructionSite создает площадку первого уровня.
func NewConstructionSite(team string, pos Position, rules Rules) *ConstructionSite {
	hp := rules.SiteMaxHP(1)
	return &ConstructionSite{
		Base:           Base{ID: SiteID(team, pos), Name: "Construction Site", Pos: pos},
		Team:           team,
		Level:          1,
		Stats:          Stats{HP: hp, MaxHP: hp},
		RequiredBricks: rules.RequiredBricks(1),
		Attackers:      NewAttackers(rules.MaxAttackers),
	}
}

func (s *ConstructionSite) GetType() string { return EntityTypeSite }
func (s *ConstructionSite) GetStats() *Stats { return &s.Stats }
func (s *ConstructionSite) AttackerList() *Attackers { return &s.Attackers }
func (s *ConstructionSite) IsUpgrading() bool { return !s.CompleteAt.IsZero() }

// FindBuildingType возвращает первое здание заданного типа или nil.
func (s *ConstructionSite) FindBuildingType(kind string) *Building {
	for _, b := range s.Buildings {
		if b.Type == kind {
			return b
		}
	}
	return nil
}

// BuildingAt возвращает здание по индексу или nil.
func (s *ConstructionSite) BuildingAt(idx int) *Building {
	if idx < 0 || idx >= len(s.Buildings) {
		return nil
	}
	return s.Buildings[idx]
}
