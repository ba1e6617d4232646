package api

import (
	"time"

	"github.com/uhaszYsz/mmomicro/internal/domain"
)

func unixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// PublicPlayerView - то, что видят о игроке другие: без инвентаря, навыков и хеша пароля.
func PublicPlayerView(p *domain.Player) PlayerView {
	return PlayerView{
		ID:        p.ID,
		Name:      p.Name,
		Team:      p.Team,
		Pos:       p.Pos,
		IsOnline:  p.IsOnline,
		IsDead:    p.IsDead,
		IsBot:     p.IsBot,
		Stats:     p.Stats,
		Equipment: p.Equipment,
	}
}

// OwnPlayerView - полный профиль для самого игрока. Хеш пароля не покидает сервер.
func OwnPlayerView(p *domain.Player) PlayerView {
	v := PublicPlayerView(p)
	base := p.BaseStats
	v.BaseStats = &base
	v.Inventory = p.Inventory
	v.Skills = p.Skills
	v.Buffs = p.Buffs
	v.Attacking = p.Attacking
	v.AttackingPlayer = p.AttackingPlayer
	v.NextAttackAt = unixMilli(p.NextAttackAt)
	v.IsAdmin = p.IsAdmin
	return v
}

// NewObjectView собирает DTO объекта клетки. viewerID нужен для личного хранилища.
func NewObjectView(e domain.Entity, viewerID string) ObjectView {
	v := ObjectView{
		ID:    e.GetID(),
		Type:  e.GetType(),
		Name:  e.GetName(),
		Pos:   e.GetPos(),
		Stats: *e.GetStats(),
	}
	switch o := e.(type) {
	case *domain.Mob:
		v.Level = o.Level
		v.Template = o.Template
		v.Biome = o.Biome
		v.IsBoss = o.IsBoss
		v.Weakness = o.Weakness
		v.Attackers = o.Attackers.Snapshot()
		v.RespawnUntil = unixMilli(o.RespawnAt)
	case *domain.ConstructionSite:
		v.Level = o.Level
		v.Team = o.Team
		v.Attackers = o.Attackers.Snapshot()
		v.Bricks = o.Bricks
		v.RequiredBricks = o.RequiredBricks
		v.CompletionTime = unixMilli(o.CompleteAt)
		v.Buildings = o.Buildings
		if b := o.FindBuildingType(domain.BuildingPersonalStorage); b != nil {
			v.PersonalStorage = b.PersonalStorage[viewerID]
		}
	case *domain.SiegeMachine:
		v.Team = o.Team
		v.TargetID = o.TargetID
		v.NextAttack = unixMilli(o.NextAttackAt)
	}
	return v
}
