package systems

import (
	"math"

	"github.com/uhaszYsz/mmomicro/internal/domain"
)

// SkillHP - навык, повышающий максимум здоровья на 1% за уровень.
const SkillHP = "hp"

// RecalculateStats пересобирает производные характеристики:
// база + экипировка, затем навык здоровья, затем процентные баффы.
// Текущие hp/mp/stamina сохраняются и только ограничиваются новыми максимумами.
func RecalculateStats(p *domain.Player) {
	hp, mp, stamina := p.Stats.HP, p.Stats.MP, p.Stats.Stamina

	s := p.BaseStats
	for _, slot := range domain.EquipmentSlots {
		if it := p.Equipment[slot]; it != nil {
			s.Apply(it.Stats)
		}
	}

	if lvl, ok := p.SkillLevel(SkillHP); ok {
		s.MaxHP = math.Floor(s.MaxHP * (1 + float64(lvl)/100))
	}

	for _, b := range p.Buffs {
		cur := s.Get(b.Stat)
		s.Set(b.Stat, cur+cur*b.Percentage/100)
	}

	s.HP, s.MP, s.Stamina = hp, mp, stamina
	s.ClampResources()
	p.Stats = s
}

// ExpireBuffs снимает истекшие баффы и пересчитывает характеристики.
func ExpireBuffs(env *Env, p *domain.Player) bool {
	kept := p.Buffs[:0]
	for _, b := range p.Buffs {
		if b.ExpiresAt.After(env.Now) {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(p.Buffs) {
		return false
	}
	for i := len(kept); i < len(p.Buffs); i++ {
		p.Buffs[i] = domain.Buff{}
	}
	p.Buffs = kept
	RecalculateStats(p)
	env.Tell(p.ID, LogInfo, "Действие баффа закончилось.")
	return true
}
