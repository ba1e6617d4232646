package systems

import (
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/pkg/logger"
	"github.com/uhaszYsz/mmomicro/pkg/utils"
)

// AttackResult - исход одной попытки атаки.
type AttackResult struct {
	Missed   bool
	Dodged   bool
	Critical bool
	Damage   float64
}

// RollAttack разыгрывает попытку: точность, уклонение (только если canDodge), урон.
// Состояние не меняет.
func RollAttack(rng *rand.Rand, rules domain.Rules, attacker, defender *domain.Stats, canDodge bool, bonus float64) AttackResult {
	if utils.Roll(rng) > attacker.Accuracy {
		return AttackResult{Missed: true}
	}
	if canDodge && utils.Roll(rng) < defender.Dodge {
		return AttackResult{Dodged: true}
	}
	dmg, crit := CalculateDamage(rng, rules, attacker, defender, bonus)
	return AttackResult{Critical: crit, Damage: dmg}
}

// CalculateDamage - базовый урон, крит, защита (не выше DefenseCap процентов) и множитель bonus.
func CalculateDamage(rng *rand.Rand, rules domain.Rules, attacker, defender *domain.Stats, bonus float64) (float64, bool) {
	dmg := attacker.Dmg
	crit := utils.Roll(rng) < attacker.Critical
	if crit {
		dmg *= rules.CriticalMultiplier
	}
	if defender.Def > 0 {
		dmg *= 1 - math.Min(defender.Def, rules.DefenseCap)/100
	}
	return dmg * bonus, crit
}

// WeaknessBonus - множитель урона игрока по мобу со слабостью к навыку игрока.
func WeaknessBonus(rules domain.Rules, p *domain.Player, m *domain.Mob) float64 {
	if m.Weakness == "" {
		return 1
	}
	lvl, ok := p.SkillLevel(m.Weakness)
	if !ok {
		return 1
	}
	return 1 + float64(lvl)*rules.SkillBonusPerLevel
}

// StartCombat назначает игроку цель в его клетке.
// Все проверки выполняются до StopCombat: при отказе прежний бой не прерывается.
func StartCombat(env *Env, p *domain.Player, targetID string) (string, error) {
	w := env.World
	if p.IsDead {
		return "", domain.Precondition("Вы мертвы.")
	}
	target := w.LiveEntity(targetID)
	if target == nil || target.GetPos() != p.Pos {
		return "", domain.NotFound("Цель не найдена в этой клетке.")
	}
	if target.GetID() == p.ID {
		return "", domain.Validation("Нельзя атаковать самого себя.")
	}

	switch t := target.(type) {
	case *domain.Player:
		if t.Team == p.Team {
			return "", domain.Precondition("Нельзя атаковать союзника.")
		}
		if t.IsDead {
			return "", domain.Precondition("%s уже мертв.", t.Name)
		}
		if !p.Stats.HasStamina(w.Rules.StaminaCostPerAttack) {
			return "", domain.Precondition("Слишком мало сил для атаки на игрока.")
		}
		StopCombat(w, p)
		p.Stats.SpendStamina(w.Rules.StaminaCostPerAttack)
		p.AttackingPlayer = t.ID
		p.NextAttackAt = env.Now.Add(domain.AttackCooldown(p.Stats.Speed))
		env.Broadcast(LogCombat, "%s нападает на %s!", p.Name, t.Name)
		return "", nil

	case *domain.Mob:
		if t.IsRespawning() {
			return "", domain.Precondition("Нельзя атаковать возрождающегося противника.")
		}
		return joinAttack(env, p, t)

	case *domain.ConstructionSite:
		if t.Team == p.Team {
			return "", domain.Precondition("Нельзя атаковать площадку своей команды.")
		}
		return joinAttack(env, p, t)
	}
	return "", domain.Precondition("Эту цель нельзя атаковать.")
}

func joinAttack(env *Env, p *domain.Player, target domain.Attackable) (string, error) {
	list := target.AttackerList()
	if list.Len() >= list.Max && !list.Has(p.ID) {
		return "", domain.Precondition("%s уже окружен атакующими.", target.GetName())
	}
	StopCombat(env.World, p)
	list.Add(p.ID)
	p.Attacking = target.GetID()
	p.NextAttackAt = env.Now.Add(domain.AttackCooldown(p.Stats.Speed))
	env.Broadcast(LogCombat, "%s вступает в бой с %s.", p.Name, target.GetName())
	return "", nil
}

// StopCombat снимает цель игрока и убирает его из списка атакующих.
// Для игрока вне боя ничего не делает. Возвращает true, если что-то изменилось.
func StopCombat(w *domain.World, p *domain.Player) bool {
	changed := false
	if p.Attacking != "" {
		if t, ok := w.GetEntity(p.Attacking).(domain.Attackable); ok {
			t.AttackerList().Remove(p.ID)
		}
		p.Attacking = ""
		changed = true
	}
	if p.AttackingPlayer != "" {
		p.AttackingPlayer = ""
		changed = true
	}
	return changed
}

// UpdatePlayerCombat - шаг фазы игроков: перепроверка цели и удар по готовности.
// Цель, которая исчезла, погибла или ушла из клетки, снимается.
func UpdatePlayerCombat(env *Env, p *domain.Player) bool {
	targetID := p.AttackingPlayer
	if targetID == "" {
		targetID = p.Attacking
	}
	if targetID == "" {
		return false
	}

	target := env.World.LiveEntity(targetID)
	if !isAlive(target) || target.GetPos() != p.Pos {
		StopCombat(env.World, p)
		return true
	}
	if env.Now.Before(p.NextAttackAt) {
		return false
	}
	PlayerAttack(env, p, target)
	return true
}

func isAlive(e domain.Entity) bool {
	switch t := e.(type) {
	case nil:
		return false
	case *domain.Player:
		return !t.IsDead && t.Stats.HP > 0
	case *domain.Mob:
		return t.IsAlive()
	default:
		return e.GetStats().HP > 0
	}
}

// PlayerAttack разрешает одну атаку игрока и каскад поражения цели.
func PlayerAttack(env *Env, p *domain.Player, target domain.Entity) {
	rules := env.Rules()
	bonus := 1.0
	mob, isMob := target.(*domain.Mob)
	if isMob {
		bonus = WeaknessBonus(rules, p, mob)
	}
	_, isPlayer := target.(*domain.Player)

	res := RollAttack(env.Rng, rules, &p.Stats, target.GetStats(), isPlayer, bonus)
	p.NextAttackAt = env.Now.Add(domain.AttackCooldown(p.Stats.Speed))

	combatLogger := logger.Log.WithFields(logrus.Fields{
		"component":     "combat_system",
		"attacker_id":   p.ID,
		"attacker_name": p.Name,
		"target_id":     target.GetID(),
		"target_name":   target.GetName(),
	})

	switch {
	case res.Missed:
		combatLogger.Debug("Attack missed.")
		env.Broadcast(LogCombat, "%s промахивается по %s.", p.Name, target.GetName())
		return
	case res.Dodged:
		combatLogger.Debug("Attack dodged.")
		env.Broadcast(LogCombat, "%s уклоняется от атаки %s.", target.GetName(), p.Name)
		return
	}

	stats := target.GetStats()
	hpBefore := stats.HP
	died := stats.TakeDamage(res.Damage)
	if isMob {
		p.DamageDealt[mob.ID] += res.Damage
	}

	combatLogger.WithFields(logrus.Fields{
		"damage":      res.Damage,
		"critical":    res.Critical,
		"bonus":       bonus,
		"hp_before":   hpBefore,
		"hp_after":    stats.HP,
		"target_died": died,
	}).Debug("Attack resolved.")
	env.Broadcast(LogCombat, "%s наносит %.1f урона по %s.", p.Name, res.Damage, target.GetName())

	if !died {
		return
	}
	switch t := target.(type) {
	case *domain.Mob:
		DefeatMob(env, t, p.Name)
	case *domain.Player:
		DefeatPlayer(env, t, p.Name)
	case *domain.ConstructionSite:
		DestroySite(env, t, p.Name)
	}
}

// UpdateMobCombat - ответный удар моба по одному случайному атакующему, если кулдаун истек.
// Урон моба не снижается защитой игрока.
func UpdateMobCombat(env *Env, m *domain.Mob) bool {
	if m.Attackers.Len() == 0 || !m.IsAlive() || m.Stats.Dmg <= 0 || env.Now.Before(m.NextAttackAt) {
		return false
	}
	ids := m.Attackers.IDs
	victim := env.World.Player(ids[env.Rng.Intn(len(ids))])

	if victim != nil && !victim.IsDead {
		switch {
		case utils.Roll(env.Rng) > m.Stats.Accuracy:
			env.Broadcast(LogCombat, "%s промахивается по %s.", m.Name, victim.Name)
		case utils.Roll(env.Rng) < victim.Stats.Dodge:
			env.Broadcast(LogCombat, "%s уклоняется от атаки %s.", victim.Name, m.Name)
		default:
			died := victim.Stats.TakeDamage(m.Stats.Dmg)
			env.Broadcast(LogCombat, "%s наносит %.0f урона по %s.", m.Name, m.Stats.Dmg, victim.Name)
			if died {
				DefeatPlayer(env, victim, m.Name)
			}
		}
	}
	m.NextAttackAt = env.Now.Add(domain.AttackCooldown(m.Stats.Speed))
	return true
}

// DefeatPlayer - игрок погибает и выходит из боя.
func DefeatPlayer(env *Env, p *domain.Player, killer string) {
	p.IsDead = true
	p.Stats.HP = 0
	StopCombat(env.World, p)
	logger.Log.WithFields(logrus.Fields{
		"component": "combat_system",
		"player_id": p.ID,
		"killer":    killer,
	}).Info("Player defeated.")
	env.Broadcast(LogCombat, "%s побеждает %s!", killer, p.Name)
}

// DefeatMob - добыча и опыт слабости атакующим, повышение уровня и таймер возрождения.
func DefeatMob(env *Env, m *domain.Mob, killer string) {
	w := env.World
	attackers := m.Attackers.Snapshot()

	DistributeDrops(env, m, attackers)

	if m.Weakness != "" && m.WeaknessXP > 0 {
		for _, id := range attackers {
			p := w.Player(id)
			if p == nil {
				continue
			}
			if skill, ok := p.Skills[m.Weakness]; ok && skill != nil {
				skill.Exp += m.WeaknessXP
				env.Tell(p.ID, LogInfo, "Вы получаете %d опыта навыка %s.", m.WeaknessXP, m.Weakness)
			}
		}
	}

	m.Level++
	m.Stats.HP = 0
	m.RespawnAt = env.Now.Add(w.Rules.MobRespawnDelay)
	m.Attackers.Clear()
	m.NextAttackAt = env.Now

	for _, id := range attackers {
		if p := w.Player(id); p != nil {
			StopCombat(w, p)
		}
	}

	bossText := ""
	if m.IsBoss {
		bossText = " (БОСС)"
	}
	logger.Log.WithFields(logrus.Fields{
		"component": "combat_system",
		"mob_id":    m.ID,
		"level":     m.Level,
		"attackers": len(attackers),
	}).Info("Mob defeated.")
	env.Broadcast(LogCombat, "%s побеждает %s%s!", killer, m.Name, bossText)
}

// RespawnMob возвращает моба к жизни, когда истек таймер возрождения.
// Характеристики пересчитываются под новый уровень.
func RespawnMob(env *Env, m *domain.Mob) bool {
	if !m.IsRespawning() || env.Now.Before(m.RespawnAt) {
		return false
	}
	m.RespawnAt = time.Time{}
	m.Rescale(env.World.Rules.MobScalingPerLevel, env.World.Rules.MobDefaultAccuracy)
	m.NextAttackAt = env.Now
	env.Broadcast(LogInfo, "%s (ур. %d) возрождается в %s.", m.Name, m.Level, m.Pos)
	return true
}

// DestroySite помечает площадку и все нацеленные на нее осадные машины к удалению.
func DestroySite(env *Env, s *domain.ConstructionSite, by string) {
	w := env.World
	if w.IsDestroyed(s.ID) {
		return
	}
	w.MarkDestroyed(s.ID)
	for _, siege := range w.SiegesTargeting(s.ID) {
		w.MarkDestroyed(siege.ID)
	}
	for _, id := range s.Attackers.Snapshot() {
		if p := w.Player(id); p != nil {
			StopCombat(w, p)
		}
	}
	logger.Log.WithFields(logrus.Fields{
		"component": "construction_system",
		"site_id":   s.ID,
		"by":        by,
	}).Info("Construction site destroyed.")
	env.Broadcast(LogInfo, "%s разрушает площадку %s!", by, s.ID)
}
