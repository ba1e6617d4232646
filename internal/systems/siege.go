package systems

import (
	"github.com/sirupsen/logrus"
	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/pkg/logger"
)

// UpdateSiege - удар осадной машины раз в SiegeInterval.
// Машина бьет цель и сама получает SelfDamage. Без живой цели машина разбирается.
func UpdateSiege(env *Env, s *domain.SiegeMachine) bool {
	w := env.World
	if w.IsDestroyed(s.ID) || env.Now.Before(s.NextAttackAt) {
		return false
	}
	s.NextAttackAt = env.Now.Add(w.Rules.SiegeInterval)

	target, _ := w.LiveEntity(s.TargetID).(*domain.ConstructionSite)
	if target == nil || target.Stats.HP <= 0 {
		w.MarkDestroyed(s.ID)
		return true
	}

	target.Stats.TakeDamage(s.Stats.Dmg)
	s.Stats.TakeDamage(s.SelfDamage)
	env.Broadcast(LogInfo, "%s наносит %.0f урона по %s и получает %.0f.", s.ID, s.Stats.Dmg, target.ID, s.SelfDamage)

	if target.Stats.HP <= 0 {
		DestroySite(env, target, s.Name)
	}
	if s.Stats.HP <= 0 {
		w.MarkDestroyed(s.ID)
		logger.Log.WithFields(logrus.Fields{
			"component": "siege_system",
			"siege_id":  s.ID,
			"target_id": s.TargetID,
		}).Info("Siege machine worn out.")
		env.Broadcast(LogInfo, "%s разрушена.", s.ID)
	}
	return true
}
