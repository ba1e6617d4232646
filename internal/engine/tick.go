package engine

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/internal/systems"
	"github.com/uhaszYsz/mmomicro/pkg/logger"
)

// Tick - один шаг симуляции. Фазы идут в фиксированном порядке:
//
//	a. игроки: истекшие баффы, перепроверка цели, удар;
//	b. объекты: мобы (возрождение, ответный удар), площадки, осадные машины;
//	c. очереди крафта;
//	d. боты, чей срок наступил;
//	e. удаление разрушенных объектов;
//	f. рассылка состояния, если что-то изменилось, иначе только новых логов.
//
// Возвращает true, если состояние было разослано.
func (i *Instance) Tick(now time.Time) bool {
	started := time.Now()
	i.CurrentTick++

	env := i.newEnv(now)
	changed := i.tickPlayers(env)
	changed = i.tickObjects(env) || changed
	changed = i.tickCrafting(env) || changed
	i.dispatchNotices(env.TakeNotices(), now)

	changed = i.processBotTurns(now) || changed

	if n := i.World.FlushDestroyed(); n > 0 {
		logger.Log.WithFields(logrus.Fields{
			"component": "tick",
			"tick":      i.CurrentTick,
			"removed":   n,
		}).Debug("Destroyed objects removed")
		changed = true
	}

	published := false
	switch {
	case changed || i.dirty:
		i.publishUpdate(now)
		published = true
	case i.hasPendingLogs():
		i.publishLogs(now)
		published = true
	}
	i.flushJournal()

	if elapsed := time.Since(started); elapsed > i.Interval {
		logger.Log.WithFields(logrus.Fields{
			"component": "tick",
			"tick":      i.CurrentTick,
			"elapsed":   elapsed,
			"interval":  i.Interval,
		}).Warn("Tick took longer than the interval")
	}
	return published
}

// Фаза a
func (i *Instance) tickPlayers(env *systems.Env) bool {
	changed := false
	for _, p := range i.World.Players {
		if systems.ExpireBuffs(env, p) {
			changed = true
		}
		if !p.IsDead && systems.UpdatePlayerCombat(env, p) {
			changed = true
		}
	}
	return changed
}

// Фаза b. Объекты, помеченные к удалению раньше в этом тике, пропускаются.
func (i *Instance) tickObjects(env *systems.Env) bool {
	w := i.World
	changed := false
	for _, e := range w.Objects {
		if w.IsDestroyed(e.GetID()) {
			continue
		}
		switch o := e.(type) {
		case *domain.Mob:
			if systems.RespawnMob(env, o) || systems.UpdateMobCombat(env, o) {
				changed = true
			}
		case *domain.ConstructionSite:
			if o.Stats.HP <= 0 {
				systems.DestroySite(env, o, "Время")
				changed = true
				continue
			}
			if systems.CompleteConstruction(env, o) {
				changed = true
			}
		case *domain.SiegeMachine:
			if systems.UpdateSiege(env, o) {
				changed = true
			}
		}
	}
	return changed
}

// Фаза c
func (i *Instance) tickCrafting(env *systems.Env) bool {
	w := i.World
	changed := false
	for _, e := range w.Objects {
		site, ok := e.(*domain.ConstructionSite)
		if !ok || w.IsDestroyed(site.ID) {
			continue
		}
		for _, b := range site.Buildings {
			if b.Type == domain.BuildingCrafting && systems.ProcessQueue(env, b) {
				changed = true
			}
		}
	}
	return changed
}
