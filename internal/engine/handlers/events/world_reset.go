// Package events - операции над миром целиком, которые запускаются побочными эффектами команд.
package events

import (
	"github.com/sirupsen/logrus"
	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/internal/systems"
	"github.com/uhaszYsz/mmomicro/pkg/dungeon"
	"github.com/uhaszYsz/mmomicro/pkg/logger"
)

// ResetMobs удаляет всех мобов и заселяет карту заново по текущему снапшоту контента.
// Игроки, бившие мобов, выходят из боя; PvP не затрагивается.
func ResetMobs(env *systems.Env) (removed, spawned int) {
	w := env.World

	ids := make(map[string]bool)
	for _, m := range w.Mobs() {
		ids[m.ID] = true
	}
	for _, p := range w.Players {
		if ids[p.Attacking] {
			systems.StopCombat(w, p)
		}
		for id := range p.DamageDealt {
			if ids[id] {
				delete(p.DamageDealt, id)
			}
		}
	}
	w.RemoveObjects(ids)

	spawned = dungeon.Populate(w, env.Content, env.Rng)

	logger.Log.WithFields(logrus.Fields{
		"component": "world_reset",
		"removed":   len(ids),
		"spawned":   spawned,
		"content":   env.Content.Version,
	}).Info("Mobs reset.")
	env.Broadcast(systems.LogInfo, "Мир обновился: монстры появились заново.")
	return len(ids), spawned
}

// RegenerateMap заново размечает биомы и пересоздает мобов.
func RegenerateMap(env *systems.Env) (removed, spawned int) {
	dungeon.GenerateBiomes(env.World, env.Content.Biomes, env.Rng)
	return ResetMobs(env)
}

// RefreshMobDrops переносит таблицы добычи из шаблонов на живущих мобов.
// Используется, когда изменилась только добыча и пересоздавать мобов не нужно.
func RefreshMobDrops(env *systems.Env) int {
	n := 0
	for _, m := range env.World.Mobs() {
		if tmpl, ok := env.Content.Enemy(m.Template); ok {
			m.Drops = append([]domain.Drop(nil), tmpl.Drops...)
			n++
		}
	}
	return n
}
