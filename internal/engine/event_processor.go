package engine

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/internal/engine/handlers"
	"github.com/uhaszYsz/mmomicro/internal/engine/handlers/events"
	"github.com/uhaszYsz/mmomicro/pkg/content"
	"github.com/uhaszYsz/mmomicro/pkg/logger"
)

// processEvent - является точкой входа для обработки побочных эффектов, возвращенных хендлерами.
// actor равен nil для админских команд.
func (i *Instance) processEvent(actor *domain.Player, result handlers.Result, now time.Time) {
	if result.Content != nil {
		i.swapContent(result.Content, now)
	}

	switch result.Event {
	case domain.EventNone:
	case domain.EventTeamsChanged:
		i.staticRevision++
		i.broadcastStatic(now)
	case domain.EventContentChanged:
		i.broadcastStatic(now)
	case domain.EventWorldReset:
		i.staticRevision++
		i.broadcastStatic(now)
		i.publishUpdate(now)
	case domain.EventResync:
		if actor != nil {
			i.sendStatic(actor.ID, now)
			i.sendUpdate(actor, now)
		}
	default:
		logger.Log.WithField("event", result.Event.String()).Warn("Unknown event type")
	}
}

// swapContent подменяет снапшот контента. Изменение шаблонов мобов пересоздает мобов,
// изменение только добычи переносится на живых мобов без пересоздания.
func (i *Instance) swapContent(next *content.Snapshot, now time.Time) {
	prev := i.Content
	i.Content = next

	env := i.newEnv(now)
	fields := logrus.Fields{
		"component": "content",
		"from":      prev.Version,
		"to":        next.Version,
	}
	if content.EnemiesDiffer(prev, next) {
		removed, spawned := events.ResetMobs(env)
		fields["removed"] = removed
		fields["spawned"] = spawned
	} else {
		fields["refreshed"] = events.RefreshMobDrops(env)
	}
	i.dispatchNotices(env.TakeNotices(), now)
	i.dirty = true

	logger.Log.WithFields(fields).Info("Content snapshot swapped")
}
