package engine

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/uhaszYsz/mmomicro/internal/agent"
	"github.com/uhaszYsz/mmomicro/pkg/logger"
)

// processBotTurns - фаза d. Каждый бот, чей срок наступил, принимает одно решение
// и получает новый срок через 2-7 секунд. Решение проходит через те же хендлеры, что и у игроков.
func (i *Instance) processBotTurns(now time.Time) bool {
	due := i.TurnManager.PopDue(now)
	if len(due) == 0 {
		return false
	}

	acted := false
	for _, id := range due {
		bot := i.World.Player(id)
		if bot == nil || !bot.IsBot {
			// Бот удален между постановкой в очередь и ходом
			continue
		}

		if cmd, ok := agent.Decide(i.Rng, i.World, bot); ok {
			logger.Log.WithFields(logrus.Fields{
				"component": "bot",
				"bot_id":    bot.ID,
				"action":    cmd.Action.String(),
			}).Debug("Bot decided")
			i.executeCommand(cmd, now)
			acted = true
		}
		i.TurnManager.Schedule(id, now.Add(agent.NextDelay(i.Rng)))
	}
	return acted
}
