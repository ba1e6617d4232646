package engine

import (
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/uhaszYsz/mmomicro/internal/agent"
	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/internal/systems"
	"github.com/uhaszYsz/mmomicro/pkg/api"
	"github.com/uhaszYsz/mmomicro/pkg/content"
	"github.com/uhaszYsz/mmomicro/pkg/dungeon"
	"github.com/uhaszYsz/mmomicro/pkg/logger"
	"github.com/uhaszYsz/mmomicro/pkg/utils"
)

// buildInitialWorld размечает биомы и расселяет мобов.
func buildInitialWorld(rules domain.Rules, snap *content.Snapshot, rng *rand.Rand) *domain.World {
	world := domain.NewWorld(rules)
	dungeon.GenerateBiomes(world, snap.Biomes, rng)
	spawned := dungeon.Populate(world, snap, rng)

	logger.Log.WithFields(logrus.Fields{
		"component": "world_builder",
		"map_size":  rules.MapSize,
		"biomes":    len(snap.Biomes),
		"mobs":      spawned,
		"content":   snap.Version,
	}).Info("World generated")
	return world
}

// spawnPlayer создает нового персонажа в (0,0) в команде по умолчанию.
func (i *Instance) spawnPlayer(name, hash string) *domain.Player {
	p := dungeon.CreatePlayer(utils.GenerateID(), name, hash, i.Content)
	i.World.AddPlayer(p)
	systems.EnrollDefault(i.World, p)
	i.staticRevision++
	return p
}

// addBot создает бота и ставит его в расписание.
func (i *Instance) addBot(now time.Time) *domain.Player {
	name := agent.RandomName(i.Rng)
	for i.World.PlayerByName(name) != nil {
		name = agent.RandomName(i.Rng)
	}

	bot := i.spawnPlayer(name, "")
	bot.IsBot = true
	bot.IsOnline = true
	i.TurnManager.Schedule(bot.ID, now.Add(agent.NextDelay(i.Rng)))
	i.dirty = true

	logger.Log.WithFields(logrus.Fields{
		"component": "bot",
		"bot_id":    bot.ID,
		"name":      bot.Name,
	}).Info("Bot created")
	i.AddLog(bot.Name+" входит в игру.", systems.LogInfo, now)
	return bot
}

// removeBot выводит бота из боя и удаляет из мира. Живых игроков так удалить нельзя.
func (i *Instance) removeBot(id string, now time.Time) error {
	bot := i.World.Player(id)
	if bot == nil || !bot.IsBot {
		return domain.NotFound("Бот %q не найден.", id)
	}

	// PvP-противники бота выходят из боя
	for _, p := range i.World.Players {
		if p.AttackingPlayer == id {
			systems.StopCombat(i.World, p)
		}
	}
	systems.StopCombat(i.World, bot)
	i.TurnManager.Remove(id)
	i.World.RemovePlayer(id)
	i.staticRevision++
	i.dirty = true

	logger.Log.WithFields(logrus.Fields{
		"component": "bot",
		"bot_id":    id,
	}).Info("Bot removed")
	i.AddLog(bot.Name+" выходит из игры.", systems.LogInfo, now)
	return nil
}

func (i *Instance) listBots() []api.PlayerView {
	bots := make([]api.PlayerView, 0)
	for _, p := range i.World.Players {
		if p.IsBot {
			bots = append(bots, api.PublicPlayerView(p))
		}
	}
	return bots
}
