package engine

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/internal/systems"
	"github.com/uhaszYsz/mmomicro/pkg/api"
	"github.com/uhaszYsz/mmomicro/pkg/logger"
)

// publishUpdate рассылает персональное состояние всем подключенным игрокам и очищает логи.
func (i *Instance) publishUpdate(now time.Time) {
	for _, p := range i.World.Players {
		if p.IsBot || !i.Service.Hub.HasSubscriber(p.ID) {
			continue
		}
		i.Service.Hub.SendTo(p.ID, *i.BuildStateFor(p, now))
	}

	i.Logs = nil
	clear(i.PersonalLogs)
	i.dirty = false
}

// publishLogs - мир не менялся, но есть логи: короткое сообщение LOG вместо полного UPDATE.
func (i *Instance) publishLogs(now time.Time) {
	for _, p := range i.World.Players {
		if p.IsBot || !i.Service.Hub.HasSubscriber(p.ID) {
			continue
		}
		logs := i.pendingLogsFor(p.ID)
		if len(logs) == 0 {
			continue
		}
		i.Service.Hub.SendTo(p.ID, api.ServerResponse{
			Type:       api.MsgLog,
			Tick:       i.CurrentTick,
			ServerTime: now.UnixMilli(),
			MyEntityID: p.ID,
			Logs:       logs,
		})
	}

	i.Logs = nil
	clear(i.PersonalLogs)
}

// sendUpdate - внеочередной UPDATE одному игроку (INIT). Логи остаются до общей рассылки.
func (i *Instance) sendUpdate(p *domain.Player, now time.Time) {
	i.Service.Hub.SendTo(p.ID, *i.BuildStateFor(p, now))
}

// BuildStateFor создает персональный "снимок" мира: свой профиль, содержимое своей клетки,
// видимый чат и новые логи. Чужие инвентари и хеши паролей сюда не попадают.
func (i *Instance) BuildStateFor(p *domain.Player, now time.Time) *api.ServerResponse {
	w := i.World
	own := api.OwnPlayerView(p)

	players := make([]api.PlayerView, 0)
	objects := make([]api.ObjectView, 0)
	if cell := w.CellAt(p.Pos); cell != nil {
		for _, other := range cell.Players {
			if other.ID != p.ID {
				players = append(players, api.PublicPlayerView(other))
			}
		}
		for _, obj := range cell.Objects {
			if w.IsDestroyed(obj.GetID()) {
				continue
			}
			objects = append(objects, api.NewObjectView(obj, p.ID))
		}
	}

	return &api.ServerResponse{
		Type:       api.MsgUpdate,
		Tick:       i.CurrentTick,
		ServerTime: now.UnixMilli(),
		MyEntityID: p.ID,
		Player:     &own,
		Players:    players,
		Objects:    objects,
		Chat:       systems.VisibleChat(w, p),
		Logs:       i.pendingLogsFor(p.ID),
	}
}

// pendingLogsFor - копия логов: общие и личные вперемешку по времени (ULID сортируется по времени)
func (i *Instance) pendingLogsFor(playerID string) []api.LogEntry {
	logs := make([]api.LogEntry, 0, len(i.Logs)+len(i.PersonalLogs[playerID]))
	logs = append(logs, i.Logs...)
	logs = append(logs, i.PersonalLogs[playerID]...)
	sort.SliceStable(logs, func(a, b int) bool { return logs[a].ID < logs[b].ID })
	return logs
}

// staticKey меняется при смене контента, команд или разметки биомов.
func (i *Instance) staticKey() string {
	return fmt.Sprintf("%s/%d", i.Content.Version, i.staticRevision)
}

// staticPayload возвращает закодированные статические данные. Кодируем один раз на ключ.
func (i *Instance) staticPayload() (json.RawMessage, error) {
	key := i.staticKey()
	cache := i.Service.staticCache
	if raw, ok := cache.Get(key); ok {
		return raw, nil
	}

	teams := make([]*domain.Team, 0, len(i.World.TeamOrder))
	for _, id := range i.World.TeamOrder {
		teams = append(teams, i.World.Teams[id])
	}
	data := api.StaticData{
		Version:   i.Content.Version,
		MapSize:   i.World.Width,
		Biomes:    i.Content.Biomes,
		BiomeMap:  i.World.Biomes,
		Enemies:   i.Content.Enemies,
		Buildings: i.Content.Buildings,
		Recipes:   i.Content.Recipes,
		Teams:     teams,
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode static data: %w", err)
	}
	cache.Set(key, raw, int64(len(raw)))
	return raw, nil
}

func (i *Instance) staticResponse(now time.Time) (api.ServerResponse, bool) {
	raw, err := i.staticPayload()
	if err != nil {
		logger.Log.WithError(err).WithField("component", "state_builder").Error("Static data unavailable")
		return api.ServerResponse{}, false
	}
	return api.ServerResponse{
		Type:       api.MsgStatic,
		Tick:       i.CurrentTick,
		ServerTime: now.UnixMilli(),
		Static:     raw,
	}, true
}

// sendStatic отправляет STATIC одному игроку.
func (i *Instance) sendStatic(playerID string, now time.Time) {
	if msg, ok := i.staticResponse(now); ok {
		i.Service.Hub.SendTo(playerID, msg)
	}
}

// broadcastStatic рассылает STATIC всем подключенным.
func (i *Instance) broadcastStatic(now time.Time) {
	msg, ok := i.staticResponse(now)
	if !ok {
		return
	}
	i.Service.Hub.Broadcast(msg)
	logger.Log.WithFields(logrus.Fields{
		"component": "state_builder",
		"key":       i.staticKey(),
		"bytes":     len(msg.Static),
	}).Debug("Static data broadcast")
}
