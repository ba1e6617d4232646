package engine

import (
	"context"
	"encoding/json"
	"fmt"
)

// WorldSummary - сводка для /debug/world
type WorldSummary struct {
	InstanceID  int    `json:"instance_id"`
	Tick        uint64 `json:"tick"`
	Seed        int64  `json:"seed"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Players     int    `json:"players"`
	Online      int    `json:"online"`
	Bots        int    `json:"bots"`
	Objects     int    `json:"objects"`
	Mobs        int    `json:"mobs"`
	Teams       int    `json:"teams"`
	Content     string `json:"content_version"`
	Subscribers int    `json:"subscribers"`
	Journal     string `json:"journal,omitempty"`
}

func (s *GameService) Summary(ctx context.Context) (WorldSummary, error) {
	var sum WorldSummary
	err := s.Instance.Call(ctx, func() {
		i := s.Instance
		w := i.World
		sum = WorldSummary{
			InstanceID:  i.ID,
			Tick:        i.CurrentTick,
			Seed:        i.Seed,
			Width:       w.Width,
			Height:      w.Height,
			Players:     len(w.Players),
			Objects:     len(w.Objects),
			Mobs:        len(w.Mobs()),
			Teams:       len(w.Teams),
			Content:     i.Content.Version,
			Subscribers: s.Hub.SubscriberCount(),
		}
		for _, p := range w.Players {
			if p.IsOnline {
				sum.Online++
			}
			if p.IsBot {
				sum.Bots++
			}
		}
		if i.Journal != nil {
			sum.Journal = i.Journal.Path
		}
	})
	return sum, err
}

// DumpEntities кодирует сущности в горутине инстанса, чтобы не читать мир конкурентно.
// kind: players, objects или пусто (все).
func (s *GameService) DumpEntities(ctx context.Context, kind string) (json.RawMessage, error) {
	var (
		raw    json.RawMessage
		encErr error
	)
	err := s.Instance.Call(ctx, func() {
		w := s.Instance.World
		var data any
		switch kind {
		case "players":
			data = w.Players
		case "objects":
			data = w.Objects
		case "":
			data = map[string]any{"players": w.Players, "objects": w.Objects}
		default:
			encErr = fmt.Errorf("unknown kind %q", kind)
			return
		}
		raw, encErr = json.Marshal(data)
	})
	if err != nil {
		return nil, err
	}
	return raw, encErr
}

// BotQueue - снимок расписания ботов
func (s *GameService) BotQueue(ctx context.Context) ([]map[string]interface{}, error) {
	var dump []map[string]interface{}
	err := s.Instance.Call(ctx, func() {
		dump = s.Instance.TurnManager.DebugDump()
	})
	return dump, err
}
