package admin

import (
	"errors"
	"fmt"

	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/internal/engine/handlers"
	"github.com/uhaszYsz/mmomicro/internal/engine/handlers/events"
	"github.com/uhaszYsz/mmomicro/internal/systems"
	"github.com/uhaszYsz/mmomicro/pkg/dungeon"
)

// Имя, от которого админские действия попадают в лог
const actorName = "Администратор"

// TeleportPayload: { "playerId": "...", "x": 10, "y": 10 }
type TeleportPayload struct {
	PlayerID string `json:"playerId"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

func (p TeleportPayload) Validate() error {
	if p.PlayerID == "" {
		return errors.New("playerId is required")
	}
	return nil
}

// HandleTeleport переносит игрока в любую клетку карты. Бой прерывается.
func HandleTeleport(ctx handlers.Context, p TeleportPayload) (handlers.Result, error) {
	w := ctx.World()
	player := w.Player(p.PlayerID)
	if player == nil {
		return handlers.Reply("", domain.NotFound("Игрок %q не найден.", p.PlayerID), "")
	}
	to := domain.Position{X: p.X, Y: p.Y}
	if !w.InBounds(to) {
		return handlers.Reply("", domain.Validation("Клетка %s вне карты.", to), "")
	}
	systems.StopCombat(w, player)
	if err := w.UpdateEntityPos(player, to); err != nil {
		return handlers.Result{}, fmt.Errorf("teleport %s: %w", player.ID, err)
	}
	ctx.Env.Tell(player.ID, systems.LogInfo, "⚡ Вас переносит в %s.", to)
	return handlers.Result{Msg: fmt.Sprintf("Перенос %s в %s выполнен", player.Name, to)}, nil
}

// SummonBossPayload: { "template": "Goblin King", "x": 3, "y": 4, "level": 5 }
type SummonBossPayload struct {
	Template string `json:"template"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Level    int    `json:"level"` // Опционально, по умолчанию 1
}

func (p SummonBossPayload) Validate() error {
	if p.Template == "" {
		return errors.New("template is required")
	}
	if p.Level < 0 {
		return errors.New("level must not be negative")
	}
	return nil
}

// HandleSummonBoss призывает босса: здоровье и урон шаблона умножаются, затем масштабируются под уровень.
func HandleSummonBoss(ctx handlers.Context, p SummonBossPayload) (handlers.Result, error) {
	w := ctx.World()
	tmpl, ok := ctx.Env.Content.Enemy(p.Template)
	if !ok {
		return handlers.Reply("", domain.NotFound("Шаблон моба %q не найден.", p.Template), "")
	}
	pos := domain.Position{X: p.X, Y: p.Y}
	if !w.InBounds(pos) {
		return handlers.Reply("", domain.Validation("Клетка %s вне карты.", pos), "")
	}
	level := max(p.Level, 1)

	boss := dungeon.SpawnBoss(tmpl, pos, level, w.BiomeAt(pos), w.Rules)
	w.AddObject(boss)
	ctx.Env.Broadcast(systems.LogCombat, "⚠️ В %s появляется босс %s (ур. %d)!", pos, boss.Name, level)

	return handlers.Result{
		Msg:  fmt.Sprintf("Босс %s призван", boss.Name),
		Data: map[string]any{"id": boss.ID, "hp": boss.Stats.MaxHP, "dmg": boss.Stats.Dmg},
	}, nil
}

// PlayerPayload: { "playerId": "..." }
type PlayerPayload struct {
	PlayerID string `json:"playerId"`
}

func (p PlayerPayload) Validate() error {
	if p.PlayerID == "" {
		return errors.New("playerId is required")
	}
	return nil
}

// HandleHeal полностью восстанавливает игрока, в том числе погибшего.
func HandleHeal(ctx handlers.Context, p PlayerPayload) (handlers.Result, error) {
	player := ctx.World().Player(p.PlayerID)
	if player == nil {
		return handlers.Reply("", domain.NotFound("Игрок %q не найден.", p.PlayerID), "")
	}
	player.IsDead = false
	systems.RecalculateStats(player)
	player.Stats.HP = player.Stats.MaxHP
	player.Stats.MP = player.Stats.MaxMP
	player.Stats.Stamina = player.Stats.MaxStamina
	ctx.Env.Tell(player.ID, systems.LogInfo, "❤️ Вы полностью исцелены.")
	return handlers.Result{Msg: fmt.Sprintf("Исцеление %s выполнено", player.Name)}, nil
}

// KillPayload: { "targetId": "..." }
type KillPayload struct {
	TargetID string `json:"targetId"`
}

func (p KillPayload) Validate() error {
	if p.TargetID == "" {
		return errors.New("targetId is required")
	}
	return nil
}

// HandleKill мгновенно побеждает игрока или моба либо разрушает площадку.
// Добыча и опыт распределяются как при обычной победе.
func HandleKill(ctx handlers.Context, p KillPayload) (handlers.Result, error) {
	env := ctx.Env
	switch target := env.World.LiveEntity(p.TargetID).(type) {
	case *domain.Player:
		if target.IsDead {
			return handlers.Reply("", domain.Precondition("Персонаж %s уже мертв.", target.Name), "")
		}
		systems.DefeatPlayer(env, target, actorName)
	case *domain.Mob:
		if !target.IsAlive() {
			return handlers.Reply("", domain.Precondition("%s ожидает возрождения.", target.Name), "")
		}
		systems.DefeatMob(env, target, actorName)
	case *domain.ConstructionSite:
		systems.DestroySite(env, target, actorName)
	case *domain.SiegeMachine:
		env.World.MarkDestroyed(target.ID)
	default:
		return handlers.Reply("", domain.NotFound("Цель %q не найдена.", p.TargetID), "")
	}
	return handlers.Result{Msg: fmt.Sprintf("💀 Цель %s уничтожена", p.TargetID)}, nil
}

// HandleRegenerateMap размечает биомы заново и пересоздает всех мобов.
func HandleRegenerateMap(ctx handlers.Context) (handlers.Result, error) {
	removed, spawned := events.RegenerateMap(ctx.Env)
	return handlers.Result{
		Msg:   "Карта перегенерирована",
		Event: domain.EventWorldReset,
		Data:  map[string]int{"removed": removed, "spawned": spawned},
	}, nil
}
