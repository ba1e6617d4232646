package actions

import (
	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/internal/engine/handlers"
	"github.com/uhaszYsz/mmomicro/internal/systems"
	"github.com/uhaszYsz/mmomicro/pkg/api"
)

// HandleMove переводит игрока в соседнюю клетку. Бой при этом прерывается.
func HandleMove(ctx handlers.Context, p api.PositionPayload) (handlers.Result, error) {
	msg, err := systems.MovePlayer(ctx.Env, ctx.Actor, domain.Position{X: p.X, Y: p.Y})
	return handlers.Reply(msg, err, systems.LogInfo)
}
