package actions

import (
	"github.com/uhaszYsz/mmomicro/internal/engine/handlers"
	"github.com/uhaszYsz/mmomicro/internal/systems"
)

// HandleRespawn возвращает погибшего игрока в точку появления.
func HandleRespawn(ctx handlers.Context) (handlers.Result, error) {
	msg, err := systems.RespawnPlayer(ctx.Env, ctx.Actor)
	return handlers.Reply(msg, err, systems.LogInfo)
}
