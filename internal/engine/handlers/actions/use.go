package actions

import (
	"github.com/uhaszYsz/mmomicro/internal/engine/handlers"
	"github.com/uhaszYsz/mmomicro/internal/systems"
	"github.com/uhaszYsz/mmomicro/pkg/api"
)

// HandleUse применяет расходник: зелье или свиток с баффом.
func HandleUse(ctx handlers.Context, p api.ItemPayload) (handlers.Result, error) {
	msg, err := systems.UseItem(ctx.Actor, p.ItemIndex, ctx.Env.Now)
	return handlers.Reply(msg, err, systems.LogInfo)
}
