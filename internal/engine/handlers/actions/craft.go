package actions

import (
	"github.com/uhaszYsz/mmomicro/internal/engine/handlers"
	"github.com/uhaszYsz/mmomicro/internal/systems"
	"github.com/uhaszYsz/mmomicro/pkg/api"
)

// HandleCraft ставит рецепт в очередь здания крафта на площадке своей команды.
func HandleCraft(ctx handlers.Context, p api.CraftPayload) (handlers.Result, error) {
	msg, err := systems.EnqueueCraft(ctx.Env, ctx.Actor, p.BuildingIndex, p.RecipeID)
	return handlers.Reply(msg, err, systems.LogInfo)
}
