package actions

import (
	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/internal/engine/handlers"
	"github.com/uhaszYsz/mmomicro/pkg/api"
)

// HandleExamine возвращает публичный профиль игрока из той же клетки.
func HandleExamine(ctx handlers.Context, p api.EntityPayload) (handlers.Result, error) {
	target := ctx.World().Player(p.TargetID)
	if target == nil || target.Pos != ctx.Actor.Pos {
		return handlers.Reply("", domain.NotFound("Игрок не найден в этой клетке."), "")
	}

	profile := api.PublicPlayerView(target)
	return handlers.Result{
		Reply: &api.ServerResponse{
			Type:    api.MsgProfile,
			Profile: &profile,
		},
	}, nil
}
