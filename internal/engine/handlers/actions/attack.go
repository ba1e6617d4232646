package actions

import (
	"github.com/uhaszYsz/mmomicro/internal/engine/handlers"
	"github.com/uhaszYsz/mmomicro/internal/systems"
	"github.com/uhaszYsz/mmomicro/pkg/api"
)

// HandleAttack назначает цель. Удары наносит тик по кулдауну, а не сам хендлер.
func HandleAttack(ctx handlers.Context, p api.EntityPayload) (handlers.Result, error) {
	msg, err := systems.StartCombat(ctx.Env, ctx.Actor, p.TargetID)
	return handlers.Reply(msg, err, systems.LogCombat)
}

// HandleStopCombat снимает цель. Повторный вызов вне боя ничего не меняет.
func HandleStopCombat(ctx handlers.Context) (handlers.Result, error) {
	if !systems.StopCombat(ctx.World(), ctx.Actor) {
		return handlers.EmptyResult(), nil
	}
	return handlers.Result{Msg: "Вы выходите из боя.", MsgType: systems.LogCombat}, nil
}
