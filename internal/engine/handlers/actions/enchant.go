package actions

import (
	"github.com/uhaszYsz/mmomicro/internal/engine/handlers"
	"github.com/uhaszYsz/mmomicro/internal/systems"
	"github.com/uhaszYsz/mmomicro/pkg/api"
)

func HandleEnchant(ctx handlers.Context, p api.EnchantPayload) (handlers.Result, error) {
	msg, err := systems.Enchant(ctx.Env, ctx.Actor, p.ItemIndex, p.RuneIndex)
	return handlers.Reply(msg, err, systems.LogInfo)
}
