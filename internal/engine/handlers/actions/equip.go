package actions

import (
	"github.com/uhaszYsz/mmomicro/internal/engine/handlers"
	"github.com/uhaszYsz/mmomicro/internal/systems"
	"github.com/uhaszYsz/mmomicro/pkg/api"
)

// HandleEquip обрабатывает команду EQUIP - экипировка предмета из инвентаря
func HandleEquip(ctx handlers.Context, p api.ItemPayload) (handlers.Result, error) {
	msg, err := systems.Equip(ctx.Actor, p.ItemIndex)
	return handlers.Reply(msg, err, systems.LogInfo)
}
