package actions

import (
	"github.com/uhaszYsz/mmomicro/internal/engine/handlers"
	"github.com/uhaszYsz/mmomicro/internal/systems"
	"github.com/uhaszYsz/mmomicro/pkg/api"
)

// HandleUnequip обрабатывает команду UNEQUIP - снятие предмета из слота
func HandleUnequip(ctx handlers.Context, p api.SlotPayload) (handlers.Result, error) {
	msg, err := systems.Unequip(ctx.Actor, p.Slot)
	return handlers.Reply(msg, err, systems.LogInfo)
}
