package actions

import (
	"github.com/uhaszYsz/mmomicro/internal/engine/handlers"
	"github.com/uhaszYsz/mmomicro/internal/systems"
	"github.com/uhaszYsz/mmomicro/pkg/api"
)

// quantity по умолчанию - одна штука
func quantity(q int) int {
	if q <= 0 {
		return 1
	}
	return q
}

func HandleDeposit(ctx handlers.Context, p api.StoragePayload) (handlers.Result, error) {
	msg, err := systems.Deposit(ctx.Env, ctx.Actor, p.BuildingIndex, p.ItemIndex, p.Kind, quantity(p.Quantity))
	return handlers.Reply(msg, err, systems.LogInfo)
}

func HandleWithdraw(ctx handlers.Context, p api.StoragePayload) (handlers.Result, error) {
	msg, err := systems.Withdraw(ctx.Env, ctx.Actor, p.BuildingIndex, p.ItemIndex, p.Kind, quantity(p.Quantity))
	return handlers.Reply(msg, err, systems.LogInfo)
}
