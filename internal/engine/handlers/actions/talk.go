package actions

import (
	"github.com/uhaszYsz/mmomicro/internal/engine/handlers"
	"github.com/uhaszYsz/mmomicro/internal/systems"
	"github.com/uhaszYsz/mmomicro/pkg/api"
)

// HandleChat отправляет сообщение в общий или командный канал.
// Сообщение попадает в историю чата, отдельная запись лога не нужна.
func HandleChat(ctx handlers.Context, p api.ChatPayload) (handlers.Result, error) {
	_, err := systems.SendChat(ctx.Env, ctx.Actor, p.Channel, p.Text)
	return handlers.Reply("", err, "")
}
