package actions

import (
	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/internal/engine/handlers"
)

// HandleInit - клиент просит полное состояние (после входа или переподключения).
func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{Event: domain.EventResync}, nil
}
