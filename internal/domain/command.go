package domain

import (
	"encoding/json"
	"time"
)

// InternalCommand - команда для движка. Использует ActionType вместо строки.
type InternalCommand struct {
	Action  ActionType      // Число! Быстро и безопасно.
	Token   string          // ID игрока (Actor)
	Payload json.RawMessage // Сырые данные (парсятся хендлером)
}

// JournalEntry - запись журнала принятых команд (только для диагностики, мир из него не восстанавливается).
type JournalEntry struct {
	At      int64           `json:"at" msgpack:"at"` // unix ms
	Tick    uint64          `json:"tick" msgpack:"tick"`
	Token   string          `json:"token" msgpack:"token"`
	Action  string          `json:"action" msgpack:"action"`
	Payload json.RawMessage `json:"payload,omitempty" msgpack:"payload"`
	Error   string          `json:"error,omitempty" msgpack:"error,omitempty"`
}

func NewJournalEntry(now time.Time, tick uint64, cmd InternalCommand, errMsg string) JournalEntry {
	return JournalEntry{
		At:      now.UnixMilli(),
		Tick:    tick,
		Token:   cmd.Token,
		Action:  cmd.Action.String(),
		Payload: cmd.Payload,
		Error:   errMsg,
	}
}
