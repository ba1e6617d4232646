package systems

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/pkg/content"
)

// Типы записей игрового лога
const (
	LogInfo   = "INFO"
	LogCombat = "COMBAT"
	LogLoot   = "LOOT"
	LogError  = "ERROR"
)

// Notice - запись лога для игрока (PlayerID) или для всех (пустой PlayerID).
type Notice struct {
	PlayerID string
	Type     string
	Text     string
}

// Env - контекст одной команды или одного тика.
// Создается и используется только в горутине инстанса, владеющей миром.
type Env struct {
	World   *domain.World
	Content *content.Snapshot
	Rng     *rand.Rand
	Now     time.Time

	Notices []Notice
}

func (e *Env) Rules() domain.Rules {
	return e.World.Rules
}

// Tell добавляет запись лога для одного игрока.
func (e *Env) Tell(playerID, kind, format string, args ...any) {
	e.Notices = append(e.Notices, Notice{PlayerID: playerID, Type: kind, Text: fmt.Sprintf(format, args...)})
}

// Broadcast добавляет запись лога для всех.
func (e *Env) Broadcast(kind, format string, args ...any) {
	e.Tell("", kind, format, args...)
}

// TakeNotices возвращает накопленные записи и очищает буфер.
func (e *Env) TakeNotices() []Notice {
	out := e.Notices
	e.Notices = nil
	return out
}
