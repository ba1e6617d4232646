package handlers

import (
	"encoding/json"
	"errors"

	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/internal/systems"
	"github.com/uhaszYsz/mmomicro/pkg/api"
	"github.com/uhaszYsz/mmomicro/pkg/content"
)

// Context передает хендлеру состояние мира.
// Хендлер вызывается только из горутины инстанса и может мутировать мир напрямую.
type Context struct {
	Env   *systems.Env
	Actor *domain.Player // Игрок или бот. nil для админских команд.
}

func (c Context) World() *domain.World { return c.Env.World }

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сервиса напрямую, он возвращает данные.
type Result struct {
	Msg     string           // Текст лога для актора
	MsgType string           // Тип лога (INFO, COMBAT, LOOT, ERROR)
	Event   domain.EventType // Побочный эффект для обработки инстансом

	// Failure - игровой отказ. Мир не изменен, Msg содержит текст для игрока.
	Failure error
	// Reply - личный ответ актору помимо UPDATE (например, профиль при EXAMINE).
	Reply *api.ServerResponse
	// Content - новый снапшот контента, который инстанс должен подменить.
	Content *content.Snapshot
	// Data - тело ответа админского API.
	Data any
}

// HandlerFunc - это контракт для любой команды (MOVE, ATTACK, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// Reply превращает ответ игровой системы в Result.
// Отказ (domain.GameError) становится сообщением ERROR для актора, прочие ошибки пробрасываются.
func Reply(msg string, err error, msgType string) (Result, error) {
	if err != nil {
		var gameErr *domain.GameError
		if errors.As(err, &gameErr) {
			return Fail(gameErr), nil
		}
		return Result{}, err
	}
	return Result{Msg: msg, MsgType: msgType}, nil
}

// Fail - Result для игрового отказа.
func Fail(err *domain.GameError) Result {
	return Result{Msg: err.Msg, MsgType: systems.LogError, Failure: err}
}
