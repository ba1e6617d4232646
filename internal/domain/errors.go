package domain

import "fmt"

// ErrorKind классифицирует отказ операции.
type ErrorKind uint8

const (
	KindValidation ErrorKind = iota + 1
	KindPrecondition
	KindNotFound
)

// Сентинелы для errors.Is.
var (
	ErrValidation   = &GameError{Kind: KindValidation, Msg: "validation failed"}
	ErrPrecondition = &GameError{Kind: KindPrecondition, Msg: "precondition failed"}
	ErrNotFound     = &GameError{Kind: KindNotFound, Msg: "not found"}
)

// GameError - отказ игровой операции. Msg показывается игроку как есть.
// Операция, вернувшая GameError, не изменила состояние мира.
type GameError struct {
	Kind ErrorKind
	Msg  string
}

func (e *GameError) Error() string { return e.Msg }

// Is сравнивает только вид ошибки, чтобы errors.Is(err, ErrNotFound) работал для любого текста.
func (e *GameError) Is(target error) bool {
	t, ok := target.(*GameError)
	return ok && t.Kind == e.Kind
}

func Validation(format string, args ...any) error {
	return &GameError{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func Precondition(format string, args ...any) error {
	return &GameError{Kind: KindPrecondition, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &GameError{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}
