package domain

// EventType - побочный эффект команды, который обрабатывает инстанс после хендлера.
type EventType uint8

const (
	EventNone EventType = iota
	// EventTeamsChanged - изменился состав или настройки команд: рассылаем статические данные.
	EventTeamsChanged
	// EventContentChanged - заменен снапшот контента: рассылаем статические данные.
	EventContentChanged
	// EventWorldReset - мобы пересозданы: рассылаем статические данные и полное состояние.
	EventWorldReset
	// EventResync - актор запросил полное состояние (INIT): STATIC и UPDATE только ему.
	EventResync
)

var eventToString = map[EventType]string{
	EventNone:           "NONE",
	EventTeamsChanged:   "TEAMS_CHANGED",
	EventContentChanged: "CONTENT_CHANGED",
	EventWorldReset:     "WORLD_RESET",
	EventResync:         "RESYNC",
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (e EventType) String() string {
	if val, ok := eventToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}
