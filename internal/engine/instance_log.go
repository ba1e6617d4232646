package engine

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/uhaszYsz/mmomicro/internal/systems"
	"github.com/uhaszYsz/mmomicro/pkg/api"
	"github.com/uhaszYsz/mmomicro/pkg/logger"
	"github.com/uhaszYsz/mmomicro/pkg/utils"
)

func newLogEntry(text, logType string, now time.Time) api.LogEntry {
	if logType == "" {
		logType = systems.LogInfo
	}
	return api.LogEntry{
		ID:        utils.GenerateLogID(),
		Text:      text,
		Type:      logType,
		Timestamp: now.UnixMilli(),
	}
}

// AddLog добавляет общий лог, который получат все игроки со следующим UPDATE
func (i *Instance) AddLog(text, logType string, now time.Time) {
	entry := newLogEntry(text, logType, now)
	i.Logs = append(i.Logs, entry)
	logger.Log.WithFields(logrus.Fields{
		"instance":  i.ID,
		"component": "game_log",
		"log_type":  entry.Type,
	}).Info(text)
}

// AddLogFor добавляет личный лог. Для игроков без соединения он не копится.
func (i *Instance) AddLogFor(playerID, text, logType string, now time.Time) {
	entry := newLogEntry(text, logType, now)
	if i.Service.Hub.HasSubscriber(playerID) {
		i.PersonalLogs[playerID] = append(i.PersonalLogs[playerID], entry)
	}
	logger.Log.WithFields(logrus.Fields{
		"instance":  i.ID,
		"component": "game_log",
		"log_type":  entry.Type,
		"player_id": playerID,
	}).Debug(text)
}

// dispatchNotices раскладывает записи систем по общим и личным логам
func (i *Instance) dispatchNotices(notices []systems.Notice, now time.Time) {
	for _, n := range notices {
		if n.PlayerID == "" {
			i.AddLog(n.Text, n.Type, now)
			continue
		}
		i.AddLogFor(n.PlayerID, n.Text, n.Type, now)
	}
}

// hasPendingLogs - есть ли что разослать даже без изменений мира
func (i *Instance) hasPendingLogs() bool {
	return len(i.Logs) > 0 || len(i.PersonalLogs) > 0
}
