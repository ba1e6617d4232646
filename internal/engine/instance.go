package engine

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/internal/engine/handlers"
	"github.com/uhaszYsz/mmomicro/internal/infrastructure/storage"
	"github.com/uhaszYsz/mmomicro/internal/systems"
	"github.com/uhaszYsz/mmomicro/pkg/api"
	"github.com/uhaszYsz/mmomicro/pkg/content"
	"github.com/uhaszYsz/mmomicro/pkg/logger"
)

// ErrStopped - инстанс остановлен, запрос не будет обработан.
var ErrStopped = errors.New("instance stopped")

// JoinRequest - вход игрока. Пароль уже проверен (или захеширован) в горутине соединения,
// инстанс только перепроверяет, что состояние не изменилось за это время.
type JoinRequest struct {
	Name  string
	Hash  string // bcrypt-хеш для нового игрока
	New   bool
	Reply chan JoinResult
}

type JoinResult struct {
	PlayerID string
	Err      error
}

// Instance - единственная горутина, владеющая миром. Все изменения мира
// (команды, входы, выходы, админка, тики) приходят сюда через каналы.
type Instance struct {
	ID      int
	World   *domain.World
	Content *content.Snapshot

	// TurnManager - расписание ботов
	TurnManager *TurnManager

	// Каналы коммуникации
	CommandChan chan domain.InternalCommand // Команды от игроков
	JoinChan    chan JoinRequest            // Вход игроков
	LeaveChan   chan string                 // Отключение игроков
	CallChan    chan func()                 // Запросы, которым нужен мир (админка, отладка)

	// Ссылка на Service для доступа к Hub и хендлерам
	Service *GameService

	CurrentTick uint64
	Interval    time.Duration

	// Логи с прошлой рассылки: общие и личные
	Logs         []api.LogEntry
	PersonalLogs map[string][]api.LogEntry

	Rng     *rand.Rand // Локальный генератор
	Seed    int64      // Сид, с которого начался мир
	Journal *storage.JournalWriter

	// dirty - команды изменили мир после последней рассылки
	dirty bool
	// staticRevision растет при смене команд или карты, входит в ключ кеша STATIC
	staticRevision int
	journaled     bool

	done chan struct{}
}

func NewInstance(id int, world *domain.World, snap *content.Snapshot, service *GameService, seed int64, interval time.Duration) *Instance {
	return &Instance{
		ID:           id,
		World:        world,
		Content:      snap,
		TurnManager:  NewTurnManager(),
		CommandChan:  make(chan domain.InternalCommand, 256),
		JoinChan:     make(chan JoinRequest, 16),
		LeaveChan:    make(chan string, 16),
		CallChan:     make(chan func(), 16),
		Service:      service,
		Interval:     interval,
		PersonalLogs: make(map[string][]api.LogEntry),
		Seed:         seed,
		Rng:          rand.New(rand.NewSource(seed)),
		done:         make(chan struct{}),
	}
}

// Run запускает игровой цикл ЭТОГО инстанса. Возвращается после отмены ctx.
func (i *Instance) Run(ctx context.Context) {
	log := logger.Log.WithFields(logrus.Fields{"component": "instance", "instance_id": i.ID})
	log.WithField("interval", i.Interval).Info("Instance loop started")

	ticker := time.NewTicker(i.Interval)
	defer func() {
		ticker.Stop()
		i.closeJournal()
		close(i.done)
		log.WithField("tick", i.CurrentTick).Info("Instance loop stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case req := <-i.JoinChan:
			req.Reply <- i.join(req, time.Now())
		case id := <-i.LeaveChan:
			i.leave(id)
		case cmd := <-i.CommandChan:
			i.executeCommand(cmd, time.Now())
		case fn := <-i.CallChan:
			fn()
		case now := <-ticker.C:
			// time.Ticker пропускает тики, если фаза затянулась, так что тики не накладываются
			i.Tick(now)
		}
	}
}

// Done закрывается, когда Run вернулся.
func (i *Instance) Done() <-chan struct{} {
	return i.done
}

// Call выполняет fn в горутине инстанса и ждет завершения.
func (i *Instance) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	wrapped := func() {
		defer close(finished)
		fn()
	}
	select {
	case i.CallChan <- wrapped:
	case <-i.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-finished:
		return nil
	case <-i.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// newEnv - контекст систем на один шаг (команда или тик).
func (i *Instance) newEnv(now time.Time) *systems.Env {
	return &systems.Env{
		World:   i.World,
		Content: i.Content,
		Rng:     i.Rng,
		Now:     now,
	}
}

// join выполняется в горутине инстанса: за время bcrypt имя могло быть занято или игрок мог войти.
func (i *Instance) join(req JoinRequest, now time.Time) JoinResult {
	w := i.World
	existing := w.PlayerByName(req.Name)

	var p *domain.Player
	switch {
	case req.New && existing != nil:
		return JoinResult{Err: domain.Precondition("Имя %q уже занято.", req.Name)}
	case !req.New && existing == nil:
		return JoinResult{Err: domain.NotFound("Игрок %q не найден.", req.Name)}
	case existing != nil && existing.IsBot:
		return JoinResult{Err: domain.Precondition("Имя %q занято ботом.", req.Name)}
	case existing != nil && existing.IsOnline:
		return JoinResult{Err: domain.Precondition("Игрок %q уже в игре.", req.Name)}
	case req.New:
		p = i.spawnPlayer(req.Name, req.Hash)
	default:
		p = existing
	}

	p.IsOnline = true
	i.dirty = true

	logger.Log.WithFields(logrus.Fields{
		"component": "instance",
		"player_id": p.ID,
		"name":      p.Name,
		"new":       req.New,
	}).Info("Player joined")
	i.AddLog(p.Name+" входит в игру.", systems.LogInfo, now)
	return JoinResult{PlayerID: p.ID}
}

// leave - игрок отключился: он остается в мире, но выходит из боя.
func (i *Instance) leave(id string) {
	p := i.World.Player(id)
	if p == nil || !p.IsOnline {
		return
	}
	p.IsOnline = false
	systems.StopCombat(i.World, p)
	delete(i.PersonalLogs, id)
	i.dirty = true

	logger.Log.WithFields(logrus.Fields{
		"component": "instance",
		"player_id": p.ID,
		"name":      p.Name,
	}).Info("Player left")
	i.AddLog(p.Name+" выходит из игры.", systems.LogInfo, time.Now())
}

// executeCommand выполняет команду игрока или бота в контексте мира
func (i *Instance) executeCommand(cmd domain.InternalCommand, now time.Time) {
	cmdLogger := logger.Log.WithFields(logrus.Fields{
		"component": "instance",
		"actor_id":  cmd.Token,
		"action":    cmd.Action.String(),
	})

	actor := i.World.Player(cmd.Token)
	if actor == nil {
		cmdLogger.Warn("Command from unknown actor dropped")
		return
	}

	handler, ok := i.Service.actionHandlers[cmd.Action]
	if !ok {
		i.sendError(actor.ID, "Неизвестная команда.")
		i.record(domain.NewJournalEntry(now, i.CurrentTick, cmd, "unknown action"))
		return
	}

	env := i.newEnv(now)
	result, err := handler(handlers.Context{Env: env, Actor: actor}, cmd.Payload)

	errMsg := ""
	switch {
	case err != nil:
		// Хендлер не должен ронять цикл: логируем и сообщаем актору общий текст
		cmdLogger.WithError(err).Error("Handler failed")
		i.sendError(actor.ID, "Внутренняя ошибка сервера.")
		errMsg = err.Error()
	case result.Failure != nil:
		cmdLogger.WithField("reason", result.Failure.Error()).Debug("Command rejected")
		i.sendError(actor.ID, result.Msg)
		errMsg = result.Failure.Error()
	default:
		if result.Msg != "" {
			i.AddLogFor(actor.ID, result.Msg, result.MsgType, now)
		}
		if result.Reply != nil {
			reply := *result.Reply
			reply.Tick = i.CurrentTick
			reply.ServerTime = now.UnixMilli()
			reply.MyEntityID = actor.ID
			i.Service.Hub.SendTo(actor.ID, reply)
		}
		i.processEvent(actor, result, now)
		i.dirty = true
	}

	i.dispatchNotices(env.TakeNotices(), now)
	i.record(domain.NewJournalEntry(now, i.CurrentTick, cmd, errMsg))
}

// executeAdmin выполняет админскую команду. Актора нет, ответ уходит в HTTP.
func (i *Instance) executeAdmin(name string, handler handlers.HandlerFunc, payload json.RawMessage, now time.Time) (handlers.Result, error) {
	env := i.newEnv(now)
	result, err := handler(handlers.Context{Env: env}, payload)

	errMsg := ""
	switch {
	case err != nil:
		errMsg = err.Error()
	case result.Failure != nil:
		errMsg = result.Failure.Error()
	default:
		if result.Msg != "" {
			logger.Log.WithFields(logrus.Fields{
				"component": "admin",
				"action":    name,
			}).Info(result.Msg)
		}
		i.processEvent(nil, result, now)
		i.dirty = true
	}

	i.dispatchNotices(env.TakeNotices(), now)
	i.record(domain.JournalEntry{
		At:      now.UnixMilli(),
		Tick:    i.CurrentTick,
		Token:   "admin",
		Action:  "ADMIN_" + name,
		Payload: payload,
		Error:   errMsg,
	})
	return result, err
}

func (i *Instance) sendError(playerID, text string) {
	i.Service.Hub.SendTo(playerID, api.ServerResponse{
		Type:       api.MsgError,
		Tick:       i.CurrentTick,
		ServerTime: time.Now().UnixMilli(),
		Error:      text,
	})
}

func (i *Instance) record(e domain.JournalEntry) {
	if i.Journal == nil {
		return
	}
	if err := i.Journal.Append(e); err != nil {
		logger.Log.WithError(err).WithField("component", "journal").Error("Journal append failed, disabling journal")
		i.closeJournal()
		return
	}
	i.journaled = true
}

// flushJournal сбрасывает накопленные за тик записи на диск.
func (i *Instance) flushJournal() {
	if i.Journal == nil || !i.journaled {
		return
	}
	i.journaled = false
	if err := i.Journal.Flush(); err != nil {
		logger.Log.WithError(err).WithField("component", "journal").Warn("Journal flush failed")
	}
}

func (i *Instance) closeJournal() {
	if i.Journal == nil {
		return
	}
	j := i.Journal
	i.Journal = nil
	if err := j.Close(); err != nil {
		logger.Log.WithError(err).WithField("component", "journal").Warn("Journal close failed")
		return
	}
	logger.Log.WithFields(logrus.Fields{
		"component": "journal",
		"path":      j.Path,
		"entries":   j.Count(),
	}).Info("Journal closed")
}
