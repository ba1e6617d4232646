package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/sirupsen/logrus"
	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/internal/engine/handlers"
	"github.com/uhaszYsz/mmomicro/internal/engine/handlers/actions"
	"github.com/uhaszYsz/mmomicro/internal/engine/handlers/admin"
	"github.com/uhaszYsz/mmomicro/internal/infrastructure/storage"
	"github.com/uhaszYsz/mmomicro/internal/network"
	"github.com/uhaszYsz/mmomicro/pkg/api"
	"github.com/uhaszYsz/mmomicro/pkg/content"
	"github.com/uhaszYsz/mmomicro/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials - неверный пароль. Текст показывается клиенту.
var ErrBadCredentials = domain.Validation("Неверное имя или пароль.")

type GameService struct {
	Config   Config
	Hub      *network.Broadcaster
	Instance *Instance

	actionHandlers map[domain.ActionType]handlers.HandlerFunc
	adminHandlers  map[string]handlers.HandlerFunc

	// staticCache - закодированный STATIC по ключу "версия контента/ревизия"
	staticCache *ristretto.Cache[string, []byte]
}

// NewService загружает контент, генерирует мир и готовит инстанс. Цикл запускает Start.
func NewService(cfg Config) (*GameService, error) {
	snap, err := loadContent(cfg.ContentPath)
	if err != nil {
		return nil, err
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: 1_000,
		MaxCost:     32 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("static cache: %w", err)
	}

	s := &GameService{
		Config:         cfg,
		Hub:            network.NewBroadcaster(),
		actionHandlers: make(map[domain.ActionType]handlers.HandlerFunc),
		adminHandlers:  make(map[string]handlers.HandlerFunc),
		staticCache:    cache,
	}
	s.registerHandlers()

	inst := NewInstance(int(cfg.ShardId), nil, snap, s, cfg.Seed, cfg.TickInterval)
	inst.World = buildInitialWorld(cfg.Rules, snap, inst.Rng)
	s.Instance = inst

	if cfg.JournalDir != "" {
		journal, err := storage.NewJournalService(cfg.JournalDir).Open(cfg.Seed, time.Now())
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		inst.Journal = journal
		logger.Log.WithFields(logrus.Fields{"component": "journal", "path": journal.Path}).Info("Command journal opened")
	}

	now := time.Now()
	for n := 0; n < cfg.Bots; n++ {
		inst.addBot(now)
	}
	return s, nil
}

func loadContent(path string) (*content.Snapshot, error) {
	if path == "" {
		return content.Default()
	}
	snap, err := content.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return snap, nil
}

func (s *GameService) registerHandlers() {
	s.actionHandlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.actionHandlers[domain.ActionMove] = handlers.WithPayload(actions.HandleMove)
	s.actionHandlers[domain.ActionAttack] = handlers.WithPayload(actions.HandleAttack)
	s.actionHandlers[domain.ActionStopCombat] = handlers.WithEmptyPayload(actions.HandleStopCombat)
	s.actionHandlers[domain.ActionCraft] = handlers.WithPayload(actions.HandleCraft)
	s.actionHandlers[domain.ActionDonateSite] = handlers.WithEmptyPayload(actions.HandleDonateSite)
	s.actionHandlers[domain.ActionDonateBuilding] = handlers.WithPayload(actions.HandleDonateBuilding)
	s.actionHandlers[domain.ActionBuildSite] = handlers.WithEmptyPayload(actions.HandleBuildSite)
	s.actionHandlers[domain.ActionBuildBuilding] = handlers.WithPayload(actions.HandleBuildBuilding)
	s.actionHandlers[domain.ActionDeploySiege] = handlers.WithEmptyPayload(actions.HandleDeploySiege)
	s.actionHandlers[domain.ActionEquip] = handlers.WithPayload(actions.HandleEquip)
	s.actionHandlers[domain.ActionUnequip] = handlers.WithPayload(actions.HandleUnequip)
	s.actionHandlers[domain.ActionUse] = handlers.WithPayload(actions.HandleUse)
	s.actionHandlers[domain.ActionDeposit] = handlers.WithPayload(actions.HandleDeposit)
	s.actionHandlers[domain.ActionWithdraw] = handlers.WithPayload(actions.HandleWithdraw)
	s.actionHandlers[domain.ActionEnchant] = handlers.WithPayload(actions.HandleEnchant)
	s.actionHandlers[domain.ActionChat] = handlers.WithPayload(actions.HandleChat)
	s.actionHandlers[domain.ActionRespawn] = handlers.WithEmptyPayload(actions.HandleRespawn)
	s.actionHandlers[domain.ActionCreateTeam] = handlers.WithPayload(actions.HandleCreateTeam)
	s.actionHandlers[domain.ActionJoinTeam] = handlers.WithPayload(actions.HandleJoinTeam)
	s.actionHandlers[domain.ActionLeaveTeam] = handlers.WithEmptyPayload(actions.HandleLeaveTeam)
	s.actionHandlers[domain.ActionTeamSettings] = handlers.WithPayload(actions.HandleTeamSettings)
	s.actionHandlers[domain.ActionRequestJoin] = handlers.WithPayload(actions.HandleRequestJoin)
	s.actionHandlers[domain.ActionResolveJoin] = handlers.WithPayload(actions.HandleResolveJoin)
	s.actionHandlers[domain.ActionExamine] = handlers.WithPayload(actions.HandleExamine)

	s.adminHandlers["teleport"] = handlers.WithPayload(admin.HandleTeleport)
	s.adminHandlers["summon_boss"] = handlers.WithPayload(admin.HandleSummonBoss)
	s.adminHandlers["heal"] = handlers.WithPayload(admin.HandleHeal)
	s.adminHandlers["kill"] = handlers.WithPayload(admin.HandleKill)
	s.adminHandlers["regenerate_map"] = handlers.WithEmptyPayload(admin.HandleRegenerateMap)
	s.adminHandlers["enemy_stats"] = handlers.WithPayload(admin.HandleUpdateEnemyStats)
	s.adminHandlers["enemy_drop_add"] = handlers.WithPayload(admin.HandleAddEnemyDrop)
	s.adminHandlers["enemy_drop_remove"] = handlers.WithPayload(admin.HandleRemoveEnemyDrop)
	s.adminHandlers["recipe_save"] = handlers.WithPayload(admin.HandleSaveRecipe)
	s.adminHandlers["recipe_delete"] = handlers.WithPayload(admin.HandleDeleteRecipe)
	s.adminHandlers["building_save"] = handlers.WithPayload(admin.HandleSaveBuilding)
	s.adminHandlers["content_load"] = handlers.WithPayload(admin.HandleLoadContent)
	s.adminHandlers["content_export"] = handlers.WithEmptyPayload(admin.HandleExportContent)
}

// Start запускает цикл инстанса. Цикл останавливается отменой ctx, Done сообщает о завершении.
func (s *GameService) Start(ctx context.Context) {
	go s.Instance.Run(ctx)
}

func (s *GameService) Done() <-chan struct{} {
	return s.Instance.Done()
}

// Close освобождает кеш. Журнал закрывает сам цикл при остановке.
func (s *GameService) Close() {
	s.staticCache.Close()
}

// credentials - то, что нужно горутине соединения для проверки пароля.
type credentials struct {
	exists bool
	online bool
	bot    bool
	hash   string
}

// Login проверяет имя и пароль и вводит игрока в мир. Возвращает ID игрока.
// bcrypt выполняется в вызывающей горутине, цикл инстанса его не ждет.
func (s *GameService) Login(ctx context.Context, name, password string) (string, error) {
	name = strings.TrimSpace(name)
	rules := s.Config.Rules
	if n := utf8.RuneCountInString(name); n < rules.PlayerNameMin || n > rules.PlayerNameMax {
		return "", domain.Validation("Имя должно быть от %d до %d символов.", rules.PlayerNameMin, rules.PlayerNameMax)
	}
	if password == "" {
		return "", domain.Validation("Пароль не может быть пустым.")
	}

	var creds credentials
	err := s.Instance.Call(ctx, func() {
		if p := s.Instance.World.PlayerByName(name); p != nil {
			creds = credentials{exists: true, online: p.IsOnline, bot: p.IsBot, hash: p.PasswordHash}
		}
	})
	if err != nil {
		return "", err
	}

	switch {
	case creds.bot:
		return "", domain.Precondition("Имя %q занято ботом.", name)
	case creds.online:
		return "", domain.Precondition("Игрок %q уже в игре.", name)
	}

	req := JoinRequest{Name: name, New: !creds.exists, Reply: make(chan JoinResult, 1)}
	if creds.exists {
		if err := bcrypt.CompareHashAndPassword([]byte(creds.hash), []byte(password)); err != nil {
			logger.Log.WithFields(logrus.Fields{"component": "auth", "name": name}).Info("Login rejected: bad password")
			return "", ErrBadCredentials
		}
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return "", fmt.Errorf("hash password: %w", err)
		}
		req.Hash = string(hash)
	}

	select {
	case s.Instance.JoinChan <- req:
	case <-s.Instance.Done():
		return "", ErrStopped
	case <-ctx.Done():
		return "", ctx.Err()
	}
	select {
	case res := <-req.Reply:
		return res.PlayerID, res.Err
	case <-s.Instance.Done():
		return "", ErrStopped
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Logout - соединение закрыто. Не блокирует, если инстанс уже остановлен.
func (s *GameService) Logout(playerID string) {
	select {
	case s.Instance.LeaveChan <- playerID:
	case <-s.Instance.Done():
	}
}

// ProcessCommand принимает команду от внешнего мира (WebSocket).
// Token уже проставлен соединением из сессии, клиенту он не доверяется.
func (s *GameService) ProcessCommand(externalCmd api.ClientCommand) error {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown {
		return domain.Validation("Неизвестное действие %q.", externalCmd.Action)
	}

	select {
	case s.Instance.CommandChan <- domain.InternalCommand{
		Action:  actionType,
		Token:   externalCmd.Token,
		Payload: externalCmd.Payload,
	}:
		return nil
	case <-s.Instance.Done():
		return ErrStopped
	}
}

// Admin выполняет админскую команду в цикле инстанса и возвращает ее результат.
func (s *GameService) Admin(ctx context.Context, action string, payload json.RawMessage) (handlers.Result, error) {
	handler, ok := s.adminHandlers[action]
	if !ok {
		return handlers.Result{}, domain.NotFound("Неизвестная админская команда %q.", action)
	}

	var (
		res     handlers.Result
		execErr error
	)
	err := s.Instance.Call(ctx, func() {
		res, execErr = s.Instance.executeAdmin(action, handler, payload, time.Now())
	})
	if err != nil {
		return handlers.Result{}, err
	}
	if execErr != nil {
		return handlers.Result{}, execErr
	}
	if res.Failure != nil {
		return res, res.Failure
	}
	return res, nil
}

// AdminActions - список зарегистрированных админских команд.
func (s *GameService) AdminActions() []string {
	names := make([]string, 0, len(s.adminHandlers))
	for name := range s.adminHandlers {
		names = append(names, name)
	}
	return names
}

// AddBots создает n ботов и возвращает их профили.
func (s *GameService) AddBots(ctx context.Context, n int) ([]api.PlayerView, error) {
	if n <= 0 {
		return nil, domain.Validation("Количество ботов должно быть положительным.")
	}
	var created []api.PlayerView
	err := s.Instance.Call(ctx, func() {
		now := time.Now()
		for k := 0; k < n; k++ {
			created = append(created, api.PublicPlayerView(s.Instance.addBot(now)))
		}
	})
	return created, err
}

func (s *GameService) RemoveBot(ctx context.Context, id string) error {
	var removeErr error
	if err := s.Instance.Call(ctx, func() {
		removeErr = s.Instance.removeBot(id, time.Now())
	}); err != nil {
		return err
	}
	return removeErr
}

func (s *GameService) ListBots(ctx context.Context) ([]api.PlayerView, error) {
	var bots []api.PlayerView
	err := s.Instance.Call(ctx, func() {
		bots = s.Instance.listBots()
	})
	return bots, err
}

// IsGameError - отказ, который можно показать клиенту как есть.
func IsGameError(err error) bool {
	var gameErr *domain.GameError
	return errors.As(err, &gameErr)
}
