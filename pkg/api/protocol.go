package api

import (
	"encoding/json"

	"github.com/uhaszYsz/mmomicro/internal/domain"
)

// Типы исходящих сообщений
const (
	MsgUpdate  = "UPDATE"
	MsgStatic  = "STATIC"
	MsgLog     = "LOG"
	MsgError   = "ERROR"
	MsgProfile = "PROFILE"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Заполнены только поля, относящиеся к Type.
type ServerResponse struct {
	// Type тип сообщения: UPDATE, STATIC, LOG, ERROR, PROFILE.
	Type string `json:"type"`

	// Tick номер тика симуляции, на котором собрано сообщение.
	Tick uint64 `json:"tick"`

	// ServerTime время сервера в Unix миллисекундах. Клиент считает по нему таймеры.
	ServerTime int64 `json:"serverTime"`

	// MyEntityID ID игрока, которым управляет данный клиент.
	MyEntityID string `json:"myEntityId,omitempty"`

	// Player собственный профиль без секретов.
	Player *PlayerView `json:"player,omitempty"`

	// Players и Objects - содержимое текущей клетки игрока.
	Players []PlayerView `json:"players,omitempty"`
	Objects []ObjectView `json:"objects,omitempty"`

	// Chat видимая игроку история чата.
	Chat []domain.ChatMessage `json:"chat,omitempty"`

	// Logs новые записи лога с прошлого сообщения.
	Logs []LogEntry `json:"logs,omitempty"`

	// Static готовый JSON статических данных (см. StaticData).
	Static json.RawMessage `json:"static,omitempty"`

	// Profile публичный профиль другого игрока (ответ на EXAMINE).
	Profile *PlayerView `json:"profile,omitempty"`

	// Error текст отказа для Type=ERROR.
	Error string `json:"error,omitempty"`
}

// PlayerView это DTO игрока. Приватные поля заполняются только в собственном профиле.
type PlayerView struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Team     string          `json:"team"`
	Pos      domain.Position `json:"pos"`
	IsOnline bool            `json:"isOnline"`
	IsDead   bool            `json:"isDead"`
	IsBot    bool            `json:"isBot,omitempty"`

	Stats     domain.Stats            `json:"stats"`
	Equipment map[string]*domain.Item `json:"equipment,omitempty"`

	BaseStats       *domain.Stats            `json:"baseStats,omitempty"`
	Inventory       domain.Inventory         `json:"inventory,omitempty"`
	Skills          map[string]*domain.Skill `json:"skills,omitempty"`
	Buffs           []domain.Buff            `json:"buffs,omitempty"`
	Attacking       string                   `json:"attacking,omitempty"`
	AttackingPlayer string                   `json:"attackingPlayer,omitempty"`
	NextAttackAt    int64                    `json:"nextAttack,omitempty"`
	IsAdmin         bool                     `json:"isAdmin,omitempty"`
}

// ObjectView это DTO объекта клетки: моба, площадки или осадной машины.
type ObjectView struct {
	ID    string          `json:"id"`
	Type  string          `json:"type"` // MOB, CONSTRUCTION_SITE, SIEGE_MACHINE
	Name  string          `json:"name"`
	Pos   domain.Position `json:"pos"`
	Stats domain.Stats    `json:"stats"`

	Level     int      `json:"level,omitempty"`
	Team      string   `json:"team,omitempty"`
	Attackers []string `json:"attackers,omitempty"`

	// Моб
	Template     string `json:"template,omitempty"`
	Biome        string `json:"biome,omitempty"`
	IsBoss       bool   `json:"isBoss,omitempty"`
	Weakness     string `json:"weakness,omitempty"`
	RespawnUntil int64  `json:"respawnUntil,omitempty"`

	// Площадка
	Bricks         int                `json:"bricks,omitempty"`
	RequiredBricks int                `json:"requiredBricks,omitempty"`
	CompletionTime int64              `json:"completionTime,omitempty"`
	Buildings      []*domain.Building `json:"buildings,omitempty"`
	// PersonalStorage содержимое личного хранилища смотрящего игрока.
	PersonalStorage domain.Inventory `json:"personalStorage,omitempty"`

	// Осадная машина
	TargetID   string `json:"targetId,omitempty"`
	NextAttack int64  `json:"nextAttack,omitempty"`
}

// StaticData редко меняющиеся таблицы. Кодируется один раз на версию.
type StaticData struct {
	Version   string         `json:"version"`
	MapSize   int            `json:"mapSize"`
	Biomes    any            `json:"biomes"`
	BiomeMap  []string       `json:"biomeMap"`
	Enemies   any            `json:"enemies"`
	Buildings any            `json:"buildings"`
	Recipes   any            `json:"recipes"`
	Teams     []*domain.Team `json:"teams"`
}

// LogEntry представляет одну запись в игровом логе.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, COMBAT, LOOT, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token ID игрока. Проставляется сервером из сессии, клиентское значение игнорируется.
	Token string `json:"token,omitempty"`

	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// ActionLogin - первое сообщение соединения.
const ActionLogin = "LOGIN"

// --- Payloads ---

// LoginPayload данные входа.
type LoginPayload struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// PositionPayload целевая клетка (MOVE).
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// EntityPayload используется для действий, нацеленных на другую сущность (ATTACK, EXAMINE).
type EntityPayload struct {
	TargetID string `json:"targetId"`
}

// CraftPayload постановка рецепта в очередь здания.
type CraftPayload struct {
	BuildingIndex int `json:"buildingIndex"`
	RecipeID      int `json:"recipeId"`
}

// BuildingPayload постройка здания по имени шаблона.
type BuildingPayload struct {
	Name string `json:"buildingName"`
}

// DonateBuildingPayload вклад материала в улучшение здания.
type DonateBuildingPayload struct {
	BuildingIndex int `json:"buildingIndex"`
	ItemIndex     int `json:"itemIndex"`
	Quantity      int `json:"quantity"`
}

// ItemPayload действие с предметом инвентаря (EQUIP, USE).
type ItemPayload struct {
	ItemIndex int `json:"itemIndex"`
}

// SlotPayload снятие предмета из слота.
type SlotPayload struct {
	Slot string `json:"slot"`
}

// StoragePayload DEPOSIT/WITHDRAW. ItemIndex - индекс в инвентаре или в хранилище.
type StoragePayload struct {
	BuildingIndex int    `json:"buildingIndex"`
	ItemIndex     int    `json:"itemIndex"`
	Kind          string `json:"storageType"`
	Quantity      int    `json:"quantity,omitempty"`
}

// EnchantPayload наложение руны на предмет.
type EnchantPayload struct {
	ItemIndex int `json:"itemIndex"`
	RuneIndex int `json:"runeIndex"`
}

// ChatPayload сообщение в канал.
type ChatPayload struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

// TeamNamePayload создание команды.
type TeamNamePayload struct {
	Name string `json:"teamName"`
}

// TeamPayload действие с командой по ID.
type TeamPayload struct {
	TeamID string `json:"teamId"`
}

// TeamSettingsPayload настройки команды.
type TeamSettingsPayload struct {
	TeamID      string `json:"teamId"`
	Description string `json:"description"`
	JoinPolicy  string `json:"joinPolicy"`
	Color       string `json:"color"`
}

// ResolveJoinPayload решение по заявке.
type ResolveJoinPayload struct {
	TeamID   string `json:"teamId"`
	PlayerID string `json:"playerId"`
	Accept   bool   `json:"accept"`
}
