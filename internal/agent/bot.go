// Package agent - поведение ботов.
//
// Бот - обычный игрок с флагом IsBot. Он не подключается по сети: инстанс
// опрашивает его по расписанию, а решение превращается в такую же команду,
// какую прислал бы клиент, и проходит через те же хендлеры.
package agent

import (
	"encoding/json"
	"math/rand"
	"time"

	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/pkg/api"
	"github.com/uhaszYsz/mmomicro/pkg/utils"
)

// Интервал между решениями бота
const (
	MinThinkDelay = 2 * time.Second
	MaxThinkDelay = 7 * time.Second
)

// Веса решений в процентах (накопительно): движение 30, атака 30, чат 20, ожидание 20.
const (
	moveThreshold   = 30
	attackThreshold = 60
	chatThreshold   = 80
)

var phrases = []string{
	"Всем привет!",
	"Кто со мной на босса?",
	"Продам кирпичи, недорого.",
	"Здесь слишком много гоблинов.",
	"Ищу команду.",
	"Ух, чуть не погиб.",
	"Отличный лут сегодня!",
}

var names = []string{"Bolt", "Rusty", "Gizmo", "Sprocket", "Widget", "Cog", "Tinker", "Servo"}

// RandomName возвращает имя бота длиной не больше 15 символов.
func RandomName(rng *rand.Rand) string {
	return "Bot" + names[rng.Intn(len(names))] + utils.GenerateShortID()[:3]
}

// NextDelay - случайная пауза до следующего решения.
func NextDelay(rng *rand.Rand) time.Duration {
	ms := utils.RandRange(rng, int(MinThinkDelay/time.Millisecond), int(MaxThinkDelay/time.Millisecond))
	return time.Duration(ms) * time.Millisecond
}

// Decide выбирает действие бота. false - бот пропускает ход.
func Decide(rng *rand.Rand, w *domain.World, bot *domain.Player) (domain.InternalCommand, bool) {
	if bot.IsDead {
		return command(bot, domain.ActionRespawn, nil), true
	}

	roll := utils.Roll(rng)
	switch {
	case roll < moveThreshold:
		return decideMove(rng, w, bot)
	case roll < attackThreshold:
		return decideAttack(rng, w, bot)
	case roll < chatThreshold:
		text := phrases[rng.Intn(len(phrases))]
		return command(bot, domain.ActionChat, api.ChatPayload{Channel: domain.ChatGlobal, Text: text}), true
	default:
		return domain.InternalCommand{}, false
	}
}

func decideMove(rng *rand.Rand, w *domain.World, bot *domain.Player) (domain.InternalCommand, bool) {
	var options []domain.Position
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			to := bot.Pos.Shift(dx, dy)
			if (dx != 0 || dy != 0) && w.InBounds(to) {
				options = append(options, to)
			}
		}
	}
	if len(options) == 0 {
		return domain.InternalCommand{}, false
	}
	to := options[rng.Intn(len(options))]
	return command(bot, domain.ActionMove, api.PositionPayload{X: to.X, Y: to.Y}), true
}

// decideAttack выбирает живого моба в клетке. Бот в бою продолжает бой.
func decideAttack(rng *rand.Rand, w *domain.World, bot *domain.Player) (domain.InternalCommand, bool) {
	if bot.InCombat() {
		return domain.InternalCommand{}, false
	}
	var targets []string
	for _, obj := range w.CellAt(bot.Pos).Objects {
		if m, ok := obj.(*domain.Mob); ok && m.IsAlive() && m.Attackers.Len() < m.Attackers.Max {
			targets = append(targets, m.ID)
		}
	}
	if len(targets) == 0 {
		return domain.InternalCommand{}, false
	}
	target := targets[rng.Intn(len(targets))]
	return command(bot, domain.ActionAttack, api.EntityPayload{TargetID: target}), true
}

func command(bot *domain.Player, action domain.ActionType, payload any) domain.InternalCommand {
	var raw json.RawMessage
	if payload != nil {
		// Payload-структуры из api всегда сериализуемы
		raw, _ = json.Marshal(payload)
	}
	return domain.InternalCommand{Action: action, Token: bot.ID, Payload: raw}
}
