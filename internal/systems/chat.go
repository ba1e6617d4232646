package systems

import (
	"strings"
	"unicode/utf8"

	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/pkg/utils"
)

// SendChat добавляет сообщение в общий или командный канал.
func SendChat(env *Env, p *domain.Player, channel, text string) (domain.ChatMessage, error) {
	w := env.World
	if channel == "" {
		channel = domain.ChatGlobal
	}
	if channel != domain.ChatGlobal && channel != domain.ChatTeam {
		return domain.ChatMessage{}, domain.Validation("Неизвестный канал %q.", channel)
	}
	text = strings.TrimSpace(text)
	if n := utf8.RuneCountInString(text); n == 0 || n > w.Rules.ChatMaxLength {
		return domain.ChatMessage{}, domain.Validation("Сообщение должно быть от 1 до %d символов.", w.Rules.ChatMaxLength)
	}

	msg := domain.ChatMessage{
		ID:        utils.GenerateLogID(),
		Channel:   channel,
		SenderID:  p.ID,
		Sender:    p.Name,
		Team:      p.Team,
		Text:      text,
		Timestamp: env.Now,
		Location:  p.Pos,
	}
	w.AppendChat(msg)
	return msg, nil
}

// VisibleChat - сообщения, которые видит игрок: общий канал и канал его команды.
func VisibleChat(w *domain.World, p *domain.Player) []domain.ChatMessage {
	out := make([]domain.ChatMessage, 0, len(w.Chat))
	for _, m := range w.Chat {
		if m.Channel == domain.ChatGlobal || m.Team == p.Team {
			out = append(out, m)
		}
	}
	return out
}
