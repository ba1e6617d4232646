package systems

import (
	"errors"
	"strings"
	"testing"

	"github.com/uhaszYsz/mmomicro/internal/domain"
)

func TestSendChat(t *testing.T) {
	env := newTestEnv(t)
	p := addPlayer(env, "p", domain.Position{X: 1, Y: 2})

	tests := []struct {
		name    string
		channel string
		text    string
		wantErr error
	}{
		{"global default", "", "  привет  ", nil},
		{"team", domain.ChatTeam, "сбор у площадки", nil},
		{"empty", domain.ChatGlobal, "   ", domain.ErrValidation},
		{"too long", domain.ChatGlobal, strings.Repeat("a", 201), domain.ErrValidation},
		{"unknown channel", "trade", "wts", domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SendChat(env, p, tt.channel, tt.text)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if len(env.World.Chat) != 2 {
		t.Fatalf("chat length = %d, want 2", len(env.World.Chat))
	}
	first := env.World.Chat[0]
	if first.Channel != domain.ChatGlobal || first.Text != "привет" || first.Location != p.Pos || first.ID == "" {
		t.Errorf("unexpected message %+v", first)
	}
}

func TestVisibleChat_TeamChannel(t *testing.T) {
	env := newTestEnv(t)
	red := addPlayer(env, "red", domain.Position{})
	mate := addPlayer(env, "mate", domain.Position{})
	blue := addPlayer(env, "blue", domain.Position{})
	addTeam(env, "team_red", red, mate)
	addTeam(env, "team_blue", blue)

	mustSend := func(p *domain.Player, channel, text string) {
		t.Helper()
		if _, err := SendChat(env, p, channel, text); err != nil {
			t.Fatalf("SendChat: %v", err)
		}
	}
	mustSend(red, domain.ChatTeam, "secret")
	mustSend(blue, domain.ChatGlobal, "hello")

	if got := len(VisibleChat(env.World, mate)); got != 2 {
		t.Errorf("teammate sees %d messages, want 2", got)
	}
	if got := VisibleChat(env.World, blue); len(got) != 1 || got[0].Text != "hello" {
		t.Errorf("enemy sees %+v", got)
	}
}

func TestAppendChat_Backlog(t *testing.T) {
	env := newTestEnv(t)
	env.World.Rules.ChatBacklog = 3
	p := addPlayer(env, "p", domain.Position{})
	for _, text := range []string{"1", "2", "3", "4", "5"} {
		if _, err := SendChat(env, p, "", text); err != nil {
			t.Fatalf("SendChat: %v", err)
		}
	}
	if len(env.World.Chat) != 3 || env.World.Chat[0].Text != "3" {
		t.Errorf("backlog = %+v", env.World.Chat)
	}
}
