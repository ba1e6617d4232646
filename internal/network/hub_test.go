package network

import (
	"os"
	"testing"

	"github.com/uhaszYsz/mmomicro/pkg/api"
	"github.com/uhaszYsz/mmomicro/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestBroadcaster_SendAndReplace(t *testing.T) {
	b := NewBroadcaster()
	first := b.Register("p1")
	b.SendTo("p1", api.ServerResponse{Type: api.MsgLog})
	if msg := <-first; msg.Type != api.MsgLog {
		t.Errorf("got %q, want LOG", msg.Type)
	}

	// Повторная регистрация закрывает старый канал.
	second := b.Register("p1")
	if _, ok := <-first; ok {
		t.Error("old channel still open after re-register")
	}

	// Отписка устаревшим каналом не трогает новую подписку.
	b.Unregister("p1", first)
	if !b.HasSubscriber("p1") {
		t.Fatal("stale unregister removed the live subscriber")
	}
	b.Unregister("p1", second)
	if b.HasSubscriber("p1") || b.SubscriberCount() != 0 {
		t.Error("subscriber not removed")
	}
	if _, ok := <-second; ok {
		t.Error("channel not closed on unregister")
	}
}

func TestBroadcaster_DropsWhenFull(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("slow")
	for i := 0; i < subscriberBuffer+10; i++ {
		b.Broadcast(api.ServerResponse{Type: api.MsgUpdate})
	}
	if len(ch) != subscriberBuffer {
		t.Errorf("buffered = %d, want %d", len(ch), subscriberBuffer)
	}
	// Отправка неизвестному ID ничего не делает.
	b.SendTo("nobody", api.ServerResponse{})
}
