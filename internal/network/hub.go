package network

import (
	"github.com/sasha-s/go-deadlock"
	"github.com/uhaszYsz/mmomicro/pkg/api"
	"github.com/uhaszYsz/mmomicro/pkg/logger"
)

// Размер личного буфера подписчика. Медленный клиент теряет сообщения, а не тормозит инстанс.
const subscriberBuffer = 100

// Broadcaster занимается только рассылкой сообщений подписчикам.
// Мира не касается: инстанс кладет сюда готовые ответы.
type Broadcaster struct {
	mu deadlock.RWMutex
	// Мапа: PlayerID -> Личный канал
	subscribers map[string]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
	}
}

// Register создает личный канал для игрока
func (b *Broadcaster) Register(playerID string) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[playerID]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, subscriberBuffer)
	b.subscribers[playerID] = ch
	return ch
}

// Unregister удаляет подписчика, но только если ch все еще его текущий канал.
// Так закрытие старого соединения не отписывает новое.
func (b *Broadcaster) Unregister(playerID string, ch chan api.ServerResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if cur, ok := b.subscribers[playerID]; ok && cur == ch {
		close(cur)
		delete(b.subscribers, playerID)
	}
}

// SendTo отправляет сообщение конкретному ID (Unicast)
func (b *Broadcaster) SendTo(playerID string, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[playerID]; ok {
		select {
		case ch <- msg:
		default:
			logger.Log.WithField("player_id", playerID).Debug("Hub: channel full, message dropped")
		}
	}
}

// Broadcast отправляет всем подписчикам
func (b *Broadcaster) Broadcast(msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

// HasSubscriber проверяет, подключен ли игрок
func (b *Broadcaster) HasSubscriber(playerID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[playerID]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
