package engine

import (
	"container/heap"
	"time"

	"github.com/uhaszYsz/mmomicro/pkg/logger"
)

// TurnManager - расписание ботов: у каждого свой срок следующего решения.
type TurnManager struct {
	queue   TurnQueue
	itemMap map[string]*TurnItem
}

func NewTurnManager() *TurnManager {
	return &TurnManager{
		queue:   make(TurnQueue, 0),
		itemMap: make(map[string]*TurnItem),
	}
}

// Schedule ставит бота в очередь или переносит его срок.
func (tm *TurnManager) Schedule(actorID string, dueAt time.Time) {
	if item, ok := tm.itemMap[actorID]; ok {
		tm.queue.Update(item, dueAt)
		return
	}
	item := &TurnItem{ActorID: actorID, DueAt: dueAt}
	heap.Push(&tm.queue, item)
	tm.itemMap[actorID] = item

	logger.Log.WithField("actor_id", actorID).Debug("Bot added to TurnManager")
}

// PeekNext возвращает ближайший элемент, не удаляя его.
func (tm *TurnManager) PeekNext() *TurnItem {
	if tm.queue.Len() == 0 {
		return nil
	}
	return tm.queue[0]
}

// PopDue извлекает всех ботов, чей срок наступил к now, в порядке сроков.
// Извлеченные боты удаляются из расписания, их нужно поставить заново.
func (tm *TurnManager) PopDue(now time.Time) []string {
	var due []string
	for tm.queue.Len() > 0 && !tm.queue[0].DueAt.After(now) {
		item := heap.Pop(&tm.queue).(*TurnItem)
		delete(tm.itemMap, item.ActorID)
		due = append(due, item.ActorID)
	}
	return due
}

// Remove снимает бота с расписания.
func (tm *TurnManager) Remove(actorID string) {
	if item, ok := tm.itemMap[actorID]; ok {
		heap.Remove(&tm.queue, item.Index)
		delete(tm.itemMap, actorID)
	}
}

func (tm *TurnManager) Has(actorID string) bool {
	_, ok := tm.itemMap[actorID]
	return ok
}

func (tm *TurnManager) Len() int {
	return tm.queue.Len()
}

// DebugDump возвращает снимок очереди для отладки
func (tm *TurnManager) DebugDump() []map[string]interface{} {
	// Инициализируем как пустой слайс, а не nil. Тогда в JSON это будет "[]", а не "null"
	result := make([]map[string]interface{}, 0)

	for _, item := range tm.queue {
		result = append(result, map[string]interface{}{
			"id":    item.ActorID,
			"dueAt": item.DueAt.UnixMilli(),
			"index": item.Index,
		})
	}
	return result
}
