package engine

import (
	"container/heap"
	"time"
)

// TurnItem обертка для элемента очереди приоритетов
type TurnItem struct {
	ActorID string    // ID бота
	DueAt   time.Time // Момент следующего решения. Чем раньше, тем выше приоритет.
	Index   int       // Индекс в куче (нужен для update)
}

// TurnQueue реализует heap.Interface и хранит TurnItems
type TurnQueue []*TurnItem

func (pq TurnQueue) Len() int { return len(pq) }

func (pq TurnQueue) Less(i, j int) bool {
	// MinHeap по времени; при равенстве порядок по ID, чтобы обход был детерминирован
	if pq[i].DueAt.Equal(pq[j].DueAt) {
		return pq[i].ActorID < pq[j].ActorID
	}
	return pq[i].DueAt.Before(pq[j].DueAt)
}

func (pq TurnQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *TurnQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*TurnItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *TurnQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*pq = old[0 : n-1]
	return item
}

// Update переносит срок элемента в очереди
func (pq *TurnQueue) Update(item *TurnItem, dueAt time.Time) {
	item.DueAt = dueAt
	heap.Fix(pq, item.Index)
}
