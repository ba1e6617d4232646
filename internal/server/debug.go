package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/uhaszYsz/mmomicro/internal/engine"
	"github.com/uhaszYsz/mmomicro/pkg/logger"
)

const debugTimeout = 2 * time.Second

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/world", h.handleWorld)
	mux.HandleFunc("/debug/entities", h.handleDumpEntities)
	mux.HandleFunc("/debug/queue", h.handleTurnQueue)
}

// /debug/world - сводка по инстансу
func (h *DebugHandler) handleWorld(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	sum, err := h.Service.Summary(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, sum)
}

// /debug/entities?kind=players|objects - полный дамп сущностей, включая скрытые поля
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	kind := r.URL.Query().Get("kind")
	switch kind {
	case "", "players", "objects":
	default:
		http.Error(w, "unknown kind", http.StatusBadRequest)
		return
	}

	raw, err := h.Service.DumpEntities(ctx, kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, raw)
}

// /debug/queue - расписание ходов ботов
func (h *DebugHandler) handleTurnQueue(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	dump, err := h.Service.BotQueue(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if len(dump) == 0 {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, dump)
}

// requestContext ограничивает ожидание очереди вызовов инстанса.
func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), debugTimeout)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Пустая очередь отдается как [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.WithError(err).Debug("debug response write failed")
	}
}
