package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	_ "net/http/pprof" // Profiling
	"time"

	"github.com/uhaszYsz/mmomicro/internal/engine"
	"github.com/uhaszYsz/mmomicro/internal/version"
	"github.com/uhaszYsz/mmomicro/pkg/logger"
)

type Server struct {
	Engine *engine.GameService
	Port   string

	srv *http.Server
}

func New(engine *engine.GameService, port string) *Server {
	s := &Server{
		Engine: engine,
		Port:   port,
	}
	s.srv = &http.Server{
		Addr:              ":" + port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler собирает все маршруты: WebSocket, служебные, debug и админку.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	NewDebugHandler(s.Engine).RegisterRoutes(mux)
	mux.Handle("/debug/pprof/", http.DefaultServeMux)

	if secret := s.Engine.Config.AdminSecret; secret != "" {
		mux.Handle("/admin/", NewAdminRouter(s.Engine, []byte(secret)))
	} else {
		logger.Log.WithField("component", "http").Warn("Admin API disabled: admin_secret is empty")
	}
	return mux
}

// Run запускает HTTP сервер. После Shutdown возвращает nil.
func (s *Server) Run() error {
	logger.Log.Infof("MMO server running on :%s", s.Port)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown перестает принимать соединения. Открытые WebSocket закроются вместе с процессом.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Warn("Upgrade error")
		return
	}

	client := NewClient(s.Engine, conn)

	// Запускаем пампы
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}
