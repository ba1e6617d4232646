package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/uhaszYsz/mmomicro/internal/engine"
	"github.com/uhaszYsz/mmomicro/pkg/api"
	"github.com/uhaszYsz/mmomicro/pkg/logger"
	"golang.org/x/time/rate"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	loginTimeout   = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и GameService
type Client struct {
	Game    *engine.GameService
	Conn    *websocket.Conn
	Send    chan api.ServerResponse
	Limiter *rate.Limiter

	PlayerID string
	updates  chan api.ServerResponse
	// closed закрывается writePump при выходе
	closed chan struct{}
}

func NewClient(game *engine.GameService, conn *websocket.Conn) *Client {
	cfg := game.Config
	return &Client{
		Game:    game,
		Conn:    conn,
		Send:    make(chan api.ServerResponse, 256),
		Limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		closed:  make(chan struct{}),
	}
}

func (c *Client) log() *logrus.Entry {
	return logger.Log.WithFields(logrus.Fields{
		"component": "ws",
		"player_id": c.PlayerID,
		"remote":    c.Conn.RemoteAddr().String(),
	})
}

// reply кладет сообщение в очередь записи, не блокируя чтение.
func (c *Client) reply(msg api.ServerResponse) {
	msg.ServerTime = time.Now().UnixMilli()
	select {
	case c.Send <- msg:
	default:
		c.log().Warn("Send buffer full, message dropped")
	}
}

func (c *Client) replyError(text string) {
	c.reply(api.ServerResponse{Type: api.MsgError, Error: text})
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		if c.PlayerID != "" {
			c.Game.Hub.Unregister(c.PlayerID, c.updates)
			c.Game.Logout(c.PlayerID)
			c.log().Info("Client disconnected")
		} else {
			close(c.Send)
		}
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection")
		}
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE (LOGIN)
	if !c.login() {
		return
	}

	// 2. ПОДПИСКА НА ОБНОВЛЕНИЯ
	c.updates = c.Game.Hub.Register(c.PlayerID)
	go func(updates <-chan api.ServerResponse) {
		defer close(c.Send)
		for msg := range updates {
			select {
			case c.Send <- msg:
			case <-c.closed:
				for range updates {
				}
				return
			}
		}
	}(c.updates)

	// INIT - первая отрисовка: STATIC и UPDATE
	if err := c.Game.ProcessCommand(api.ClientCommand{Action: "INIT", Token: c.PlayerID}); err != nil {
		c.log().WithError(err).Warn("INIT rejected")
		return
	}

	// 3. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		if err := c.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log().WithError(err).Warn("WS read error")
			}
			return
		}
		c.handleCommand(cmd)
	}
}

// login ждет LOGIN первым сообщением. Неудача отвечает ERROR и позволяет повторить попытку.
func (c *Client) login() bool {
	for {
		var cmd api.ClientCommand
		if err := c.Conn.ReadJSON(&cmd); err != nil {
			c.log().WithError(err).Debug("Handshake aborted")
			return false
		}
		if cmd.Action != api.ActionLogin {
			c.replyError("Сначала нужно войти.")
			continue
		}
		if !c.Limiter.Allow() {
			c.replyError("Слишком много запросов.")
			continue
		}

		var payload api.LoginPayload
		if err := json.Unmarshal(cmd.Payload, &payload); err != nil {
			c.replyError("Некорректные данные входа.")
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
		id, err := c.Game.Login(ctx, payload.Name, payload.Password)
		cancel()
		switch {
		case err == nil:
			c.PlayerID = id
			c.log().WithField("name", payload.Name).Info("Client logged in")
			return true
		case engine.IsGameError(err):
			c.replyError(err.Error())
		default:
			c.log().WithError(err).Error("Login failed")
			c.replyError("Внутренняя ошибка сервера.")
			return false
		}
	}
}

func (c *Client) handleCommand(cmd api.ClientCommand) {
	if !c.Limiter.Allow() {
		c.replyError("Слишком много запросов.")
		return
	}
	// Клиентскому токену не доверяем
	cmd.Token = c.PlayerID
	if err := c.Game.ProcessCommand(cmd); err != nil {
		if engine.IsGameError(err) {
			c.replyError(err.Error())
			return
		}
		c.log().WithError(err).Warn("Command not accepted")
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.closed)
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
