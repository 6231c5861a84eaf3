package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ndbaker1/tanks/internal/engine"
	"github.com/ndbaker1/tanks/pkg/api"
	"github.com/ndbaker1/tanks/pkg/logger"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между WebSocket и Service: читает события клиента
// в обработчик протокола и гонит исходящий канал хаба обратно в сокет.
type Client struct {
	Engine *engine.Service
	Conn   *websocket.Conn
	// ID подключения, он же ID игрока во всех реестрах
	ID string
	// send - исходящий канал, выданный хабом при регистрации.
	// Закрывает его только Hub.Unregister.
	send <-chan api.ServerEvent
}

func NewClient(eng *engine.Service, conn *websocket.Conn, id string, send <-chan api.ServerEvent) *Client {
	return &Client{
		Engine: eng,
		Conn:   conn,
		ID:     id,
		send:   send,
	}
}

// readPump читает события от клиента и отдает их обработчику протокола.
// Разрыв сокета по любой причине завершает пампу и хоронит подключение.
func (c *Client) readPump() {
	defer func() {
		// HandleDisconnect помечает участника неактивным и снимает
		// подключение с хаба - это закрывает канал send, а с ним и writePump.
		c.Engine.HandleDisconnect(c.ID)
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

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.WithError(err).Error("websocket read error")
			}
			break
		}
		c.Engine.HandleMessage(c.ID, raw)
	}
}

// writePump отправляет события клиенту + Ping.
// Живет, пока хаб не закроет канал send.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case event, ok := <-c.send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(event); err != nil {
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
