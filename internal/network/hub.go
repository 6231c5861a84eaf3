package network

import (
	"errors"
	"sync"

	"github.com/ndbaker1/tanks/pkg/api"
)

// ErrClientExists возвращается при попытке зарегистрировать занятый ID подключения.
var ErrClientExists = errors.New("client id is already connected")

// размер буфера исходящего канала клиента
const sendBufferSize = 256

type client struct {
	// send - единственная ручка для отправки этому подключению.
	// Пишут в нее два независимых производителя: протокольные рассылки
	// и планировщик тиков, поэтому канал и только канал.
	send chan api.ServerEvent
	// sessionID - обратная ссылка на текущую сессию клиента.
	// Именно идентификатор, а не указатель - владеет сессиями реестр сессий.
	sessionID string
}

// Hub - реестр подключений: ID -> исходящий канал + ссылка на сессию.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*client),
	}
}

// Register создает исходящий канал для нового подключения.
// Повторная регистрация занятого ID отклоняется - дубликаты
// отсеиваются еще на апгрейде соединения.
func (h *Hub) Register(clientID string) (chan api.ServerEvent, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[clientID]; ok {
		return nil, ErrClientExists
	}

	ch := make(chan api.ServerEvent, sendBufferSize)
	h.clients[clientID] = &client{send: ch}
	return ch, nil
}

// Unregister удаляет подключение и закрывает его канал.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.clients[clientID]; ok {
		close(c.send)
		delete(h.clients, clientID)
	}
}

// Has проверяет, подключен ли клиент.
func (h *Hub) Has(clientID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[clientID]
	return ok
}

// SendTo отправляет событие конкретному клиенту (Unicast).
// Отправка неблокирующая: медленный клиент теряет кадры, а не тормозит тик.
func (h *Hub) SendTo(clientID string, event api.ServerEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if c, ok := h.clients[clientID]; ok {
		select {
		case c.send <- event:
		default:
		}
	}
}

// SendToAll отправляет событие набору клиентов.
func (h *Hub) SendToAll(clientIDs []string, event api.ServerEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, id := range clientIDs {
		if c, ok := h.clients[id]; ok {
			select {
			case c.send <- event:
			default:
			}
		}
	}
}

// SetSession запоминает сессию клиента. Пустая строка очищает ссылку.
func (h *Hub) SetSession(clientID, sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.clients[clientID]; ok {
		c.sessionID = sessionID
	}
}

// SessionOf возвращает ID сессии клиента, если он в ней состоит.
func (h *Hub) SessionOf(clientID string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if c, ok := h.clients[clientID]; ok && c.sessionID != "" {
		return c.sessionID, true
	}
	return "", false
}

// Count возвращает количество активных подключений.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
