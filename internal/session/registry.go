package session

import (
	"errors"
	"sync"

	"github.com/ndbaker1/tanks/internal/game"
	"github.com/ndbaker1/tanks/pkg/utils"
)

// ErrSessionExists возвращается при создании сессии с занятым ID.
// Существующую сессию молча перезаписывать нельзя.
var ErrSessionExists = errors.New("session already exists")

// Registry владеет всеми сессиями процесса: ID -> Session.
// Мьютекс реестра защищает только саму мапу. Дисциплина блокировок:
// под мьютексом реестра НИКОГДА не берется мьютекс сессии - сначала
// ищем и достаем указатель, отпускаем реестр, потом работаем с сессией.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	// env - фабрика окружений для новых сессий
	env func() *game.Environment
}

// NewRegistry создает реестр. envFactory выдает окружение каждой
// новой сессии; nil означает пустую карту без стен.
func NewRegistry(envFactory func() *game.Environment) *Registry {
	if envFactory == nil {
		envFactory = game.NewEnvironment
	}
	return &Registry{
		sessions: make(map[string]*Session),
		env:      envFactory,
	}
}

// Create регистрирует новую пустую сессию.
// Пустой requestedID означает сгенерировать случайный код; коллизия
// кода (сколь угодно маловероятная) повторяет генерацию, а занятый
// запрошенный ID - ошибка ErrSessionExists.
func (r *Registry) Create(requestedID string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := requestedID
	if id == "" {
		for {
			id = utils.GenerateSessionID()
			if _, taken := r.sessions[id]; !taken {
				break
			}
		}
	} else if _, taken := r.sessions[id]; taken {
		return nil, ErrSessionExists
	}

	s := New(id, r.env())
	r.sessions[id] = s
	return s, nil
}

// Get возвращает сессию по ID.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Remove удаляет сессию из реестра. Сессия с нулем активных
// участников удаляется немедленно - это единственный путь ее смерти.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Snapshot возвращает срез живых сессий для планировщика тиков.
// Срез - копия: планировщик работает с сессиями уже без мьютекса реестра.
func (r *Registry) Snapshot() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	return sessions
}

// Count возвращает количество живых сессий.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
