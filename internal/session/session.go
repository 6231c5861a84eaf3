package session

import (
	"errors"
	"sort"
	"sync"

	"github.com/ndbaker1/tanks/internal/game"
)

// ErrNotMember возвращается при смене статуса клиента, которого нет в сессии.
var ErrNotMember = errors.New("client is not a member of the session")

// Session - один изолированный матч: состав участников, владелец
// и авторитетное состояние мира. Все мутации идут под одним
// эксклюзивным мьютексом - цикл тиков и обработчик событий
// сериализуются на нем же.
type Session struct {
	// ID сессии, он же код для входа
	ID string

	mu sync.Mutex
	// owner - участник с правами хоста; переназначается при его уходе
	owner string
	// statuses: ID клиента -> активен ли он сейчас.
	// Неактивный участник (отвалившийся сокет) сохраняет свой танк.
	statuses map[string]bool
	// game - мир сессии; снаружи доступен только через методы Session
	game *game.State
}

// New создает пустую сессию поверх готового окружения.
// Владельца у пустой сессии нет - им станет первый участник.
func New(id string, env *game.Environment) *Session {
	return &Session{
		ID:       id,
		statuses: make(map[string]bool),
		game:     game.NewState(env),
	}
}

// InsertClient добавляет клиента в сессию и создает ему танк.
// Повторный вход того же клиента - идемпотентный no-op (false).
func (s *Session) InsertClient(clientID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.statuses[clientID]; ok {
		return false
	}

	s.statuses[clientID] = true
	s.game.AddPlayer(clientID)
	if s.owner == "" {
		s.owner = clientID
	}
	return true
}

// RemoveClient полностью убирает клиента из сессии вместе с танком.
// Возвращает true, если в сессии не осталось ни одного активного
// участника - тогда вызывающий обязан удалить сессию из реестра.
func (s *Session) RemoveClient(clientID string) (empty bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.statuses[clientID]; !ok {
		return s.noActiveLocked()
	}

	delete(s.statuses, clientID)
	s.game.RemovePlayer(clientID)

	if s.owner == clientID {
		s.owner = s.anyActiveLocked()
	}
	return s.noActiveLocked()
}

// SetClientStatus переключает активность участника (дисконнект/реконнект),
// не трогая его танк. Возвращает true, если активных больше не осталось.
func (s *Session) SetClientStatus(clientID string, active bool) (empty bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.statuses[clientID]; !ok {
		return s.noActiveLocked(), ErrNotMember
	}
	s.statuses[clientID] = active

	if !active && s.owner == clientID {
		if next := s.anyActiveLocked(); next != "" {
			s.owner = next
		}
	}
	return s.noActiveLocked(), nil
}

// ContainsClient проверяет членство клиента (активного или нет).
func (s *Session) ContainsClient(clientID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.statuses[clientID]
	return ok
}

// Owner возвращает текущего владельца сессии.
func (s *Session) Owner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owner
}

// ClientIDs возвращает отсортированный список всех участников.
func (s *Session) ClientIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.statuses))
	for id := range s.statuses {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ActiveClientIDs возвращает отсортированный список активных участников.
func (s *Session) ActiveClientIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.statuses))
	for id, active := range s.statuses {
		if active {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// --- Игровые операции. Каждая берет тот же мьютекс сессии, ---
// --- что и цикл тиков - гонок за мир нет по построению.     ---

func (s *Session) SetPlayerMovement(clientID string, direction game.Vector2) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.SetPlayerMovement(clientID, direction)
}

func (s *Session) SetPlayerAngle(clientID string, angle float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.SetPlayerAngle(clientID, angle)
}

func (s *Session) Shoot(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.Shoot(clientID)
}

// TickResult - результат одного тика: снапшот мира, взрывы
// и список активных участников для рассылки.
type TickResult struct {
	Tanks      []game.Player
	Bullets    []game.Bullet
	Exploded   []game.Vector2
	Recipients []string
}

// Tick продвигает мир сессии на один шаг и собирает снапшот
// под одной блокировкой. Пустая сессия тикает вхолостую.
func (s *Session) Tick() TickResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	exploded := s.game.Tick()

	recipients := make([]string, 0, len(s.statuses))
	for id, active := range s.statuses {
		if active {
			recipients = append(recipients, id)
		}
	}
	sort.Strings(recipients)

	return TickResult{
		Tanks:      s.game.PlayerSnapshots(),
		Bullets:    s.game.BulletSnapshots(),
		Exploded:   exploded,
		Recipients: recipients,
	}
}

// Snapshot возвращает срез мира без продвижения физики.
// Нужен только диагностическим ручкам - игровой цикл ходит через Tick.
func (s *Session) Snapshot() ([]game.Player, []game.Bullet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.PlayerSnapshots(), s.game.BulletSnapshots()
}

// anyActiveLocked выбирает произвольного активного участника.
// Вызывается только под s.mu.
func (s *Session) anyActiveLocked() string {
	for id, active := range s.statuses {
		if active {
			return id
		}
	}
	return ""
}

// noActiveLocked - нет ли в сессии активных участников. Только под s.mu.
func (s *Session) noActiveLocked() bool {
	for _, active := range s.statuses {
		if active {
			return false
		}
	}
	return true
}
