package engine

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ndbaker1/tanks/internal/network"
	"github.com/ndbaker1/tanks/internal/session"
	"github.com/ndbaker1/tanks/pkg/api"
	"github.com/ndbaker1/tanks/pkg/logger"
)

// Service - обработчик протокола событий: разбирает входящие сообщения,
// транслирует их в операции над реестрами и рассылает ростерные события.
// Результаты физики Service НЕ рассылает - это работа планировщика тиков,
// чтобы у снапшота мира был ровно один писатель на кадр.
type Service struct {
	Hub      *network.Hub
	Sessions *session.Registry
}

func NewService(hub *network.Hub, sessions *session.Registry) *Service {
	return &Service{
		Hub:      hub,
		Sessions: sessions,
	}
}

// HandleMessage - единая точка входа для сырых сообщений клиента.
// Нечитаемый ввод логируется, отбрасывается и отзывается Error-событием;
// соединение при этом живет дальше.
func (s *Service) HandleMessage(clientID string, raw []byte) {
	var event api.ClientEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"client": clientID,
			"error":  err,
		}).Error("failed to parse client event")
		s.Hub.SendTo(clientID, api.NewErrorEvent("malformed event"))
		return
	}

	switch event.Event {
	case api.EventCreateSession:
		s.handleCreateSession(clientID)

	case api.EventJoinSession:
		var payload api.SessionPayload
		if !s.decode(clientID, event.Data, &payload) {
			return
		}
		s.handleJoinSession(clientID, payload.SessionID)

	case api.EventLeaveSession:
		s.handleLeaveSession(clientID)

	case api.EventMovementUpdate:
		var payload api.MovementPayload
		if !s.decode(clientID, event.Data, &payload) {
			return
		}
		if current, ok := s.currentSession(clientID); ok {
			current.SetPlayerMovement(clientID, payload.Direction)
		}

	case api.EventAimUpdate:
		var payload api.AimPayload
		if !s.decode(clientID, event.Data, &payload) {
			return
		}
		if current, ok := s.currentSession(clientID); ok {
			current.SetPlayerAngle(clientID, payload.Angle)
		}

	case api.EventShoot:
		if current, ok := s.currentSession(clientID); ok {
			current.Shoot(clientID)
		}

	default:
		logger.Log.WithFields(logrus.Fields{
			"client": clientID,
			"event":  event.Event,
		}).Error("unknown client event")
		s.Hub.SendTo(clientID, api.NewErrorEvent(fmt.Sprintf("unknown event %q", event.Event)))
	}
}

// HandleConnect вызывается транспортом после регистрации подключения.
// Вернувшийся участник сессии снова помечается активным и продолжает
// управлять своим прежним танком.
func (s *Service) HandleConnect(clientID string) {
	logger.Log.WithField("client", clientID).Info("client connected")

	// Реестр сессий не индексирован по клиентам - ищем перебором
	// по снапшоту, не держа при этом мьютекс реестра.
	for _, sess := range s.Sessions.Snapshot() {
		if !sess.ContainsClient(clientID) {
			continue
		}
		if _, err := sess.SetClientStatus(clientID, true); err != nil {
			logger.Log.WithError(err).Warn("failed to reactivate client")
			return
		}
		s.Hub.SetSession(clientID, sess.ID)

		// Соединение могло умереть еще до привязки - откатываем статус,
		// иначе сессия переживет последнего живого участника.
		if !s.Hub.Has(clientID) {
			if empty, _ := sess.SetClientStatus(clientID, false); empty {
				s.Sessions.Remove(sess.ID)
				logger.Log.WithField("session", sess.ID).Info("session destroyed")
			}
			return
		}

		s.Hub.SendToAll(sess.ClientIDs(),
			api.NewClientJoinedEvent(sess.ID, clientID, sess.ClientIDs()))
		return
	}
}

// HandleDisconnect вызывается транспортом при разрыве соединения.
// Участник помечается неактивным, его танк остается в мире;
// сессия без единого активного участника уничтожается немедленно.
func (s *Service) HandleDisconnect(clientID string) {
	logger.Log.WithField("client", clientID).Info("client disconnected")

	if sessionID, ok := s.Hub.SessionOf(clientID); ok {
		if sess, found := s.Sessions.Get(sessionID); found {
			empty, err := sess.SetClientStatus(clientID, false)
			if err != nil {
				logger.Log.WithError(err).Warn("failed to deactivate client")
			}

			if empty {
				s.Sessions.Remove(sessionID)
				logger.Log.WithField("session", sessionID).Info("session destroyed")
			} else {
				s.Hub.SendToAll(sess.ActiveClientIDs(), api.NewPlayerDisconnectEvent(clientID))
			}
		}
	}

	s.Hub.Unregister(clientID)
}

// --- Сессионные операции ---

func (s *Service) handleCreateSession(clientID string) {
	// Создание новой сессии неявно выводит клиента из текущей.
	s.leaveCurrentSession(clientID)

	sess, err := s.Sessions.Create("")
	if err != nil {
		// С генерируемым ID сюда не попасть, но молчать нельзя.
		logger.Log.WithError(err).Error("failed to create session")
		s.Hub.SendTo(clientID, api.NewErrorEvent("failed to create session"))
		return
	}

	s.joinSession(clientID, sess)

	logger.Log.WithFields(logrus.Fields{
		"client":        clientID,
		"session":       sess.ID,
		"sessions_live": s.Sessions.Count(),
	}).Info("session created")
}

func (s *Service) handleJoinSession(clientID, sessionID string) {
	// Повторный вход в свою же сессию - идемпотентный no-op.
	if current, ok := s.Hub.SessionOf(clientID); ok && current == sessionID {
		return
	}

	s.leaveCurrentSession(clientID)

	sess, found := s.Sessions.Get(sessionID)
	if !found {
		// Неизвестный ID резервируется и создается на лету.
		created, err := s.Sessions.Create(sessionID)
		if err != nil {
			// Гонка двух JoinSession за один ID: сессия уже появилась.
			if created, found = s.Sessions.Get(sessionID); !found {
				s.Hub.SendTo(clientID, api.NewErrorEvent("failed to join session"))
				return
			}
		}
		sess = created
		logger.Log.WithField("session", sessionID).Info("session reserved by join")
	}

	s.joinSession(clientID, sess)
}

func (s *Service) handleLeaveSession(clientID string) {
	if !s.leaveCurrentSession(clientID) {
		logger.Log.WithField("client", clientID).Warn("client was not in a session")
		s.Hub.SendTo(clientID, api.NewErrorEvent("not in a session"))
	}
}

// joinSession вставляет клиента в сессию и оповещает всех участников
// новым составом.
func (s *Service) joinSession(clientID string, sess *session.Session) {
	if !sess.InsertClient(clientID) {
		return
	}
	s.Hub.SetSession(clientID, sess.ID)

	// Клиент мог отвалиться между вставкой и привязкой к хабу - тогда
	// путь дисконнекта сессию не нашел и убирать участника нам самим.
	if !s.Hub.Has(clientID) {
		if empty := sess.RemoveClient(clientID); empty {
			s.Sessions.Remove(sess.ID)
			logger.Log.WithField("session", sess.ID).Info("session destroyed")
		}
		return
	}

	roster := sess.ClientIDs()
	s.Hub.SendToAll(roster, api.NewClientJoinedEvent(sess.ID, clientID, roster))

	logger.Log.WithFields(logrus.Fields{
		"client":  clientID,
		"session": sess.ID,
	}).Info("client joined session")
}

// leaveCurrentSession выводит клиента из его текущей сессии.
// Возвращает false, если клиент нигде не состоял.
func (s *Service) leaveCurrentSession(clientID string) bool {
	sessionID, ok := s.Hub.SessionOf(clientID)
	if !ok {
		return false
	}
	s.Hub.SetSession(clientID, "")

	sess, found := s.Sessions.Get(sessionID)
	if !found {
		return false
	}

	empty := sess.RemoveClient(clientID)
	if empty {
		// Мьютекс сессии уже отпущен - реестр берется отдельно.
		s.Sessions.Remove(sessionID)
		logger.Log.WithField("session", sessionID).Info("session destroyed")
	} else {
		s.Hub.SendToAll(sess.ClientIDs(), api.NewClientLeftEvent(clientID))
	}

	logger.Log.WithFields(logrus.Fields{
		"client":  clientID,
		"session": sessionID,
	}).Info("client left session")
	return true
}

// currentSession достает сессию клиента; ее отсутствие - не ошибка
// протокола, а опоздавшее событие, но клиенту об этом сообщается.
func (s *Service) currentSession(clientID string) (*session.Session, bool) {
	sessionID, ok := s.Hub.SessionOf(clientID)
	if !ok {
		s.Hub.SendTo(clientID, api.NewErrorEvent("not in a session"))
		return nil, false
	}

	sess, found := s.Sessions.Get(sessionID)
	if !found {
		return nil, false
	}
	return sess, true
}

// decode разбирает и валидирует payload события.
func (s *Service) decode(clientID string, raw json.RawMessage, payload api.Validator) bool {
	if err := json.Unmarshal(raw, payload); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"client": clientID,
			"error":  err,
		}).Error("failed to parse event payload")
		s.Hub.SendTo(clientID, api.NewErrorEvent("malformed payload"))
		return false
	}
	if err := payload.Validate(); err != nil {
		s.Hub.SendTo(clientID, api.NewErrorEvent(err.Error()))
		return false
	}
	return true
}
