package api

import (
	"encoding/json"

	"github.com/ndbaker1/tanks/internal/game"
)

// --- КЛИЕНТ -> СЕРВЕР ---

// Имена клиентских событий. Набор закрытый - диспетчеризация идет
// исчерпывающим switch, без открытых таблиц обработчиков.
const (
	EventCreateSession  = "CreateSession"
	EventJoinSession    = "JoinSession"
	EventLeaveSession   = "LeaveSession"
	EventMovementUpdate = "MovementUpdate"
	EventAimUpdate      = "AimUpdate"
	EventShoot          = "Shoot"
)

// ClientEvent - корневой объект всех сообщений от клиента к серверу.
type ClientEvent struct {
	// Event - имя события, см. константы Event*.
	Event string `json:"event"`

	// Data - JSON-объект с данными события. Структура зависит от Event;
	// у событий без параметров (Shoot, CreateSession) поле отсутствует.
	Data json.RawMessage `json:"data,omitempty"`
}

// --- Payloads ---

// SessionPayload используется для JoinSession.
type SessionPayload struct {
	SessionID string `json:"session_id"`
}

// MovementPayload используется для MovementUpdate.
// Сервер сам нормализует вектор - клиент шлет сырое направление.
type MovementPayload struct {
	Direction game.Vector2 `json:"direction"`
}

// AimPayload используется для AimUpdate.
type AimPayload struct {
	// Angle - направление ствола в радианах
	Angle float64 `json:"angle"`
}

// --- СЕРВЕР -> КЛИЕНТ ---

// Имена серверных событий.
const (
	EventGameState        = "GameState"
	EventBulletExplode    = "BulletExplode"
	EventPlayerDisconnect = "PlayerDisconnect"
	EventClientJoined     = "ClientJoined"
	EventClientLeft       = "ClientLeft"
	EventError            = "Error"
)

// ServerEvent - корневой объект всех сообщений от сервера к клиенту.
type ServerEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// TankWrapper - DTO одного танка в снапшоте мира.
type TankWrapper struct {
	ID       string       `json:"id"`
	Position game.Vector2 `json:"position"`
	Movement game.Vector2 `json:"movement"`
	Angle    float64      `json:"angle"`
}

// BulletWrapper - DTO одного снаряда в снапшоте мира.
type BulletWrapper struct {
	Position game.Vector2 `json:"position"`
	Angle    float64      `json:"angle"`
}

// GameStateData - полный снапшот мира сессии, рассылается каждый тик.
type GameStateData struct {
	Bullets []BulletWrapper `json:"bullets"`
	Tanks   []TankWrapper   `json:"tanks"`
}

// SessionData - данные о составе сессии для ростерных событий.
type SessionData struct {
	SessionID string   `json:"session_id,omitempty"`
	ClientID  string   `json:"client_id,omitempty"`
	ClientIDs []string `json:"client_ids,omitempty"`
}

// DisconnectData - участник сессии, потерявший соединение.
type DisconnectData struct {
	Player string `json:"player"`
}

// ExplosionData - точка взрыва снаряда, триггер VFX на клиенте.
type ExplosionData struct {
	Position game.Vector2 `json:"position"`
}

// ErrorData - пояснение, почему действие клиента не возымело эффекта.
type ErrorData struct {
	Message string `json:"message"`
}

// --- Конструкторы серверных событий ---

func NewGameStateEvent(data GameStateData) ServerEvent {
	return ServerEvent{Event: EventGameState, Data: data}
}

func NewBulletExplodeEvent(position game.Vector2) ServerEvent {
	return ServerEvent{Event: EventBulletExplode, Data: ExplosionData{Position: position}}
}

func NewPlayerDisconnectEvent(clientID string) ServerEvent {
	return ServerEvent{Event: EventPlayerDisconnect, Data: DisconnectData{Player: clientID}}
}

func NewClientJoinedEvent(sessionID, clientID string, roster []string) ServerEvent {
	return ServerEvent{Event: EventClientJoined, Data: SessionData{
		SessionID: sessionID,
		ClientID:  clientID,
		ClientIDs: roster,
	}}
}

func NewClientLeftEvent(clientID string) ServerEvent {
	return ServerEvent{Event: EventClientLeft, Data: SessionData{ClientID: clientID}}
}

func NewErrorEvent(message string) ServerEvent {
	return ServerEvent{Event: EventError, Data: ErrorData{Message: message}}
}
