package server

import (
	"encoding/json"
	"net/http"

	"github.com/ndbaker1/tanks/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию сервера
type DebugHandler struct {
	Service *engine.Service
}

func NewDebugHandler(s *engine.Service) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/sessions", h.handleListSessions)
	mux.HandleFunc("/debug/state", h.handleDumpState)
}

// /debug/sessions - список живых сессий и их составы
func (h *DebugHandler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	type SessionSummary struct {
		SessionID     string   `json:"session_id"`
		Owner         string   `json:"owner"`
		ClientIDs     []string `json:"client_ids"`
		ActiveClients []string `json:"active_clients"`
	}

	var summary []SessionSummary

	for _, sess := range h.Service.Sessions.Snapshot() {
		summary = append(summary, SessionSummary{
			SessionID:     sess.ID,
			Owner:         sess.Owner(),
			ClientIDs:     sess.ClientIDs(),
			ActiveClients: sess.ActiveClientIDs(),
		})
	}

	writeJSON(w, summary)
}

// /debug/state?session=ABCDE - дамп мира сессии без продвижения физики
func (h *DebugHandler) handleDumpState(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")

	sess, ok := h.Service.Sessions.Get(sessionID)
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	tanks, bullets := sess.Snapshot()

	writeJSON(w, map[string]interface{}{
		"session_id": sess.ID,
		"tanks":      tanks,
		"bullets":    bullets,
	})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Пустой список отдаем как [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
