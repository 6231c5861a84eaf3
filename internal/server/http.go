package server

import (
	"encoding/json"
	"net/http"
	_ "net/http/pprof" // Profiling

	"github.com/google/uuid"

	"github.com/ndbaker1/tanks/internal/engine"
	"github.com/ndbaker1/tanks/internal/version"
	"github.com/ndbaker1/tanks/pkg/logger"
)

type Server struct {
	Engine *engine.Service
	Port   string
}

func New(eng *engine.Service, port string) *Server {
	return &Server{
		Engine: eng,
		Port:   port,
	}
}

// Run запускает HTTP сервер
func (s *Server) Run() error {
	mux := http.DefaultServeMux

	// Регистрируем роуты
	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	// Debug Routes
	debugHandler := NewDebugHandler(s.Engine)
	debugHandler.RegisterRoutes(mux)

	logger.Log.Infof("🎮 Tanks Server running on :%s", s.Port)
	return http.ListenAndServe(":"+s.Port, mux)
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket.
// ID клиента приходит в query (?id=...); без него генерируется новый.
// Занятый ID отклоняется еще ДО апгрейда - у каждого ID ровно один сокет.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("id")
	if clientID == "" {
		clientID = uuid.NewString()
	}

	if s.Engine.Hub.Has(clientID) {
		logger.Log.WithField("client", clientID).Warn("duplicate connection rejected")
		http.Error(w, "client id is already connected", http.StatusConflict)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("Upgrade error:", err)
		return
	}

	send, err := s.Engine.Hub.Register(clientID)
	if err != nil {
		// Гонка двух апгрейдов за один ID: победил первый.
		logger.Log.WithField("client", clientID).Warn("duplicate connection lost the race")
		conn.Close()
		return
	}

	client := NewClient(s.Engine, conn, clientID, send)

	// Запускаем пампы
	go client.writePump()
	go client.readPump()

	// Вернувшийся участник сессии подхватывает свой прежний танк.
	s.Engine.HandleConnect(clientID)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}
