package engine

import (
	"testing"
	"time"

	"github.com/ndbaker1/tanks/internal/game"
	"github.com/ndbaker1/tanks/internal/network"
	"github.com/ndbaker1/tanks/internal/session"
	"github.com/ndbaker1/tanks/pkg/api"
)

func TestTickerInterval(t *testing.T) {
	tk := NewTicker(network.NewHub(), session.NewRegistry(nil), game.TickRate)

	if want := time.Second / game.TickRate; tk.interval != want {
		t.Errorf("interval = %v, want %v", tk.interval, want)
	}
}

func TestTickAllBroadcastsGameState(t *testing.T) {
	hub := network.NewHub()
	sessions := session.NewRegistry(nil)
	tk := NewTicker(hub, sessions, game.TickRate)

	ch, _ := hub.Register("p1")
	sess, _ := sessions.Create("ABCDE")
	sess.InsertClient("p1")

	tk.tickAll()

	event := lastEvent(t, ch)
	if event.Event != api.EventGameState {
		t.Fatalf("event = %q, want %q", event.Event, api.EventGameState)
	}
	data, ok := event.Data.(api.GameStateData)
	if !ok {
		t.Fatalf("unexpected payload type %T", event.Data)
	}
	if len(data.Tanks) != 1 || data.Tanks[0].ID != "p1" {
		t.Errorf("tanks = %+v, want only p1", data.Tanks)
	}
	// Снапшот без снарядов сериализуется пустым списком, не null.
	if data.Bullets == nil {
		t.Error("bullets slice is nil")
	}
}

func TestTickAllSkipsInactiveSessions(t *testing.T) {
	hub := network.NewHub()
	sessions := session.NewRegistry(nil)
	tk := NewTicker(hub, sessions, game.TickRate)

	ch, _ := hub.Register("p1")
	sess, _ := sessions.Create("ABCDE")
	sess.InsertClient("p1")
	sess.SetClientStatus("p1", false)

	tk.tickAll()

	if events := drain(ch); len(events) != 0 {
		t.Errorf("inactive member received %d events, want 0", len(events))
	}
}
