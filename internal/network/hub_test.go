package network

import (
	"errors"
	"testing"

	"github.com/ndbaker1/tanks/pkg/api"
)

func TestRegisterRejectsDuplicate(t *testing.T) {
	h := NewHub()

	if _, err := h.Register("p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := h.Register("p1"); !errors.Is(err, ErrClientExists) {
		t.Errorf("err = %v, want ErrClientExists", err)
	}

	if !h.Has("p1") || h.Count() != 1 {
		t.Errorf("hub state after duplicate register: has=%v count=%d", h.Has("p1"), h.Count())
	}
}

func TestUnregisterClosesChannel(t *testing.T) {
	h := NewHub()
	ch, _ := h.Register("p1")

	h.Unregister("p1")

	if _, open := <-ch; open {
		t.Error("channel is still open after unregister")
	}
	if h.Has("p1") {
		t.Error("client is still registered")
	}

	// Повторный Unregister - no-op.
	h.Unregister("p1")
}

func TestSendTo(t *testing.T) {
	h := NewHub()
	ch, _ := h.Register("p1")

	h.SendTo("p1", api.NewErrorEvent("boom"))
	h.SendTo("ghost", api.NewErrorEvent("dropped")) // незнакомый ID - no-op

	select {
	case event := <-ch:
		if event.Event != api.EventError {
			t.Errorf("event = %q, want %q", event.Event, api.EventError)
		}
	default:
		t.Fatal("no event was delivered")
	}
}

func TestSendToAllSkipsSlowClient(t *testing.T) {
	h := NewHub()
	fast, _ := h.Register("fast")
	slow, _ := h.Register("slow")

	// Забиваем буфер медленного клиента до отказа.
	for i := 0; i < cap(slow); i++ {
		h.SendTo("slow", api.ServerEvent{Event: "filler"})
	}

	// Рассылка не блокируется и доходит до остальных.
	h.SendToAll([]string{"fast", "slow"}, api.NewErrorEvent("tick"))

	if got := len(fast); got != 1 {
		t.Errorf("fast client buffered = %d, want 1", got)
	}
	if got := len(slow); got != cap(slow) {
		t.Errorf("slow client buffered = %d, want full buffer %d", got, cap(slow))
	}
}

func TestSessionBackref(t *testing.T) {
	h := NewHub()
	h.Register("p1")

	if _, ok := h.SessionOf("p1"); ok {
		t.Error("fresh client already has a session")
	}

	h.SetSession("p1", "ABCDE")
	if id, ok := h.SessionOf("p1"); !ok || id != "ABCDE" {
		t.Errorf("SessionOf = %q %v, want ABCDE true", id, ok)
	}

	// Пустая строка очищает ссылку.
	h.SetSession("p1", "")
	if _, ok := h.SessionOf("p1"); ok {
		t.Error("session backref survived the reset")
	}
}
