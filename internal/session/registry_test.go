package session

import (
	"errors"
	"testing"

	"github.com/ndbaker1/tanks/internal/game"
	"github.com/ndbaker1/tanks/pkg/utils"
)

func TestRegistryCreateGeneratesCode(t *testing.T) {
	r := NewRegistry(nil)

	s, err := r.Create("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(s.ID) != utils.SessionIDLength {
		t.Errorf("id length = %d, want %d", len(s.ID), utils.SessionIDLength)
	}
	for _, c := range s.ID {
		if c < 'A' || c > 'Z' {
			t.Errorf("id %q contains a character outside A-Z", s.ID)
			break
		}
	}

	if got, ok := r.Get(s.ID); !ok || got != s {
		t.Error("created session is not retrievable by id")
	}
}

func TestRegistryCreateRejectsTakenID(t *testing.T) {
	r := NewRegistry(nil)

	if _, err := r.Create("ABCDE"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Create("ABCDE"); !errors.Is(err, ErrSessionExists) {
		t.Errorf("err = %v, want ErrSessionExists", err)
	}
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry(nil)
	s, _ := r.Create("ABCDE")

	r.Remove(s.ID)

	if _, ok := r.Get(s.ID); ok {
		t.Error("removed session is still retrievable")
	}
	if r.Count() != 0 {
		t.Errorf("count = %d, want 0", r.Count())
	}
}

func TestRegistryEnvironmentFactory(t *testing.T) {
	env := game.NewEnvironment()
	env.Tiles[game.TileCoord{Col: 3, Row: 3}] = game.Tile{Kind: game.TileIndestructibleWall, Elevation: 1}

	r := NewRegistry(func() *game.Environment {
		// Каждой сессии - собственная копия окружения.
		copied := game.NewEnvironment()
		for coord, tile := range env.Tiles {
			copied.Tiles[coord] = tile
		}
		return copied
	})

	a, _ := r.Create("")
	b, _ := r.Create("")

	tanksA, _ := a.Snapshot()
	tanksB, _ := b.Snapshot()
	if len(tanksA) != 0 || len(tanksB) != 0 {
		t.Error("fresh sessions already have tanks")
	}

	if len(r.Snapshot()) != 2 {
		t.Errorf("snapshot size = %d, want 2", len(r.Snapshot()))
	}
}
