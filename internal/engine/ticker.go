package engine

import (
	"context"
	"time"

	"github.com/ndbaker1/tanks/internal/network"
	"github.com/ndbaker1/tanks/internal/session"
	"github.com/ndbaker1/tanks/pkg/api"
	"github.com/ndbaker1/tanks/pkg/logger"
)

// Ticker - планировщик тиков: один цикл с фиксированным периодом,
// который продвигает физику каждой живой сессии и рассылает снапшоты
// ее активным участникам. Единственный писатель "как выглядит мир".
type Ticker struct {
	Hub      *network.Hub
	Sessions *session.Registry

	interval time.Duration
}

func NewTicker(hub *network.Hub, sessions *session.Registry, tickRate int) *Ticker {
	return &Ticker{
		Hub:      hub,
		Sessions: sessions,
		interval: time.Second / time.Duration(tickRate),
	}
}

// Run крутит цикл тиков до отмены контекста.
// Запускается в отдельной горутине из main.
func (t *Ticker) Run(ctx context.Context) {
	logger.Log.WithField("interval", t.interval).Info("tick loop started")

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("tick loop stopped")
			return
		case <-ticker.C:
			t.tickAll()
		}
	}
}

// tickAll обходит снапшот реестра; мьютекс каждой сессии берется
// по отдельности уже внутри Session.Tick, мьютекс реестра к этому
// моменту отпущен.
func (t *Ticker) tickAll() {
	for _, sess := range t.Sessions.Snapshot() {
		result := sess.Tick()
		if len(result.Recipients) == 0 {
			// Сессия без активных участников доживает последние мгновения
			// (ее вот-вот удалит путь дисконнекта) - рассылать некому.
			continue
		}

		t.Hub.SendToAll(result.Recipients, api.NewGameStateEvent(buildGameState(result)))

		for _, position := range result.Exploded {
			t.Hub.SendToAll(result.Recipients, api.NewBulletExplodeEvent(position))
		}
	}
}

// buildGameState переводит снапшот мира в DTO протокола.
func buildGameState(result session.TickResult) api.GameStateData {
	data := api.GameStateData{
		Bullets: make([]api.BulletWrapper, 0, len(result.Bullets)),
		Tanks:   make([]api.TankWrapper, 0, len(result.Tanks)),
	}

	for _, bullet := range result.Bullets {
		data.Bullets = append(data.Bullets, api.BulletWrapper{
			Position: bullet.Position,
			Angle:    bullet.Angle,
		})
	}
	for _, tank := range result.Tanks {
		data.Tanks = append(data.Tanks, api.TankWrapper{
			ID:       tank.ID,
			Position: tank.Position,
			Movement: tank.Movement,
			Angle:    tank.Angle,
		})
	}
	return data
}
