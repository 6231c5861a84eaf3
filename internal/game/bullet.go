package game

import "math"

// Bullet - снаряд танка. Отскакивает от стен и уничтожает другие танки.
type Bullet struct {
	// PlayerID - ID игрока, выпустившего снаряд
	PlayerID string
	// Position - центр снаряда в координатах карты
	Position Vector2
	// Velocity - смещение за один тик
	Velocity Vector2
	// Angle - направление полета в радианах
	Angle float64
	// Ricochets - оставшееся число отскоков до взрыва
	Ricochets uint8
}

// newBullet создает снаряд, летящий из точки pos под углом angle.
func newBullet(ownerID string, pos Vector2, angle float64) Bullet {
	return Bullet{
		PlayerID: ownerID,
		Position: pos,
		Velocity: Vector2{
			X: BulletSpeed * math.Cos(angle),
			Y: BulletSpeed * math.Sin(angle),
		},
		Angle:     angle,
		Ricochets: BulletRicochets,
	}
}

func (b *Bullet) physicsUpdate() {
	b.Position.X += b.Velocity.X
	b.Position.Y += b.Velocity.Y
}
