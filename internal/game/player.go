package game

// TankState - состояние танка между выстрелами.
type TankState int

const (
	// TankIdle - обычное состояние, танк может двигаться и стрелять
	TankIdle TankState = iota
	// TankShooting - откат после выстрела, танк обездвижен на Cooldown тиков
	TankShooting
)

// Player - серверные данные одного танка.
type Player struct {
	// ID берется из ID подключения клиента
	ID    string
	Alive bool
	// Angle - направление ствола в радианах
	Angle float64
	// Position - центр танка в координатах карты
	Position Vector2
	// Movement - нормализованный вектор направления движения
	Movement Vector2
	// BulletsRemaining - сколько снарядов игрок еще может выпустить
	BulletsRemaining uint8

	State TankState
	// Cooldown - остаток тиков в состоянии TankShooting
	Cooldown uint32
}

// NewPlayer создает живой танк с полным боезапасом в указанной точке.
func NewPlayer(id string, spawn Vector2) *Player {
	return &Player{
		ID:               id,
		Alive:            true,
		Position:         spawn,
		BulletsRemaining: BulletCount,
		State:            TankIdle,
	}
}

// physicsUpdate продвигает танк на один тик.
// В откате танк стоит на месте и только отсчитывает тики до Idle.
func (p *Player) physicsUpdate() {
	switch p.State {
	case TankIdle:
		p.Position = p.Position.Add(p.Movement.Scale(PlayerSpeed))
	case TankShooting:
		if p.Cooldown > 0 {
			p.Cooldown--
		} else {
			p.State = TankIdle
		}
	}
}
