package game

import (
	"math"
	"sort"
)

// State - авторитетное состояние мира одной сессии: танки, снаряды
// и окружение. Сам по себе State не потокобезопасен - эксклюзивную
// блокировку обеспечивает владеющая им сессия.
type State struct {
	Players     map[string]*Player
	Bullets     []Bullet
	Environment *Environment
}

// NewState создает пустой мир поверх готового окружения.
func NewState(env *Environment) *State {
	if env == nil {
		env = NewEnvironment()
	}
	return &State{
		Players:     make(map[string]*Player),
		Environment: env,
	}
}

// AddPlayer вставляет нового танка в мир. Повторная вставка того же ID
// ничего не делает - у переподключившегося игрока танк уже есть.
func (s *State) AddPlayer(id string) {
	if _, ok := s.Players[id]; ok {
		return
	}
	s.Players[id] = NewPlayer(id, s.Environment.SpawnPoint())
}

// RemovePlayer убирает танк и все его летящие снаряды.
// Боезапас уходит вместе с владельцем - возвращать его некому.
func (s *State) RemovePlayer(id string) {
	if _, ok := s.Players[id]; !ok {
		return
	}
	delete(s.Players, id)

	kept := s.Bullets[:0]
	for _, b := range s.Bullets {
		if b.PlayerID != id {
			kept = append(kept, b)
		}
	}
	s.Bullets = kept
}

// SetPlayerMovement задает направление движения танка.
// Вектор нормализуется здесь - единственной точке присваивания.
func (s *State) SetPlayerMovement(id string, direction Vector2) {
	if player, ok := s.Players[id]; ok {
		player.Movement = direction.Normalize()
	}
}

// SetPlayerAngle задает направление ствола (прицеливание).
func (s *State) SetPlayerAngle(id string, angle float64) {
	if player, ok := s.Players[id]; ok {
		player.Angle = angle
	}
}

// Shoot выпускает снаряд из танка игрока под текущим углом ствола.
// Работает только в состоянии Idle и при наличии боезапаса.
func (s *State) Shoot(id string) {
	player, ok := s.Players[id]
	if !ok {
		return
	}
	if player.State != TankIdle || player.BulletsRemaining == 0 {
		return
	}

	player.BulletsRemaining--
	s.Bullets = append(s.Bullets, newBullet(player.ID, player.Position, player.Angle))

	player.State = TankShooting
	player.Cooldown = ShootCooldownTicks
}

// Tick продвигает мир на один фиксированный шаг. Порядок фаз закреплен -
// от него зависит детерминизм симуляции:
//
//  1. интеграция снарядов и танков, отсчет откатов
//  2. снаряд x танк
//  3. снаряд x снаряд
//  4. снаряд x разрушаемая стена
//  5. танк x разрушаемая стена
//  6. снаряд x границы карты
//  7. танк x границы карты
//
// Возвращает позиции взорвавшихся за этот тик снарядов.
func (s *State) Tick() []Vector2 {
	// 1. Физический шаг всех сущностей.
	for i := range s.Bullets {
		s.Bullets[i].physicsUpdate()
	}
	for _, player := range s.Players {
		player.physicsUpdate()
	}

	// 2. Попадания снарядов в танки. Первого попавшего снаряда достаточно.
	// Свежевыпущенный снаряд рождается в центре своего танка, поэтому
	// до первого отскока он для владельца неосязаем; после отскока
	// собственный снаряд убивает наравне с чужими.
	for _, player := range s.Players {
		if !player.Alive {
			continue
		}
		for i := range s.Bullets {
			if s.Bullets[i].PlayerID == player.ID && s.Bullets[i].Ricochets == BulletRicochets {
				continue
			}
			if _, hit := CircleCircleCollision(
				player.Position, PlayerRadius,
				s.Bullets[i].Position, BulletRadius,
			); hit {
				player.Alive = false
				break
			}
		}
	}

	var exploded []Vector2

	// 3. Столкновения снарядов между собой. Удаляются оба участника
	// каждой пересекающейся пары.
	exploded = append(exploded, s.removeBullets(s.bulletBulletCollisions())...)

	// 4. Снаряды о разрушаемые стены: отскок или взрыв.
	exploded = append(exploded, s.removeBullets(s.bulletTileCollisions())...)

	// 5. Танки о разрушаемые стены: позиционная коррекция.
	for _, player := range s.Players {
		s.pushPlayerOutOfTiles(player)
	}

	// 6. Снаряды о границы карты: тот же отскок или взрыв.
	exploded = append(exploded, s.removeBullets(s.bulletBoundsCollisions())...)

	// 7. Танки не покидают карту и не уничтожаются об ее край.
	for _, player := range s.Players {
		clampToBounds(player)
	}

	return exploded
}

// PlayerSnapshots возвращает копии танков, отсортированные по ID.
// Сортировка дает стабильный порядок в рассылаемых снапшотах.
func (s *State) PlayerSnapshots() []Player {
	snapshots := make([]Player, 0, len(s.Players))
	for _, player := range s.Players {
		snapshots = append(snapshots, *player)
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].ID < snapshots[j].ID })
	return snapshots
}

// BulletSnapshots возвращает копии всех летящих снарядов.
func (s *State) BulletSnapshots() []Bullet {
	snapshots := make([]Bullet, len(s.Bullets))
	copy(snapshots, s.Bullets)
	return snapshots
}

// bulletBulletCollisions собирает индексы снарядов, пересекшихся
// с любым другим снарядом.
func (s *State) bulletBulletCollisions() map[int]struct{} {
	doomed := make(map[int]struct{})
	for i := 0; i < len(s.Bullets); i++ {
		for j := i + 1; j < len(s.Bullets); j++ {
			if _, hit := CircleCircleCollision(
				s.Bullets[i].Position, BulletRadius,
				s.Bullets[j].Position, BulletRadius,
			); hit {
				doomed[i] = struct{}{}
				doomed[j] = struct{}{}
			}
		}
	}
	return doomed
}

// bulletTileCollisions обрабатывает отскоки снарядов от разрушаемых стен
// нулевой высоты и возвращает индексы снарядов без оставшихся отскоков.
func (s *State) bulletTileCollisions() map[int]struct{} {
	doomed := make(map[int]struct{})
	for i := range s.Bullets {
		bullet := &s.Bullets[i]

		delta, hit := s.collideTiles(bullet.Position, BulletRadius)
		if !hit {
			continue
		}

		if bullet.Ricochets == 0 {
			doomed[i] = struct{}{}
			continue
		}
		bullet.Ricochets--

		// Отражаем только ось проникновения: стены выровнены по сетке,
		// поэтому отскок от грани - это смена знака одной компоненты.
		if delta.X != 0 {
			bullet.Velocity.X = -bullet.Velocity.X
		}
		if delta.Y != 0 {
			bullet.Velocity.Y = -bullet.Velocity.Y
		}
		if delta.X == 0 && delta.Y == 0 {
			// Центр оказался внутри клетки - разворачиваем полностью.
			bullet.Velocity = bullet.Velocity.Scale(-1)
		}
	}
	return doomed
}

// bulletBoundsCollisions обрабатывает отскоки от внешнего прямоугольника карты.
func (s *State) bulletBoundsCollisions() map[int]struct{} {
	doomed := make(map[int]struct{})
	for i := range s.Bullets {
		bullet := &s.Bullets[i]

		collidesX := bullet.Position.X+BulletRadius > MapBlockWidth || bullet.Position.X-BulletRadius < 0
		collidesY := bullet.Position.Y+BulletRadius > MapBlockHeight || bullet.Position.Y-BulletRadius < 0
		if !collidesX && !collidesY {
			continue
		}

		if bullet.Ricochets == 0 {
			doomed[i] = struct{}{}
			continue
		}
		bullet.Ricochets--

		if collidesX {
			bullet.Velocity.X = -bullet.Velocity.X
		}
		if collidesY {
			bullet.Velocity.Y = -bullet.Velocity.Y
		}
	}
	return doomed
}

// collideTiles ищет первую разрушаемую стену нулевой высоты, пересекающуюся
// с окружностью. Проверяются только клетки вокруг позиции, в порядке
// построчного обхода - результат детерминирован.
func (s *State) collideTiles(pos Vector2, radius float64) (Vector2, bool) {
	minCol := int(math.Floor(pos.X - radius))
	maxCol := int(math.Floor(pos.X + radius))
	minRow := int(math.Floor(pos.Y - radius))
	maxRow := int(math.Floor(pos.Y + radius))

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			coord := TileCoord{Col: col, Row: row}
			tile, ok := s.Environment.Tiles[coord]
			if !ok || tile.Kind != TileDestructibleWall || tile.Elevation != 0 {
				continue
			}

			if delta, hit := CircleRectCollision(
				pos, radius,
				Vector2{X: float64(col), Y: float64(row)}, 1.0, 1.0,
			); hit {
				return delta, true
			}
		}
	}
	return Vector2{}, false
}

// pushPlayerOutOfTiles выталкивает танк из разрушаемой стены вдоль
// вектора минимального проникновения. Скорость не меняется.
func (s *State) pushPlayerOutOfTiles(player *Player) {
	delta, hit := s.collideTiles(player.Position, PlayerRadius)
	if !hit {
		return
	}

	mag := delta.Magnitude()
	if mag == 0 {
		// Центр внутри клетки - на игровых скоростях недостижимо.
		return
	}
	player.Position = player.Position.Add(delta.Scale(-(PlayerRadius - mag) / mag))
}

// clampToBounds прижимает танк внутрь карты целиком, с учетом радиуса.
func clampToBounds(player *Player) {
	if player.Position.X+PlayerRadius >= MapBlockWidth {
		player.Position.X = MapBlockWidth - PlayerRadius
	} else if player.Position.X-PlayerRadius <= 0 {
		player.Position.X = PlayerRadius
	}

	if player.Position.Y+PlayerRadius >= MapBlockHeight {
		player.Position.Y = MapBlockHeight - PlayerRadius
	} else if player.Position.Y-PlayerRadius <= 0 {
		player.Position.Y = PlayerRadius
	}
}

// removeBullets удаляет снаряды по убыванию индексов, возвращая владельцам
// по единице боезапаса. Возвращает позиции удаленных снарядов.
func (s *State) removeBullets(doomed map[int]struct{}) []Vector2 {
	if len(doomed) == 0 {
		return nil
	}

	indices := make([]int, 0, len(doomed))
	for i := range doomed {
		indices = append(indices, i)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(indices)))

	positions := make([]Vector2, 0, len(indices))
	for _, i := range indices {
		bullet := s.Bullets[i]
		positions = append(positions, bullet.Position)

		// Владелец мог уже покинуть сессию.
		if owner, ok := s.Players[bullet.PlayerID]; ok {
			owner.BulletsRemaining++
		}

		s.Bullets = append(s.Bullets[:i], s.Bullets[i+1:]...)
	}
	return positions
}
