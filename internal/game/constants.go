package game

// Базовые константы симуляции. Все размеры и скорости измеряются
// в клетках карты, время - в тиках (60 тиков = 1 секунда).
const (
	// MapBlockWidth - ширина карты в клетках
	MapBlockWidth = 22
	// MapBlockHeight - высота карты в клетках
	MapBlockHeight = 17

	// BulletRadius - радиус снаряда относительно клетки карты
	BulletRadius = 0.12
	// BulletCount - максимум одновременно летящих снарядов одного игрока
	BulletCount = 5
	// BulletSpeed - скорость снаряда за тик
	BulletSpeed = 0.12
	// BulletRicochets - число отскоков от стен до взрыва снаряда
	BulletRicochets = 1

	// PlayerRadius - радиус танка относительно клетки карты
	PlayerRadius = 0.4
	// PlayerSpeed - скорость танка за тик
	PlayerSpeed = 0.08

	// ShootCooldownTicks - задержка движения танка после выстрела
	ShootCooldownTicks = 5

	// TickRate - частота тиков симуляции в секунду
	TickRate = 60
)
