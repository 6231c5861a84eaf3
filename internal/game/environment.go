package game

// TileKind - разновидность клетки окружения.
type TileKind int

const (
	// TileEmpty - пустой пол, препятствий нет
	TileEmpty TileKind = iota
	// TileDestructibleWall - разрушаемая стена
	TileDestructibleWall
	// TileIndestructibleWall - неразрушаемая стена
	TileIndestructibleWall
)

// Tile - стена или пол, с которыми сталкиваются танки и снаряды.
type Tile struct {
	Kind TileKind
	// Health - прочность разрушаемой стены
	Health int
	// Elevation - высота стены. Коллизии считаются только на нулевой
	// высоте: под приподнятыми стенами снаряды пролетают свободно.
	Elevation int
}

// TileCoord - координата клетки в сетке карты.
type TileCoord struct {
	Col int
	Row int
}

// Environment - статичная сетка клеток одной сессии.
// Загружается один раз при создании и дальше не мутируется.
type Environment struct {
	Tiles map[TileCoord]Tile
}

// NewEnvironment создает пустое окружение без единой стены.
func NewEnvironment() *Environment {
	return &Environment{Tiles: make(map[TileCoord]Tile)}
}

// SpawnPoint возвращает центр первой свободной клетки карты.
// Обходим сетку построчно, чтобы точка была детерминированной.
func (e *Environment) SpawnPoint() Vector2 {
	for row := 0; row < MapBlockHeight; row++ {
		for col := 0; col < MapBlockWidth; col++ {
			if tile, ok := e.Tiles[TileCoord{Col: col, Row: row}]; ok && tile.Kind != TileEmpty {
				continue
			}
			return Vector2{X: float64(col) + 0.5, Y: float64(row) + 0.5}
		}
	}
	// Карта целиком из стен - дефект данных, но падать из-за него нельзя.
	return Vector2{X: MapBlockWidth / 2.0, Y: MapBlockHeight / 2.0}
}
