package game

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

// MapDelimiter - символ начала и конца блока карты в файле описаний.
//
// Пример содержимого файла:
//
//	@MAP_NAME
//	..........
//	..x11.x1..
//	..........
//	@
//
// В одном файле может быть несколько карт.
const MapDelimiter = '@'

// DefaultMapName - карта, которую получают сессии, если в конфиге не указана другая.
const DefaultMapName = "ARENA"

//go:embed maps.txt
var embeddedMaps string

// MapData - разобранное описание одной карты.
type MapData struct {
	Name  string
	Tiles map[TileCoord]Tile
}

// ParseMaps читает описания карт из reader.
// Строки грида: цифры 1..9 - неразрушаемые стены соответствующей высоты,
// 'x' - разрушаемая стена, любой другой символ - пустой пол.
func ParseMaps(r io.Reader) (map[string]*MapData, error) {
	maps := make(map[string]*MapData)

	var current *MapData
	scanner := bufio.NewScanner(r)
	row := 0
	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, string(MapDelimiter)) {
			if current != nil {
				maps[current.Name] = current
				current = nil
			} else {
				current = &MapData{
					Name:  strings.TrimSpace(line[1:]),
					Tiles: make(map[TileCoord]Tile),
				}
				row = 0
			}
			continue
		}

		if current == nil {
			// Мусор между блоками игнорируем.
			continue
		}

		for col, sym := range line {
			switch {
			case sym >= '1' && sym <= '9':
				current.Tiles[TileCoord{Col: col, Row: row}] = Tile{
					Kind:      TileIndestructibleWall,
					Elevation: int(sym - '0'),
				}
			case sym == 'x':
				current.Tiles[TileCoord{Col: col, Row: row}] = Tile{
					Kind:   TileDestructibleWall,
					Health: 2,
				}
			}
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read map data: %w", err)
	}
	if current != nil {
		return nil, fmt.Errorf("map block %q is not closed", current.Name)
	}

	return maps, nil
}

// LoadMaps загружает карты из файла, а при пустом пути - встроенный набор.
// Вызывается один раз при старте процесса, до создания первой сессии.
func LoadMaps(path string) (map[string]*MapData, error) {
	if path == "" {
		return ParseMaps(strings.NewReader(embeddedMaps))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mapdata file: %w", err)
	}
	defer file.Close()

	return ParseMaps(file)
}

// Environment собирает окружение сессии из данных карты.
func (m *MapData) Environment() *Environment {
	env := NewEnvironment()
	for coord, tile := range m.Tiles {
		env.Tiles[coord] = tile
	}
	return env
}
