package game

import (
	"strings"
	"testing"
)

func TestParseMaps(t *testing.T) {
	input := "@TEST\n" +
		"..x\n" +
		".1.\n" +
		"@\n" +
		"junk between blocks\n" +
		"@SECOND\n" +
		"...\n" +
		"@\n"

	maps, err := ParseMaps(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(maps) != 2 {
		t.Fatalf("maps = %d, want 2", len(maps))
	}

	test, ok := maps["TEST"]
	if !ok {
		t.Fatal("map TEST is missing")
	}
	if len(test.Tiles) != 2 {
		t.Fatalf("TEST tiles = %d, want 2", len(test.Tiles))
	}

	if tile := test.Tiles[TileCoord{Col: 2, Row: 0}]; tile.Kind != TileDestructibleWall || tile.Health != 2 {
		t.Errorf("tile (2,0) = %+v, want destructible with health 2", tile)
	}
	if tile := test.Tiles[TileCoord{Col: 1, Row: 1}]; tile.Kind != TileIndestructibleWall || tile.Elevation != 1 {
		t.Errorf("tile (1,1) = %+v, want indestructible with elevation 1", tile)
	}

	if len(maps["SECOND"].Tiles) != 0 {
		t.Errorf("SECOND tiles = %d, want 0", len(maps["SECOND"].Tiles))
	}
}

func TestParseMapsUnclosedBlock(t *testing.T) {
	if _, err := ParseMaps(strings.NewReader("@BROKEN\n...\n")); err == nil {
		t.Fatal("expected error for unclosed map block")
	}
}

func TestLoadMapsEmbedded(t *testing.T) {
	maps, err := LoadMaps("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	arena, ok := maps[DefaultMapName]
	if !ok {
		t.Fatalf("embedded set is missing map %q", DefaultMapName)
	}
	if len(arena.Tiles) == 0 {
		t.Error("arena has no walls")
	}

	empty, ok := maps["EMPTY"]
	if !ok {
		t.Fatal("embedded set is missing map EMPTY")
	}
	if len(empty.Tiles) != 0 {
		t.Errorf("EMPTY tiles = %d, want 0", len(empty.Tiles))
	}
}

func TestMapDataEnvironment(t *testing.T) {
	maps, err := ParseMaps(strings.NewReader("@TEST\nx\n@\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	env := maps["TEST"].Environment()
	if tile, ok := env.Tiles[TileCoord{Col: 0, Row: 0}]; !ok || tile.Kind != TileDestructibleWall {
		t.Errorf("environment tile (0,0) = %+v, want destructible wall", tile)
	}
}
