package resource

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Map glyphs. Any other rune must resolve against the bestiary.
const (
	GlyphWall       = '#'
	GlyphFloor      = '.'
	GlyphDoorClosed = '+'
	GlyphDoorOpen   = '\''
	GlyphDoorSecret = '*'
	GlyphGold       = '$'
	GlyphPlayer     = '@'
	GlyphVoid       = ' '
)

// DefaultGoldPile is the amount in a '$' pile.
const DefaultGoldPile = 25

// LevelMap is a parsed level layout: rectangular rows of glyphs. The world
// layer turns it into a runtime level.
type LevelMap struct {
	Name   string
	Depth  int
	Width  int
	Height int
	Rows   []string
}

// ParseLevelMap validates raw map text. Rows are padded to the widest line;
// the layout must contain exactly one player start.
func ParseLevelMap(name string, depth int, raw string) (*LevelMap, error) {
	var rows []string
	scanner := bufio.NewScanner(strings.NewReader(raw))
	width := 0
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		rows = append(rows, line)
		if n := len([]rune(line)); n > width {
			width = n
		}
	}
	if len(rows) == 0 || width == 0 {
		return nil, fmt.Errorf("map %s: empty layout", name)
	}

	starts := 0
	for i, row := range rows {
		if pad := width - len([]rune(row)); pad > 0 {
			rows[i] = row + strings.Repeat(string(GlyphVoid), pad)
		}
		starts += strings.Count(rows[i], string(GlyphPlayer))
	}
	if starts != 1 {
		return nil, fmt.Errorf("map %s: want exactly 1 player start, got %d", name, starts)
	}

	return &LevelMap{
		Name:   name,
		Depth:  depth,
		Width:  width,
		Height: len(rows),
		Rows:   rows,
	}, nil
}

// LoadLevelMap reads a .map file from disk.
func LoadLevelMap(path, name string, depth int) (*LevelMap, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", name, err)
	}
	return ParseLevelMap(name, depth, string(raw))
}
