package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/tilecore/common"
)

//go:embed *.json
var LevelsFS embed.FS

var ErrInvalidLevel = errors.New("levels: invalid level")

// Level is the on-disk level format. Tiles are authored top row first.
type Level struct {
	Name     string  `json:"name"`
	Origin   Point   `json:"origin"`
	TileSize float64 `json:"tile_size"`
	Tiles    [][]int `json:"tiles"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LoadLevel reads a level from the working directory when present, falling
// back to the embedded copy.
func LoadLevel(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(clean)))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
		if err != nil {
			return nil, fmt.Errorf("levels: read %q: %w", name, err)
		}
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %q: %w", name, err)
	}
	return &lvl, nil
}

// LoadTerrain loads a level and converts it to terrain.
func LoadTerrain(name string) (*Terrain, error) {
	lvl, err := LoadLevel(name)
	if err != nil {
		return nil, err
	}
	t, err := lvl.Terrain()
	if err != nil {
		return nil, fmt.Errorf("levels: build terrain %q: %w", name, err)
	}
	return t, nil
}

// Terrain converts tile codes (0 empty, 1 block, 2 one-way, anything else
// empty) and flips the rows so row 0 is the bottom of the world.
func (l *Level) Terrain() (*Terrain, error) {
	if l == nil || len(l.Tiles) == 0 || l.TileSize <= 0 {
		return nil, ErrInvalidLevel
	}
	rows := make([][]TileType, len(l.Tiles))
	for i, src := range l.Tiles {
		row := make([]TileType, len(src))
		for x, code := range src {
			row[x] = tileFromCode(code)
		}
		rows[len(l.Tiles)-1-i] = row
	}
	return NewTerrain(common.Vector{X: l.Origin.X, Y: l.Origin.Y}, l.TileSize, rows)
}

func tileFromCode(code int) TileType {
	switch code {
	case 1:
		return TileBlock
	case 2:
		return TileOneWay
	default:
		return TileEmpty
	}
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if filepath.Ext(s) == "" {
		s += ".json"
	}
	return s
}
