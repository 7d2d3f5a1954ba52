package levels

import (
	"math"

	"github.com/milk9111/tilecore/common"
)

type TileType uint8

const (
	TileEmpty TileType = iota
	TileBlock
	TileOneWay
)

func (t TileType) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileBlock:
		return "block"
	case TileOneWay:
		return "one_way"
	default:
		return "unknown"
	}
}

// Terrain is an immutable tile grid. Row 0 is the bottom row and tile (x, y)
// is centered at Position + (x, y) * TileSize.
type Terrain struct {
	Position common.Vector
	TileSize float64
	Width    int
	Height   int

	tiles [][]TileType
}

// NewTerrain builds a terrain from rows indexed [y][x] with y growing upward.
// Every row must have the same width.
func NewTerrain(position common.Vector, tileSize float64, rows [][]TileType) (*Terrain, error) {
	if tileSize <= 0 {
		return nil, ErrInvalidLevel
	}
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	tiles := make([][]TileType, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, ErrInvalidLevel
		}
		tiles[y] = append([]TileType(nil), row...)
	}
	return &Terrain{
		Position: position,
		TileSize: tileSize,
		Width:    width,
		Height:   len(rows),
		tiles:    tiles,
	}, nil
}

func (t *Terrain) inBounds(x, y int) bool {
	return x >= 0 && x < t.Width && y >= 0 && y < t.Height
}

// GetTile returns the tile at (x, y). Anything outside the grid is solid.
func (t *Terrain) GetTile(x, y int) TileType {
	if !t.inBounds(x, y) {
		return TileBlock
	}
	return t.tiles[y][x]
}

func (t *Terrain) IsObstacle(x, y int) bool {
	return t.GetTile(x, y) == TileBlock
}

// IsGround reports Block or OneWay. False outside the grid.
func (t *Terrain) IsGround(x, y int) bool {
	if !t.inBounds(x, y) {
		return false
	}
	tile := t.tiles[y][x]
	return tile == TileBlock || tile == TileOneWay
}

func (t *Terrain) IsOneWayPlatform(x, y int) bool {
	return t.inBounds(x, y) && t.tiles[y][x] == TileOneWay
}

func (t *Terrain) IsEmpty(x, y int) bool {
	return t.inBounds(x, y) && t.tiles[y][x] == TileEmpty
}

// TileXAtPoint maps a world x to the column whose tile is centered nearest it.
func (t *Terrain) TileXAtPoint(x float64) int {
	return int(math.Floor((x - t.Position.X + t.TileSize/2) / t.TileSize))
}

func (t *Terrain) TileYAtPoint(y float64) int {
	return int(math.Floor((y - t.Position.Y + t.TileSize/2) / t.TileSize))
}

func (t *Terrain) TileAtPoint(p common.Vector) (int, int) {
	return t.TileXAtPoint(p.X), t.TileYAtPoint(p.Y)
}

// MapTilePosition returns the world-space center of tile (x, y).
func (t *Terrain) MapTilePosition(x, y int) common.Vector {
	return common.Vector{
		X: float64(x)*t.TileSize + t.Position.X,
		Y: float64(y)*t.TileSize + t.Position.Y,
	}
}

// Bounds returns the world rectangle covered by the grid.
func (t *Terrain) Bounds() (min, max common.Vector) {
	half := t.TileSize / 2
	min = common.Vector{X: t.Position.X - half, Y: t.Position.Y - half}
	max = common.Vector{
		X: t.Position.X + float64(t.Width)*t.TileSize - half,
		Y: t.Position.Y + float64(t.Height)*t.TileSize - half,
	}
	return min, max
}
