package component

import (
	"github.com/milk9111/tilecore/common"
	"github.com/milk9111/tilecore/levels"
)

// DeltaTime is the variable step length in seconds.
type DeltaTime struct {
	Seconds float64
}

var DeltaTimeResource = NewComponent[DeltaTime]()

type LevelTerrain struct {
	Terrain *levels.Terrain
}

var LevelTerrainResource = NewComponent[LevelTerrain]()

// Camera is centered on Location. FOV is the visible width in world units.
type Camera struct {
	Location common.Vector
	FOV      float64
}

var CameraResource = NewComponent[Camera]()
