package gamemap

// TileType identifies the terrain of one map cell.
type TileType uint8

const (
	TileWall TileType = iota
	TileStalactite
	TileStalagmite
	TileFloor
	TileDownStairs
	TileRoad
	TileGrass
	TileShallowWater
	TileDeepWater
	TileWoodFloor
	TileBridge
	TileGravel
	TileUpStairs
)

var tileNames = [...]string{
	TileWall:         "wall",
	TileStalactite:   "stalactite",
	TileStalagmite:   "stalagmite",
	TileFloor:        "floor",
	TileDownStairs:   "down stairs",
	TileRoad:         "road",
	TileGrass:        "grass",
	TileShallowWater: "shallow water",
	TileDeepWater:    "deep water",
	TileWoodFloor:    "wood floor",
	TileBridge:       "bridge",
	TileGravel:       "gravel",
	TileUpStairs:     "up stairs",
}

func (t TileType) String() string {
	if int(t) < len(tileNames) {
		return tileNames[t]
	}
	return "unknown"
}

// Walkable reports whether an actor can stand on the tile.
func (t TileType) Walkable() bool {
	switch t {
	case TileFloor, TileDownStairs, TileRoad, TileGrass, TileShallowWater,
		TileWoodFloor, TileBridge, TileGravel, TileUpStairs:
		return true
	}
	return false
}

// Opaque reports whether the tile blocks line of sight.
func (t TileType) Opaque() bool {
	switch t {
	case TileWall, TileStalactite, TileStalagmite:
		return true
	}
	return false
}

// Cost is the movement cost of entering the tile.
func (t TileType) Cost() float64 {
	switch t {
	case TileRoad:
		return 0.8
	case TileGrass:
		return 1.1
	case TileShallowWater:
		return 1.2
	}
	return 1.0
}
