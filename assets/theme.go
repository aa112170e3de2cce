package assets

import "dungeon-mapgen/internal/gamemap"

// Palette holds the emoji glyphs used to draw one level family's terrain.
// Emoji carry their own colors, so remembered tiles get distinct glyphs
// instead of a dimmed foreground.
type Palette struct {
	Wall     string // visible wall
	Floor    string // visible floor
	DimWall  string // revealed but not currently visible wall
	DimFloor string // revealed but not currently visible floor
}

// Palettes maps a chain's map name to its tile set.
var Palettes = map[string]Palette{
	"The Town of Bracketon": {Wall: "🧱", Floor: "🟫", DimWall: "🌑", DimFloor: "🔲"},
	"Into the Woods":        {Wall: "🌲", Floor: "🟩", DimWall: "🌑", DimFloor: "🔲"},
	"Abandoned Barracks":    {Wall: "🧱", Floor: "⬜", DimWall: "🌑", DimFloor: "🔲"},
	"Old Cellars":           {Wall: "🪨", Floor: "🟫", DimWall: "🌑", DimFloor: "🔲"},
	"Limestone Caverns":     {Wall: "🪨", Floor: "⬛", DimWall: "🌑", DimFloor: "🔲"},
	"Dwarven Fortress":      {Wall: "⛰️", Floor: "🟧", DimWall: "🌑", DimFloor: "🔲"},
}

// DefaultPalette is used for any map name missing from Palettes.
var DefaultPalette = Palette{Wall: "🪨", Floor: "⬛", DimWall: "🌑", DimFloor: "🔲"}

// PaletteFor returns the tile set for a map name.
func PaletteFor(name string) Palette {
	if p, ok := Palettes[name]; ok {
		return p
	}
	return DefaultPalette
}

// TileGlyphs overrides the palette for tile types that look the same on
// every level. Wall and Floor are left to the palette.
var TileGlyphs = map[gamemap.TileType]string{
	gamemap.TileStalactite:   "🔻",
	gamemap.TileStalagmite:   "🔺",
	gamemap.TileDownStairs:   "🔽",
	gamemap.TileUpStairs:     "🔼",
	gamemap.TileRoad:         "⬜",
	gamemap.TileGrass:        "🟩",
	gamemap.TileShallowWater: "🟦",
	gamemap.TileDeepWater:    "🌊",
	gamemap.TileWoodFloor:    "🟫",
	gamemap.TileBridge:       "🟨",
	gamemap.TileGravel:       "🔘",
}

// GlyphStart marks the starting position.
const GlyphStart = "🧙"

// GlyphUnknown is drawn for spawns with no entry in SpawnGlyphs.
const GlyphUnknown = "❓"

// SpawnGlyphs maps spawn names to the glyph drawn on top of the map.
var SpawnGlyphs = map[string]string{
	// Monsters.
	"Goblin":       "👺",
	"Orc":          "👹",
	"Kobold":       "🦎",
	"Rat":          "🐀",
	"Wolf":         "🐺",
	"Bandit":       "🥷",
	"Dark Elf":     "🧝",
	"Giant Spider": "🕷️",
	"Black Dragon": "🐉",

	// Items and traps.
	"Health Potion":        "🧪",
	"Fireball Scroll":      "📜",
	"Confusion Scroll":     "📜",
	"Magic Missile Scroll": "📜",
	"Magic Mapping Scroll": "🗺️",
	"Dagger":               "🗡️",
	"Shield":               "🛡️",
	"Longsword":            "⚔️",
	"Tower Shield":         "🛡️",
	"Rations":              "🍖",
	"Bear Trap":            "🪤",

	// Townsfolk.
	"Barkeep":        "🧔",
	"Shady Salesman": "🕵️",
	"Patron":         "🍺",
	"Priest":         "🧑",
	"Parishioner":    "🙏",
	"Blacksmith":     "👷",
	"Clothier":       "🧵",
	"Alchemist":      "🧑",
	"Mom":            "👩",
	"Peasant":        "🧑",
	"Drunk":          "🥴",
	"Dock Worker":    "👷",
	"Fisher":         "🎣",
	"Wannabe Pirate": "🏴",

	// Props.
	"Door":          "🚪",
	"Keg":           "🛢️",
	"Table":         "🪑",
	"Chair":         "🪑",
	"Altar":         "⛩️",
	"Candle":        "🕯️",
	"Anvil":         "⚒️",
	"Water Trough":  "🪣",
	"Weapon Rack":   "🗡️",
	"Armor Stand":   "🥋",
	"Cabinet":       "🗄️",
	"Loom":          "🧶",
	"Hide Rack":     "🧥",
	"Chemistry Set": "⚗️",
	"Dead Thing":    "🦴",
	"Bed":           "🛏️",
}

// SpawnGlyph returns the glyph for a spawn name.
func SpawnGlyph(name string) string {
	if g, ok := SpawnGlyphs[name]; ok {
		return g
	}
	return GlyphUnknown
}
