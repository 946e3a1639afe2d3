package core

import (
	"math/rand"

	"github.com/caxsim/tactical-command/pkg/geo"
)

// TerrainType classifies a terrain cell
type TerrainType string

const (
	TerrainOpen     TerrainType = "OPEN"
	TerrainForest   TerrainType = "FOREST"
	TerrainUrban    TerrainType = "URBAN"
	TerrainHill     TerrainType = "HILL"
	TerrainWater    TerrainType = "WATER"
	TerrainRoad     TerrainType = "ROAD"
	TerrainMountain TerrainType = "MOUNTAIN"
	TerrainSwamp    TerrainType = "SWAMP"
)

// TerrainModifier holds the combat and movement multipliers of a
// terrain type. Water zeroes combat and movement: no fighting in rivers.
type TerrainModifier struct {
	Attack     float64
	Defense    float64
	Movement   float64
	Visibility float64
}

// TerrainModifiers is the fixed modifier table per terrain type.
var TerrainModifiers = map[TerrainType]TerrainModifier{
	TerrainOpen:     {Attack: 1.3, Defense: 0.8, Movement: 1.0, Visibility: 1.0},
	TerrainForest:   {Attack: 0.7, Defense: 1.3, Movement: 0.6, Visibility: 0.5},
	TerrainUrban:    {Attack: 0.6, Defense: 1.6, Movement: 0.5, Visibility: 0.4},
	TerrainHill:     {Attack: 0.9, Defense: 1.4, Movement: 0.7, Visibility: 1.2},
	TerrainWater:    {Attack: 0.0, Defense: 0.0, Movement: 0.0, Visibility: 1.0},
	TerrainRoad:     {Attack: 1.0, Defense: 0.7, Movement: 1.5, Visibility: 1.0},
	TerrainMountain: {Attack: 0.5, Defense: 2.0, Movement: 0.3, Visibility: 1.5},
	TerrainSwamp:    {Attack: 0.8, Defense: 1.0, Movement: 0.3, Visibility: 0.7},
}

// Weather is the battlefield weather condition
type Weather string

const (
	WeatherClear Weather = "CLEAR"
	WeatherRain  Weather = "RAIN"
	WeatherFog   Weather = "FOG"
	WeatherSnow  Weather = "SNOW"
	WeatherStorm Weather = "STORM"
)

// WeatherEffect holds the multipliers a weather condition applies.
type WeatherEffect struct {
	Visibility float64
	Movement   float64
	Combat     float64
}

// WeatherEffects is the fixed effect table per weather condition.
var WeatherEffects = map[Weather]WeatherEffect{
	WeatherClear: {Visibility: 1.0, Movement: 1.0, Combat: 1.0},
	WeatherRain:  {Visibility: 0.7, Movement: 0.8, Combat: 0.8},
	WeatherFog:   {Visibility: 0.3, Movement: 0.9, Combat: 0.6},
	WeatherSnow:  {Visibility: 0.5, Movement: 0.6, Combat: 0.7},
	WeatherStorm: {Visibility: 0.4, Movement: 0.7, Combat: 0.5},
}

// TimeOfDay is the daylight phase of the engagement
type TimeOfDay string

const (
	TimeDay   TimeOfDay = "DAY"
	TimeDawn  TimeOfDay = "DAWN"
	TimeDusk  TimeOfDay = "DUSK"
	TimeNight TimeOfDay = "NIGHT"
)

// TimeVisibility is the visibility multiplier per daylight phase.
var TimeVisibility = map[TimeOfDay]float64{
	TimeDay:   1.0,
	TimeDawn:  0.7,
	TimeDusk:  0.7,
	TimeNight: 0.3,
}

// TerrainCell is one cell of the battlefield grid.
type TerrainCell struct {
	X           int
	Y           int
	Type        TerrainType
	Elevation   float64
	Cover       float64 // 0-1
	Concealment float64 // 0-1
	Movement    float64 // movement speed multiplier
}

// TerrainGrid is the immutable rectangular battlefield grid, generated
// once at scenario start.
type TerrainGrid struct {
	cells    [][]TerrainCell
	cellSize float64
}

// DefaultCellSize is the edge length of a terrain cell in meters.
const DefaultCellSize = 20.0

// GenerateTerrain builds a procedural terrain grid covering width x
// height meters. The rand source is injectable so runs are reproducible.
func GenerateTerrain(width, height float64, rng *rand.Rand) *TerrainGrid {
	rows := int(height / DefaultCellSize)
	cols := int(width / DefaultCellSize)

	cells := make([][]TerrainCell, rows)
	for y := 0; y < rows; y++ {
		cells[y] = make([]TerrainCell, cols)
		for x := 0; x < cols; x++ {
			roll := rng.Float64()
			terrainType := TerrainOpen
			switch {
			case roll < 0.15:
				terrainType = TerrainForest
			case roll < 0.25:
				terrainType = TerrainHill
			case roll < 0.30:
				terrainType = TerrainUrban
			case roll < 0.33:
				terrainType = TerrainWater
			}

			cells[y][x] = TerrainCell{
				X:           x,
				Y:           y,
				Type:        terrainType,
				Elevation:   cellElevation(terrainType),
				Cover:       cellCover(terrainType),
				Concealment: cellConcealment(terrainType),
				Movement:    cellMovement(terrainType),
			}
		}
	}

	return &TerrainGrid{cells: cells, cellSize: DefaultCellSize}
}

func cellElevation(t TerrainType) float64 {
	switch t {
	case TerrainHill:
		return 20
	case TerrainWater:
		return -5
	default:
		return 0
	}
}

func cellCover(t TerrainType) float64 {
	switch t {
	case TerrainForest:
		return 0.7
	case TerrainUrban:
		return 0.9
	default:
		return 0.2
	}
}

func cellConcealment(t TerrainType) float64 {
	switch t {
	case TerrainForest:
		return 0.8
	case TerrainUrban:
		return 0.6
	default:
		return 0.1
	}
}

func cellMovement(t TerrainType) float64 {
	switch t {
	case TerrainWater:
		return 0
	case TerrainForest:
		return 0.6
	default:
		return 1.0
	}
}

// At returns the terrain cell covering a battlefield position. Positions
// outside the grid fall back to a neutral open cell so a stray unit
// never halts the simulation.
func (g *TerrainGrid) At(pos geo.Position) TerrainCell {
	x := int(pos.X / g.cellSize)
	y := int(pos.Y / g.cellSize)

	if y >= 0 && y < len(g.cells) && x >= 0 && x < len(g.cells[0]) {
		return g.cells[y][x]
	}

	return TerrainCell{X: x, Y: y, Type: TerrainOpen, Movement: 1}
}

// Rows returns the number of grid rows.
func (g *TerrainGrid) Rows() int { return len(g.cells) }

// Cols returns the number of grid columns.
func (g *TerrainGrid) Cols() int {
	if len(g.cells) == 0 {
		return 0
	}
	return len(g.cells[0])
}

// Cells returns a copy of the grid for read-only consumers.
func (g *TerrainGrid) Cells() [][]TerrainCell {
	out := make([][]TerrainCell, len(g.cells))
	for i, row := range g.cells {
		out[i] = append([]TerrainCell(nil), row...)
	}
	return out
}
