// Package geo provides the geometry and angular math used across the
// tactical simulation: distances, bearings, arc tests, and the military
// angular units (mils) used for fire direction.
package geo

import (
	"fmt"
	"math"
	"math/rand"
)

// Position is a 2D battlefield position in meters, with optional
// elevation above sea level.
type Position struct {
	X         float64
	Y         float64
	Elevation float64
}

// Distance returns the 2D Euclidean distance between two positions.
func Distance(from, to Position) float64 {
	dx := to.X - from.X
	dy := to.Y - from.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Azimuth returns the compass bearing from one position to another in
// degrees [0, 360), with 0 pointing up the map (north).
func Azimuth(from, to Position) float64 {
	dx := to.X - from.X
	dy := to.Y - from.Y
	azimuth := math.Atan2(dx, -dy) * (180 / math.Pi)
	if azimuth < 0 {
		azimuth += 360
	}
	return azimuth
}

// Bearing returns the mathematical angle from one position to another in
// degrees [0, 360), measured counterclockwise from the +X axis. Movement
// and flank-arc checks use this convention.
func Bearing(from, to Position) float64 {
	dx := to.X - from.X
	dy := to.Y - from.Y
	return NormalizeAngle(math.Atan2(dy, dx) * (180 / math.Pi))
}

// NormalizeAngle wraps an angle into [0, 360).
func NormalizeAngle(angle float64) float64 {
	for angle < 0 {
		angle += 360
	}
	for angle >= 360 {
		angle -= 360
	}
	return angle
}

// AngleDifference returns the shortest signed difference between two
// angles, in (-180, 180].
func AngleDifference(angle1, angle2 float64) float64 {
	diff := angle2 - angle1
	for diff < -180 {
		diff += 360
	}
	for diff > 180 {
		diff -= 360
	}
	return diff
}

// IsInFrontalArc reports whether a target lies within arcWidth degrees
// either side of a unit's facing.
func IsInFrontalArc(unitPos Position, unitFacing float64, targetPos Position, arcWidth float64) bool {
	bearing := Bearing(unitPos, targetPos)
	diff := math.Abs(AngleDifference(unitFacing, bearing))
	return diff <= arcWidth
}

// IsInRange reports whether a target is within the given range of a unit.
func IsInRange(unitPos, targetPos Position, rangeMeters float64) bool {
	return Distance(unitPos, targetPos) <= rangeMeters
}

// Interpolate returns the position at fraction t along the straight line
// from one position to another.
func Interpolate(from, to Position, t float64) Position {
	return Position{
		X:         from.X + (to.X-from.X)*t,
		Y:         from.Y + (to.Y-from.Y)*t,
		Elevation: from.Elevation + (to.Elevation-from.Elevation)*t,
	}
}

// DegreesToMils converts degrees to NATO mils (6400 mils per circle).
func DegreesToMils(degrees float64) float64 {
	return degrees * (6400.0 / 360.0)
}

// MilsToDegrees converts NATO mils to degrees.
func MilsToDegrees(mils float64) float64 {
	return mils * (360.0 / 6400.0)
}

// Clamp limits a value to the [min, max] interval.
func Clamp(value, min, max float64) float64 {
	return math.Max(min, math.Min(max, value))
}

// RandomRange draws a uniform value in [min, max) from rng.
func RandomRange(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

// GridReference formats a position as a simplified MGRS-style grid
// reference for log output.
func GridReference(pos Position) string {
	gridX := int(pos.X) / 100
	gridY := int(pos.Y) / 100
	return fmt.Sprintf("38T ML %05d %05d", gridX, gridY)
}
