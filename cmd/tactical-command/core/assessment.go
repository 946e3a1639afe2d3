package core

import (
	"math"

	"github.com/caxsim/tactical-command/pkg/geo"
)

// TacticalAssessment is an ephemeral per-tick numeric summary of the
// battlefield from one side's point of view.
type TacticalAssessment struct {
	ForceRatio      float64
	ObjectivesHeld  int
	ObjectivesTotal int
	AvgAmmo         float64
	AvgFuel         float64
	AvgMorale       float64
	FlankExposed    bool
	IsolatedEnemy   *Unit
	Confidence      float64
}

// Assess derives the situational summary for one side. Read-only over
// the given units and objectives.
func Assess(units []*Unit, objectives []*Objective, side Affiliation) TacticalAssessment {
	own := FilterByAffiliation(units, side)
	enemy := FilterByAffiliation(units, side.Opposing())

	ownStrength := 0.0
	for _, u := range own {
		ownStrength += float64(u.Count) * u.Firepower
	}
	enemyStrength := 0.0
	for _, u := range enemy {
		enemyStrength += float64(u.Count) * u.Firepower
	}
	forceRatio := ownStrength / (enemyStrength + 1)

	objectivesHeld := 0
	for _, obj := range objectives {
		if obj.ControlledBy == side {
			objectivesHeld++
		}
	}

	avgAmmo, avgFuel, avgMorale := supplyAverages(own)

	return TacticalAssessment{
		ForceRatio:      forceRatio,
		ObjectivesHeld:  objectivesHeld,
		ObjectivesTotal: len(objectives),
		AvgAmmo:         avgAmmo,
		AvgFuel:         avgFuel,
		AvgMorale:       avgMorale,
		FlankExposed:    flankExposed(enemy),
		IsolatedEnemy:   findIsolatedUnit(enemy),
		Confidence:      confidence(forceRatio, avgAmmo, avgMorale),
	}
}

// supplyAverages computes mean ammo/fuel/morale over active units,
// returning zeros when none remain.
func supplyAverages(units []*Unit) (ammo, fuel, morale float64) {
	active := ActiveUnits(units)
	if len(active) == 0 {
		return 0, 0, 0
	}
	for _, u := range active {
		ammo += u.Ammunition
		fuel += u.Fuel
		morale += u.Morale
	}
	n := float64(len(active))
	return ammo / n, fuel / n, morale / n
}

// flankExposed is true when three or more units are spread wider than
// 400m across the x axis.
func flankExposed(units []*Unit) bool {
	if len(units) < 3 {
		return false
	}

	minX := math.Inf(1)
	maxX := math.Inf(-1)
	for _, u := range units {
		minX = math.Min(minX, u.Position.X)
		maxX = math.Max(maxX, u.Position.X)
	}
	return maxX-minX > 400
}

// findIsolatedUnit returns the first unit with no ally within 200m,
// or nil. First-found, not closest; the ordering bias is intended.
func findIsolatedUnit(units []*Unit) *Unit {
	for _, unit := range units {
		isolated := true
		for _, other := range units {
			if other.ID == unit.ID {
				continue
			}
			if geo.Distance(other.Position, unit.Position) < 200 {
				isolated = false
				break
			}
		}
		if isolated {
			return unit
		}
	}
	return nil
}

func confidence(forceRatio, ammo, morale float64) float64 {
	return math.Min(100, forceRatio*30+ammo*0.3+morale*0.4)
}
