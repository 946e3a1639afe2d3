package core

import (
	"math"

	"github.com/caxsim/tactical-command/pkg/geo"
)

// GenerateOrders expands a selected strategy into concrete per-unit
// orders for one side. Deterministic per strategy; destroyed units are
// skipped.
func GenerateOrders(strategy Strategy, units []*Unit, objectives []*Objective, assessment TacticalAssessment, side Affiliation) []*Order {
	own := FilterByAffiliation(units, side)
	enemy := FilterByAffiliation(units, side.Opposing())

	var orders []*Order

	switch strategy.Type {

	case StrategyAggressiveAssault, StrategyMethodicalAttack:
		// Every unit attacks its nearest target; a methodical attack is
		// the same scheme at lower urgency.
		priority := 1
		if strategy.Type == StrategyMethodicalAttack {
			priority = 2
		}
		for _, unit := range own {
			if !unit.IsActive() {
				continue
			}
			target := nearestTarget(unit, enemy, objectives, side)
			orders = append(orders, NewOrder(unit.ID, CommandAttack, PositionTarget(target), priority))
		}

	case StrategyFlankingManeuver:
		// Split forces: 60% frontal, 40% around the flank
		splitIndex := int(math.Floor(float64(len(own)) * 0.6))
		frontal := own[:splitIndex]
		flanking := own[splitIndex:]

		center := enemyCenter(enemy)
		for _, unit := range frontal {
			if !unit.IsActive() {
				continue
			}
			orders = append(orders, NewOrder(unit.ID, CommandAttack, PositionTarget(center), 2))
		}

		flankPos := geo.Position{X: center.X + 300, Y: center.Y}
		for _, unit := range flanking {
			if !unit.IsActive() {
				continue
			}
			orders = append(orders, NewOrder(unit.ID, CommandFlank, PositionTarget(flankPos), 1))
		}

	case StrategyDefensivePosture:
		for _, unit := range own {
			if !unit.IsActive() {
				continue
			}
			pos := nearestObjectivePosition(unit, objectives)
			orders = append(orders, NewOrder(unit.ID, CommandDefend, PositionTarget(pos), 3))
		}

	case StrategyTacticalRetreat:
		rally := rallyPoint(own)
		for _, unit := range own {
			if !unit.IsActive() {
				continue
			}
			orders = append(orders, NewOrder(unit.ID, CommandRetreat, PositionTarget(rally), 1))
		}

	case StrategyFocusFire:
		if assessment.IsolatedEnemy != nil {
			for _, unit := range own {
				if !unit.IsActive() {
					continue
				}
				orders = append(orders, NewOrder(unit.ID, CommandAttack, PositionTarget(assessment.IsolatedEnemy.Position), 1))
			}
		}

	default: // StrategyHoldGround
		for _, unit := range own {
			if !unit.IsActive() {
				continue
			}
			orders = append(orders, NewOrder(unit.ID, CommandHold, Target{}, 4))
		}
	}

	return orders
}

// nearestTarget picks the closest of any active enemy unit or any
// objective not already controlled by side. Falls back to the unit's own
// position when nothing qualifies.
func nearestTarget(unit *Unit, enemies []*Unit, objectives []*Objective, side Affiliation) geo.Position {
	nearestDist := math.Inf(1)
	nearestPos := unit.Position

	for _, enemy := range enemies {
		if !enemy.IsActive() {
			continue
		}
		dist := geo.Distance(unit.Position, enemy.Position)
		if dist < nearestDist {
			nearestDist = dist
			nearestPos = enemy.Position
		}
	}

	for _, obj := range objectives {
		if obj.ControlledBy == side {
			continue
		}
		dist := geo.Distance(unit.Position, obj.Position)
		if dist < nearestDist {
			nearestDist = dist
			nearestPos = obj.Position
		}
	}

	return nearestPos
}

// enemyCenter is the centroid of enemy positions; midfield when no
// enemies remain.
func enemyCenter(enemies []*Unit) geo.Position {
	if len(enemies) == 0 {
		return geo.Position{X: 600, Y: 400}
	}

	var sumX, sumY float64
	for _, u := range enemies {
		sumX += u.Position.X
		sumY += u.Position.Y
	}
	n := float64(len(enemies))
	return geo.Position{X: sumX / n, Y: sumY / n}
}

// nearestObjectivePosition returns the position of the objective closest
// to the unit, or the unit's own position when there are none to defend.
func nearestObjectivePosition(unit *Unit, objectives []*Objective) geo.Position {
	if len(objectives) == 0 {
		return unit.Position
	}

	nearest := objectives[0].Position
	nearestDist := math.Inf(1)
	for _, obj := range objectives {
		dist := geo.Distance(unit.Position, obj.Position)
		if dist < nearestDist {
			nearestDist = dist
			nearest = obj.Position
		}
	}
	return nearest
}

// rallyPoint is 200m behind the side's centroid, clamped so retreating
// units never leave the map.
func rallyPoint(own []*Unit) geo.Position {
	if len(own) == 0 {
		return geo.Position{X: 100, Y: 400}
	}

	var sumX float64
	for _, u := range own {
		sumX += u.Position.X
	}
	avgX := sumX / float64(len(own))

	return geo.Position{X: math.Max(50, avgX-200), Y: 400}
}
