package core

import (
	"math"
	"math/rand"

	"github.com/caxsim/tactical-command/pkg/geo"
)

// CombatOutcome designates which side prevailed in an engagement
type CombatOutcome string

const (
	OutcomeAttacker CombatOutcome = "ATTACKER"
	OutcomeDefender CombatOutcome = "DEFENDER"
	OutcomeDraw     CombatOutcome = "DRAW"
)

// CombatResult is the outcome of one resolved engagement. It is produced
// by Resolve and applied separately by Apply; only the combat log keeps
// it afterwards.
type CombatResult struct {
	AttackerLosses int
	DefenderLosses int
	Winner         CombatOutcome
	MoraleDamage   float64
	AmmunitionUsed float64
	Duration       float64 // seconds
	CasualtyRatio  float64
}

// Resolver computes engagement outcomes. It holds the injected random
// source used for bounded casualty variance, so two resolvers seeded
// identically produce identical results.
type Resolver struct {
	rng *rand.Rand
}

// NewResolver creates a combat resolver drawing variance from rng.
func NewResolver(rng *rand.Rand) *Resolver {
	return &Resolver{rng: rng}
}

// Resolve computes a one-shot engagement outcome between two opposing
// units under the given environment. Inputs are not mutated.
func (r *Resolver) Resolve(attacker, defender *Unit, terrain TerrainType, weather Weather, timeOfDay TimeOfDay) CombatResult {
	attackPower := attacker.Firepower * float64(attacker.Count) * (attacker.Ammunition / 100)
	defensePower := defender.Armor * float64(defender.Count)

	terrainMod := TerrainModifiers[terrain]
	attackPower *= terrainMod.Attack
	defensePower *= terrainMod.Defense

	attackPower *= WeatherEffects[weather].Combat
	attackPower *= TimeVisibility[timeOfDay]

	attackPower *= attacker.Morale / 100
	defensePower *= defender.Morale / 100

	// High ground: defender more than 10m above the attacker
	if defender.Position.Elevation > attacker.Position.Elevation+10 {
		defensePower *= 1.3
	}

	if IsFlankAttack(attacker, defender) {
		attackPower *= 1.4
		defensePower *= 0.7
	}

	attackerLosses := r.losses(defensePower, attacker.Count, attacker.Armor)
	defenderLosses := r.losses(attackPower, defender.Count, defender.Armor)

	winner := determineWinner(attackPower, defensePower, attackerLosses, defenderLosses)
	moraleDamage := moraleDamage(winner, attackerLosses, defenderLosses, attacker, defender)

	// 5% of the attacking force expends ammunition per engagement
	ammunitionUsed := math.Floor(float64(attacker.Count) * 0.05)

	return CombatResult{
		AttackerLosses: attackerLosses,
		DefenderLosses: defenderLosses,
		Winner:         winner,
		MoraleDamage:   moraleDamage,
		AmmunitionUsed: ammunitionUsed,
		Duration:       60,
		CasualtyRatio:  float64(defenderLosses) / float64(attackerLosses+1),
	}
}

// losses computes casualties inflicted by enemyPower on a unit of the
// given count and armor, with bounded random variance, capped at count.
func (r *Resolver) losses(enemyPower float64, unitCount int, armor float64) int {
	baseRate := enemyPower / (armor * 100)
	randomFactor := 0.8 + r.rng.Float64()*0.4
	losses := int(math.Floor(float64(unitCount) * baseRate * randomFactor))
	if losses > unitCount {
		losses = unitCount
	}
	return losses
}

func determineWinner(attackPower, defensePower float64, attackerLosses, defenderLosses int) CombatOutcome {
	powerRatio := attackPower / (defensePower + 1)
	lossRatio := float64(defenderLosses) / float64(attackerLosses+1)

	score := powerRatio * lossRatio

	if score > 1.5 {
		return OutcomeAttacker
	}
	if score < 0.7 {
		return OutcomeDefender
	}
	return OutcomeDraw
}

func moraleDamage(winner CombatOutcome, attackerLosses, defenderLosses int, attacker, defender *Unit) float64 {
	damage := 10.0

	// The loser's morale tracks the winner's own casualties; draws are
	// demoralizing for everyone.
	switch winner {
	case OutcomeAttacker:
		damage += float64(attackerLosses) * 0.5
	case OutcomeDefender:
		damage += float64(defenderLosses) * 0.5
	default:
		damage += 15
	}

	attackerCasualtyRate := float64(attackerLosses) / float64(attacker.MaxCount)
	defenderCasualtyRate := float64(defenderLosses) / float64(defender.MaxCount)

	if attackerCasualtyRate > 0.25 {
		damage += 15
	}
	if defenderCasualtyRate > 0.25 {
		damage += 15
	}

	return math.Min(damage, 40)
}

// IsFlankAttack reports whether the attacker is outside the defender's
// frontal arc: the bearing from defender to attacker deviates more than
// 90 degrees from the defender's facing.
func IsFlankAttack(attacker, defender *Unit) bool {
	attackBearing := geo.Bearing(defender.Position, attacker.Position)

	diff := math.Abs(attackBearing - defender.Facing)
	if diff > 180 {
		diff = 360 - diff
	}

	return diff > 90
}

// Apply mutates both units with an engagement result: casualties, morale
// (the winner takes half damage), ammunition, and the resulting status
// transitions. Destroyed is terminal; a shaken defender can end up pinned.
func Apply(attacker, defender *Unit, result CombatResult) {
	attacker.Count -= result.AttackerLosses
	if attacker.Count < 0 {
		attacker.Count = 0
	}
	defender.Count -= result.DefenderLosses
	if defender.Count < 0 {
		defender.Count = 0
	}

	switch result.Winner {
	case OutcomeAttacker:
		attacker.Morale = math.Max(0, attacker.Morale-result.MoraleDamage*0.5)
		defender.Morale = math.Max(0, defender.Morale-result.MoraleDamage)
	case OutcomeDefender:
		attacker.Morale = math.Max(0, attacker.Morale-result.MoraleDamage)
		defender.Morale = math.Max(0, defender.Morale-result.MoraleDamage*0.5)
	default:
		attacker.Morale = math.Max(0, attacker.Morale-result.MoraleDamage)
		defender.Morale = math.Max(0, defender.Morale-result.MoraleDamage)
	}

	attacker.Ammunition = math.Max(0, attacker.Ammunition-result.AmmunitionUsed)

	if attacker.Count == 0 {
		attacker.Status = StatusDestroyed
	} else if attacker.Morale < 30 {
		attacker.Status = StatusRetreating
	}

	if defender.Count == 0 {
		defender.Status = StatusDestroyed
	} else if defender.Morale < 30 {
		defender.Status = StatusRetreating
	} else if defender.Morale < 50 {
		defender.Status = StatusPinned
	}
}

// CanEngage reports whether u1 can open an engagement against u2: both
// active, u2 inside u1's weapon range, u1 has ammunition, and the two
// are on opposing sides.
func CanEngage(u1, u2 *Unit) bool {
	if !u1.IsActive() || !u2.IsActive() {
		return false
	}

	if geo.Distance(u1.Position, u2.Position) > u1.WeaponRange {
		return false
	}

	if u1.Ammunition <= 0 {
		return false
	}

	if u1.Affiliation == u2.Affiliation {
		return false
	}
	return u1.Affiliation.Opposing() == u2.Affiliation
}

// SuppressionEffect returns the effectiveness reduction (percent, capped
// at 50) a fire mission imposes on the defender without inflicting
// casualties.
func SuppressionEffect(attacker, defender *Unit) float64 {
	if defender.Count == 0 {
		return 50
	}
	suppressionPower := attacker.Firepower * (float64(attacker.Count) / float64(defender.Count))
	return math.Min(50, suppressionPower*5)
}
