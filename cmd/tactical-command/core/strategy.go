package core

// StrategyType is a discrete AI behavior mode
type StrategyType string

const (
	StrategyAggressiveAssault StrategyType = "AGGRESSIVE_ASSAULT"
	StrategyFlankingManeuver  StrategyType = "FLANKING_MANEUVER"
	StrategyMethodicalAttack  StrategyType = "METHODICAL_ATTACK"
	StrategyDefensivePosture  StrategyType = "DEFENSIVE_POSTURE"
	StrategyFocusFire         StrategyType = "FOCUS_FIRE"
	StrategyTacticalRetreat   StrategyType = "TACTICAL_RETREAT"
	StrategyHoldGround        StrategyType = "HOLD_GROUND"
)

// Strategy pairs a behavior mode with its human-readable rationale for
// the combat log.
type Strategy struct {
	Type        StrategyType
	Description string
}

// SelectStrategy maps an assessment to one strategy via ordered
// threshold rules. The rules overlap, so evaluation order matters:
// the first match wins.
func SelectStrategy(a TacticalAssessment) Strategy {
	// Overwhelming superiority = aggressive attack
	if a.ForceRatio > 2.0 && a.AvgAmmo > 60 {
		return Strategy{
			Type:        StrategyAggressiveAssault,
			Description: "Overwhelming force - full assault on all fronts",
		}
	}

	// Superiority + exposed flank = flanking maneuver
	if a.ForceRatio > 1.3 && a.FlankExposed {
		return Strategy{
			Type:        StrategyFlankingManeuver,
			Description: "Enemy flank exposed - execute double envelopment",
		}
	}

	// Slight advantage = methodical attack
	if a.ForceRatio > 1.0 && a.ForceRatio < 1.5 {
		return Strategy{
			Type:        StrategyMethodicalAttack,
			Description: "Gradual advance with fire support",
		}
	}

	// Equal forces = defensive posture
	if a.ForceRatio >= 0.8 && a.ForceRatio <= 1.2 {
		return Strategy{
			Type:        StrategyDefensivePosture,
			Description: "Hold ground and wait for opportunity",
		}
	}

	// Inferior + isolated enemy = focus fire
	if a.ForceRatio < 0.8 && a.IsolatedEnemy != nil {
		return Strategy{
			Type:        StrategyFocusFire,
			Description: "Concentrate fire on isolated enemy units",
		}
	}

	// Weak + low supplies = retreat
	if a.ForceRatio < 0.6 || a.AvgAmmo < 30 || a.AvgMorale < 40 {
		return Strategy{
			Type:        StrategyTacticalRetreat,
			Description: "Withdraw and regroup",
		}
	}

	return Strategy{
		Type:        StrategyHoldGround,
		Description: "Maintain current positions",
	}
}
