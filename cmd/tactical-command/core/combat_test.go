package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/caxsim/tactical-command/pkg/geo"
)

func newTestUnit(class UnitClass, side Affiliation, x, y float64) *Unit {
	return NewUnit(class, side, 0, geo.Position{X: x, Y: y})
}

func TestResolveInfantryMeetingEngagement(t *testing.T) {
	// Fresh infantry platoons in the open, attacker inside the frontal
	// arc: attack power 93.6 vs defense power 19.2
	attacker := newTestUnit(ClassInfantry, AffiliationFriendly, 0, 0)
	defender := newTestUnit(ClassInfantry, AffiliationEnemy, 100, 0)

	resolver := NewResolver(rand.New(rand.NewSource(1)))
	result := resolver.Resolve(attacker, defender, TerrainOpen, WeatherClear, TimeDay)

	if result.Winner != OutcomeAttacker {
		t.Errorf("Expected attacker victory, got %s", result.Winner)
	}

	if result.AttackerLosses < 4 || result.AttackerLosses > 6 {
		t.Errorf("Attacker losses out of expected band [4,6]: %d", result.AttackerLosses)
	}

	if result.DefenderLosses < 22 || result.DefenderLosses > 30 {
		t.Errorf("Defender losses out of expected band [22,30]: %d", result.DefenderLosses)
	}

	if result.AmmunitionUsed != 1 {
		t.Errorf("Expected 1%% ammunition expenditure for 30 troops, got %f", result.AmmunitionUsed)
	}

	if result.Duration != 60 {
		t.Errorf("Expected 60s engagement duration, got %f", result.Duration)
	}

	// Resolve must not mutate its inputs
	if attacker.Count != 30 || defender.Count != 30 {
		t.Error("Resolve mutated unit counts")
	}
}

func TestResolveLossesCappedAtCount(t *testing.T) {
	attacker := newTestUnit(ClassInfantry, AffiliationFriendly, 0, 0)
	defender := newTestUnit(ClassInfantry, AffiliationEnemy, 100, 0)
	defender.Count = 2
	defender.Armor = 0.5

	resolver := NewResolver(rand.New(rand.NewSource(3)))
	result := resolver.Resolve(attacker, defender, TerrainOpen, WeatherClear, TimeDay)

	if result.DefenderLosses != 2 {
		t.Errorf("Expected losses capped at remaining count 2, got %d", result.DefenderLosses)
	}
}

func TestResolveDeterministicWithSeed(t *testing.T) {
	makeUnits := func() (*Unit, *Unit) {
		return newTestUnit(ClassArmor, AffiliationFriendly, 0, 0),
			newTestUnit(ClassMechInfantry, AffiliationEnemy, 300, 100)
	}

	a1, d1 := makeUnits()
	a2, d2 := makeUnits()

	r1 := NewResolver(rand.New(rand.NewSource(42))).Resolve(a1, d1, TerrainForest, WeatherRain, TimeDusk)
	r2 := NewResolver(rand.New(rand.NewSource(42))).Resolve(a2, d2, TerrainForest, WeatherRain, TimeDusk)

	if r1 != r2 {
		t.Errorf("Identical seeds produced different results:\n%+v\n%+v", r1, r2)
	}
}

func TestIsFlankAttack(t *testing.T) {
	tests := []struct {
		name  string
		angle float64 // bearing from defender to attacker
		want  bool
	}{
		{"dead ahead", 0, false},
		{"edge of frontal arc", 89, false},
		{"exactly 90 degrees", 90, false},
		{"just past the arc", 91, true},
		{"directly behind", 180, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defender := newTestUnit(ClassInfantry, AffiliationEnemy, 0, 0)
			defender.Facing = 0

			rad := tt.angle * math.Pi / 180
			attacker := newTestUnit(ClassInfantry, AffiliationFriendly, 100*math.Cos(rad), 100*math.Sin(rad))

			if got := IsFlankAttack(attacker, defender); got != tt.want {
				t.Errorf("IsFlankAttack at %0.f degrees = %v, want %v", tt.angle, got, tt.want)
			}
		})
	}
}

func TestFlankAttackIncreasesDefenderLosses(t *testing.T) {
	resolveAt := func(angle float64) CombatResult {
		defender := newTestUnit(ClassInfantry, AffiliationEnemy, 0, 0)
		defender.Facing = 0
		rad := angle * math.Pi / 180
		attacker := newTestUnit(ClassInfantry, AffiliationFriendly, 100*math.Cos(rad), 100*math.Sin(rad))
		return NewResolver(rand.New(rand.NewSource(7))).Resolve(attacker, defender, TerrainOpen, WeatherClear, TimeDay)
	}

	frontal := resolveAt(0)
	flank := resolveAt(180)

	if flank.DefenderLosses < frontal.DefenderLosses {
		t.Errorf("Flank attack inflicted fewer defender losses: %d < %d", flank.DefenderLosses, frontal.DefenderLosses)
	}
	if flank.AttackerLosses > frontal.AttackerLosses {
		t.Errorf("Flank attack cost more attacker losses: %d > %d", flank.AttackerLosses, frontal.AttackerLosses)
	}
}

func TestHighGroundFavorsDefender(t *testing.T) {
	resolveWithElevation := func(defElev float64) CombatResult {
		attacker := newTestUnit(ClassInfantry, AffiliationFriendly, 0, 0)
		defender := newTestUnit(ClassInfantry, AffiliationEnemy, 100, 0)
		defender.Position.Elevation = defElev
		return NewResolver(rand.New(rand.NewSource(11))).Resolve(attacker, defender, TerrainHill, WeatherClear, TimeDay)
	}

	level := resolveWithElevation(0)
	elevated := resolveWithElevation(50)

	if elevated.AttackerLosses < level.AttackerLosses {
		t.Errorf("High ground reduced attacker losses: %d < %d", elevated.AttackerLosses, level.AttackerLosses)
	}

	// 10m is not enough for the bonus
	slight := resolveWithElevation(10)
	if slight.AttackerLosses != level.AttackerLosses {
		t.Errorf("10m elevation changed the outcome: %d vs %d", slight.AttackerLosses, level.AttackerLosses)
	}
}

func TestMoraleDamageBounds(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		attacker := newTestUnit(ClassInfantry, AffiliationFriendly, 0, 0)
		defender := newTestUnit(ClassInfantry, AffiliationEnemy, 100, 0)

		result := NewResolver(rand.New(rand.NewSource(seed))).Resolve(attacker, defender, TerrainUrban, WeatherClear, TimeDay)
		if result.MoraleDamage < 10 || result.MoraleDamage > 40 {
			t.Errorf("Seed %d: morale damage %f outside [10,40]", seed, result.MoraleDamage)
		}
	}
}

func TestApplyWinnerTakesHalfMoraleDamage(t *testing.T) {
	attacker := newTestUnit(ClassInfantry, AffiliationFriendly, 0, 0)
	defender := newTestUnit(ClassInfantry, AffiliationEnemy, 100, 0)

	Apply(attacker, defender, CombatResult{
		AttackerLosses: 3,
		DefenderLosses: 10,
		Winner:         OutcomeAttacker,
		MoraleDamage:   20,
		AmmunitionUsed: 1,
	})

	if attacker.Morale != 70 {
		t.Errorf("Expected winner morale 70, got %f", attacker.Morale)
	}
	if defender.Morale != 60 {
		t.Errorf("Expected loser morale 60, got %f", defender.Morale)
	}
	if attacker.Count != 27 || defender.Count != 20 {
		t.Errorf("Unexpected counts after losses: %d / %d", attacker.Count, defender.Count)
	}
	if attacker.Ammunition != 99 {
		t.Errorf("Expected ammunition 99, got %f", attacker.Ammunition)
	}
}

func TestApplyStatusTransitions(t *testing.T) {
	tests := []struct {
		name          string
		defenderCount int
		moraleBefore  float64
		result        CombatResult
		wantStatus    UnitStatus
	}{
		{
			name:          "annihilated defender is destroyed",
			defenderCount: 10,
			moraleBefore:  80,
			result:        CombatResult{DefenderLosses: 10, Winner: OutcomeAttacker, MoraleDamage: 40},
			wantStatus:    StatusDestroyed,
		},
		{
			name:          "shaken defender is pinned",
			defenderCount: 30,
			moraleBefore:  80,
			result:        CombatResult{DefenderLosses: 5, Winner: OutcomeAttacker, MoraleDamage: 35},
			wantStatus:    StatusPinned,
		},
		{
			name:          "broken defender retreats",
			defenderCount: 30,
			moraleBefore:  60,
			result:        CombatResult{DefenderLosses: 5, Winner: OutcomeAttacker, MoraleDamage: 35},
			wantStatus:    StatusRetreating,
		},
		{
			name:          "steady defender keeps status",
			defenderCount: 30,
			moraleBefore:  80,
			result:        CombatResult{DefenderLosses: 2, Winner: OutcomeDraw, MoraleDamage: 10},
			wantStatus:    StatusIdle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attacker := newTestUnit(ClassInfantry, AffiliationFriendly, 0, 0)
			defender := newTestUnit(ClassInfantry, AffiliationEnemy, 100, 0)
			defender.Count = tt.defenderCount
			defender.Morale = tt.moraleBefore

			Apply(attacker, defender, tt.result)

			if defender.Status != tt.wantStatus {
				t.Errorf("Defender status = %s, want %s", defender.Status, tt.wantStatus)
			}
		})
	}
}

func TestApplyCountNeverNegative(t *testing.T) {
	attacker := newTestUnit(ClassInfantry, AffiliationFriendly, 0, 0)
	defender := newTestUnit(ClassInfantry, AffiliationEnemy, 100, 0)
	defender.Count = 3

	Apply(attacker, defender, CombatResult{DefenderLosses: 10, Winner: OutcomeAttacker, MoraleDamage: 10})

	if defender.Count != 0 {
		t.Errorf("Expected count floored at 0, got %d", defender.Count)
	}
	if defender.Status != StatusDestroyed {
		t.Errorf("Expected destroyed, got %s", defender.Status)
	}
}

func TestCanEngage(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(u1, u2 *Unit)
		want   bool
	}{
		{"enemy in range", func(u1, u2 *Unit) {}, true},
		{"out of weapon range", func(u1, u2 *Unit) { u2.Position.X = 500 }, false},
		{"no ammunition", func(u1, u2 *Unit) { u1.Ammunition = 0 }, false},
		{"same side", func(u1, u2 *Unit) { u2.Affiliation = AffiliationFriendly }, false},
		{"attacker destroyed", func(u1, u2 *Unit) { u1.Status = StatusDestroyed }, false},
		{"target destroyed", func(u1, u2 *Unit) { u2.Status = StatusDestroyed }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u1 := newTestUnit(ClassInfantry, AffiliationFriendly, 0, 0)
			u2 := newTestUnit(ClassInfantry, AffiliationEnemy, 300, 0)
			tt.mutate(u1, u2)

			if got := CanEngage(u1, u2); got != tt.want {
				t.Errorf("CanEngage = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSuppressionEffect(t *testing.T) {
	attacker := newTestUnit(ClassInfantry, AffiliationFriendly, 0, 0)
	defender := newTestUnit(ClassInfantry, AffiliationEnemy, 300, 0)

	// Equal strength infantry, firepower 3: 3 * 1 * 5 = 15
	if got := SuppressionEffect(attacker, defender); got != 15 {
		t.Errorf("Expected suppression 15, got %f", got)
	}

	// Overwhelming fires cap at 50
	arty := newTestUnit(ClassArtillery, AffiliationFriendly, 0, 0)
	recon := newTestUnit(ClassRecon, AffiliationEnemy, 300, 0)
	if got := SuppressionEffect(arty, recon); got != 50 {
		t.Errorf("Expected suppression capped at 50, got %f", got)
	}

	// A wiped-out defender is fully suppressed
	defender.Count = 0
	if got := SuppressionEffect(attacker, defender); got != 50 {
		t.Errorf("Expected 50 for empty defender, got %f", got)
	}
}
