package core

import (
	"math"
	"testing"

	"github.com/caxsim/tactical-command/pkg/geo"
)

func TestAssessForceRatio(t *testing.T) {
	// Two friendly infantry platoons (90 strength each) vs one enemy
	units := []*Unit{
		newTestUnit(ClassInfantry, AffiliationFriendly, 100, 300),
		newTestUnit(ClassInfantry, AffiliationFriendly, 100, 500),
		newTestUnit(ClassInfantry, AffiliationEnemy, 1000, 400),
	}

	a := Assess(units, nil, AffiliationFriendly)

	want := 180.0 / 91.0
	if math.Abs(a.ForceRatio-want) > 1e-9 {
		t.Errorf("Force ratio = %f, want %f", a.ForceRatio, want)
	}

	// The same battlefield from the other side
	b := Assess(units, nil, AffiliationEnemy)
	if b.ForceRatio >= a.ForceRatio {
		t.Errorf("Enemy ratio %f should be below friendly ratio %f", b.ForceRatio, a.ForceRatio)
	}
}

func TestAssessObjectivesHeld(t *testing.T) {
	objectives := []*Objective{
		{ID: "a", ControlledBy: AffiliationFriendly},
		{ID: "b", ControlledBy: AffiliationEnemy},
		{ID: "c"},
	}

	a := Assess(nil, objectives, AffiliationFriendly)
	if a.ObjectivesHeld != 1 {
		t.Errorf("Expected 1 objective held, got %d", a.ObjectivesHeld)
	}
	if a.ObjectivesTotal != 3 {
		t.Errorf("Expected 3 objectives total, got %d", a.ObjectivesTotal)
	}
}

func TestSupplyAveragesSkipDestroyed(t *testing.T) {
	alive := newTestUnit(ClassInfantry, AffiliationFriendly, 0, 0)
	alive.Ammunition = 50
	alive.Fuel = 40
	alive.Morale = 60

	dead := newTestUnit(ClassInfantry, AffiliationFriendly, 0, 100)
	dead.Status = StatusDestroyed
	dead.Ammunition = 0
	dead.Morale = 0

	a := Assess([]*Unit{alive, dead}, nil, AffiliationFriendly)

	if a.AvgAmmo != 50 || a.AvgFuel != 40 || a.AvgMorale != 60 {
		t.Errorf("Destroyed units polluted averages: ammo=%f fuel=%f morale=%f", a.AvgAmmo, a.AvgFuel, a.AvgMorale)
	}
}

func TestSupplyAveragesEmptyForce(t *testing.T) {
	dead := newTestUnit(ClassInfantry, AffiliationFriendly, 0, 0)
	dead.Status = StatusDestroyed

	a := Assess([]*Unit{dead}, nil, AffiliationFriendly)

	if a.AvgAmmo != 0 || a.AvgFuel != 0 || a.AvgMorale != 0 {
		t.Errorf("Expected zero averages for a wiped-out force, got ammo=%f fuel=%f morale=%f", a.AvgAmmo, a.AvgFuel, a.AvgMorale)
	}
}

func TestFlankExposed(t *testing.T) {
	at := func(x float64) *Unit {
		return newTestUnit(ClassInfantry, AffiliationEnemy, x, 400)
	}

	tests := []struct {
		name  string
		enemy []*Unit
		want  bool
	}{
		{"two units never exposed", []*Unit{at(0), at(1000)}, false},
		{"wide spread exposed", []*Unit{at(0), at(250), at(500)}, true},
		{"exactly 400m is not exposed", []*Unit{at(0), at(200), at(400)}, false},
		{"tight formation", []*Unit{at(0), at(100), at(200)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Assess(tt.enemy, nil, AffiliationFriendly)
			if a.FlankExposed != tt.want {
				t.Errorf("FlankExposed = %v, want %v", a.FlankExposed, tt.want)
			}
		})
	}
}

func TestFindIsolatedEnemy(t *testing.T) {
	near1 := newTestUnit(ClassInfantry, AffiliationEnemy, 1000, 400)
	near2 := newTestUnit(ClassInfantry, AffiliationEnemy, 1000, 550)
	loner := newTestUnit(ClassRecon, AffiliationEnemy, 200, 100)

	a := Assess([]*Unit{near1, near2, loner}, nil, AffiliationFriendly)
	if a.IsolatedEnemy == nil {
		t.Fatal("Expected an isolated enemy")
	}
	if a.IsolatedEnemy.ID != loner.ID {
		t.Errorf("Expected the recon unit, got %s", a.IsolatedEnemy.ID)
	}

	// Mutual support within 200m means nobody is isolated
	b := Assess([]*Unit{near1, near2}, nil, AffiliationFriendly)
	if b.IsolatedEnemy != nil {
		t.Errorf("Expected no isolated enemy, got %s", b.IsolatedEnemy.ID)
	}
}

func TestConfidenceCappedAt100(t *testing.T) {
	units := []*Unit{
		newTestUnit(ClassArmor, AffiliationFriendly, 0, 0),
		newTestUnit(ClassArmor, AffiliationFriendly, 0, 100),
	}
	units[0].Morale = 100
	units[1].Morale = 100

	a := Assess(units, nil, AffiliationFriendly)
	if a.Confidence != 100 {
		t.Errorf("Expected confidence capped at 100, got %f", a.Confidence)
	}
}

func TestActiveUnitsAndFilter(t *testing.T) {
	friendly := newTestUnit(ClassInfantry, AffiliationFriendly, 0, 0)
	enemy := newTestUnit(ClassInfantry, AffiliationEnemy, 500, 0)
	destroyed := newTestUnit(ClassInfantry, AffiliationEnemy, 600, 0)
	destroyed.Status = StatusDestroyed

	all := []*Unit{friendly, enemy, destroyed}

	if got := len(FilterByAffiliation(all, AffiliationEnemy)); got != 2 {
		t.Errorf("Expected 2 enemy units, got %d", got)
	}
	if got := len(ActiveUnits(all)); got != 2 {
		t.Errorf("Expected 2 active units, got %d", got)
	}

	pos := geo.Position{X: 0, Y: 0}
	if friendly.Position != pos {
		t.Errorf("Unexpected position %+v", friendly.Position)
	}
}
