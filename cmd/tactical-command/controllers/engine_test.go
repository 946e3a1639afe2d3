package controllers

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/caxsim/tactical-command/cmd/tactical-command/core"
	"github.com/caxsim/tactical-command/pkg/geo"
)

func testScenario() Scenario {
	return Scenario{
		Name:          "meeting-engagement",
		PlayerForces:  core.ForceComposition{Infantry: 1},
		OpposingForce: core.ForceComposition{Infantry: 1},
		Objectives: []*core.Objective{
			{ID: "obj-1", Name: "Crossroads", Position: geo.Position{X: 600, Y: 400}, Radius: 50},
		},
		Weather:    core.WeatherClear,
		TimeOfDay:  core.TimeDay,
		Difficulty: DifficultyMedium,
		Duration:   600,
	}
}

func friendlyUnit(t *testing.T, e *Engine) *core.Unit {
	t.Helper()
	for _, u := range e.units {
		if u.Affiliation == core.AffiliationFriendly {
			return u
		}
	}
	t.Fatal("No friendly unit in engine")
	return nil
}

func enemyUnit(t *testing.T, e *Engine) *core.Unit {
	t.Helper()
	for _, u := range e.units {
		if u.Affiliation == core.AffiliationEnemy {
			return u
		}
	}
	t.Fatal("No enemy unit in engine")
	return nil
}

func TestNewEngineSpawnsBothForces(t *testing.T) {
	e := NewEngine(testScenario(), 1)

	snap := e.GetSnapshot()
	if len(snap.Units) != 2 {
		t.Fatalf("Expected 2 units, got %d", len(snap.Units))
	}
	if snap.ElapsedTime != 0 {
		t.Errorf("Expected zero elapsed time, got %f", snap.ElapsedTime)
	}
	if snap.GameSpeed != 1 {
		t.Errorf("Expected default game speed 1, got %f", snap.GameSpeed)
	}

	friendly := friendlyUnit(t, e)
	if friendly.Position.X != 200 || friendly.Position.Y != 400 {
		t.Errorf("Friendly spawn at %+v, want (200,400)", friendly.Position)
	}
	enemy := enemyUnit(t, e)
	if enemy.Position.X != 1000 {
		t.Errorf("Enemy spawn at %+v, want x=1000", enemy.Position)
	}
}

func TestMovementAlongBearing(t *testing.T) {
	e := NewEngine(testScenario(), 1)
	unit := friendlyUnit(t, e)

	dest := geo.Position{X: 700, Y: 400}
	e.IssueOrder(unit.ID, core.NewOrder(unit.ID, core.CommandMove, core.PositionTarget(dest), 1))

	if unit.Status != core.StatusMoving {
		t.Fatalf("Expected moving status after order, got %s", unit.Status)
	}

	e.Update(1)

	// Infantry at 5 km/h covers 1.35m per simulated second
	if math.Abs(unit.Position.X-201.35) > 1e-9 {
		t.Errorf("Expected x=201.35 after one second, got %f", unit.Position.X)
	}
	if unit.Position.Y != 400 {
		t.Errorf("Expected straight-line advance, got y=%f", unit.Position.Y)
	}
	if unit.Facing != 90 {
		t.Errorf("Expected facing 90 while moving east, got %f", unit.Facing)
	}
	if math.Abs(unit.Fuel-(100-0.00135)) > 1e-9 {
		t.Errorf("Expected fuel burn of 0.00135, got %f", unit.Fuel)
	}
}

func TestMovementArrival(t *testing.T) {
	e := NewEngine(testScenario(), 1)
	unit := friendlyUnit(t, e)

	near := geo.Position{X: unit.Position.X + 3, Y: unit.Position.Y}
	order := core.NewOrder(unit.ID, core.CommandMove, core.PositionTarget(near), 1)
	e.IssueOrder(unit.ID, order)
	e.Update(1)

	if unit.Destination != nil {
		t.Error("Expected destination cleared on arrival")
	}
	if unit.Status != core.StatusIdle {
		t.Errorf("Expected idle after arrival, got %s", unit.Status)
	}
	if order.Status != core.OrderCompleted {
		t.Errorf("Expected order completed, got %s", order.Status)
	}
}

func TestPausedEngineIgnoresUpdate(t *testing.T) {
	e := NewEngine(testScenario(), 1)
	unit := friendlyUnit(t, e)
	e.IssueOrder(unit.ID, core.NewOrder(unit.ID, core.CommandMove,
		core.PositionTarget(geo.Position{X: 700, Y: 400}), 1))

	e.SetPaused(true)
	e.Update(1)

	if e.ElapsedTime() != 0 {
		t.Errorf("Paused engine advanced time to %f", e.ElapsedTime())
	}
	if unit.Position.X != 200 {
		t.Errorf("Paused engine moved a unit to x=%f", unit.Position.X)
	}

	e.SetPaused(false)
	e.Update(1)
	if e.ElapsedTime() != 1 {
		t.Errorf("Resumed engine at t=%f, want 1", e.ElapsedTime())
	}
}

func TestGameSpeedScaling(t *testing.T) {
	e := NewEngine(testScenario(), 1)

	e.SetGameSpeed(3) // unsupported, ignored
	e.Update(1)
	if e.ElapsedTime() != 1 {
		t.Errorf("Unsupported speed applied: t=%f", e.ElapsedTime())
	}

	e.SetGameSpeed(4)
	e.Update(1)
	if e.ElapsedTime() != 5 {
		t.Errorf("Expected t=5 after a 4x tick, got %f", e.ElapsedTime())
	}
}

func TestIssueOrderGating(t *testing.T) {
	e := NewEngine(testScenario(), 1)
	enemy := enemyUnit(t, e)

	// Orders for the opposing side are dropped
	e.IssueOrder(enemy.ID, core.NewOrder(enemy.ID, core.CommandMove,
		core.PositionTarget(geo.Position{X: 100, Y: 100}), 1))
	if enemy.Destination != nil || enemy.Status != core.StatusIdle {
		t.Error("Player order moved an opposing unit")
	}

	// Unknown unit IDs are dropped without panicking
	e.IssueOrder("no-such-unit", core.NewOrder("no-such-unit", core.CommandMove,
		core.PositionTarget(geo.Position{X: 100, Y: 100}), 1))
}

func TestUnsupportedOrderCancelled(t *testing.T) {
	e := NewEngine(testScenario(), 1)
	unit := friendlyUnit(t, e)

	order := core.NewOrder(unit.ID, core.CommandResupply, core.Target{}, 3)
	e.IssueOrder(unit.ID, order)

	if order.Status != core.OrderCancelled {
		t.Errorf("Expected resupply order cancelled, got %s", order.Status)
	}
	if unit.Status != core.StatusIdle {
		t.Errorf("Cancelled order changed unit status to %s", unit.Status)
	}
}

func TestCombatWhenInRange(t *testing.T) {
	e := NewEngine(testScenario(), 1)
	friendly := friendlyUnit(t, e)
	enemy := enemyUnit(t, e)

	// Close the distance below infantry weapon range
	friendly.Position = geo.Position{X: 700, Y: 400}
	enemy.Position = geo.Position{X: 900, Y: 400}

	e.Update(1)

	found := false
	for _, event := range e.CombatLog() {
		if event.Type == EventEngagement {
			found = true
		}
	}
	if !found {
		t.Fatal("Expected an engagement in the combat log")
	}

	if friendly.Ammunition == 100 && enemy.Ammunition == 100 {
		t.Error("Expected ammunition expenditure after combat")
	}
}

func TestDestroyedIsTerminal(t *testing.T) {
	e := NewEngine(testScenario(), 1)
	enemy := enemyUnit(t, e)
	enemy.Count = 0
	enemy.Status = core.StatusDestroyed

	for i := 0; i < 20; i++ {
		e.Update(1)
		if enemy.Status != core.StatusDestroyed {
			t.Fatalf("Destroyed unit revived to %s at tick %d", enemy.Status, i)
		}
	}
}

func TestInvariantsHeldEveryTick(t *testing.T) {
	e := NewEngine(testScenario(), 3)

	for i := 0; i < 200; i++ {
		e.Update(0.5)
		for _, u := range e.GetSnapshot().Units {
			if u.Morale < 0 || u.Morale > 100 || u.Ammunition < 0 || u.Ammunition > 100 ||
				u.Fuel < 0 || u.Fuel > 100 || u.Health < 0 || u.Health > 100 {
				t.Fatalf("Percentage out of range on %s at tick %d: %+v", u.ID, i, u)
			}
			if u.Count < 0 || u.Count > u.MaxCount {
				t.Fatalf("Count out of range on %s: %d/%d", u.ID, u.Count, u.MaxCount)
			}
			if u.Facing < 0 || u.Facing >= 360 {
				t.Fatalf("Facing out of range on %s: %f", u.ID, u.Facing)
			}
		}
	}
}

func TestObjectiveControlFlips(t *testing.T) {
	scenario := testScenario()
	scenario.Objectives = []*core.Objective{
		{ID: "obj-spawn", Name: "Assembly Area", Position: geo.Position{X: 200, Y: 400}, Radius: 100},
	}
	e := NewEngine(scenario, 1)

	e.Update(1)

	snap := e.GetSnapshot()
	if snap.Objectives[0].ControlledBy != core.AffiliationFriendly {
		t.Errorf("Expected friendly control, got %q", snap.Objectives[0].ControlledBy)
	}

	found := false
	for _, event := range snap.CombatLog {
		if event.Type == EventObjective && strings.Contains(event.Description, "Assembly Area") {
			found = true
		}
	}
	if !found {
		t.Error("Expected an objective event in the combat log")
	}
}

func TestObjectiveTieHolds(t *testing.T) {
	scenario := testScenario()
	scenario.Objectives = []*core.Objective{
		{ID: "obj-wide", Name: "Whole Valley", Position: geo.Position{X: 600, Y: 400}, Radius: 1000},
	}
	e := NewEngine(scenario, 1)

	e.Update(1)

	if got := e.GetSnapshot().Objectives[0].ControlledBy; got != "" {
		t.Errorf("Tied presence must not flip control, got %q", got)
	}
}

func TestOpposingAIActsOnCadence(t *testing.T) {
	e := NewEngine(testScenario(), 1)
	enemy := enemyUnit(t, e)

	// Below the decision interval nothing happens
	e.Update(1)
	if enemy.Status != core.StatusIdle {
		t.Fatalf("AI acted before its decision interval: %s", enemy.Status)
	}

	e.Update(1)
	if enemy.Status == core.StatusIdle {
		t.Error("AI failed to act after its decision interval")
	}

	found := false
	for _, event := range e.CombatLog() {
		if event.Type == EventStrategy && strings.Contains(event.Description, "OPFOR") {
			found = true
		}
	}
	if !found {
		t.Error("Expected a strategy event in the combat log")
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	e := NewEngine(testScenario(), 1)

	s1 := e.GetSnapshot()
	s2 := e.GetSnapshot()
	if !reflect.DeepEqual(s1, s2) {
		t.Error("Back-to-back snapshots differ")
	}

	s1.Units[0].Position.X = -9999
	s1.Objectives[0].ControlledBy = core.AffiliationEnemy

	if e.units[0].Position.X == -9999 {
		t.Error("Snapshot mutation leaked into engine units")
	}
	if e.objectives[0].ControlledBy == core.AffiliationEnemy {
		t.Error("Snapshot mutation leaked into engine objectives")
	}
	if s1.Units[0].CurrentOrder != nil || s1.Units[0].OrderQueue != nil {
		t.Error("Snapshot should not carry order internals")
	}
}

func TestEngineDeterministicAcrossRuns(t *testing.T) {
	run := func() Snapshot {
		e := NewEngine(testScenario(), 42)
		for i := 0; i < 100; i++ {
			e.Update(0.5)
		}
		return e.GetSnapshot()
	}

	s1 := run()
	s2 := run()

	if !reflect.DeepEqual(s1, s2) {
		t.Error("Identical scenario and seed produced diverging worlds")
	}
}
