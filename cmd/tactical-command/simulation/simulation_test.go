package simulation

import (
	"testing"

	"github.com/caxsim/tactical-command/cmd/tactical-command/controllers"
	"github.com/caxsim/tactical-command/cmd/tactical-command/core"
)

func TestConfigureBuiltinScenarioWithOverrides(t *testing.T) {
	sim := NewTacticalCommandSimulation().(*TacticalCommandSimulation)

	err := sim.Configure(map[string]interface{}{
		"scenario":   "bridge-defense",
		"difficulty": "extreme",
		"game_speed": 2,
		"seed":       42,
		"enable_aar": false,
	})
	if err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	if sim.config.Scenario.Name != "bridge-defense" {
		t.Errorf("expected scenario 'bridge-defense', got %q", sim.config.Scenario.Name)
	}
	if sim.config.Scenario.Difficulty != "extreme" {
		t.Errorf("expected difficulty override 'extreme', got %q", sim.config.Scenario.Difficulty)
	}
	if sim.config.Run.GameSpeed != 2 {
		t.Errorf("expected game speed 2, got %v", sim.config.Run.GameSpeed)
	}
	if sim.config.Run.Seed != 42 {
		t.Errorf("expected seed 42, got %d", sim.config.Run.Seed)
	}
	if sim.config.Logging.EnableAAR {
		t.Error("expected AAR disabled by override")
	}
}

func TestConfigureUnknownScenarioFallsBackToDefault(t *testing.T) {
	sim := NewTacticalCommandSimulation().(*TacticalCommandSimulation)

	if err := sim.Configure(map[string]interface{}{"scenario": "no-such-mission"}); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	if sim.config == nil || sim.config.Scenario.Name == "" {
		t.Error("expected a default scenario configuration")
	}
}

func TestActiveCount(t *testing.T) {
	units := []core.Unit{
		{Affiliation: core.AffiliationFriendly, Status: core.StatusIdle},
		{Affiliation: core.AffiliationFriendly, Status: core.StatusDestroyed},
		{Affiliation: core.AffiliationEnemy, Status: core.StatusEngaging},
	}

	if got := activeCount(units, core.AffiliationFriendly); got != 1 {
		t.Errorf("expected 1 active friendly unit, got %d", got)
	}
	if got := activeCount(units, core.AffiliationEnemy); got != 1 {
		t.Errorf("expected 1 active enemy unit, got %d", got)
	}
}

func TestRequiredObjectivesHeld(t *testing.T) {
	tests := []struct {
		name       string
		objectives []core.Objective
		want       bool
	}{
		{
			name: "all required held",
			objectives: []core.Objective{
				{Required: true, ControlledBy: core.AffiliationFriendly},
				{Required: true, ControlledBy: core.AffiliationFriendly},
				{Required: false, ControlledBy: core.AffiliationEnemy},
			},
			want: true,
		},
		{
			name: "one required not held",
			objectives: []core.Objective{
				{Required: true, ControlledBy: core.AffiliationFriendly},
				{Required: true, ControlledBy: ""},
			},
			want: false,
		},
		{
			name: "no required objectives",
			objectives: []core.Objective{
				{Required: false, ControlledBy: core.AffiliationFriendly},
			},
			want: false,
		},
		{
			name:       "empty list",
			objectives: nil,
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := requiredObjectivesHeld(tt.objectives, core.AffiliationFriendly)
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSideStatistics(t *testing.T) {
	sim := NewTacticalCommandSimulation().(*TacticalCommandSimulation)
	sim.initialStrength[core.AffiliationFriendly] = 60
	sim.initialStrength[core.AffiliationEnemy] = 30

	snap := controllers.Snapshot{
		Units: []core.Unit{
			{Affiliation: core.AffiliationFriendly, Count: 25, Morale: 80, Ammunition: 60, Status: core.StatusIdle},
			{Affiliation: core.AffiliationFriendly, Count: 20, Morale: 40, Ammunition: 20, Status: core.StatusEngaging},
			{Affiliation: core.AffiliationFriendly, Count: 0, Morale: 0, Ammunition: 0, Status: core.StatusDestroyed},
			{Affiliation: core.AffiliationEnemy, Count: 0, Morale: 0, Ammunition: 0, Status: core.StatusDestroyed},
		},
		Objectives: []core.Objective{
			{Required: true, ControlledBy: core.AffiliationFriendly},
			{Required: false, ControlledBy: core.AffiliationFriendly},
		},
	}

	sides := sim.sideStatistics(snap)

	friendly := sides[string(core.AffiliationFriendly)]
	if friendly.FinalStrength != 45 {
		t.Errorf("expected friendly final strength 45, got %d", friendly.FinalStrength)
	}
	if friendly.Casualties != 15 {
		t.Errorf("expected 15 friendly casualties, got %d", friendly.Casualties)
	}
	if friendly.CasualtyRate != 0.25 {
		t.Errorf("expected casualty rate 0.25, got %v", friendly.CasualtyRate)
	}
	if friendly.UnitsDestroyed != 1 {
		t.Errorf("expected 1 friendly unit destroyed, got %d", friendly.UnitsDestroyed)
	}
	if friendly.RemainingActives != 2 {
		t.Errorf("expected 2 active friendly units, got %d", friendly.RemainingActives)
	}
	if friendly.AverageMorale != 60 {
		t.Errorf("expected average morale 60, got %v", friendly.AverageMorale)
	}
	if friendly.ObjectivesHeld != 2 {
		t.Errorf("expected 2 objectives held, got %d", friendly.ObjectivesHeld)
	}

	enemy := sides[string(core.AffiliationEnemy)]
	if enemy.FinalStrength != 0 {
		t.Errorf("expected enemy final strength 0, got %d", enemy.FinalStrength)
	}
	if enemy.CasualtyRate != 1.0 {
		t.Errorf("expected enemy casualty rate 1.0, got %v", enemy.CasualtyRate)
	}
	if enemy.AverageMorale != 0 {
		t.Errorf("expected enemy average morale 0, got %v", enemy.AverageMorale)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	sim := NewTacticalCommandSimulation().(*TacticalCommandSimulation)

	if err := sim.Stop(); err != nil {
		t.Fatalf("first Stop failed: %v", err)
	}
	if err := sim.Stop(); err != nil {
		t.Fatalf("second Stop failed: %v", err)
	}

	select {
	case <-sim.stopChan:
	default:
		t.Error("expected stop channel to be closed")
	}
}
