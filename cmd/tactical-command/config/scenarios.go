package config

import (
	"sort"
	"time"

	"github.com/caxsim/tactical-command/cmd/tactical-command/core"
)

// DefaultScenarioName is the scenario used when none is requested.
const DefaultScenarioName = "operation-cobra"

// builtinScenarios is the scenario library shipped with the simulation.
var builtinScenarios = map[string]func() *ScenarioConfig{
	"operation-cobra": operationCobra,
	"bridge-defense":  bridgeDefense,
	"night-raid":      nightRaid,
}

// BuiltinScenario returns a fresh copy of a named built-in scenario, or
// nil when the name is unknown.
func BuiltinScenario(name string) *ScenarioConfig {
	factory, ok := builtinScenarios[name]
	if !ok {
		return nil
	}
	return factory()
}

// BuiltinScenarioNames lists the available built-in scenarios, sorted.
func BuiltinScenarioNames() []string {
	names := make([]string, 0, len(builtinScenarios))
	for name := range builtinScenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// operationCobra: offensive against three fortified hills.
func operationCobra() *ScenarioConfig {
	return &ScenarioConfig{
		Scenario: ScenarioSettings{
			Name:        "operation-cobra",
			Description: "Attack and capture the three strategic hills",
			Briefing: "Enemy forces have fortified three strategic hills overlooking " +
				"our supply routes. Attack and capture all three objectives and " +
				"maintain control until the mission timer expires.",
			Type:       "offensive",
			Difficulty: "medium",
			Duration:   2700,
			Weather:    "clear",
			TimeOfDay:  "day",
		},
		Forces: ForcesConfig{
			Player:   comp(2, 0, 1, 1, 1),
			Opposing: comp(2, 0, 1, 0, 0),
		},
		Objectives: []ObjectiveConfig{
			{ID: "obj-1", Name: "Hill 301", Description: "Northern strategic position", X: 900, Y: 200, Radius: 80, Required: true, Value: 100},
			{ID: "obj-2", Name: "Hill 285", Description: "Central observation post", X: 850, Y: 400, Radius: 80, Required: true, Value: 100},
			{ID: "obj-3", Name: "Hill 312", Description: "Southern strongpoint", X: 900, Y: 600, Radius: 80, Required: true, Value: 100},
		},
		Run:     defaultRun(),
		Logging: defaultLogging(),
	}
}

// bridgeDefense: hold a river crossing against a superior force.
func bridgeDefense() *ScenarioConfig {
	return &ScenarioConfig{
		Scenario: ScenarioSettings{
			Name:        "bridge-defense",
			Description: "Defend the bridge against enemy attack for 30 minutes",
			Briefing: "Enemy forces are advancing to capture the strategic bridge. " +
				"Defend the crossing and deny the enemy until reinforcements arrive.",
			Type:       "defensive",
			Difficulty: "hard",
			Duration:   1800,
			Weather:    "fog",
			TimeOfDay:  "dawn",
		},
		Forces: ForcesConfig{
			Player:   comp(2, 0, 0, 1, 1),
			Opposing: comp(3, 0, 2, 1, 1),
		},
		Objectives: []ObjectiveConfig{
			{ID: "obj-bridge", Name: "Bridge", Description: "Critical river crossing", X: 400, Y: 400, Radius: 100, Required: true, Value: 200, ControlledBy: "FRIENDLY"},
		},
		Run:     defaultRun(),
		Logging: defaultLogging(),
	}
}

// nightRaid: night infiltration against an enemy supply depot.
func nightRaid() *ScenarioConfig {
	return &ScenarioConfig{
		Scenario: ScenarioSettings{
			Name:        "night-raid",
			Description: "Night operation - infiltrate and destroy the ammo depot",
			Briefing: "Under cover of darkness, infiltrate the enemy rear area and " +
				"destroy their ammunition depot. Exfiltrate before dawn.",
			Type:       "night_operation",
			Difficulty: "extreme",
			Duration:   1200,
			Weather:    "clear",
			TimeOfDay:  "night",
		},
		Forces: ForcesConfig{
			Player:   comp(1, 0, 0, 0, 2),
			Opposing: comp(2, 0, 1, 0, 0),
		},
		Objectives: []ObjectiveConfig{
			{ID: "obj-depot", Name: "Ammo Depot", Description: "Enemy supply depot", X: 1000, Y: 400, Radius: 50, Required: true, Value: 300, ControlledBy: "ENEMY"},
		},
		Run:     defaultRun(),
		Logging: defaultLogging(),
	}
}

func comp(infantry, mech, armor, artillery, recon int) core.ForceComposition {
	return core.ForceComposition{
		Infantry:     infantry,
		MechInfantry: mech,
		Armor:        armor,
		Artillery:    artillery,
		Recon:        recon,
	}
}

func defaultRun() RunConfig {
	return RunConfig{
		UpdateInterval: 100 * time.Millisecond,
		GameSpeed:      1,
	}
}

func defaultLogging() LoggingConfig {
	return LoggingConfig{
		ConsoleLevel:  "info",
		EnableAAR:     true,
		AAROutputPath: "./reports/",
		DetailLevel:   "summary",
	}
}
