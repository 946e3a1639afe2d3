// Package config defines the scenario configuration for the tactical
// command simulation: force compositions, objectives, environment, and
// run settings, loadable from YAML with validation and defaults.
package config

import (
	"fmt"
	"time"

	"github.com/caxsim/tactical-command/cmd/tactical-command/controllers"
	"github.com/caxsim/tactical-command/cmd/tactical-command/core"
	"github.com/caxsim/tactical-command/pkg/geo"
)

// ScenarioConfig holds the complete configuration for one simulation run
type ScenarioConfig struct {
	// Scenario settings
	Scenario ScenarioSettings `yaml:"scenario"`

	// Force compositions per side
	Forces ForcesConfig `yaml:"forces"`

	// Capturable objectives
	Objectives []ObjectiveConfig `yaml:"objectives"`

	// Run settings
	Run RunConfig `yaml:"run"`

	// Logging and reporting
	Logging LoggingConfig `yaml:"logging"`
}

// ScenarioSettings holds the scenario identity and environment
type ScenarioSettings struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Briefing    string  `yaml:"briefing,omitempty"`
	Type        string  `yaml:"type"`       // "offensive", "defensive", "night_operation"
	Difficulty  string  `yaml:"difficulty"` // "easy", "medium", "hard", "extreme"
	Duration    float64 `yaml:"duration"`   // seconds of simulated time
	Weather     string  `yaml:"weather"`    // "clear", "rain", "fog", "snow", "storm"
	TimeOfDay   string  `yaml:"time_of_day"`
}

// ForcesConfig holds both sides' force compositions
type ForcesConfig struct {
	Player   core.ForceComposition `yaml:"player"`
	Opposing core.ForceComposition `yaml:"opposing"`
}

// ObjectiveConfig describes one capturable objective
type ObjectiveConfig struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Description  string  `yaml:"description,omitempty"`
	X            float64 `yaml:"x"`
	Y            float64 `yaml:"y"`
	Radius       float64 `yaml:"radius"`
	Required     bool    `yaml:"required"`
	Value        int     `yaml:"value"`
	ControlledBy string  `yaml:"controlled_by,omitempty"` // initial controller
}

// RunConfig holds driver loop settings
type RunConfig struct {
	UpdateInterval time.Duration `yaml:"update_interval"`
	GameSpeed      float64       `yaml:"game_speed"` // 1, 2 or 4
	Seed           int64         `yaml:"seed"`       // 0 = time-based
}

// LoggingConfig defines logging and reporting settings
type LoggingConfig struct {
	ConsoleLevel  string `yaml:"console_level"` // "debug", "info", "warn", "error"
	EnableAAR     bool   `yaml:"enable_aar"`
	AAROutputPath string `yaml:"aar_output_path"`
	DetailLevel   string `yaml:"detail_level"` // "summary", "detailed"
}

// Validate checks if the configuration is valid
func (c *ScenarioConfig) Validate() error {
	if c.Scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}

	if c.Scenario.Duration <= 0 {
		return fmt.Errorf("scenario duration must be positive")
	}

	if c.Forces.Player.Total() <= 0 {
		return fmt.Errorf("player force composition must contain at least one unit")
	}

	if c.Forces.Opposing.Total() <= 0 {
		return fmt.Errorf("opposing force composition must contain at least one unit")
	}

	switch c.Run.GameSpeed {
	case 0, 1, 2, 4:
	default:
		return fmt.Errorf("game speed must be 1, 2 or 4")
	}

	if c.Run.UpdateInterval < 0 {
		return fmt.Errorf("update interval must not be negative")
	}

	if _, err := parseDifficulty(c.Scenario.Difficulty); err != nil {
		return err
	}
	if _, err := parseWeather(c.Scenario.Weather); err != nil {
		return err
	}
	if _, err := parseTimeOfDay(c.Scenario.TimeOfDay); err != nil {
		return err
	}

	for i, obj := range c.Objectives {
		if obj.Radius <= 0 {
			return fmt.Errorf("objective %d (%s): radius must be positive", i, obj.Name)
		}
	}

	return nil
}

// GetDefaultConfig returns a ready-to-run default scenario
func GetDefaultConfig() *ScenarioConfig {
	cfg := BuiltinScenario(DefaultScenarioName)
	if cfg == nil {
		// Unreachable as long as the builtin table stays populated
		panic("default scenario missing from builtin table")
	}
	return cfg
}

// ToScenario converts the validated configuration into the engine's
// scenario input.
func (c *ScenarioConfig) ToScenario() (controllers.Scenario, error) {
	difficulty, err := parseDifficulty(c.Scenario.Difficulty)
	if err != nil {
		return controllers.Scenario{}, err
	}
	weather, err := parseWeather(c.Scenario.Weather)
	if err != nil {
		return controllers.Scenario{}, err
	}
	timeOfDay, err := parseTimeOfDay(c.Scenario.TimeOfDay)
	if err != nil {
		return controllers.Scenario{}, err
	}

	objectives := make([]*core.Objective, 0, len(c.Objectives))
	for _, obj := range c.Objectives {
		objectives = append(objectives, &core.Objective{
			ID:           obj.ID,
			Name:         obj.Name,
			Description:  obj.Description,
			Position:     geo.Position{X: obj.X, Y: obj.Y},
			Radius:       obj.Radius,
			ControlledBy: core.Affiliation(obj.ControlledBy),
			Required:     obj.Required,
			Value:        obj.Value,
			Status:       core.ObjectivePending,
		})
	}

	return controllers.Scenario{
		Name:          c.Scenario.Name,
		PlayerForces:  c.Forces.Player,
		OpposingForce: c.Forces.Opposing,
		Objectives:    objectives,
		Weather:       weather,
		TimeOfDay:     timeOfDay,
		Difficulty:    difficulty,
		Duration:      c.Scenario.Duration,
	}, nil
}

func parseDifficulty(s string) (controllers.Difficulty, error) {
	switch s {
	case "", "medium":
		return controllers.DifficultyMedium, nil
	case "easy":
		return controllers.DifficultyEasy, nil
	case "hard":
		return controllers.DifficultyHard, nil
	case "extreme":
		return controllers.DifficultyExtreme, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
}

func parseWeather(s string) (core.Weather, error) {
	switch s {
	case "", "clear":
		return core.WeatherClear, nil
	case "rain":
		return core.WeatherRain, nil
	case "fog":
		return core.WeatherFog, nil
	case "snow":
		return core.WeatherSnow, nil
	case "storm":
		return core.WeatherStorm, nil
	default:
		return "", fmt.Errorf("unknown weather %q", s)
	}
}

func parseTimeOfDay(s string) (core.TimeOfDay, error) {
	switch s {
	case "", "day":
		return core.TimeDay, nil
	case "dawn":
		return core.TimeDawn, nil
	case "dusk":
		return core.TimeDusk, nil
	case "night":
		return core.TimeNight, nil
	default:
		return "", fmt.Errorf("unknown time of day %q", s)
	}
}

// String returns a human-readable representation of the configuration
func (c *ScenarioConfig) String() string {
	return fmt.Sprintf(`Scenario Configuration:
  Name: %s
  Type: %s
  Difficulty: %s
  Duration: %.0fs
  Weather: %s / %s

Forces:
  Player:   %d infantry, %d mech, %d armor, %d artillery, %d recon
  Opposing: %d infantry, %d mech, %d armor, %d artillery, %d recon

Objectives: %d
Run:
  Update Interval: %v
  Game Speed: %.0fx
  Seed: %d`,
		c.Scenario.Name, c.Scenario.Type, c.Scenario.Difficulty, c.Scenario.Duration,
		c.Scenario.Weather, c.Scenario.TimeOfDay,
		c.Forces.Player.Infantry, c.Forces.Player.MechInfantry, c.Forces.Player.Armor,
		c.Forces.Player.Artillery, c.Forces.Player.Recon,
		c.Forces.Opposing.Infantry, c.Forces.Opposing.MechInfantry, c.Forces.Opposing.Armor,
		c.Forces.Opposing.Artillery, c.Forces.Opposing.Recon,
		len(c.Objectives),
		c.Run.UpdateInterval, c.Run.GameSpeed, c.Run.Seed)
}
