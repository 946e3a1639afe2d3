package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads a scenario configuration from a YAML file
func LoadConfig(path string) (*ScenarioConfig, error) {
	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	var config ScenarioConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadConfigOrDefault loads config from a file, a built-in scenario name,
// or the default scenario, with environment overrides applied last
func LoadConfigOrDefault(pathOrName string) (*ScenarioConfig, error) {
	var config *ScenarioConfig
	var err error

	if pathOrName != "" {
		// Built-in scenario names take precedence over files
		if builtin := BuiltinScenario(pathOrName); builtin != nil {
			config = builtin
		} else {
			config, err = LoadConfig(pathOrName)
			if err != nil {
				// Log error but continue with default
				fmt.Printf("Warning: Could not load config from %s: %v\n", pathOrName, err)
				config = nil
			}
		}
	}

	// Try default locations if no config loaded yet
	if config == nil {
		defaultPaths := []string{
			"scenario.yaml",
			"tactical-command.yaml",
			filepath.Join("cmd", "tactical-command", "scenario.yaml"),
		}

		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				config, err = LoadConfig(p)
				if err == nil {
					fmt.Printf("Loaded config from: %s\n", p)
					break
				}
			}
		}
	}

	// Use default scenario if still no config loaded
	if config == nil {
		config = GetDefaultConfig()
	}

	// Always apply environment variable overrides
	MergeWithEnvironment(config)

	return config, nil
}

// SaveConfig saves a scenario configuration to a YAML file
func SaveConfig(config *ScenarioConfig, path string) error {
	// Validate before saving
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Marshal to YAML
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	// Write file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// MergeWithCLIOverrides applies CLI parameter overrides to the configuration
func MergeWithCLIOverrides(config *ScenarioConfig, overrides map[string]interface{}) {
	for key, value := range overrides {
		switch key {
		case "difficulty":
			if difficulty, ok := value.(string); ok {
				validDifficulties := []string{"easy", "medium", "hard", "extreme"}
				for _, valid := range validDifficulties {
					if strings.ToLower(difficulty) == valid {
						config.Scenario.Difficulty = valid
						break
					}
				}
			}
		case "duration":
			if duration, ok := value.(float64); ok && duration > 0 {
				config.Scenario.Duration = duration
			}
		case "weather":
			if weather, ok := value.(string); ok {
				validWeather := []string{"clear", "rain", "fog", "snow", "storm"}
				for _, valid := range validWeather {
					if strings.ToLower(weather) == valid {
						config.Scenario.Weather = valid
						break
					}
				}
			}
		case "time_of_day":
			if tod, ok := value.(string); ok {
				validTimes := []string{"dawn", "day", "dusk", "night"}
				for _, valid := range validTimes {
					if strings.ToLower(tod) == valid {
						config.Scenario.TimeOfDay = valid
						break
					}
				}
			}
		case "game_speed":
			if speed, ok := value.(float64); ok {
				if speed == 1 || speed == 2 || speed == 4 {
					config.Run.GameSpeed = speed
				}
			}
		case "update_interval":
			if interval, ok := value.(time.Duration); ok && interval > 0 {
				config.Run.UpdateInterval = interval
			}
		case "seed":
			if seed, ok := value.(int64); ok {
				config.Run.Seed = seed
			}
		case "enable_aar":
			if enable, ok := value.(bool); ok {
				config.Logging.EnableAAR = enable
			}
		case "log_level":
			if level, ok := value.(string); ok {
				validLevels := []string{"debug", "info", "warn", "error"}
				for _, valid := range validLevels {
					if level == valid {
						config.Logging.ConsoleLevel = level
						break
					}
				}
			}
		}
	}
}

// LoadConfigWithOverrides loads config and applies both environment and CLI overrides
func LoadConfigWithOverrides(pathOrName string, cliOverrides map[string]interface{}) (*ScenarioConfig, error) {
	config, err := LoadConfigOrDefault(pathOrName)
	if err != nil {
		return nil, err
	}

	// Apply CLI overrides after environment variables
	if cliOverrides != nil {
		MergeWithCLIOverrides(config, cliOverrides)
	}

	// Final validation
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed after overrides: %w", err)
	}

	return config, nil
}

// MergeWithEnvironment applies environment variable overrides
func MergeWithEnvironment(config *ScenarioConfig) {
	if difficulty := os.Getenv("TACSIM_DIFFICULTY"); difficulty != "" {
		MergeWithCLIOverrides(config, map[string]interface{}{"difficulty": difficulty})
	}

	if duration := os.Getenv("TACSIM_DURATION"); duration != "" {
		if seconds, err := strconv.ParseFloat(duration, 64); err == nil && seconds > 0 {
			config.Scenario.Duration = seconds
		}
	}

	if interval := os.Getenv("TACSIM_UPDATE_INTERVAL"); interval != "" {
		if duration, err := time.ParseDuration(interval); err == nil && duration > 0 {
			config.Run.UpdateInterval = duration
		}
	}

	if speed := os.Getenv("TACSIM_GAME_SPEED"); speed != "" {
		if value, err := strconv.ParseFloat(speed, 64); err == nil {
			MergeWithCLIOverrides(config, map[string]interface{}{"game_speed": value})
		}
	}

	if seed := os.Getenv("TACSIM_SEED"); seed != "" {
		if value, err := strconv.ParseInt(seed, 10, 64); err == nil {
			config.Run.Seed = value
		}
	}

	if level := os.Getenv("TACSIM_LOG_LEVEL"); level != "" {
		MergeWithCLIOverrides(config, map[string]interface{}{"log_level": strings.ToLower(level)})
	}

	if aar := os.Getenv("TACSIM_ENABLE_AAR"); aar != "" {
		if enable, err := strconv.ParseBool(aar); err == nil {
			config.Logging.EnableAAR = enable
		}
	}

	if dir := os.Getenv("TACSIM_AAR_OUTPUT_PATH"); dir != "" {
		config.Logging.AAROutputPath = dir
	}
}
