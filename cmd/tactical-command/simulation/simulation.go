// Package simulation wires the tactical command engine into the
// simulation runner: configuration, the real-time loop, termination
// conditions, and after action reporting.
package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/caxsim/tactical-command/cmd/tactical-command/config"
	"github.com/caxsim/tactical-command/cmd/tactical-command/controllers"
	"github.com/caxsim/tactical-command/cmd/tactical-command/core"
	"github.com/caxsim/tactical-command/cmd/tactical-command/reporting"
	"github.com/caxsim/tactical-command/pkg/logger"
	"github.com/caxsim/tactical-command/pkg/simulation"
)

// Mission outcomes
const (
	OutcomeDecisiveVictory = "DECISIVE VICTORY - Opposing force destroyed"
	OutcomeObjectiveWin    = "VICTORY - All required objectives secured"
	OutcomeDefeat          = "DEFEAT - Friendly force destroyed"
	OutcomeTimeVictory     = "MARGINAL VICTORY - Objectives held at end of mission"
	OutcomeTimeDefeat      = "MISSION FAILED - Required objectives not secured"
)

// TacticalCommandSimulation drives one scenario from start to outcome.
type TacticalCommandSimulation struct {
	config *config.ScenarioConfig

	engine       *controllers.Engine
	simLogger    *reporting.SimulationLogger
	aarGenerator *reporting.AARGenerator

	// Offset into the engine combat log already forwarded to reporting
	logOffset int
	destroyed map[string]bool

	initialStrength map[core.Affiliation]int

	stopChan chan struct{}
	outcome  string
	winner   string
}

// NewTacticalCommandSimulation creates a new instance of the simulation.
func NewTacticalCommandSimulation() simulation.Simulation {
	return &TacticalCommandSimulation{
		destroyed:       make(map[string]bool),
		initialStrength: make(map[core.Affiliation]int),
		stopChan:        make(chan struct{}),
	}
}

// Name returns the simulation name
func (s *TacticalCommandSimulation) Name() string {
	return "Tactical Command"
}

// Description returns the simulation description
func (s *TacticalCommandSimulation) Description() string {
	return "Real-time land warfare simulation with terrain, combined arms combat and an adaptive opposing commander"
}

// Configure sets up the simulation with provided parameters
func (s *TacticalCommandSimulation) Configure(params map[string]interface{}) error {
	logger.Info("Configuring tactical command simulation...")

	scenarioRef := ""
	if val, ok := params["scenario"].(string); ok {
		scenarioRef = val
	}

	overrides := map[string]interface{}{}
	if val, ok := params["difficulty"].(string); ok {
		overrides["difficulty"] = val
	}
	if val, ok := params["duration"].(time.Duration); ok {
		overrides["duration"] = val.Seconds()
	}
	if val, ok := params["update_interval"].(time.Duration); ok {
		overrides["update_interval"] = val
	}
	switch val := params["game_speed"].(type) {
	case int:
		overrides["game_speed"] = float64(val)
	case float64:
		overrides["game_speed"] = val
	}
	switch val := params["seed"].(type) {
	case int:
		overrides["seed"] = int64(val)
	case int64:
		overrides["seed"] = val
	case float64:
		overrides["seed"] = int64(val)
	}
	if val, ok := params["enable_aar"].(bool); ok {
		overrides["enable_aar"] = val
	}

	// Apply log level to the global logger
	if val, ok := params["log_level"].(string); ok {
		overrides["log_level"] = val
		logger.SetLevel(logger.ParseLevel(val))
	}

	cfg, err := config.LoadConfigWithOverrides(scenarioRef, overrides)
	if err != nil {
		return fmt.Errorf("failed to load scenario configuration: %w", err)
	}
	s.config = cfg

	logger.Infof("Scenario: %s (%s, %s) - %d vs %d units over %.0fs",
		cfg.Scenario.Name, cfg.Scenario.Difficulty, cfg.Scenario.Weather,
		cfg.Forces.Player.Total(), cfg.Forces.Opposing.Total(), cfg.Scenario.Duration)

	return nil
}

// Run executes the simulation until an outcome is reached
func (s *TacticalCommandSimulation) Run(ctx context.Context) error {
	logger.Infof("Starting %s simulation", s.Name())

	if s.config == nil {
		s.config = config.GetDefaultConfig()
	}

	scenario, err := s.config.ToScenario()
	if err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}

	seed := s.config.Run.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Infof("World seed: %d", seed)

	s.engine = controllers.NewEngine(scenario, seed)
	if s.config.Run.GameSpeed > 0 {
		s.engine.SetGameSpeed(s.config.Run.GameSpeed)
	}

	s.simLogger = reporting.NewSimulationLogger(s.config.Scenario.Name)
	s.aarGenerator = reporting.NewAARGenerator(s.simLogger, reporting.AARConfig{
		OutputDir:   s.config.Logging.AAROutputPath,
		DetailLevel: s.config.Logging.DetailLevel,
	})

	for _, u := range s.engine.GetSnapshot().Units {
		s.initialStrength[u.Affiliation] += u.Count
	}

	s.simLogger.LogSystem(fmt.Sprintf("Scenario %s started: %s", s.config.Scenario.Name,
		s.config.Scenario.Description), reporting.SeverityInfo)

	return s.runLoop(ctx)
}

// runLoop is the real-time driver: one engine tick per wall-clock
// interval until a termination condition fires.
func (s *TacticalCommandSimulation) runLoop(ctx context.Context) error {
	interval := s.config.Run.UpdateInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	deltaTime := interval.Seconds()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastProgress := time.Now()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Simulation cancelled by context")
			return ctx.Err()

		case <-s.stopChan:
			logger.Info("Simulation stopped by user")
			return nil

		case <-ticker.C:
			s.engine.Update(deltaTime)
			s.forwardEvents()
			s.trackDestructions()

			if s.checkTerminationConditions() {
				s.finish()
				return nil
			}

			if time.Since(lastProgress) >= 10*time.Second {
				lastProgress = time.Now()
				snap := s.engine.GetSnapshot()
				logger.Infof("T+%.0fs: %d friendly / %d opposing units active",
					snap.ElapsedTime,
					activeCount(snap.Units, core.AffiliationFriendly),
					activeCount(snap.Units, core.AffiliationEnemy))
			}
		}
	}
}

// forwardEvents copies new engine combat log entries into the reporting
// logger.
func (s *TacticalCommandSimulation) forwardEvents() {
	events := s.engine.CombatLog()
	for _, event := range events[s.logOffset:] {
		switch event.Type {
		case controllers.EventEngagement:
			s.simLogger.LogEngagement(event.Timestamp, event.UnitID, event.Description)
		case controllers.EventObjective:
			s.simLogger.LogObjective(event.Timestamp, event.Description, "")
		case controllers.EventStrategy:
			s.simLogger.LogStrategy(event.Timestamp, event.Description)
		}
	}
	s.logOffset = len(events)
}

// trackDestructions reports units newly destroyed this tick.
func (s *TacticalCommandSimulation) trackDestructions() {
	snap := s.engine.GetSnapshot()
	for _, u := range snap.Units {
		if u.Status == core.StatusDestroyed && !s.destroyed[u.ID] {
			s.destroyed[u.ID] = true
			s.simLogger.LogDestruction(snap.ElapsedTime, u.ID, string(u.Affiliation))
		}
	}
}

// checkTerminationConditions decides whether the mission is over and
// records the outcome.
func (s *TacticalCommandSimulation) checkTerminationConditions() bool {
	snap := s.engine.GetSnapshot()

	friendlyActive := activeCount(snap.Units, core.AffiliationFriendly)
	enemyActive := activeCount(snap.Units, core.AffiliationEnemy)

	if enemyActive == 0 {
		s.outcome = OutcomeDecisiveVictory
		s.winner = string(core.AffiliationFriendly)
		return true
	}

	if friendlyActive == 0 {
		s.outcome = OutcomeDefeat
		s.winner = string(core.AffiliationEnemy)
		return true
	}

	if requiredObjectivesHeld(snap.Objectives, core.AffiliationFriendly) {
		s.outcome = OutcomeObjectiveWin
		s.winner = string(core.AffiliationFriendly)
		return true
	}

	if snap.ElapsedTime >= s.config.Scenario.Duration {
		// Mission clock expired: score by required objectives held
		required, held := 0, 0
		for _, obj := range snap.Objectives {
			if !obj.Required {
				continue
			}
			required++
			if obj.ControlledBy == core.AffiliationFriendly {
				held++
			}
		}
		if required == 0 || held*2 >= required {
			s.outcome = OutcomeTimeVictory
			s.winner = string(core.AffiliationFriendly)
		} else {
			s.outcome = OutcomeTimeDefeat
			s.winner = string(core.AffiliationEnemy)
		}
		return true
	}

	return false
}

// finish records final metrics, prints the summary and writes the AAR.
func (s *TacticalCommandSimulation) finish() {
	snap := s.engine.GetSnapshot()

	s.simLogger.LogSystem(fmt.Sprintf("Mission complete: %s", s.outcome), reporting.SeverityInfo)
	s.simLogger.RecordMetric("simulated_seconds", snap.ElapsedTime, "s")
	s.simLogger.RecordMetric("friendly_active", float64(activeCount(snap.Units, core.AffiliationFriendly)), "units")
	s.simLogger.RecordMetric("opposing_active", float64(activeCount(snap.Units, core.AffiliationEnemy)), "units")

	memory := s.engine.PlayerMemory()
	s.simLogger.RecordMetric("player_aggression", memory.AggressionScore, "ratio")

	s.simLogger.PrintSummary()

	logger.Infof("Simulation completed. Outcome: %s", s.outcome)

	if !s.config.Logging.EnableAAR {
		return
	}
	if err := s.generateAAR(snap); err != nil {
		logger.Errorf("Failed to generate AAR: %v", err)
	}
}

// generateAAR builds the mission report and writes it to disk.
func (s *TacticalCommandSimulation) generateAAR(snap controllers.Snapshot) error {
	report := reporting.MissionReport{
		Outcome:          s.outcome,
		WinningSide:      s.winner,
		Sides:            s.sideStatistics(snap),
		Weather:          s.config.Scenario.Weather,
		TimeOfDay:        s.config.Scenario.TimeOfDay,
		SimulatedSeconds: snap.ElapsedTime,
	}

	for _, obj := range snap.Objectives {
		report.Objectives = append(report.Objectives, reporting.ObjectiveEntry{
			Name:         obj.Name,
			ControlledBy: string(obj.ControlledBy),
			Required:     obj.Required,
			Value:        obj.Value,
		})
	}

	aar, err := s.aarGenerator.GenerateAAR(report)
	if err != nil {
		return err
	}
	return s.aarGenerator.SaveAAR(aar)
}

// sideStatistics aggregates the per-side end state for the report.
func (s *TacticalCommandSimulation) sideStatistics(snap controllers.Snapshot) map[string]reporting.Side {
	sides := make(map[string]reporting.Side)

	for _, affiliation := range []core.Affiliation{core.AffiliationFriendly, core.AffiliationEnemy} {
		var finalStrength, unitsDestroyed, active int
		var morale, ammo float64

		for _, u := range snap.Units {
			if u.Affiliation != affiliation {
				continue
			}
			finalStrength += u.Count
			if u.Status == core.StatusDestroyed {
				unitsDestroyed++
			} else {
				active++
				morale += u.Morale
				ammo += u.Ammunition
			}
		}
		if active > 0 {
			morale /= float64(active)
			ammo /= float64(active)
		}

		initial := s.initialStrength[affiliation]
		casualties := initial - finalStrength
		casualtyRate := 0.0
		if initial > 0 {
			casualtyRate = float64(casualties) / float64(initial)
		}

		held := 0
		for _, obj := range snap.Objectives {
			if obj.ControlledBy == affiliation {
				held++
			}
		}

		sides[string(affiliation)] = reporting.Side{
			Name:             string(affiliation),
			InitialStrength:  initial,
			FinalStrength:    finalStrength,
			Casualties:       casualties,
			CasualtyRate:     casualtyRate,
			UnitsDestroyed:   unitsDestroyed,
			ObjectivesHeld:   held,
			AverageMorale:    morale,
			AverageAmmo:      ammo,
			RemainingActives: active,
		}
	}

	return sides
}

// Stop gracefully shuts down the simulation
func (s *TacticalCommandSimulation) Stop() error {
	select {
	case <-s.stopChan:
		// Already closed
	default:
		close(s.stopChan)
	}
	return nil
}

func activeCount(units []core.Unit, side core.Affiliation) int {
	count := 0
	for _, u := range units {
		if u.Affiliation == side && u.Status != core.StatusDestroyed {
			count++
		}
	}
	return count
}

func requiredObjectivesHeld(objectives []core.Objective, side core.Affiliation) bool {
	required := 0
	for _, obj := range objectives {
		if !obj.Required {
			continue
		}
		required++
		if obj.ControlledBy != side {
			return false
		}
	}
	return required > 0
}

func init() {
	if err := simulation.DefaultRegistry.Register("Tactical Command", NewTacticalCommandSimulation); err != nil {
		logger.Errorf("Failed to register simulation: %v", err)
	}
}
