package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caxsim/tactical-command/pkg/logger"
)

// AARGenerator generates After Action Reports
type AARGenerator struct {
	logger *SimulationLogger
	config AARConfig
}

// AARConfig configures AAR generation
type AARConfig struct {
	OutputDir   string
	DetailLevel string // "summary", "detailed"
}

// AAR represents an After Action Report
type AAR struct {
	Metadata    AARMetadata       `json:"metadata"`
	Summary     ExecutiveSummary  `json:"summary"`
	Sides       map[string]Side   `json:"sides"`
	EventLog    []EventLogEntry   `json:"event_log,omitempty"`
	Statistics  SummaryStatistics `json:"statistics"`
	FinalGrade  string            `json:"final_grade"`
	Objectives  []ObjectiveEntry  `json:"objectives"`
	Environment Environment       `json:"environment"`
}

// AARMetadata contains report metadata
type AARMetadata struct {
	SimulationID    string    `json:"simulation_id"`
	GeneratedAt     time.Time `json:"generated_at"`
	SimulationStart time.Time `json:"simulation_start"`
	Duration        string    `json:"duration"`
	Version         string    `json:"version"`
}

// ExecutiveSummary provides a high-level overview
type ExecutiveSummary struct {
	Outcome          string   `json:"outcome"`
	WinningSide      string   `json:"winning_side"`
	TotalEngagements int      `json:"total_engagements"`
	TotalLosses      int      `json:"total_losses"`
	KeyEvents        []string `json:"key_events"`
}

// Side holds per-side statistics
type Side struct {
	Name             string  `json:"name"`
	InitialStrength  int     `json:"initial_strength"`
	FinalStrength    int     `json:"final_strength"`
	Casualties       int     `json:"casualties"`
	CasualtyRate     float64 `json:"casualty_rate"`
	UnitsDestroyed   int     `json:"units_destroyed"`
	ObjectivesHeld   int     `json:"objectives_held"`
	AverageMorale    float64 `json:"average_morale"`
	AverageAmmo      float64 `json:"average_ammunition"`
	RemainingActives int     `json:"remaining_active_units"`
}

// EventLogEntry is one entry of the chronological event log
type EventLogEntry struct {
	SimTime  float64 `json:"sim_time"`
	Type     string  `json:"type"`
	Severity string  `json:"severity"`
	Message  string  `json:"message"`
}

// SummaryStatistics aggregates run-level counters
type SummaryStatistics struct {
	Engagements      int     `json:"engagements"`
	UnitsDestroyed   int     `json:"units_destroyed"`
	ObjectiveChanges int     `json:"objective_changes"`
	SimulatedSeconds float64 `json:"simulated_seconds"`
}

// ObjectiveEntry records the end state of one objective
type ObjectiveEntry struct {
	Name         string `json:"name"`
	ControlledBy string `json:"controlled_by"`
	Required     bool   `json:"required"`
	Value        int    `json:"value"`
}

// Environment records the environmental conditions of the run
type Environment struct {
	Weather   string `json:"weather"`
	TimeOfDay string `json:"time_of_day"`
}

// MissionReport is the input the generator needs beyond the event log.
type MissionReport struct {
	Outcome          string
	WinningSide      string
	Sides            map[string]Side
	Objectives       []ObjectiveEntry
	Weather          string
	TimeOfDay        string
	SimulatedSeconds float64
}

// NewAARGenerator creates an AAR generator backed by a simulation logger
func NewAARGenerator(simLogger *SimulationLogger, config AARConfig) *AARGenerator {
	if config.OutputDir == "" {
		config.OutputDir = "./reports/"
	}
	return &AARGenerator{logger: simLogger, config: config}
}

// GenerateAAR builds the report from the recorded events and the final
// mission state
func (g *AARGenerator) GenerateAAR(report MissionReport) (*AAR, error) {
	events := g.logger.Events()

	stats := SummaryStatistics{SimulatedSeconds: report.SimulatedSeconds}
	var keyEvents []string
	var eventLog []EventLogEntry

	for _, ev := range events {
		switch ev.Type {
		case EventTypeEngagement:
			stats.Engagements++
		case EventTypeDestruction:
			stats.UnitsDestroyed++
			keyEvents = append(keyEvents, ev.Message)
		case EventTypeObjective:
			stats.ObjectiveChanges++
			keyEvents = append(keyEvents, ev.Message)
		}

		if g.config.DetailLevel == "detailed" {
			eventLog = append(eventLog, EventLogEntry{
				SimTime:  ev.SimTime,
				Type:     ev.Type,
				Severity: ev.Severity,
				Message:  ev.Message,
			})
		}
	}

	totalLosses := 0
	for _, side := range report.Sides {
		totalLosses += side.Casualties
	}

	aar := &AAR{
		Metadata: AARMetadata{
			SimulationID:    g.logger.SimulationID(),
			GeneratedAt:     time.Now(),
			SimulationStart: g.logger.StartTime(),
			Duration:        time.Since(g.logger.StartTime()).Round(time.Second).String(),
			Version:         "1.0",
		},
		Summary: ExecutiveSummary{
			Outcome:          report.Outcome,
			WinningSide:      report.WinningSide,
			TotalEngagements: stats.Engagements,
			TotalLosses:      totalLosses,
			KeyEvents:        keyEvents,
		},
		Sides:      report.Sides,
		EventLog:   eventLog,
		Statistics: stats,
		FinalGrade: gradeMission(report),
		Objectives: report.Objectives,
		Environment: Environment{
			Weather:   report.Weather,
			TimeOfDay: report.TimeOfDay,
		},
	}

	return aar, nil
}

// SaveAAR writes the report as JSON into the configured output directory
func (g *AARGenerator) SaveAAR(aar *AAR) error {
	if err := os.MkdirAll(g.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	filename := fmt.Sprintf("aar_%s_%s.json",
		aar.Metadata.SimulationID, aar.Metadata.GeneratedAt.Format("20060102_150405"))
	path := filepath.Join(g.config.OutputDir, filename)

	data, err := json.MarshalIndent(aar, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal AAR: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write AAR: %w", err)
	}

	logger.Successf("After Action Report saved to %s", path)
	return nil
}

// gradeMission assigns a letter grade from casualty rate and objectives
// held, mirroring a staff-school evaluation scale.
func gradeMission(report MissionReport) string {
	player, ok := report.Sides["FRIENDLY"]
	if !ok {
		return "F"
	}

	held := 0
	required := 0
	for _, obj := range report.Objectives {
		if obj.Required {
			required++
			if obj.ControlledBy == "FRIENDLY" {
				held++
			}
		}
	}

	score := 0.0
	if required > 0 {
		score += 60 * float64(held) / float64(required)
	} else if report.Outcome == "VICTORY" {
		score += 60
	}
	score += 40 * (1 - player.CasualtyRate)

	switch {
	case score >= 95:
		return "S"
	case score >= 85:
		return "A"
	case score >= 70:
		return "B"
	case score >= 55:
		return "C"
	case score >= 40:
		return "D"
	default:
		return "F"
	}
}
