// Package reporting collects simulation events and metrics and turns
// them into console summaries and After Action Reports.
package reporting

import (
	"fmt"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/caxsim/tactical-command/pkg/logger"
)

// Event type constants
const (
	EventTypeEngagement  = "engagement"
	EventTypeDestruction = "destruction"
	EventTypeSpawn       = "spawn"
	EventTypeObjective   = "objective"
	EventTypeStrategy    = "strategy"
	EventTypeSystem      = "system"
)

// Severity constants
const (
	SeverityDebug    = "debug"
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Color definitions
var (
	colorInfo     = color.New(color.FgCyan)
	colorWarning  = color.New(color.FgYellow)
	colorCritical = color.New(color.FgRed, color.Bold)
	colorFriendly = color.New(color.FgBlue, color.Bold)
	colorEnemy    = color.New(color.FgRed, color.Bold)
	colorSuccess  = color.New(color.FgGreen)
)

// SimulationEvent represents a logged simulation event
type SimulationEvent struct {
	ID        uuid.UUID
	Timestamp time.Time
	SimTime   float64 // simulated seconds
	Type      string
	Severity  string
	Side      string
	UnitID    string
	Message   string
	Details   map[string]interface{}
}

// Metric represents a tracked metric
type Metric struct {
	Name        string
	Value       float64
	Unit        string
	LastUpdated time.Time
}

// SimulationLogger handles simulation-specific logging
type SimulationLogger struct {
	simulationID string
	startTime    time.Time
	events       []SimulationEvent
	metrics      map[string]Metric
	mu           sync.RWMutex
}

// NewSimulationLogger creates a new simulation logger
func NewSimulationLogger(simulationID string) *SimulationLogger {
	sl := &SimulationLogger{
		simulationID: simulationID,
		startTime:    time.Now(),
		events:       make([]SimulationEvent, 0),
		metrics:      make(map[string]Metric),
	}

	sl.printColored(SeverityInfo, "Simulation Started",
		fmt.Sprintf("ID: %s | Time: %s", simulationID, sl.startTime.Format("15:04:05")))

	return sl
}

// LogEngagement records an engagement, message as produced by the
// engine combat log.
func (sl *SimulationLogger) LogEngagement(simTime float64, unitID, message string) {
	sl.logEvent(SimulationEvent{
		SimTime:  simTime,
		Type:     EventTypeEngagement,
		Severity: SeverityInfo,
		UnitID:   unitID,
		Message:  message,
	})
}

// LogDestruction logs the loss of a unit
func (sl *SimulationLogger) LogDestruction(simTime float64, unitID, side string) {
	sl.logEvent(SimulationEvent{
		SimTime:  simTime,
		Type:     EventTypeDestruction,
		Severity: SeverityWarning,
		Side:     side,
		UnitID:   unitID,
		Message:  fmt.Sprintf("Unit destroyed: %s", unitID),
	})

	sl.printColored(SeverityWarning, "Unit Destroyed",
		fmt.Sprintf("Side: %s | ID: %s", sl.sideColor(side).Sprint(side), unitID))
}

// LogObjective logs an objective control change
func (sl *SimulationLogger) LogObjective(simTime float64, message, side string) {
	sl.logEvent(SimulationEvent{
		SimTime:  simTime,
		Type:     EventTypeObjective,
		Severity: SeverityInfo,
		Side:     side,
		Message:  message,
	})

	sl.printColored(SeverityInfo, "Objective", message)
}

// LogStrategy logs an AI strategy change
func (sl *SimulationLogger) LogStrategy(simTime float64, description string) {
	sl.logEvent(SimulationEvent{
		SimTime:  simTime,
		Type:     EventTypeStrategy,
		Severity: SeverityInfo,
		Side:     "ENEMY",
		Message:  description,
	})
}

// LogSystem logs a system-level event (start, termination, errors)
func (sl *SimulationLogger) LogSystem(message string, severity string) {
	sl.logEvent(SimulationEvent{
		Type:     EventTypeSystem,
		Severity: severity,
		Message:  message,
	})
}

// RecordMetric stores the latest value of a named metric
func (sl *SimulationLogger) RecordMetric(name string, value float64, unit string) {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	sl.metrics[name] = Metric{
		Name:        name,
		Value:       value,
		Unit:        unit,
		LastUpdated: time.Now(),
	}
}

// Events returns a copy of all recorded events
func (sl *SimulationLogger) Events() []SimulationEvent {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return append([]SimulationEvent(nil), sl.events...)
}

// Metrics returns a copy of all recorded metrics
func (sl *SimulationLogger) Metrics() map[string]Metric {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	out := make(map[string]Metric, len(sl.metrics))
	for k, v := range sl.metrics {
		out[k] = v
	}
	return out
}

// StartTime returns when the logger was created
func (sl *SimulationLogger) StartTime() time.Time {
	return sl.startTime
}

// SimulationID returns the logger's simulation identifier
func (sl *SimulationLogger) SimulationID() string {
	return sl.simulationID
}

// PrintSummary prints a colored end-of-run summary to the console
func (sl *SimulationLogger) PrintSummary() {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	logger.LogSection("Simulation Summary")

	counts := make(map[string]int)
	for _, ev := range sl.events {
		counts[ev.Type]++
	}

	_, _ = colorInfo.Printf("  Duration:     %v\n", time.Since(sl.startTime).Round(time.Second))
	_, _ = colorInfo.Printf("  Engagements:  %d\n", counts[EventTypeEngagement])
	_, _ = colorWarning.Printf("  Units lost:   %d\n", counts[EventTypeDestruction])
	_, _ = colorInfo.Printf("  Objective changes: %d\n", counts[EventTypeObjective])

	for name, metric := range sl.metrics {
		_, _ = colorSuccess.Printf("  %s: %.1f %s\n", name, metric.Value, metric.Unit)
	}
}

func (sl *SimulationLogger) logEvent(event SimulationEvent) {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	event.ID = uuid.New()
	event.Timestamp = time.Now()
	sl.events = append(sl.events, event)
}

func (sl *SimulationLogger) sideColor(side string) *color.Color {
	if side == "FRIENDLY" {
		return colorFriendly
	}
	return colorEnemy
}

func (sl *SimulationLogger) printColored(severity, title, message string) {
	var c *color.Color
	switch severity {
	case SeverityWarning:
		c = colorWarning
	case SeverityCritical:
		c = colorCritical
	default:
		c = colorInfo
	}
	_, _ = c.Printf("[%s] %s: %s\n", time.Now().Format("15:04:05"), title, message)
}
