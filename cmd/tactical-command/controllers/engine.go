package controllers

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/caxsim/tactical-command/cmd/tactical-command/core"
	"github.com/caxsim/tactical-command/pkg/geo"
	"github.com/caxsim/tactical-command/pkg/logger"
)

// Map dimensions in meters
const (
	MapWidth  = 1200.0
	MapHeight = 800.0
)

// Interval between AI decision cycles, in simulated seconds
const aiDecisionInterval = 2.0

// Threshold below which a moving unit counts as arrived
const arrivalThreshold = 5.0

// kphFactor converts a km/h speed into meters moved per simulated second
const kphFactor = 0.27

// Event types recorded in the combat log
const (
	EventEngagement = "ENGAGEMENT"
	EventObjective  = "OBJECTIVE"
	EventStrategy   = "STRATEGY"
)

// CombatEvent is one entry of the combat log, timestamped in simulated
// seconds.
type CombatEvent struct {
	Timestamp   float64
	Type        string
	Description string
	UnitID      string
}

// Scenario is the input the engine needs to construct a world: force
// compositions, environment, objectives and AI difficulty.
type Scenario struct {
	Name          string
	PlayerForces  core.ForceComposition
	OpposingForce core.ForceComposition
	Objectives    []*core.Objective
	Weather       core.Weather
	TimeOfDay     core.TimeOfDay
	Difficulty    Difficulty
	Duration      float64 // seconds
}

// Snapshot is a read-only copy of the world state, safe to hand to
// rendering or test code between ticks.
type Snapshot struct {
	Units       []core.Unit
	Objectives  []core.Objective
	ElapsedTime float64
	Paused      bool
	GameSpeed   float64
	CombatLog   []CombatEvent
}

// Engine owns the authoritative world state and advances it in discrete
// ticks. It is the sole mutator; every other component either reads a
// snapshot or returns values for the engine to apply. Not safe for
// concurrent use: drive it from a single goroutine and read state
// between ticks.
type Engine struct {
	units      []*core.Unit
	objectives []*core.Objective
	terrain    *core.TerrainGrid
	weather    core.Weather
	timeOfDay  core.TimeOfDay

	elapsedTime float64
	paused      bool
	gameSpeed   float64
	combatLog   []CombatEvent

	resolver     *core.Resolver
	ai           *TacticalAI
	aiTimer      float64
	lastStrategy core.StrategyType

	playerSide core.Affiliation
	log        logger.Logger
}

// NewEngine constructs a world from a scenario. The seed drives terrain
// generation and combat variance; identical scenarios and seeds produce
// identical worlds.
func NewEngine(scenario Scenario, seed int64) *Engine {
	rng := rand.New(rand.NewSource(seed))

	e := &Engine{
		objectives: scenario.Objectives,
		terrain:    core.GenerateTerrain(MapWidth, MapHeight, rng),
		weather:    scenario.Weather,
		timeOfDay:  scenario.TimeOfDay,
		gameSpeed:  1,
		resolver:   core.NewResolver(rng),
		ai:         NewTacticalAI(core.AffiliationEnemy, scenario.Difficulty),
		playerSide: core.AffiliationFriendly,
		log:        logger.WithPrefix("engine"),
	}

	e.units = append(e.units,
		core.SpawnForce(scenario.PlayerForces, core.AffiliationFriendly, 200, 400)...)
	e.units = append(e.units,
		core.SpawnForce(scenario.OpposingForce, core.AffiliationEnemy, 1000, 400)...)

	return e
}

// Update advances the world by deltaTime simulated seconds (before
// game-speed scaling). The tick order is fixed: AI, movement, combat,
// objectives. A paused engine ignores the call entirely.
func (e *Engine) Update(deltaTime float64) {
	if e.paused {
		return
	}

	scaled := deltaTime * e.gameSpeed
	e.elapsedTime += scaled

	e.aiTimer += scaled
	if e.aiTimer >= aiDecisionInterval {
		e.aiTimer = 0
		e.runAI()
	}

	e.updateMovement(scaled)
	e.processCombat()
	e.updateObjectives()

	for _, u := range e.units {
		u.ClampPercentages()
	}
}

// runAI lets the opposing commander reassess and apply its orders.
func (e *Engine) runAI() {
	orders, strategy := e.ai.Decide(e.units, e.objectives)

	if strategy.Type != e.lastStrategy {
		e.lastStrategy = strategy.Type
		e.appendLog(EventStrategy, fmt.Sprintf("OPFOR: %s", strategy.Description), "")
	}

	for _, order := range orders {
		unit := e.findUnit(order.UnitID)
		if unit == nil {
			continue
		}
		unit.CurrentOrder = order
		e.executeOrder(unit, order)
	}
}

// executeOrder interprets an order into a destination and status change.
// Orders whose targets cannot be resolved are dropped without touching
// the unit.
func (e *Engine) executeOrder(unit *core.Unit, order *core.Order) {
	if !unit.IsActive() {
		return
	}

	switch order.Type {
	case core.CommandMove, core.CommandAttack, core.CommandDefend, core.CommandFlank:
		pos, ok := order.Target.Resolve(e.units)
		if !ok {
			return
		}
		unit.Destination = &pos
		unit.Status = core.StatusMoving
		order.Status = core.OrderInProgress

	case core.CommandRetreat:
		pos, ok := order.Target.Resolve(e.units)
		if !ok {
			return
		}
		unit.Destination = &pos
		unit.Status = core.StatusRetreating
		order.Status = core.OrderInProgress

	case core.CommandHold:
		unit.Destination = nil
		unit.Status = core.StatusIdle
		order.Status = core.OrderCompleted

	default:
		// Command types without a movement interpretation are dropped
		order.Status = core.OrderCancelled
	}
}

// updateMovement advances every unit with a destination along the exact
// bearing to it, consuming fuel proportional to distance moved.
func (e *Engine) updateMovement(deltaTime float64) {
	for _, unit := range e.units {
		if unit.Destination == nil || !unit.IsActive() {
			continue
		}

		distance := geo.Distance(unit.Position, *unit.Destination)

		if distance < arrivalThreshold {
			unit.Destination = nil
			unit.Status = core.StatusIdle
			if unit.CurrentOrder != nil && unit.CurrentOrder.Status == core.OrderInProgress {
				unit.CurrentOrder.Status = core.OrderCompleted
			}
			continue
		}

		moveDistance := unit.Speed * deltaTime * kphFactor
		dx := unit.Destination.X - unit.Position.X
		dy := unit.Destination.Y - unit.Position.Y
		angle := math.Atan2(dy, dx)

		unit.Position.X += math.Cos(angle) * moveDistance
		unit.Position.Y += math.Sin(angle) * moveDistance
		unit.Facing = geo.NormalizeAngle(angle*180/math.Pi + 90)

		unit.Fuel = math.Max(0, unit.Fuel-moveDistance*0.001)
	}
}

// processCombat resolves one engagement per active unit, the player's
// side first. Targets are first-found in range, not nearest; the bias is
// deliberate and affects which units absorb damage.
func (e *Engine) processCombat() {
	active := core.ActiveUnits(e.units)

	for _, unit := range active {
		if unit.Affiliation != e.playerSide {
			continue
		}
		e.engageFirstTarget(unit, active)
	}

	for _, unit := range active {
		if unit.Affiliation != e.playerSide.Opposing() || unit.Status == core.StatusEngaging {
			continue
		}
		e.engageFirstTarget(unit, active)
	}
}

// engageFirstTarget finds the first valid combat partner for a unit and
// resolves the engagement against it.
func (e *Engine) engageFirstTarget(attacker *core.Unit, active []*core.Unit) {
	for _, target := range active {
		if target.Affiliation != attacker.Affiliation.Opposing() {
			continue
		}
		if !core.CanEngage(attacker, target) {
			continue
		}

		terrain := e.terrain.At(attacker.Position)
		result := e.resolver.Resolve(attacker, target, terrain.Type, e.weather, e.timeOfDay)

		attacker.Status = core.StatusEngaging
		target.Status = core.StatusEngaging
		core.Apply(attacker, target, result)

		e.appendLog(EventEngagement,
			fmt.Sprintf("%s engaged %s at %s - %s won",
				attacker.Designation, target.Designation,
				geo.GridReference(target.Position), result.Winner),
			attacker.ID)
		return
	}
}

// updateObjectives flips control of each objective to whichever side has
// strictly greater active presence within its radius. Ties hold.
func (e *Engine) updateObjectives() {
	for _, obj := range e.objectives {
		friendly := e.presenceWithin(obj, core.AffiliationFriendly)
		enemy := e.presenceWithin(obj, core.AffiliationEnemy)

		previous := obj.ControlledBy
		if friendly > enemy {
			obj.ControlledBy = core.AffiliationFriendly
			obj.Status = core.ObjectiveCompleted
		} else if enemy > friendly {
			obj.ControlledBy = core.AffiliationEnemy
			obj.Status = core.ObjectiveFailed
		}

		if obj.ControlledBy != previous {
			e.appendLog(EventObjective,
				fmt.Sprintf("%s now controlled by %s", obj.Name, obj.ControlledBy), "")
		}
	}
}

func (e *Engine) presenceWithin(obj *core.Objective, side core.Affiliation) int {
	count := 0
	for _, u := range e.units {
		if u.Affiliation == side && u.IsActive() &&
			geo.Distance(u.Position, obj.Position) < obj.Radius {
			count++
		}
	}
	return count
}

// IssueOrder accepts a player order for one unit. Orders for units that
// do not exist or do not belong to the player's side are silently
// ignored.
func (e *Engine) IssueOrder(unitID string, order *core.Order) {
	unit := e.findUnit(unitID)
	if unit == nil || unit.Affiliation != e.playerSide {
		return
	}
	unit.CurrentOrder = order
	e.executeOrder(unit, order)
}

func (e *Engine) findUnit(id string) *core.Unit {
	for _, u := range e.units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// SetPaused pauses or resumes the simulation.
func (e *Engine) SetPaused(paused bool) {
	e.paused = paused
}

// SetGameSpeed sets the time-scale multiplier (1, 2 or 4).
func (e *Engine) SetGameSpeed(speed float64) {
	switch speed {
	case 1, 2, 4:
		e.gameSpeed = speed
	default:
		e.log.Warnf("ignoring unsupported game speed %v", speed)
	}
}

// ElapsedTime returns the simulated seconds since scenario start.
func (e *Engine) ElapsedTime() float64 {
	return e.elapsedTime
}

// PlayerMemory exposes the AI's accumulated player observations.
func (e *Engine) PlayerMemory() PlayerMemory {
	return e.ai.Memory()
}

// Terrain returns the immutable battlefield grid.
func (e *Engine) Terrain() *core.TerrainGrid {
	return e.terrain
}

// CombatLog returns the combat log entries recorded so far.
func (e *Engine) CombatLog() []CombatEvent {
	return append([]CombatEvent(nil), e.combatLog...)
}

// GetSnapshot returns a deep copy of the mutable world state. Calling it
// twice between ticks yields identical data.
func (e *Engine) GetSnapshot() Snapshot {
	snap := Snapshot{
		Units:       make([]core.Unit, len(e.units)),
		Objectives:  make([]core.Objective, len(e.objectives)),
		ElapsedTime: e.elapsedTime,
		Paused:      e.paused,
		GameSpeed:   e.gameSpeed,
		CombatLog:   append([]CombatEvent(nil), e.combatLog...),
	}

	for i, u := range e.units {
		c := *u
		if u.Destination != nil {
			dest := *u.Destination
			c.Destination = &dest
		}
		// Orders are engine-internal; the snapshot carries state only
		c.CurrentOrder = nil
		c.OrderQueue = nil
		snap.Units[i] = c
	}
	for i, obj := range e.objectives {
		snap.Objectives[i] = *obj
	}

	return snap
}

func (e *Engine) appendLog(eventType, description, unitID string) {
	e.combatLog = append(e.combatLog, CombatEvent{
		Timestamp:   e.elapsedTime,
		Type:        eventType,
		Description: description,
		UnitID:      unitID,
	})
}
