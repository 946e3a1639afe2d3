package core

import (
	"time"

	"github.com/google/uuid"

	"github.com/caxsim/tactical-command/pkg/geo"
)

// CommandType is the kind of instruction an order carries
type CommandType string

const (
	CommandMove            CommandType = "MOVE"
	CommandAttack          CommandType = "ATTACK"
	CommandDefend          CommandType = "DEFEND"
	CommandFlank           CommandType = "FLANK"
	CommandRetreat         CommandType = "RETREAT"
	CommandSuppress        CommandType = "SUPPRESS"
	CommandRecon           CommandType = "RECON"
	CommandArtilleryStrike CommandType = "ARTILLERY_STRIKE"
	CommandHold            CommandType = "HOLD"
	CommandResupply        CommandType = "RESUPPLY"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderInProgress OrderStatus = "IN_PROGRESS"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// Target is a tagged union over a battlefield position or a unit
// reference. Exactly one of the two is set; an empty target means the
// order has no destination (hold).
type Target struct {
	Position *geo.Position
	UnitID   string
}

// PositionTarget builds a target referring to a map position.
func PositionTarget(pos geo.Position) Target {
	return Target{Position: &pos}
}

// UnitTarget builds a target referring to another unit.
func UnitTarget(unitID string) Target {
	return Target{UnitID: unitID}
}

// IsZero reports whether the target refers to nothing.
func (t Target) IsZero() bool {
	return t.Position == nil && t.UnitID == ""
}

// Resolve returns the position the target refers to, looking unit
// references up in the given collection. The second return is false when
// the target cannot be resolved (missing or destroyed unit, empty target).
func (t Target) Resolve(units []*Unit) (geo.Position, bool) {
	if t.Position != nil {
		return *t.Position, true
	}
	if t.UnitID != "" {
		for _, u := range units {
			if u.ID == t.UnitID && u.IsActive() {
				return u.Position, true
			}
		}
	}
	return geo.Position{}, false
}

// Order is an instruction issued to one unit, either by the player or
// by the tactical AI.
type Order struct {
	ID       string
	UnitID   string
	Type     CommandType
	Target   Target
	Priority int // 1 = highest, 5 = lowest
	Status   OrderStatus
	IssuedAt time.Time
}

// NewOrder creates a pending order with a fresh identity and timestamp.
func NewOrder(unitID string, cmdType CommandType, target Target, priority int) *Order {
	return &Order{
		ID:       uuid.NewString(),
		UnitID:   unitID,
		Type:     cmdType,
		Target:   target,
		Priority: priority,
		Status:   OrderPending,
		IssuedAt: time.Now(),
	}
}

// ObjectiveStatus tracks mission progress on an objective
type ObjectiveStatus string

const (
	ObjectivePending    ObjectiveStatus = "PENDING"
	ObjectiveInProgress ObjectiveStatus = "IN_PROGRESS"
	ObjectiveCompleted  ObjectiveStatus = "COMPLETED"
	ObjectiveFailed     ObjectiveStatus = "FAILED"
)

// Objective is a capturable point of interest. Control flips to the side
// with strictly greater active presence inside the radius; ties leave
// control unchanged.
type Objective struct {
	ID           string
	Name         string
	Description  string
	Position     geo.Position
	Radius       float64
	ControlledBy Affiliation // empty until first captured
	Required     bool
	Value        int
	Status       ObjectiveStatus
}
