// Package core contains the algorithmic heart of the tactical simulation:
// the unit and terrain model, the combat resolver, and the AI assessment,
// strategy and order-generation pipeline. Everything here is pure or
// operates on state passed in by the engine controller; the only mutation
// entry points are explicit Apply-style functions.
package core

import (
	"fmt"

	"github.com/caxsim/tactical-command/pkg/geo"
)

// Affiliation identifies the side a unit belongs to
type Affiliation string

const (
	AffiliationFriendly Affiliation = "FRIENDLY"
	AffiliationEnemy    Affiliation = "ENEMY"
	AffiliationNeutral  Affiliation = "NEUTRAL"
	AffiliationUnknown  Affiliation = "UNKNOWN"
)

// Opposing returns the side this affiliation fights against.
func (a Affiliation) Opposing() Affiliation {
	switch a {
	case AffiliationFriendly:
		return AffiliationEnemy
	case AffiliationEnemy:
		return AffiliationFriendly
	default:
		return AffiliationUnknown
	}
}

// UnitClass is the category of a deployable force element
type UnitClass string

const (
	ClassInfantry     UnitClass = "INFANTRY"
	ClassMechInfantry UnitClass = "MECHANIZED_INFANTRY"
	ClassArmor        UnitClass = "ARMOR"
	ClassArtillery    UnitClass = "ARTILLERY"
	ClassRecon        UnitClass = "RECON"
	ClassEngineer     UnitClass = "ENGINEER"
	ClassAviation     UnitClass = "AVIATION"
	ClassLogistics    UnitClass = "LOGISTICS"
	ClassMedical      UnitClass = "MEDICAL"
	ClassCommand      UnitClass = "COMMAND"
)

// Echelon is the organizational size tier of a unit
type Echelon string

const (
	EchelonTeam      Echelon = "TEAM"
	EchelonSquad     Echelon = "SQUAD"
	EchelonPlatoon   Echelon = "PLATOON"
	EchelonCompany   Echelon = "COMPANY"
	EchelonBattalion Echelon = "BATTALION"
	EchelonBrigade   Echelon = "BRIGADE"
	EchelonDivision  Echelon = "DIVISION"
	EchelonCorps     Echelon = "CORPS"
)

// UnitStatus is the discrete behavioral state of a unit
type UnitStatus string

const (
	StatusIdle       UnitStatus = "IDLE"
	StatusMoving     UnitStatus = "MOVING"
	StatusEngaging   UnitStatus = "ENGAGING"
	StatusRetreating UnitStatus = "RETREATING"
	StatusDestroyed  UnitStatus = "DESTROYED"
	StatusPinned     UnitStatus = "PINNED"
	StatusSuppressed UnitStatus = "SUPPRESSED"
)

// Unit is one side's deployable force element. Destroyed units stay in
// the collection so indices, logs and snapshots remain stable; the
// destroyed status is terminal.
type Unit struct {
	ID          string
	Class       UnitClass
	Echelon     Echelon
	Affiliation Affiliation
	Designation string // e.g. "E-2"

	// Personnel/Equipment
	Count    int
	MaxCount int

	// Status percentages, all clamped to [0,100]
	Health     float64
	Morale     float64
	Ammunition float64
	Fuel       float64
	Status     UnitStatus

	// Position and movement
	Position    geo.Position
	Facing      float64 // degrees [0,360)
	Destination *geo.Position

	// Combat capabilities
	Speed          float64 // km/h
	Firepower      float64 // attack rating
	Armor          float64 // defense rating
	DetectionRange float64 // meters
	WeaponRange    float64 // meters

	// Current orders
	CurrentOrder *Order
	OrderQueue   []*Order
}

// IsActive reports whether the unit still takes part in the simulation.
func (u *Unit) IsActive() bool {
	return u.Status != StatusDestroyed
}

// ClampPercentages forces all percentage fields back into [0,100] and
// count into [0,MaxCount].
func (u *Unit) ClampPercentages() {
	u.Health = geo.Clamp(u.Health, 0, 100)
	u.Morale = geo.Clamp(u.Morale, 0, 100)
	u.Ammunition = geo.Clamp(u.Ammunition, 0, 100)
	u.Fuel = geo.Clamp(u.Fuel, 0, 100)
	if u.Count < 0 {
		u.Count = 0
	}
	if u.Count > u.MaxCount {
		u.Count = u.MaxCount
	}
}

// classStats holds the baseline capabilities of a unit class.
type classStats struct {
	Speed          float64
	Firepower      float64
	Armor          float64
	DetectionRange float64
	WeaponRange    float64
	Count          int
}

// Baseline stats per class. Counts are per platoon-equivalent: 4 tanks
// per armor platoon, 6 guns per artillery battery, 2 recon vehicles.
var classTemplates = map[UnitClass]classStats{
	ClassInfantry:     {Speed: 5, Firepower: 3, Armor: 1, DetectionRange: 400, WeaponRange: 400, Count: 30},
	ClassMechInfantry: {Speed: 40, Firepower: 5, Armor: 3, DetectionRange: 600, WeaponRange: 600, Count: 30},
	ClassArmor:        {Speed: 50, Firepower: 10, Armor: 10, DetectionRange: 2000, WeaponRange: 2000, Count: 4},
	ClassArtillery:    {Speed: 30, Firepower: 15, Armor: 2, DetectionRange: 1000, WeaponRange: 15000, Count: 6},
	ClassRecon:        {Speed: 70, Firepower: 2, Armor: 2, DetectionRange: 3000, WeaponRange: 800, Count: 2},
	ClassEngineer:     {Speed: 35, Firepower: 2, Armor: 2, DetectionRange: 500, WeaponRange: 300, Count: 20},
	ClassAviation:     {Speed: 200, Firepower: 12, Armor: 3, DetectionRange: 5000, WeaponRange: 4000, Count: 2},
	ClassLogistics:    {Speed: 40, Firepower: 1, Armor: 1, DetectionRange: 500, WeaponRange: 100, Count: 10},
	ClassMedical:      {Speed: 40, Firepower: 0, Armor: 1, DetectionRange: 500, WeaponRange: 0, Count: 8},
	ClassCommand:      {Speed: 40, Firepower: 2, Armor: 2, DetectionRange: 1000, WeaponRange: 500, Count: 15},
}

// NewUnit creates a unit of the given class at a position, fully manned
// and supplied. Friendly units start facing east across the map, enemy
// units west.
func NewUnit(class UnitClass, affiliation Affiliation, index int, pos geo.Position) *Unit {
	stats, ok := classTemplates[class]
	if !ok {
		stats = classTemplates[ClassInfantry]
	}

	facing := 270.0
	if affiliation == AffiliationFriendly {
		facing = 90.0
	}

	return &Unit{
		ID:             fmt.Sprintf("%s-%s-%d", affiliation, class, index),
		Class:          class,
		Echelon:        EchelonPlatoon,
		Affiliation:    affiliation,
		Designation:    fmt.Sprintf("%c-%d", affiliation[0], index+1),
		Count:          stats.Count,
		MaxCount:       stats.Count,
		Health:         100,
		Morale:         80,
		Ammunition:     100,
		Fuel:           100,
		Status:         StatusIdle,
		Position:       pos,
		Facing:         facing,
		Speed:          stats.Speed,
		Firepower:      stats.Firepower,
		Armor:          stats.Armor,
		DetectionRange: stats.DetectionRange,
		WeaponRange:    stats.WeaponRange,
	}
}

// ForceComposition is the number of units of each class fielded by one side.
type ForceComposition struct {
	Infantry     int `yaml:"infantry"`
	MechInfantry int `yaml:"mech_infantry"`
	Armor        int `yaml:"armor"`
	Artillery    int `yaml:"artillery"`
	Recon        int `yaml:"recon"`
}

// Total returns the number of units in the composition.
func (fc ForceComposition) Total() int {
	return fc.Infantry + fc.MechInfantry + fc.Armor + fc.Artillery + fc.Recon
}

// SpawnForce creates the units for one side at its designated spawn
// area, using fixed per-class offsets so that identical compositions
// always produce identical deployments.
func SpawnForce(fc ForceComposition, affiliation Affiliation, baseX, baseY float64) []*Unit {
	dir := 1.0
	if affiliation == AffiliationFriendly {
		dir = -1.0
	}

	var units []*Unit
	for i := 0; i < fc.Infantry; i++ {
		units = append(units, NewUnit(ClassInfantry, affiliation, i, geo.Position{X: baseX, Y: baseY + float64(i)*100}))
	}
	for i := 0; i < fc.MechInfantry; i++ {
		units = append(units, NewUnit(ClassMechInfantry, affiliation, i, geo.Position{X: baseX + dir*25, Y: baseY + float64(i)*100 + 50}))
	}
	for i := 0; i < fc.Armor; i++ {
		units = append(units, NewUnit(ClassArmor, affiliation, i, geo.Position{X: baseX + dir*50, Y: baseY + float64(i)*120}))
	}
	for i := 0; i < fc.Artillery; i++ {
		units = append(units, NewUnit(ClassArtillery, affiliation, i, geo.Position{X: baseX + dir*100, Y: baseY + 200}))
	}
	for i := 0; i < fc.Recon; i++ {
		units = append(units, NewUnit(ClassRecon, affiliation, i, geo.Position{X: baseX - dir*100, Y: baseY + float64(i)*80}))
	}
	return units
}

// FilterByAffiliation returns the units belonging to one side.
func FilterByAffiliation(units []*Unit, side Affiliation) []*Unit {
	var out []*Unit
	for _, u := range units {
		if u.Affiliation == side {
			out = append(out, u)
		}
	}
	return out
}

// ActiveUnits returns the units not yet destroyed.
func ActiveUnits(units []*Unit) []*Unit {
	var out []*Unit
	for _, u := range units {
		if u.IsActive() {
			out = append(out, u)
		}
	}
	return out
}
