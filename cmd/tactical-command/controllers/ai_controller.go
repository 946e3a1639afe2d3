// Package controllers hosts the stateful pieces of the simulation: the
// engine controller that owns the world state and the tactical AI that
// commands the opposing force.
package controllers

import (
	"github.com/caxsim/tactical-command/cmd/tactical-command/core"
	"github.com/caxsim/tactical-command/pkg/logger"
)

// Difficulty gates optional AI behavior
type Difficulty string

const (
	DifficultyEasy    Difficulty = "EASY"
	DifficultyMedium  Difficulty = "MEDIUM"
	DifficultyHard    Difficulty = "HARD"
	DifficultyExtreme Difficulty = "EXTREME"
)

// PlayerMemory accumulates observations about the player's habits.
// Collected on hard difficulty as auxiliary telemetry; it does not feed
// back into strategy selection.
type PlayerMemory struct {
	LeftCount       uint32
	RightCount      uint32
	AggressionScore float64
}

// TacticalAI reassesses the battlefield and issues orders for one side.
type TacticalAI struct {
	side       core.Affiliation
	difficulty Difficulty
	memory     PlayerMemory
	log        logger.Logger
}

// NewTacticalAI creates an AI commanding the given side.
func NewTacticalAI(side core.Affiliation, difficulty Difficulty) *TacticalAI {
	return &TacticalAI{
		side:       side,
		difficulty: difficulty,
		log:        logger.WithPrefix("ai"),
	}
}

// Decide runs the full decision pipeline over a snapshot of the world:
// assess the situation, optionally observe the player, select a
// strategy, and expand it into per-unit orders.
func (ai *TacticalAI) Decide(units []*core.Unit, objectives []*core.Objective) ([]*core.Order, core.Strategy) {
	assessment := core.Assess(units, objectives, ai.side)

	if ai.difficulty == DifficultyHard || ai.difficulty == DifficultyExtreme {
		ai.observePlayer(units)
	}

	strategy := core.SelectStrategy(assessment)
	orders := core.GenerateOrders(strategy, units, objectives, assessment, ai.side)

	ai.log.Debugf("assessment ratio=%.2f ammo=%.0f morale=%.0f confidence=%.0f -> %s (%d orders)",
		assessment.ForceRatio, assessment.AvgAmmo, assessment.AvgMorale, assessment.Confidence,
		strategy.Type, len(orders))

	return orders, strategy
}

// Memory returns a copy of the accumulated player observations.
func (ai *TacticalAI) Memory() PlayerMemory {
	return ai.memory
}

// observePlayer tracks which half of the map the player favors and how
// aggressively their units are committed.
func (ai *TacticalAI) observePlayer(units []*core.Unit) {
	playerUnits := core.FilterByAffiliation(units, ai.side.Opposing())
	if len(playerUnits) == 0 {
		return
	}

	var sumX float64
	engaged := 0
	for _, u := range playerUnits {
		sumX += u.Position.X
		if u.Status == core.StatusEngaging {
			engaged++
		}
	}

	if sumX/float64(len(playerUnits)) < 600 {
		ai.memory.LeftCount++
	} else {
		ai.memory.RightCount++
	}

	ai.memory.AggressionScore = float64(engaged) / float64(len(playerUnits))
}
