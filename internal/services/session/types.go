package session

import (
	"time"

	"github.com/KirkDiggler/dicetray/internal/common/clock"
	"github.com/KirkDiggler/dicetray/internal/common/uuid"
	"github.com/KirkDiggler/dicetray/internal/dice"
	"github.com/KirkDiggler/dicetray/internal/metrics"
	"github.com/KirkDiggler/dicetray/internal/models"
	sessionRepo "github.com/KirkDiggler/dicetray/internal/repositories/session"
	"go.uber.org/zap"
)

// Config holds configuration for the session service
type Config struct {
	// Repository dependencies
	SessionRepo sessionRepo.Repository

	// Service dependencies
	DiceRoller    dice.Roller
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Location formats history timestamps, defaults to time.Local
	Location *time.Location

	// Optional
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// Table is the state of a session after an operation, with the derived
// values a renderer needs
type Table struct {
	// Session is a snapshot of the full session state
	Session *models.Session

	// Total is the sum of the dice on the table
	Total int

	// FinalTotal is Total plus the modifier
	FinalTotal int

	// Message summarizes the dice, empty when there are none
	Message string
}

// GetSessionInput contains parameters for fetching a table
type GetSessionInput struct {
	// Key addresses the session, e.g. channel and user
	Key string
}

// GetSessionOutput contains the current table
type GetSessionOutput struct {
	Table

	// Created is true when no session existed and a fresh one was started
	Created bool
}

// ConfigureInput contains the settings to change. Nil fields are left
// as they are.
type ConfigureInput struct {
	Key string

	// DiceType must be one of the supported dice types
	DiceType *models.DiceType

	// DiceCount is clamped to [1, 6] and applies on the next roll
	DiceCount *int

	// Modifier is raw text from an input field
	Modifier *string

	// ModifierValue is an already numeric modifier, clamped to [0, 9999].
	// Ignored when Modifier is set.
	ModifierValue *int
}

// ConfigureOutput contains the table after configuration
type ConfigureOutput struct {
	Table

	// ModifierAccepted is false when raw modifier text was refused
	ModifierAccepted bool
}

// RollInput contains parameters for a full roll
type RollInput struct {
	Key string
}

// RollOutput contains the result of a full roll
type RollOutput struct {
	Table

	// Result is the new set of dice
	Result models.RollResult
}

// RerollDieInput contains parameters for rolling one die again
type RerollDieInput struct {
	Key string

	// Index is the zero based position of the die
	Index int
}

// RerollDieOutput contains the result of rolling one die again
type RerollDieOutput struct {
	Table

	// Die is the new die at Index
	Die models.Die
}

// EditDieInput contains parameters for changing a die's type
type EditDieInput struct {
	Key string

	// Index is the zero based position of the die
	Index int

	// DiceType is the new face count for that die
	DiceType models.DiceType
}

// EditDieOutput contains the result of changing a die's type
type EditDieOutput struct {
	Table

	// Die is the new die at Index
	Die models.Die
}

// DeleteDieInput contains parameters for removing a die
type DeleteDieInput struct {
	Key string

	// Index is the zero based position of the die
	Index int
}

// DeleteDieOutput contains the table after a die was removed
type DeleteDieOutput struct {
	Table

	// Removed is the die that was taken off the table
	Removed models.Die
}

// ClearHistoryInput contains parameters for clearing history
type ClearHistoryInput struct {
	Key string
}

// ClearHistoryOutput contains the table after history was cleared
type ClearHistoryOutput struct {
	Table

	// Cleared is how many entries were dropped
	Cleared int
}

// EndSessionInput contains parameters for ending a session
type EndSessionInput struct {
	Key string
}

// EndSessionOutput contains the result of ending a session
type EndSessionOutput struct {
	// Success indicates the session was discarded
	Success bool
}
