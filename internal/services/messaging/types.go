package messaging

import "github.com/KirkDiggler/dicetray/internal/models"

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"

	// ToneSympathetic is used for bad luck
	ToneSympathetic MessageTone = "sympathetic"
)

// RollOutcome classifies a set of dice for commentary
type RollOutcome string

const (
	// RollOutcomeNormal is any roll without a highlight
	RollOutcomeNormal RollOutcome = "normal"

	// RollOutcomeCritical means every die shows its highest face
	RollOutcomeCritical RollOutcome = "critical"

	// RollOutcomeFumble means every die shows a 1
	RollOutcomeFumble RollOutcome = "fumble"

	// RollOutcomeEmpty means there are no dice on the table
	RollOutcomeEmpty RollOutcome = "empty"
)

// ErrorType names the failures the front-end explains to players
type ErrorType string

const (
	ErrorTypeNoSuchDie       ErrorType = "no_such_die"
	ErrorTypeInvalidDiceType ErrorType = "invalid_dice_type"
	ErrorTypeModifierRefused ErrorType = "modifier_refused"
	ErrorTypeNothingToChange ErrorType = "nothing_to_change"
	ErrorTypeUnknown         ErrorType = "unknown"
)

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct {
	// Seed fixes the message selection, for tests
	Seed int64
}

// GetRollCommentaryInput contains the dice to comment on
type GetRollCommentaryInput struct {
	// Dice is the table after the roll
	Dice []models.Die

	// PlayerName is used in third person lines, optional
	PlayerName string

	// PreferredTone is the tone for a normal roll (optional)
	PreferredTone MessageTone
}

// GetRollCommentaryOutput contains the commentary for a roll
type GetRollCommentaryOutput struct {
	// Outcome is how the roll was classified
	Outcome RollOutcome

	// Title is a short heading
	Title string

	// Message is the flavor line
	Message string

	// Tone is the tone of the message
	Tone MessageTone
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	// ErrorType selects the message set
	ErrorType ErrorType

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetErrorMessageOutput contains the user-friendly error message
type GetErrorMessageOutput struct {
	// Message is the generated message
	Message string

	// Tone is the tone of the message
	Tone MessageTone
}
