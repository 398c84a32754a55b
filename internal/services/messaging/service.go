package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/KirkDiggler/dicetray/internal/models"
)

// service implements the Service interface
type service struct {
	// Random number generator for selecting random messages, guarded by mu
	mu   sync.Mutex
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	seed := time.Now().UnixNano()
	if config != nil && config.Seed != 0 {
		seed = config.Seed
	}

	return &service{
		rand: rand.New(rand.NewSource(seed)),
	}, nil
}

// ClassifyRoll reports whether dice are all at their highest face, all
// ones, or neither.
func ClassifyRoll(dice []models.Die) RollOutcome {
	if len(dice) == 0 {
		return RollOutcomeEmpty
	}

	allMax, allOnes := true, true
	for _, d := range dice {
		if d.Value != d.Sides.Sides() {
			allMax = false
		}
		if d.Value != 1 {
			allOnes = false
		}
	}

	switch {
	case allMax:
		return RollOutcomeCritical
	case allOnes:
		return RollOutcomeFumble
	default:
		return RollOutcomeNormal
	}
}

// GetRollCommentary returns a title and flavor line for a set of dice
func (s *service) GetRollCommentary(ctx context.Context, input *GetRollCommentaryInput) (*GetRollCommentaryOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	who := "You"
	if input.PlayerName != "" {
		who = input.PlayerName
	}

	outcome := ClassifyRoll(input.Dice)

	var titles, messages []string
	var tone MessageTone

	switch outcome {
	case RollOutcomeCritical:
		tone = ToneCelebration
		titles = []string{
			"CRIT!",
			"Maximum!",
			"Perfect Roll!",
			"Natural Max!",
		}
		messages = []string{
			fmt.Sprintf("%s maxed out every die. The table goes quiet.", who),
			fmt.Sprintf("Every face at its highest! %s should buy a lottery ticket.", who),
			"The dice gods favor you today!",
			"Frame that one. It won't happen again soon.",
		}
	case RollOutcomeFumble:
		tone = ToneSympathetic
		titles = []string{
			"Snake Eyes",
			"Oof.",
			"Critical Fail",
		}
		messages = []string{
			"All ones. The dice are clearly cursed.",
			fmt.Sprintf("%s rolled nothing but ones. Blow on them and try again.", who),
			"Well, at least it can only go up from here.",
		}
	case RollOutcomeEmpty:
		tone = ToneNeutral
		titles = []string{"Empty Table"}
		messages = []string{"There are no dice on the table. Roll to get some."}
	default:
		tone = input.PreferredTone
		if tone == "" {
			tone = ToneNeutral
		}
		titles = []string{"Roll Result"}
		if tone == ToneFunny {
			messages = []string{
				"The dice have spoken. Nobody asked them to.",
				"Not great, not terrible.",
				"Somewhere, a statistician nods approvingly.",
				fmt.Sprintf("%s rolled. The dice tumbled. Numbers happened.", who),
			}
		} else {
			messages = []string{
				"The dice have settled.",
				"Here's what came up.",
			}
		}
	}

	return &GetRollCommentaryOutput{
		Outcome: outcome,
		Title:   s.pick(titles),
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneFunny
	}

	var messages []string
	switch input.ErrorType {
	case ErrorTypeNoSuchDie:
		messages = []string{
			"There's no die in that spot. Count again!",
			"That die rolled off the table. Pick one that's there.",
			"No die at that position. Check the table first.",
		}
	case ErrorTypeInvalidDiceType:
		messages = []string{
			"That's not a die we carry. Try d4, d6, d8, d10, d12 or d20.",
			"We only stock d4, d6, d8, d10, d12 and d20.",
		}
	case ErrorTypeModifierRefused:
		messages = []string{
			"Modifiers top out at four digits.",
			"That modifier is too long. Four digits, max.",
		}
	case ErrorTypeNothingToChange:
		messages = []string{
			"Tell me what to change: type, count or modifier.",
			"Nothing to set! Pick a type, count or modifier.",
		}
	default:
		messages = []string{
			"Something went wrong! Try again later.",
			"Oops! The dice got confused. Try again.",
			"Technical difficulties! The dice are being recalibrated.",
		}
	}

	return &GetErrorMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// pick returns a random element of options
func (s *service) pick(options []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return options[s.rand.Intn(len(options))]
}
