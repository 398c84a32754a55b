package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/dicetray/internal/engine"
	"github.com/KirkDiggler/dicetray/internal/metrics"
	"github.com/KirkDiggler/dicetray/internal/models"
	sessionRepo "github.com/KirkDiggler/dicetray/internal/repositories/session"
	"go.uber.org/zap"
)

// service implements the Service interface
type service struct {
	sessionRepo  sessionRepo.Repository
	engineConfig *engine.Config
	metrics      *metrics.Metrics
	logger       *zap.Logger
	locks        *keyLocks
}

// New creates a new session service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilRepository
	}

	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		sessionRepo: cfg.SessionRepo,
		engineConfig: &engine.Config{
			DiceRoller:    cfg.DiceRoller,
			Clock:         cfg.Clock,
			UUIDGenerator: cfg.UUIDGenerator,
			Location:      cfg.Location,
		},
		metrics: cfg.Metrics,
		logger:  logger.Named("session"),
		locks:   newKeyLocks(),
	}, nil
}

// GetSession returns the current table, starting a session if needed
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	var created bool
	e, err := s.withEngine(ctx, input.Key, func(e *engine.Engine, isNew bool) error {
		created = isNew
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &GetSessionOutput{
		Table:   tableOf(e),
		Created: created,
	}, nil
}

// Configure changes any combination of dice type, pending dice count and modifier
func (s *service) Configure(ctx context.Context, input *ConfigureInput) (*ConfigureOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.DiceType == nil && input.DiceCount == nil && input.Modifier == nil && input.ModifierValue == nil {
		return nil, ErrNothingToConfigure
	}

	accepted := true
	e, err := s.withEngine(ctx, input.Key, func(e *engine.Engine, _ bool) error {
		if input.DiceType != nil {
			if err := e.SetDiceType(*input.DiceType); err != nil {
				return err
			}
		}

		if input.DiceCount != nil {
			e.SetPendingDiceCount(*input.DiceCount)
		}

		switch {
		case input.Modifier != nil:
			accepted = e.SetModifier(*input.Modifier)
		case input.ModifierValue != nil:
			e.SetModifierValue(*input.ModifierValue)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if !accepted {
		s.logger.Debug("modifier input refused",
			zap.String("session_key", input.Key),
			zap.Stringp("modifier", input.Modifier))
	}

	return &ConfigureOutput{
		Table:            tableOf(e),
		ModifierAccepted: accepted,
	}, nil
}

// Roll replaces the table with a fresh roll of the pending dice count
func (s *service) Roll(ctx context.Context, input *RollInput) (*RollOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	var result models.RollResult
	e, err := s.withEngine(ctx, input.Key, func(e *engine.Engine, _ bool) error {
		result = e.RollAll()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveRoll(metrics.RollKindFull, result.Dice...)
	s.logger.Debug("rolled dice",
		zap.String("session_key", input.Key),
		zap.Ints("values", result.Values()))

	return &RollOutput{
		Table:  tableOf(e),
		Result: result,
	}, nil
}

// RerollDie rolls the die at the given index again
func (s *service) RerollDie(ctx context.Context, input *RerollDieInput) (*RerollDieOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	var die models.Die
	e, err := s.withEngine(ctx, input.Key, func(e *engine.Engine, _ bool) error {
		var err error
		die, err = e.RerollOne(input.Index)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveRoll(metrics.RollKindReroll, die)
	s.logger.Debug("rerolled die",
		zap.String("session_key", input.Key),
		zap.Int("index", input.Index),
		zap.Int("value", die.Value))

	return &RerollDieOutput{
		Table: tableOf(e),
		Die:   die,
	}, nil
}

// EditDie switches the die at the given index to another dice type
func (s *service) EditDie(ctx context.Context, input *EditDieInput) (*EditDieOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	var die models.Die
	e, err := s.withEngine(ctx, input.Key, func(e *engine.Engine, _ bool) error {
		var err error
		die, err = e.EditOne(input.Index, input.DiceType)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveRoll(metrics.RollKindEdit, die)
	s.logger.Debug("edited die",
		zap.String("session_key", input.Key),
		zap.Int("index", input.Index),
		zap.Int("sides", die.Sides.Sides()),
		zap.Int("value", die.Value))

	return &EditDieOutput{
		Table: tableOf(e),
		Die:   die,
	}, nil
}

// DeleteDie removes the die at the given index
func (s *service) DeleteDie(ctx context.Context, input *DeleteDieInput) (*DeleteDieOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	var removed models.Die
	e, err := s.withEngine(ctx, input.Key, func(e *engine.Engine, _ bool) error {
		result := e.Result()
		if err := e.DeleteOne(input.Index); err != nil {
			return err
		}
		removed = result.Dice[input.Index]
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &DeleteDieOutput{
		Table:   tableOf(e),
		Removed: removed,
	}, nil
}

// ClearHistory empties the roll history of a session
func (s *service) ClearHistory(ctx context.Context, input *ClearHistoryInput) (*ClearHistoryOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	var cleared int
	e, err := s.withEngine(ctx, input.Key, func(e *engine.Engine, _ bool) error {
		cleared = e.HistoryLen()
		e.ClearHistory()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.HistoryCleared()

	return &ClearHistoryOutput{
		Table:   tableOf(e),
		Cleared: cleared,
	}, nil
}

// EndSession discards a session and everything in it
func (s *service) EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.Key == "" {
		return nil, ErrEmptyKey
	}

	unlock := s.locks.lock(input.Key)
	defer unlock()

	err := s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{
		Key: input.Key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to end session: %w", err)
	}

	s.metrics.SessionEnded()
	s.logger.Info("session ended", zap.String("session_key", input.Key))

	return &EndSessionOutput{
		Success: true,
	}, nil
}

// withEngine loads the session for key, or starts one, applies fn and
// saves the result. Nothing is saved when fn fails.
func (s *service) withEngine(ctx context.Context, key string, fn func(e *engine.Engine, isNew bool) error) (*engine.Engine, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	unlock := s.locks.lock(key)
	defer unlock()

	e, isNew, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := fn(e, isNew); err != nil {
		return nil, err
	}

	err = s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: e.Session(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return e, nil
}

func (s *service) load(ctx context.Context, key string) (*engine.Engine, bool, error) {
	existing, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		Key: key,
	})
	if err != nil {
		if !errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, false, fmt.Errorf("failed to load session: %w", err)
		}

		e, err := engine.New(s.engineConfig, key)
		if err != nil {
			return nil, false, err
		}
		s.logger.Info("session started", zap.String("session_key", key))
		return e, true, nil
	}

	e, err := engine.Restore(s.engineConfig, existing)
	if err != nil {
		return nil, false, err
	}
	return e, false, nil
}

func tableOf(e *engine.Engine) Table {
	return Table{
		Session:    e.Session(),
		Total:      e.CurrentTotal(),
		FinalTotal: e.CurrentFinalTotal(),
		Message:    e.Message(),
	}
}
