// Package engine holds the dice table state of one session and the
// operations a player can perform on it. It does no I/O; callers load
// and store the session around it.
package engine

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/KirkDiggler/dicetray/internal/common/clock"
	"github.com/KirkDiggler/dicetray/internal/common/uuid"
	"github.com/KirkDiggler/dicetray/internal/dice"
	"github.com/KirkDiggler/dicetray/internal/models"
)

// maxModifierDigits is the longest modifier input accepted
const maxModifierDigits = 4

// Config holds the collaborators of an engine
type Config struct {
	// DiceRoller draws face values, required
	DiceRoller dice.Roller

	// Clock stamps history entries, defaults to the system clock
	Clock clock.Clock

	// UUIDGenerator names sessions and history entries
	UUIDGenerator uuid.UUID

	// Location is used to format history timestamps, defaults to time.Local
	Location *time.Location
}

// Engine owns the state of a single session. It is not safe for
// concurrent use; callers serialize access per session.
type Engine struct {
	roller  dice.Roller
	clock   clock.Clock
	uuidGen uuid.UUID
	loc     *time.Location

	state *models.Session
}

// New creates an engine for a fresh session
func New(cfg *Config, key string) (*Engine, error) {
	e, err := build(cfg)
	if err != nil {
		return nil, err
	}

	e.state = models.NewSession(e.uuidGen.NewUUID(), key, e.clock.Now())
	return e, nil
}

// Restore creates an engine around a previously saved session
func Restore(cfg *Config, session *models.Session) (*Engine, error) {
	if session == nil {
		return nil, ErrNilSession
	}

	e, err := build(cfg)
	if err != nil {
		return nil, err
	}

	e.state = session.Clone()
	if e.state.History == nil {
		e.state.History = []models.HistoryEntry{}
	}
	e.normalize()
	return e, nil
}

func build(cfg *Config) (*Engine, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}

	e := &Engine{
		roller:  cfg.DiceRoller,
		clock:   cfg.Clock,
		uuidGen: cfg.UUIDGenerator,
		loc:     cfg.Location,
	}
	if e.clock == nil {
		e.clock = clock.New()
	}
	if e.uuidGen == nil {
		e.uuidGen = uuid.New()
	}
	if e.loc == nil {
		e.loc = time.Local
	}
	return e, nil
}

// normalize re-applies the configuration invariants to restored state
func (e *Engine) normalize() {
	c := &e.state.Config
	if !c.DiceType.Valid() {
		c.DiceType = models.DefaultDiceType
	}
	c.PendingDiceCount = models.ClampDiceCount(c.PendingDiceCount)
	c.Modifier = models.ClampModifier(c.Modifier)
	if n := len(e.state.Result.Dice); n > 0 {
		c.DiceCount = n
	}
}

// SetDiceType changes the face count used by the next full roll.
// Dice already on the table keep their values.
func (e *Engine) SetDiceType(t models.DiceType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: d%d is not a supported dice type", ErrInvalidConfiguration, t)
	}

	e.state.Config.DiceType = t
	e.touch()
	return nil
}

// SetPendingDiceCount stores the dice count for the next full roll,
// clamped to [1, 6]. It returns the stored value.
func (e *Engine) SetPendingDiceCount(n int) int {
	e.state.Config.PendingDiceCount = models.ClampDiceCount(n)
	e.touch()
	return e.state.Config.PendingDiceCount
}

// SetModifier parses raw modifier input. Input longer than four
// characters (runes, not bytes) is refused and leaves the modifier as it was; the return
// value reports whether the input was taken. Anything else that is not a
// number sets the modifier to 0, numbers are clamped to [0, 9999].
func (e *Engine) SetModifier(raw string) bool {
	if utf8.RuneCountInString(raw) > maxModifierDigits {
		return false
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		n = 0
	}
	e.SetModifierValue(n)
	return true
}

// SetModifierValue sets the modifier from a number, clamped to [0, 9999]
func (e *Engine) SetModifierValue(n int) int {
	e.state.Config.Modifier = models.ClampModifier(n)
	e.touch()
	return e.state.Config.Modifier
}

// RollAll replaces the table with a fresh set of dice. The pending dice
// count becomes the active count and one history entry is recorded.
func (e *Engine) RollAll() models.RollResult {
	c := &e.state.Config
	c.DiceCount = c.PendingDiceCount

	dice := make([]models.Die, c.DiceCount)
	for i := range dice {
		dice[i] = e.roll(c.DiceType)
	}
	e.state.Result = models.RollResult{Dice: dice}

	e.record()
	return e.state.Result.Clone()
}

// RerollOne rolls the die at index again at its own face count and
// records the whole table in history.
func (e *Engine) RerollOne(index int) (models.Die, error) {
	if err := e.checkIndex(index); err != nil {
		return models.Die{}, err
	}

	die := e.roll(e.state.Result.Dice[index].Sides)
	e.state.Result.Dice[index] = die

	e.record()
	return die, nil
}

// EditOne switches the die at index to a different face count and rolls
// it. The global dice type is untouched and no history is recorded.
func (e *Engine) EditOne(index int, t models.DiceType) (models.Die, error) {
	if err := e.checkIndex(index); err != nil {
		return models.Die{}, err
	}
	if !t.Valid() {
		return models.Die{}, fmt.Errorf("%w: d%d is not a supported dice type", ErrInvalidConfiguration, t)
	}

	die := e.roll(t)
	e.state.Result.Dice[index] = die

	e.touch()
	return die, nil
}

// DeleteOne removes the die at index. Later dice shift down by one and
// the active dice count follows the table size. No history is recorded.
func (e *Engine) DeleteOne(index int) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}

	dice := e.state.Result.Dice
	e.state.Result.Dice = append(dice[:index:index], dice[index+1:]...)
	e.state.Config.DiceCount = len(e.state.Result.Dice)

	e.touch()
	return nil
}

// ClearHistory drops every history entry
func (e *Engine) ClearHistory() {
	e.state.History = []models.HistoryEntry{}
	e.touch()
}

// Config returns the current dice settings
func (e *Engine) Config() models.DiceConfiguration {
	return e.state.Config
}

// Result returns a copy of the dice on the table
func (e *Engine) Result() models.RollResult {
	return e.state.Result.Clone()
}

// Values returns the face values on the table in display order
func (e *Engine) Values() []int {
	return e.state.Result.Values()
}

// CurrentTotal is the sum of the dice on the table
func (e *Engine) CurrentTotal() int {
	return e.state.Result.Total()
}

// CurrentFinalTotal is CurrentTotal plus the modifier
func (e *Engine) CurrentFinalTotal() int {
	return e.state.Result.FinalTotal(e.state.Config.Modifier)
}

// Message summarizes the table, empty when there are no dice
func (e *Engine) Message() string {
	if e.state.Result.Len() == 0 {
		return ""
	}
	return e.state.Result.Message()
}

// History returns a copy of the history, oldest first
func (e *Engine) History() []models.HistoryEntry {
	out := make([]models.HistoryEntry, len(e.state.History))
	copy(out, e.state.History)
	return out
}

// HistoryLen returns the number of history entries
func (e *Engine) HistoryLen() int {
	return len(e.state.History)
}

// Session returns a snapshot of the full state for storage
func (e *Engine) Session() *models.Session {
	return e.state.Clone()
}

func (e *Engine) roll(t models.DiceType) models.Die {
	return models.Die{
		Sides: t,
		Value: e.roller.Roll(t.Sides()),
	}
}

func (e *Engine) record() {
	now := e.clock.Now()
	e.state.History = append(e.state.History, models.HistoryEntry{
		ID:        e.uuidGen.NewUUID(),
		Message:   e.state.Result.Message(),
		Timestamp: models.FormatTimestamp(now, e.loc),
		RolledAt:  now,
	})
	e.state.UpdatedAt = now
}

func (e *Engine) touch() {
	e.state.UpdatedAt = e.clock.Now()
}

func (e *Engine) checkIndex(index int) error {
	if index < 0 || index >= len(e.state.Result.Dice) {
		return fmt.Errorf("%w: index %d with %d dice", ErrIndexOutOfRange, index, len(e.state.Result.Dice))
	}
	return nil
}
