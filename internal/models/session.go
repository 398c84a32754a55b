package models

import (
	"time"
)

// Session is the full state of one player's dice table
type Session struct {
	// ID is the unique identifier for this session
	ID string

	// Key addresses the session in storage, e.g. channel and user
	Key string

	// Config holds the dice settings
	Config DiceConfiguration

	// Result is the current set of dice, possibly empty
	Result RollResult

	// History is in chronological order
	History []HistoryEntry

	// CreatedAt is when the session was created
	CreatedAt time.Time

	// UpdatedAt is when the session last changed
	UpdatedAt time.Time
}

// NewSession returns a session with default settings, no dice and no history
func NewSession(id, key string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Key:       key,
		Config:    DefaultDiceConfiguration(),
		Result:    RollResult{},
		History:   []HistoryEntry{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Result = s.Result.Clone()
	out.History = make([]HistoryEntry, len(s.History))
	copy(out.History, s.History)
	return &out
}
