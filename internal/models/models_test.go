package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiceTypeValid(t *testing.T) {
	for _, dt := range DiceTypes() {
		assert.True(t, dt.Valid(), "d%d", dt)
	}
	for _, dt := range []DiceType{0, 1, 2, 3, 5, 7, 100, -6} {
		assert.False(t, dt.Valid(), "d%d", dt)
	}
}

func TestDiceTypesReturnsCopy(t *testing.T) {
	types := DiceTypes()
	types[0] = 99

	assert.Equal(t, D4, DiceTypes()[0])
}

func TestRollResultTotals(t *testing.T) {
	empty := RollResult{}
	assert.Equal(t, 0, empty.Total())
	assert.Equal(t, 5, empty.FinalTotal(5))
	assert.Equal(t, "You rolled: ", empty.Message())

	r := RollResult{Dice: []Die{{Sides: D6, Value: 3}, {Sides: D6, Value: 5}}}
	assert.Equal(t, []int{3, 5}, r.Values())
	assert.Equal(t, 8, r.Total())
	assert.Equal(t, 12, r.FinalTotal(4))
	assert.Equal(t, "You rolled: 3, 5", r.Message())
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{name: "afternoon", at: time.Date(2025, 4, 19, 15, 4, 0, 0, time.UTC), want: "03:04 PM, 04/19/2025"},
		{name: "midnight", at: time.Date(2024, 12, 31, 0, 0, 59, 0, time.UTC), want: "12:00 AM, 12/31/2024"},
		{name: "noon", at: time.Date(2026, 7, 1, 12, 30, 0, 0, time.UTC), want: "12:30 PM, 07/01/2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimestamp(tt.at, time.UTC))
		})
	}
}

func TestSessionClone(t *testing.T) {
	now := time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s := NewSession("id", "key", now)
	s.Result = RollResult{Dice: []Die{{Sides: D8, Value: 7}}}
	s.History = append(s.History, HistoryEntry{ID: "h1", Message: "You rolled: 7"})

	c := s.Clone()
	c.Result.Dice[0].Value = 1
	c.History[0].Message = "changed"

	assert.Equal(t, 7, s.Result.Dice[0].Value)
	assert.Equal(t, "You rolled: 7", s.History[0].Message)
	assert.Equal(t, DefaultDiceConfiguration(), c.Config)
}

func TestClamps(t *testing.T) {
	assert.Equal(t, 1, ClampDiceCount(0))
	assert.Equal(t, 6, ClampDiceCount(9))
	assert.Equal(t, 3, ClampDiceCount(3))
	assert.Equal(t, 0, ClampModifier(-2))
	assert.Equal(t, 9999, ClampModifier(12345))
}
