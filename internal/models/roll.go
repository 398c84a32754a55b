package models

import (
	"strconv"
	"strings"
)

// RollMessagePrefix starts every roll summary
const RollMessagePrefix = "You rolled: "

// Die is one element of a roll result
type Die struct {
	// Sides is the face count the value was rolled with
	Sides DiceType

	// Value is the face showing, in [1, Sides]
	Value int
}

// RollResult is the ordered set of dice currently on the table
type RollResult struct {
	Dice []Die
}

// Len returns the number of dice
func (r RollResult) Len() int {
	return len(r.Dice)
}

// Values returns the face values in display order
func (r RollResult) Values() []int {
	values := make([]int, len(r.Dice))
	for i, d := range r.Dice {
		values[i] = d.Value
	}
	return values
}

// Total is the sum of all face values, 0 when there are no dice
func (r RollResult) Total() int {
	total := 0
	for _, d := range r.Dice {
		total += d.Value
	}
	return total
}

// FinalTotal is Total plus the modifier
func (r RollResult) FinalTotal(modifier int) int {
	return r.Total() + modifier
}

// Message renders the summary shown to the player and kept in history,
// e.g. "You rolled: 3, 5"
func (r RollResult) Message() string {
	parts := make([]string, len(r.Dice))
	for i, d := range r.Dice {
		parts[i] = strconv.Itoa(d.Value)
	}
	return RollMessagePrefix + strings.Join(parts, ", ")
}

// Clone returns a deep copy
func (r RollResult) Clone() RollResult {
	if r.Dice == nil {
		return RollResult{}
	}
	dice := make([]Die, len(r.Dice))
	copy(dice, r.Dice)
	return RollResult{Dice: dice}
}
