package models

// DiceType is the number of faces on a die
type DiceType int

const (
	D4  DiceType = 4
	D6  DiceType = 6
	D8  DiceType = 8
	D10 DiceType = 10
	D12 DiceType = 12
	D20 DiceType = 20
)

const (
	// MinDiceCount is the fewest dice a full roll produces
	MinDiceCount = 1

	// MaxDiceCount is the most dice a full roll produces
	MaxDiceCount = 6

	// MaxModifier is the largest flat modifier, the most a 4 digit field can hold
	MaxModifier = 9999

	// DefaultDiceType is the dice type of a fresh session
	DefaultDiceType = D6
)

var diceTypes = []DiceType{D4, D6, D8, D10, D12, D20}

// DiceTypes returns the allowed dice types in ascending order
func DiceTypes() []DiceType {
	out := make([]DiceType, len(diceTypes))
	copy(out, diceTypes)
	return out
}

// Valid reports whether t is one of the allowed dice types
func (t DiceType) Valid() bool {
	for _, dt := range diceTypes {
		if dt == t {
			return true
		}
	}
	return false
}

// Sides returns the face count as a plain int
func (t DiceType) Sides() int {
	return int(t)
}

// DiceConfiguration holds the dice settings of a session
type DiceConfiguration struct {
	// DiceType is the face count used by full rolls
	DiceType DiceType

	// DiceCount is the number of dice in the active result set
	DiceCount int

	// PendingDiceCount takes effect on the next full roll
	PendingDiceCount int

	// Modifier is added to the dice total
	Modifier int
}

// DefaultDiceConfiguration returns the settings of a fresh session
func DefaultDiceConfiguration() DiceConfiguration {
	return DiceConfiguration{
		DiceType:         DefaultDiceType,
		DiceCount:        MinDiceCount,
		PendingDiceCount: MinDiceCount,
		Modifier:         0,
	}
}

// ClampDiceCount forces n into [MinDiceCount, MaxDiceCount]
func ClampDiceCount(n int) int {
	return clamp(n, MinDiceCount, MaxDiceCount)
}

// ClampModifier forces n into [0, MaxModifier]
func ClampModifier(n int) int {
	return clamp(n, 0, MaxModifier)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
