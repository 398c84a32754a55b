package engine

// EngineError is a custom error type for roll engine errors
type EngineError string

// Error implements the error interface
func (e EngineError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidConfiguration EngineError = "invalid dice configuration"
	ErrIndexOutOfRange      EngineError = "die index out of range"
	ErrNilConfig            EngineError = "config cannot be nil"
	ErrNilDiceRoller        EngineError = "dice roller cannot be nil"
	ErrNilSession           EngineError = "session cannot be nil"
)
