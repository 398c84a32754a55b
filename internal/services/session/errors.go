package session

// SessionError is a custom error type for session service errors
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig          SessionError = "config cannot be nil"
	ErrNilInput           SessionError = "input cannot be nil"
	ErrNilRepository      SessionError = "session repository cannot be nil"
	ErrNilDiceRoller      SessionError = "dice roller cannot be nil"
	ErrEmptyKey           SessionError = "session key cannot be empty"
	ErrNothingToConfigure SessionError = "no settings to change"
)
