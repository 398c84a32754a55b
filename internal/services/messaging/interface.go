package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetRollCommentary returns a title and flavor line for a set of dice
	GetRollCommentary(ctx context.Context, input *GetRollCommentaryInput) (*GetRollCommentaryOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
