package session

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/dicetray/internal/services/session Service

// Service defines the interface for dice table operations. Every call
// addresses one session by key, loading it or starting a fresh one.
type Service interface {
	// GetSession returns the current table
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// Configure changes dice type, pending dice count and modifier
	Configure(ctx context.Context, input *ConfigureInput) (*ConfigureOutput, error)

	// Roll replaces the table with a fresh roll
	Roll(ctx context.Context, input *RollInput) (*RollOutput, error)

	// RerollDie rolls a single die again
	RerollDie(ctx context.Context, input *RerollDieInput) (*RerollDieOutput, error)

	// EditDie switches a single die to another dice type
	EditDie(ctx context.Context, input *EditDieInput) (*EditDieOutput, error)

	// DeleteDie removes a single die from the table
	DeleteDie(ctx context.Context, input *DeleteDieInput) (*DeleteDieOutput, error)

	// ClearHistory empties the roll history
	ClearHistory(ctx context.Context, input *ClearHistoryInput) (*ClearHistoryOutput, error)

	// EndSession discards the session
	EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error)
}
