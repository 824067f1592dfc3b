package investment

import "context"

// Repository defines the interface for investment data access
// The ledger is append-only: no update or delete operations exist
type Repository interface {
	// Create records a new purchase
	Create(ctx context.Context, params CreateParams) (*Investment, error)

	// ListByUserID retrieves all investments for a user
	ListByUserID(ctx context.Context, userID string) ([]*Investment, error)

	// ListByUserIDAndType retrieves a user's investments of one type
	ListByUserIDAndType(ctx context.Context, userID, investmentType string) ([]*Investment, error)
}
