package user

import "context"

// Repository defines the interface for user data access
// This interface is defined in the domain layer, but implemented in the infrastructure layer
type Repository interface {
	// Create creates a new user
	Create(ctx context.Context, params CreateParams) (*User, error)

	// GetByID retrieves a user by its ID
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByOAuth retrieves a user by OAuth provider and provider-side ID
	GetByOAuth(ctx context.Context, provider, oauthID string) (*User, error)

	// GetByCustomerID retrieves a user by billing customer ID
	GetByCustomerID(ctx context.Context, customerID string) (*User, error)

	// UpdateRiskProfile sets the risk profile for a user
	UpdateRiskProfile(ctx context.Context, id, profile string) error

	// UpdateSubscription sets the subscription fields for a user
	UpdateSubscription(ctx context.Context, id string, params SubscriptionParams) error

	// UpdateSubscriptionStatus sets only the subscription status, leaving the
	// subscription and customer IDs untouched
	UpdateSubscriptionStatus(ctx context.Context, id, status string) error
}
