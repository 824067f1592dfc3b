package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"carteira/internal/domain/user"
)

const uniqueViolation = "23505"

// UserRepository implements the user.Repository interface for PostgreSQL
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, display_name, photo_url, password_hash, oauth_provider, oauth_id,
	       subscription_status, subscription_id, customer_id, risk_profile, created_at, updated_at`

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, params user.CreateParams) (*user.User, error) {
	query := `
		INSERT INTO users (id, email, display_name, photo_url, password_hash, oauth_provider, oauth_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRowContext(
		ctx, query,
		params.ID, params.Email, params.DisplayName, nullString(params.PhotoURL),
		nullString(params.PasswordHash), nullString(params.OAuthProvider), nullString(params.OAuthID),
	))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, user.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// GetByID retrieves a user by its ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// GetByOAuth retrieves a user by OAuth provider and provider-side ID
func (r *UserRepository) GetByOAuth(ctx context.Context, provider, oauthID string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE oauth_provider = $1 AND oauth_id = $2`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, provider, oauthID))
	if err == sql.ErrNoRows {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by oauth identity: %w", err)
	}

	return u, nil
}

// GetByCustomerID retrieves a user by billing customer ID
func (r *UserRepository) GetByCustomerID(ctx context.Context, customerID string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE customer_id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, customerID))
	if err == sql.ErrNoRows {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by customer: %w", err)
	}

	return u, nil
}

// UpdateRiskProfile sets the risk profile for a user
func (r *UserRepository) UpdateRiskProfile(ctx context.Context, id, profile string) error {
	query := `UPDATE users SET risk_profile = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, profile, id)
	if err != nil {
		return fmt.Errorf("failed to update risk profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// UpdateSubscription sets the subscription fields for a user. Empty IDs are
// stored as NULL so a cancelled user carries no stale references.
func (r *UserRepository) UpdateSubscription(ctx context.Context, id string, params user.SubscriptionParams) error {
	query := `
		UPDATE users
		SET subscription_status = $1, subscription_id = $2, customer_id = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
	`

	result, err := r.db.ExecContext(ctx, query, params.Status, nullString(params.SubscriptionID), nullString(params.CustomerID), id)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// UpdateSubscriptionStatus sets only the subscription status
func (r *UserRepository) UpdateSubscriptionStatus(ctx context.Context, id, status string) error {
	query := `UPDATE users SET subscription_status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update subscription status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*user.User, error) {
	var u user.User
	var photoURL, passwordHash, oauthProvider, oauthID sql.NullString
	var subscriptionID, customerID, riskProfile sql.NullString

	err := row.Scan(
		&u.ID, &u.Email, &u.DisplayName, &photoURL, &passwordHash, &oauthProvider, &oauthID,
		&u.SubscriptionStatus, &subscriptionID, &customerID, &riskProfile,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.PhotoURL = photoURL.String
	u.PasswordHash = passwordHash.String
	u.OAuthProvider = oauthProvider.String
	u.OAuthID = oauthID.String
	u.SubscriptionID = subscriptionID.String
	u.CustomerID = customerID.String
	u.RiskProfile = riskProfile.String

	return &u, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
