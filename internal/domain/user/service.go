package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"carteira/internal/shared/auth"
)

// Service contains the business logic for user operations
type Service struct {
	repo Repository
}

// NewService creates a new user service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// OAuthParams identifies a user coming back from an OAuth provider
type OAuthParams struct {
	Provider string
	OAuthID  string
	Email    string
	Name     string
	PhotoURL string
}

// Register creates a new user with a bcrypt-hashed password
func (s *Service) Register(ctx context.Context, email, password, displayName string) (*User, error) {
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must have at least 6 characters", ErrInvalidInput)
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	params := CreateParams{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.repo.Create(ctx, params)
}

// Authenticate verifies email and password and returns the user
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// OAuth-only accounts have no password to check
	if u.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

// EnsureOAuthUser finds the user row for an OAuth identity, creating it on
// first sign-in. An existing row with the same email is reused as-is.
func (s *Service) EnsureOAuthUser(ctx context.Context, params OAuthParams) (*User, error) {
	if params.Provider == "" || params.OAuthID == "" {
		return nil, fmt.Errorf("%w: OAuth provider and ID are required", ErrInvalidInput)
	}

	u, err := s.repo.GetByOAuth(ctx, params.Provider, params.OAuthID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	u, err = s.repo.GetByEmail(ctx, params.Email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	createParams := CreateParams{
		ID:            uuid.NewString(),
		Email:         params.Email,
		DisplayName:   params.Name,
		OAuthProvider: params.Provider,
		OAuthID:       params.OAuthID,
		PhotoURL:      params.PhotoURL,
	}
	if err := createParams.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.repo.Create(ctx, createParams)
}

// GetUser retrieves a user by ID
func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: user ID is required", ErrInvalidInput)
	}
	return s.repo.GetByID(ctx, id)
}

// SubmitQuiz scores the suitability quiz and persists the resulting risk
// profile. Resubmitting overwrites the previous profile.
func (s *Service) SubmitQuiz(ctx context.Context, userID string, answers []int) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("%w: user ID is required", ErrInvalidInput)
	}

	profile, err := ClassifyRiskProfile(answers)
	if err != nil {
		return "", err
	}

	if err := s.repo.UpdateRiskProfile(ctx, userID, profile); err != nil {
		return "", err
	}

	return profile, nil
}
