package user

import (
	"context"
	"errors"
	"testing"

	"carteira/internal/shared/auth"
)

// MockRepository is a mock implementation of Repository interface
type MockRepository struct {
	CreateFunc             func(ctx context.Context, params CreateParams) (*User, error)
	GetByIDFunc            func(ctx context.Context, id string) (*User, error)
	GetByEmailFunc         func(ctx context.Context, email string) (*User, error)
	GetByOAuthFunc         func(ctx context.Context, provider, oauthID string) (*User, error)
	GetByCustomerIDFunc    func(ctx context.Context, customerID string) (*User, error)
	UpdateRiskProfileFunc  func(ctx context.Context, id, profile string) error
	UpdateSubscriptionFunc func(ctx context.Context, id string, params SubscriptionParams) error

	UpdateSubscriptionStatusFunc func(ctx context.Context, id, status string) error
}

func (m *MockRepository) Create(ctx context.Context, params CreateParams) (*User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *MockRepository) GetByOAuth(ctx context.Context, provider, oauthID string) (*User, error) {
	if m.GetByOAuthFunc != nil {
		return m.GetByOAuthFunc(ctx, provider, oauthID)
	}
	return nil, ErrUserNotFound
}

func (m *MockRepository) GetByCustomerID(ctx context.Context, customerID string) (*User, error) {
	if m.GetByCustomerIDFunc != nil {
		return m.GetByCustomerIDFunc(ctx, customerID)
	}
	return nil, ErrUserNotFound
}

func (m *MockRepository) UpdateRiskProfile(ctx context.Context, id, profile string) error {
	if m.UpdateRiskProfileFunc != nil {
		return m.UpdateRiskProfileFunc(ctx, id, profile)
	}
	return nil
}

func (m *MockRepository) UpdateSubscription(ctx context.Context, id string, params SubscriptionParams) error {
	if m.UpdateSubscriptionFunc != nil {
		return m.UpdateSubscriptionFunc(ctx, id, params)
	}
	return nil
}

func (m *MockRepository) UpdateSubscriptionStatus(ctx context.Context, id, status string) error {
	if m.UpdateSubscriptionStatusFunc != nil {
		return m.UpdateSubscriptionStatusFunc(ctx, id, status)
	}
	return nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with hashed password", func(t *testing.T) {
		var created CreateParams
		repo := &MockRepository{
			CreateFunc: func(ctx context.Context, params CreateParams) (*User, error) {
				created = params
				return &User{ID: params.ID, Email: params.Email, SubscriptionStatus: SubscriptionFree}, nil
			},
		}

		svc := NewService(repo)
		u, err := svc.Register(ctx, "novo@example.com", "senha-segura", "Novo Usuário")
		if err != nil {
			t.Fatalf("Register() failed: %v", err)
		}
		if u.Email != "novo@example.com" {
			t.Errorf("Register() email = %s", u.Email)
		}
		if created.ID == "" {
			t.Error("Register() did not assign an ID")
		}
		if created.PasswordHash == "" || created.PasswordHash == "senha-segura" {
			t.Error("Register() stored an unhashed password")
		}
		if err := auth.VerifyPassword(created.PasswordHash, "senha-segura"); err != nil {
			t.Errorf("stored hash does not verify: %v", err)
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := &MockRepository{
			GetByEmailFunc: func(ctx context.Context, email string) (*User, error) {
				return &User{ID: "existing", Email: email}, nil
			},
		}

		svc := NewService(repo)
		_, err := svc.Register(ctx, "existente@example.com", "senha-segura", "Alguém")
		if !errors.Is(err, ErrEmailTaken) {
			t.Errorf("Register() error = %v, want ErrEmailTaken", err)
		}
	})

	t.Run("rejects short password", func(t *testing.T) {
		svc := NewService(&MockRepository{})
		_, err := svc.Register(ctx, "novo@example.com", "12345", "Novo")
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Register() error = %v, want ErrInvalidInput", err)
		}
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	hash, _ := auth.HashPassword("senha-correta")

	repo := &MockRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*User, error) {
			if email == "user@example.com" {
				return &User{ID: "u1", Email: email, PasswordHash: hash}, nil
			}
			return nil, ErrUserNotFound
		},
	}
	svc := NewService(repo)

	t.Run("success", func(t *testing.T) {
		u, err := svc.Authenticate(ctx, "user@example.com", "senha-correta")
		if err != nil {
			t.Fatalf("Authenticate() failed: %v", err)
		}
		if u.ID != "u1" {
			t.Errorf("Authenticate() user = %s, want u1", u.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "user@example.com", "senha-errada")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "ninguem@example.com", "senha")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("oauth-only account has no password", func(t *testing.T) {
		repo := &MockRepository{
			GetByEmailFunc: func(ctx context.Context, email string) (*User, error) {
				return &User{ID: "u2", Email: email, OAuthProvider: "google"}, nil
			},
		}
		_, err := NewService(repo).Authenticate(ctx, "google@example.com", "qualquer")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestEnsureOAuthUser(t *testing.T) {
	ctx := context.Background()
	params := OAuthParams{
		Provider: "google",
		OAuthID:  "108123456789",
		Email:    "google@example.com",
		Name:     "Google User",
	}

	t.Run("returns existing OAuth user", func(t *testing.T) {
		repo := &MockRepository{
			GetByOAuthFunc: func(ctx context.Context, provider, oauthID string) (*User, error) {
				return &User{ID: "u1", OAuthProvider: provider, OAuthID: oauthID}, nil
			},
			CreateFunc: func(ctx context.Context, params CreateParams) (*User, error) {
				t.Error("Create should not be called for an existing OAuth user")
				return nil, nil
			},
		}
		u, err := NewService(repo).EnsureOAuthUser(ctx, params)
		if err != nil {
			t.Fatalf("EnsureOAuthUser() failed: %v", err)
		}
		if u.ID != "u1" {
			t.Errorf("EnsureOAuthUser() user = %s, want u1", u.ID)
		}
	})

	t.Run("reuses row matched by email", func(t *testing.T) {
		repo := &MockRepository{
			GetByEmailFunc: func(ctx context.Context, email string) (*User, error) {
				return &User{ID: "u2", Email: email}, nil
			},
		}
		u, err := NewService(repo).EnsureOAuthUser(ctx, params)
		if err != nil {
			t.Fatalf("EnsureOAuthUser() failed: %v", err)
		}
		if u.ID != "u2" {
			t.Errorf("EnsureOAuthUser() user = %s, want u2", u.ID)
		}
	})

	t.Run("creates row on first sign-in", func(t *testing.T) {
		repo := &MockRepository{
			CreateFunc: func(ctx context.Context, p CreateParams) (*User, error) {
				if p.OAuthProvider != "google" || p.OAuthID != "108123456789" {
					t.Errorf("Create called with wrong OAuth identity: %+v", p)
				}
				if p.ID == "" {
					t.Error("Create called without an ID")
				}
				return &User{ID: p.ID, Email: p.Email}, nil
			},
		}
		u, err := NewService(repo).EnsureOAuthUser(ctx, params)
		if err != nil {
			t.Fatalf("EnsureOAuthUser() failed: %v", err)
		}
		if u.Email != "google@example.com" {
			t.Errorf("EnsureOAuthUser() email = %s", u.Email)
		}
	})

	t.Run("rejects missing identity", func(t *testing.T) {
		_, err := NewService(&MockRepository{}).EnsureOAuthUser(ctx, OAuthParams{Email: "x@example.com"})
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("EnsureOAuthUser() error = %v, want ErrInvalidInput", err)
		}
	})
}

func TestSubmitQuiz(t *testing.T) {
	ctx := context.Background()

	t.Run("persists classified profile", func(t *testing.T) {
		var gotID, gotProfile string
		repo := &MockRepository{
			UpdateRiskProfileFunc: func(ctx context.Context, id, profile string) error {
				gotID, gotProfile = id, profile
				return nil
			},
		}

		profile, err := NewService(repo).SubmitQuiz(ctx, "u1", []int{3, 3, 3, 3, 3})
		if err != nil {
			t.Fatalf("SubmitQuiz() failed: %v", err)
		}
		if profile != ProfileArrojado {
			t.Errorf("SubmitQuiz() profile = %s, want %s", profile, ProfileArrojado)
		}
		if gotID != "u1" || gotProfile != ProfileArrojado {
			t.Errorf("UpdateRiskProfile called with (%s, %s)", gotID, gotProfile)
		}
	})

	t.Run("invalid answers do not touch the repository", func(t *testing.T) {
		repo := &MockRepository{
			UpdateRiskProfileFunc: func(ctx context.Context, id, profile string) error {
				t.Error("UpdateRiskProfile should not be called for invalid answers")
				return nil
			},
		}

		_, err := NewService(repo).SubmitQuiz(ctx, "u1", []int{1, 2})
		if !errors.Is(err, ErrInvalidAnswers) {
			t.Errorf("SubmitQuiz() error = %v, want ErrInvalidAnswers", err)
		}
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		dbErr := errors.New("db down")
		repo := &MockRepository{
			UpdateRiskProfileFunc: func(ctx context.Context, id, profile string) error {
				return dbErr
			},
		}

		_, err := NewService(repo).SubmitQuiz(ctx, "u1", []int{1, 1, 1, 1, 1})
		if !errors.Is(err, dbErr) {
			t.Errorf("SubmitQuiz() error = %v, want wrapped db error", err)
		}
	})
}
