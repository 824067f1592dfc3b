package investment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"carteira/internal/domain/asset"
	"carteira/internal/domain/user"
)

// PurchaseParams is the user-facing input for a simulated purchase
type PurchaseParams struct {
	Type       string  `json:"type"`
	Ticker     string  `json:"ticker"`
	Nome       string  `json:"nome"`
	Quantidade float64 `json:"quantidade"`
	Preco      float64 `json:"preco"`
}

// Service contains the business logic for the investment ledger
type Service struct {
	repo  Repository
	users user.Repository
}

// NewService creates a new investment service
func NewService(repo Repository, users user.Repository) *Service {
	return &Service{repo: repo, users: users}
}

// Purchase records a simulated purchase after checking that the user's risk
// profile allows the asset type. The total is derived server-side and the
// purchase date is the moment of the request.
func (s *Service) Purchase(ctx context.Context, userID string, params PurchaseParams) (*Investment, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !asset.IsTypeAllowed(u.EffectiveProfile(), params.Type) {
		if !asset.IsValidType(params.Type) {
			return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidInput, params.Type)
		}
		return nil, ErrTypeNotAllowed
	}

	createParams := CreateParams{
		ID:         uuid.NewString(),
		UserID:     userID,
		Type:       params.Type,
		Ticker:     params.Ticker,
		Nome:       params.Nome,
		Quantidade: params.Quantidade,
		PrecoMedio: params.Preco,
		DataCompra: time.Now(),
		ValorTotal: params.Preco * params.Quantidade,
	}
	if err := createParams.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.repo.Create(ctx, createParams)
}

// ListByUser retrieves all investments for a user
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*Investment, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", ErrInvalidInput)
	}
	return s.repo.ListByUserID(ctx, userID)
}
