package investment

import (
	"errors"
	"time"

	"carteira/internal/domain/asset"
)

// Domain errors
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrTypeNotAllowed = errors.New("investment type not allowed for risk profile")
	ErrNotFound       = errors.New("investment not found")
)

// Investment is one simulated purchase in the user's ledger. Rows are
// immutable once created.
type Investment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Type       string    `json:"type"`
	Ticker     string    `json:"ticker"`
	Nome       string    `json:"nome"`
	Quantidade float64   `json:"quantidade"`
	PrecoMedio float64   `json:"precoMedio"`
	DataCompra time.Time `json:"dataCompra"`
	ValorTotal float64   `json:"valorTotal"`
}

// CreateParams contains parameters for recording a new purchase
type CreateParams struct {
	ID         string
	UserID     string
	Type       string
	Ticker     string
	Nome       string
	Quantidade float64
	PrecoMedio float64
	DataCompra time.Time
	ValorTotal float64
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.ID == "" {
		return errors.New("investment ID is required")
	}
	if p.UserID == "" {
		return errors.New("user ID is required")
	}
	if !asset.IsValidType(p.Type) {
		return errors.New("valid investment type is required")
	}
	if p.Ticker == "" {
		return errors.New("ticker is required")
	}
	if p.Nome == "" {
		return errors.New("asset name is required")
	}
	if p.Quantidade <= 0 {
		return errors.New("quantity must be positive")
	}
	if p.PrecoMedio <= 0 {
		return errors.New("price must be positive")
	}
	return nil
}
