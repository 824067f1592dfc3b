package postgres

import (
	"context"
	"fmt"

	"carteira/internal/domain/investment"
)

// InvestmentRepository implements the investment.Repository interface for PostgreSQL
type InvestmentRepository struct {
	db *DB
}

// NewInvestmentRepository creates a new PostgreSQL investment repository
func NewInvestmentRepository(db *DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

// Create records a new purchase
func (r *InvestmentRepository) Create(ctx context.Context, params investment.CreateParams) (*investment.Investment, error) {
	query := `
		INSERT INTO investments (id, user_id, investment_type, ticker, nome, quantidade, preco_medio, data_compra, valor_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, user_id, investment_type, ticker, nome, quantidade, preco_medio, data_compra, valor_total
	`

	var inv investment.Investment
	err := r.db.QueryRowContext(
		ctx, query,
		params.ID, params.UserID, params.Type, params.Ticker, params.Nome,
		params.Quantidade, params.PrecoMedio, params.DataCompra, params.ValorTotal,
	).Scan(
		&inv.ID, &inv.UserID, &inv.Type, &inv.Ticker, &inv.Nome,
		&inv.Quantidade, &inv.PrecoMedio, &inv.DataCompra, &inv.ValorTotal,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create investment: %w", err)
	}

	return &inv, nil
}

// ListByUserID retrieves all investments for a user, newest first
func (r *InvestmentRepository) ListByUserID(ctx context.Context, userID string) ([]*investment.Investment, error) {
	query := `
		SELECT id, user_id, investment_type, ticker, nome, quantidade, preco_medio, data_compra, valor_total
		FROM investments
		WHERE user_id = $1
		ORDER BY data_compra DESC
	`

	return r.list(ctx, query, userID)
}

// ListByUserIDAndType retrieves a user's investments of one type
func (r *InvestmentRepository) ListByUserIDAndType(ctx context.Context, userID, investmentType string) ([]*investment.Investment, error) {
	query := `
		SELECT id, user_id, investment_type, ticker, nome, quantidade, preco_medio, data_compra, valor_total
		FROM investments
		WHERE user_id = $1 AND investment_type = $2
		ORDER BY data_compra DESC
	`

	return r.list(ctx, query, userID, investmentType)
}

func (r *InvestmentRepository) list(ctx context.Context, query string, args ...any) ([]*investment.Investment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	defer rows.Close()

	var investments []*investment.Investment
	for rows.Next() {
		var inv investment.Investment
		err := rows.Scan(
			&inv.ID, &inv.UserID, &inv.Type, &inv.Ticker, &inv.Nome,
			&inv.Quantidade, &inv.PrecoMedio, &inv.DataCompra, &inv.ValorTotal,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		investments = append(investments, &inv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investments: %w", err)
	}

	return investments, nil
}
