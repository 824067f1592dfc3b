package portfolio

import (
	"context"
	"fmt"
	"log"
	"sync"

	"carteira/internal/domain/asset"
	"carteira/internal/domain/investment"
)

// Summary is the aggregate valuation of a user's ledger
type Summary struct {
	ValorTotal          float64 `json:"valorTotal"`
	TotalInvestido      float64 `json:"totalInvestido"`
	LucroOuPrejuizo     float64 `json:"lucroOuPrejuizo"`
	PercentualRetorno   float64 `json:"percentualRetorno"`
	NumeroInvestimentos int     `json:"numeroInvestimentos"`
}

// QuoteProvider returns the current quote for a ticker
type QuoteProvider interface {
	Quote(ctx context.Context, ticker string) (*asset.Quote, error)
}

// Service computes portfolio valuations from the ledger and live quotes
type Service struct {
	investments investment.Repository
	quotes      QuoteProvider
}

// NewService creates a new portfolio service
func NewService(investments investment.Repository, quotes QuoteProvider) *Service {
	return &Service{investments: investments, quotes: quotes}
}

// Summarize values a user's portfolio. Quotes for all holdings are fetched
// concurrently; when a quote fails the holding is valued at its recorded
// purchase total. An empty ledger yields an all-zero summary.
func (s *Service) Summarize(ctx context.Context, userID string) (*Summary, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	holdings, err := s.investments.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}

	if len(holdings) == 0 {
		return &Summary{}, nil
	}

	// One slot per holding so goroutines never share a counter
	values := make([]float64, len(holdings))

	var wg sync.WaitGroup
	for i, inv := range holdings {
		wg.Add(1)
		go func(i int, inv *investment.Investment) {
			defer wg.Done()

			quote, err := s.quotes.Quote(ctx, inv.Ticker)
			if err != nil || quote == nil {
				log.Printf("quote failed for %s, using recorded total: %v", inv.Ticker, err)
				values[i] = inv.ValorTotal
				return
			}
			values[i] = quote.Price * inv.Quantidade
		}(i, inv)
	}
	wg.Wait()

	summary := &Summary{NumeroInvestimentos: len(holdings)}
	for i, inv := range holdings {
		summary.TotalInvestido += inv.ValorTotal
		summary.ValorTotal += values[i]
	}

	summary.LucroOuPrejuizo = summary.ValorTotal - summary.TotalInvestido
	if summary.TotalInvestido > 0 {
		summary.PercentualRetorno = summary.LucroOuPrejuizo / summary.TotalInvestido * 100
	}

	return summary, nil
}
