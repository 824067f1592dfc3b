package asset

import (
	"context"
	"log"
	"time"
)

// Quote is a point-in-time price for a single ticker
type Quote struct {
	Ticker        string    `json:"ticker"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Volume        float64   `json:"volume"`
	LastUpdate    time.Time `json:"lastUpdate"`
}

// StockProvider lists B3 equities and real estate funds
// Implemented by the brapi client in the infrastructure layer
type StockProvider interface {
	// List returns one page of assets of the given type (TypeAcao or TypeFundo)
	List(ctx context.Context, assetType string, page, limit int) (*Listing, error)

	// Quote returns the current quote for a ticker
	Quote(ctx context.Context, ticker string) (*Quote, error)
}

// CryptoProvider lists the popular crypto assets priced in BRL
type CryptoProvider interface {
	List(ctx context.Context) ([]Asset, error)
}

// FixedIncomeProvider lists government bond titles
type FixedIncomeProvider interface {
	List(ctx context.Context) ([]Asset, error)
}

// Service dispatches asset browsing to the provider for each asset type,
// gated by the user's risk profile
type Service struct {
	stocks      StockProvider
	cryptos     CryptoProvider
	fixedIncome FixedIncomeProvider
}

// NewService creates a new asset service
func NewService(stocks StockProvider, cryptos CryptoProvider, fixedIncome FixedIncomeProvider) *Service {
	return &Service{stocks: stocks, cryptos: cryptos, fixedIncome: fixedIncome}
}

// Browse returns one page of assets of the requested type, provided the risk
// profile allows it. Provider failures degrade to an empty listing.
func (s *Service) Browse(ctx context.Context, profile, assetType string, page, limit int) (*Listing, error) {
	if !IsValidType(assetType) {
		return nil, ErrInvalidType
	}
	if !IsTypeAllowed(profile, assetType) {
		return nil, ErrTypeNotAllowed
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	switch assetType {
	case TypeAcao, TypeFundo:
		listing, err := s.stocks.List(ctx, assetType, page, limit)
		if err != nil {
			log.Printf("stock provider failed (type=%s): %v", assetType, err)
			return emptyListing(), nil
		}
		return listing, nil

	case TypeCripto:
		assets, err := s.cryptos.List(ctx)
		if err != nil {
			log.Printf("crypto provider failed: %v", err)
			return emptyListing(), nil
		}
		return singlePage(assets), nil

	default: // TypeRendaFixa
		assets, err := s.fixedIncome.List(ctx)
		if err != nil {
			log.Printf("fixed income provider failed: %v", err)
			return emptyListing(), nil
		}
		return singlePage(assets), nil
	}
}

// GetQuote returns the current quote for a ticker.
func (s *Service) GetQuote(ctx context.Context, ticker string) (*Quote, error) {
	if ticker == "" {
		return nil, ErrQuoteNotFound
	}

	quote, err := s.stocks.Quote(ctx, ticker)
	if err != nil {
		log.Printf("quote lookup failed for %s: %v", ticker, err)
		return nil, ErrQuoteNotFound
	}
	return quote, nil
}

func emptyListing() *Listing {
	return &Listing{Assets: []Asset{}, TotalPages: 1, TotalCount: 0}
}

func singlePage(assets []Asset) *Listing {
	if assets == nil {
		assets = []Asset{}
	}
	return &Listing{Assets: assets, TotalPages: 1, TotalCount: len(assets)}
}
