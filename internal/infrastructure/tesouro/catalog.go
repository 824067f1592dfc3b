package tesouro

import (
	"context"
	"fmt"
	"strings"
	"time"

	"carteira/internal/domain/asset"
)

// Catalog serves the Tesouro Direto titles. The official API has no stable
// public quote endpoint, so the catalog carries reference prices and rates
// updated with releases.
type Catalog struct{}

var _ asset.FixedIncomeProvider = (*Catalog)(nil)

// NewCatalog creates a new Tesouro Direto catalog
func NewCatalog() *Catalog {
	return &Catalog{}
}

// title is one government bond entry. Variacao carries the annual rate since
// bonds have no intraday change.
type title struct {
	ticker string
	nome   string
	preco  float64
	taxa   float64
}

var titles = []title{
	{"TESOURO_SELIC_2027", "Tesouro Selic 2027", 15456.78, 13.65},
	{"TESOURO_SELIC_2029", "Tesouro Selic 2029", 15234.56, 13.75},
	{"TESOURO_PREFIXADO_2027", "Tesouro Prefixado 2027", 786.45, 12.45},
	{"TESOURO_PREFIXADO_2029", "Tesouro Prefixado 2029", 654.32, 12.85},
	{"TESOURO_IPCA+_2029", "Tesouro IPCA+ 2029", 3245.78, 6.25},
	{"TESOURO_IPCA+_2035", "Tesouro IPCA+ 2035", 2567.89, 6.45},
	{"TESOURO_IPCA+_2045", "Tesouro IPCA+ 2045", 1876.54, 6.55},
	{"TESOURO_IPCA+_JUROS_2032", "Tesouro IPCA+ com Juros Semestrais 2032", 3876.45, 6.35},
	{"TESOURO_RENDA+_2040", "Tesouro Renda+ 2040", 1987.65, 6.48},
	{"TESOURO_EDUCA+_2041", "Tesouro Educa+ 2041", 2134.56, 6.42},
}

// List returns every available title
func (c *Catalog) List(ctx context.Context) ([]asset.Asset, error) {
	assets := make([]asset.Asset, 0, len(titles))
	for _, t := range titles {
		assets = append(assets, asset.Asset{
			Ticker:   t.ticker,
			Nome:     t.nome,
			Preco:    t.preco,
			Variacao: t.taxa,
			Tipo:     asset.TypeRendaFixa,
		})
	}
	return assets, nil
}

// Quote returns the reference quote for a single title
func (c *Catalog) Quote(ctx context.Context, ticker string) (*asset.Quote, error) {
	normalized := strings.ToUpper(strings.TrimSpace(ticker))
	for _, t := range titles {
		if t.ticker == normalized {
			return &asset.Quote{
				Ticker:     t.ticker,
				Price:      t.preco,
				LastUpdate: time.Now(),
			}, nil
		}
	}
	return nil, fmt.Errorf("unknown title %s", ticker)
}
