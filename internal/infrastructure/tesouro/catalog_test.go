package tesouro

import (
	"context"
	"testing"

	"carteira/internal/domain/asset"
)

func TestList(t *testing.T) {
	assets, err := NewCatalog().List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(assets) != 10 {
		t.Fatalf("expected 10 titles, got %d", len(assets))
	}
	for _, a := range assets {
		if a.Tipo != asset.TypeRendaFixa {
			t.Errorf("expected rendaFixa type for %s, got %s", a.Ticker, a.Tipo)
		}
		if a.Preco <= 0 {
			t.Errorf("expected positive price for %s", a.Ticker)
		}
	}
	if assets[0].Ticker != "TESOURO_SELIC_2027" {
		t.Errorf("unexpected first title %s", assets[0].Ticker)
	}
}

func TestQuote(t *testing.T) {
	catalog := NewCatalog()

	t.Run("known title", func(t *testing.T) {
		quote, err := catalog.Quote(context.Background(), "tesouro_ipca+_2035")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if quote.Ticker != "TESOURO_IPCA+_2035" || quote.Price != 2567.89 {
			t.Errorf("unexpected quote %+v", quote)
		}
	})

	t.Run("unknown title", func(t *testing.T) {
		if _, err := catalog.Quote(context.Background(), "TESOURO_SELIC_1999"); err == nil {
			t.Fatal("expected error")
		}
	})
}
