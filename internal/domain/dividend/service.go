package dividend

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"carteira/internal/domain/asset"
	"carteira/internal/domain/investment"
)

var (
	dividendMeter          = otel.Meter("carteira/dividend")
	aggregationDuration, _ = dividendMeter.Float64Histogram("dividend.aggregation.duration",
		metric.WithDescription("Portfolio dividend aggregation duration in seconds"),
		metric.WithUnit("s"),
	)
	providerFailures, _ = dividendMeter.Int64Counter("dividend.provider.failures",
		metric.WithDescription("Dividend provider failures per ticker"),
	)
)

// Provider fetches raw dividend data for a ticker
// Implemented by the brapi client in the infrastructure layer
type Provider interface {
	Dividends(ctx context.Context, ticker string) (*ProviderData, error)
}

// Service builds per-ticker dividend reports and portfolio-wide aggregates
type Service struct {
	provider    Provider
	investments investment.Repository

	// now is swapped in tests to pin the twelve-month window
	now func() time.Time
}

// NewService creates a new dividend service
func NewService(provider Provider, investments investment.Repository) *Service {
	return &Service{provider: provider, investments: investments, now: time.Now}
}

// BuildReport assembles the dividend report for one ticker. Provider failures
// degrade to a zeroed report so a single bad ticker never breaks a caller.
func (s *Service) BuildReport(ctx context.Context, ticker string) *Report {
	data, err := s.provider.Dividends(ctx, ticker)
	if err != nil || data == nil {
		log.Printf("dividend provider failed for %s: %v", ticker, err)
		providerFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("ticker", ticker)))
		return emptyReport(ticker)
	}

	events := make([]Event, 0, len(data.CashDividends)+len(data.StockDividends))
	for _, d := range data.CashDividends {
		if d.PaymentDate == nil {
			continue
		}
		events = append(events, Event{Date: *d.PaymentDate, Value: d.Rate, Type: EventCash})
	}
	for _, d := range data.StockDividends {
		if d.PaymentDate == nil {
			continue
		}
		events = append(events, Event{Date: *d.PaymentDate, Value: d.Rate, Type: EventStock})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date.After(events[j].Date) })

	now := s.now()
	windowStart := now.AddDate(-1, 0, 0)

	var total float64
	var inWindow int
	for _, e := range events {
		if e.Type == EventCash && !e.Date.Before(windowStart) && !e.Date.After(now) {
			total += e.Value
			inWindow++
		}
	}

	var yield float64
	if data.Price > 0 {
		yield = total / data.Price * 100
	}

	var last *Event
	for i := range events {
		if events[i].Type == EventCash && !events[i].Date.After(now) {
			last = &events[i]
			break
		}
	}

	var monthlyAverage float64
	if inWindow > 0 {
		monthlyAverage = total / 12
	}

	return &Report{
		Ticker:       ticker,
		CurrentPrice: data.Price,
		Dividends:    events,
		Summary: ReportSummary{
			Last12Months:   total,
			DividendYield:  yield,
			TotalDividends: len(events),
			CashDividends:  len(data.CashDividends),
			StockDividends: len(data.StockDividends),
			LastDividend:   last,
			MonthlyAverage: monthlyAverage,
		},
	}
}

// Aggregate builds the dashboard dividend view for a user's stock holdings.
// Reports for all holdings are fetched concurrently; one failing ticker
// degrades only its own holding.
func (s *Service) Aggregate(ctx context.Context, userID string) (*PortfolioDividends, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	start := s.now()
	defer func() {
		aggregationDuration.Record(ctx, time.Since(start).Seconds())
	}()

	holdings, err := s.investments.ListByUserIDAndType(ctx, userID, asset.TypeAcao)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock holdings: %w", err)
	}

	assets := make([]HoldingDividends, len(holdings))

	var wg sync.WaitGroup
	for i, inv := range holdings {
		wg.Add(1)
		go func(i int, inv *investment.Investment) {
			defer wg.Done()
			assets[i] = s.holdingDividends(ctx, inv)
		}(i, inv)
	}
	wg.Wait()

	return &PortfolioDividends{
		Assets:  assets,
		History: buildHistory(assets),
	}, nil
}

// holdingDividends narrows a report to the trailing-12-month cash events and
// applies the purchase-date cutoff for the received total.
func (s *Service) holdingDividends(ctx context.Context, inv *investment.Investment) HoldingDividends {
	report := s.BuildReport(ctx, inv.Ticker)

	now := s.now()
	windowStart := now.AddDate(-1, 0, 0)

	events := make([]Event, 0, len(report.Dividends))
	var totalRecebido float64
	for _, e := range report.Dividends {
		if e.Type != EventCash || e.Date.Before(windowStart) || e.Date.After(now) {
			continue
		}
		events = append(events, e)
		if !e.Date.Before(inv.DataCompra) {
			totalRecebido += e.Value * inv.Quantidade
		}
	}

	return HoldingDividends{
		Ticker:         inv.Ticker,
		Quantidade:     inv.Quantidade,
		DataCompra:     inv.DataCompra,
		ValorInvestido: inv.ValorTotal,
		Dividends:      events,
		TotalRecebido:  totalRecebido,
		DividendYield:  report.Summary.DividendYield,
	}
}

// buildHistory flattens per-holding events into one date-descending list.
func buildHistory(assets []HoldingDividends) []HistoryItem {
	history := []HistoryItem{}
	for _, a := range assets {
		for _, e := range a.Dividends {
			history = append(history, HistoryItem{
				Ticker:        a.Ticker,
				Date:          e.Date,
				ValorPorCota:  e.Value,
				Quantidade:    a.Quantidade,
				TotalRecebido: e.Value * a.Quantidade,
				Recebido:      !e.Date.Before(a.DataCompra),
			})
		}
	}
	sort.Slice(history, func(i, j int) bool { return history[i].Date.After(history[j].Date) })
	return history
}

func emptyReport(ticker string) *Report {
	return &Report{Ticker: ticker, Dividends: []Event{}}
}
