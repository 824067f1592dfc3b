package dividend

import "time"

// Event types as reported by the market data provider
const (
	EventCash  = "cash"
	EventStock = "stock"
)

// Event is one dividend payment for a ticker
type Event struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	Type  string    `json:"type"`
}

// ReportSummary aggregates the trailing twelve months of cash payments
type ReportSummary struct {
	Last12Months   float64 `json:"last12Months"`
	DividendYield  float64 `json:"dividendYield"`
	TotalDividends int     `json:"totalDividends"`
	CashDividends  int     `json:"cashDividends"`
	StockDividends int     `json:"stockDividends"`
	LastDividend   *Event  `json:"lastDividend"`
	MonthlyAverage float64 `json:"monthlyAverage"`
}

// Report is the per-ticker dividend report
type Report struct {
	Ticker       string        `json:"ticker"`
	CurrentPrice float64       `json:"currentPrice"`
	Dividends    []Event       `json:"dividends"`
	Summary      ReportSummary `json:"summary"`
}

// HoldingDividends is the dividend view of one stock holding in the ledger
type HoldingDividends struct {
	Ticker         string    `json:"ticker"`
	Quantidade     float64   `json:"quantidade"`
	DataCompra     time.Time `json:"dataCompra"`
	ValorInvestido float64   `json:"valorInvestido"`
	Dividends      []Event   `json:"dividends"`
	TotalRecebido  float64   `json:"totalRecebido"`
	DividendYield  float64   `json:"dividendYield"`
}

// HistoryItem is one row of the flattened payment history across holdings.
// Recebido marks payments made on or after the purchase date; earlier
// payments stay in the history but were not received.
type HistoryItem struct {
	Ticker        string    `json:"ticker"`
	Date          time.Time `json:"date"`
	ValorPorCota  float64   `json:"valorPorCota"`
	Quantidade    float64   `json:"quantidade"`
	TotalRecebido float64   `json:"totalRecebido"`
	Recebido      bool      `json:"recebido"`
}

// PortfolioDividends is the dashboard payload: per-holding aggregates plus
// the flat payment history
type PortfolioDividends struct {
	Assets  []HoldingDividends `json:"assets"`
	History []HistoryItem      `json:"history"`
}

// ProviderEvent is a raw dividend record from the market data provider.
// Records without a payment date are announcements and are discarded.
type ProviderEvent struct {
	PaymentDate *time.Time
	Rate        float64
}

// ProviderData is the raw per-ticker payload from the market data provider
type ProviderData struct {
	Price          float64
	CashDividends  []ProviderEvent
	StockDividends []ProviderEvent
}
