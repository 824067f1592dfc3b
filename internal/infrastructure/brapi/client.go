package brapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"carteira/internal/domain/asset"
	"carteira/internal/domain/dividend"
)

const (
	baseURL        = "https://brapi.dev/api"
	defaultTimeout = 30 * time.Second
)

// Client handles communication with the brapi.dev market data API.
// It backs stock listings, single-ticker quotes and dividend histories.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Compile-time interface checks
var (
	_ asset.StockProvider = (*Client)(nil)
	_ dividend.Provider   = (*Client)(nil)
)

// NewClient creates a new brapi client. The token is optional; unauthenticated
// requests are served with lower rate limits.
func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: baseURL,
		token:   token,
	}
}

// listResponse represents the /quote/list API response
type listResponse struct {
	Stocks     []listedStock `json:"stocks"`
	TotalPages int           `json:"totalPages"`
	TotalCount int           `json:"totalCount"`
}

// listedStock represents one row of a stock listing
type listedStock struct {
	Stock  string  `json:"stock"`
	Name   string  `json:"name"`
	Close  float64 `json:"close"`
	Change float64 `json:"change"`
	Logo   string  `json:"logo"`
}

// quoteResponse represents the /quote/{ticker} API response
type quoteResponse struct {
	Results []quoteResult `json:"results"`
}

// quoteResult carries the fields we use from a single-ticker quote
type quoteResult struct {
	Symbol                     string         `json:"symbol"`
	RegularMarketPrice         float64        `json:"regularMarketPrice"`
	Close                      float64        `json:"close"`
	RegularMarketChange        float64        `json:"regularMarketChange"`
	RegularMarketChangePercent float64        `json:"regularMarketChangePercent"`
	RegularMarketVolume        float64        `json:"regularMarketVolume"`
	DividendsData              *dividendsData `json:"dividendsData,omitempty"`
}

type dividendsData struct {
	CashDividends  []cashDividend  `json:"cashDividends"`
	StockDividends []stockDividend `json:"stockDividends"`
}

// cashDividend is one cash payment record. PaymentDate is null for
// announced but unscheduled payments.
type cashDividend struct {
	PaymentDate *string `json:"paymentDate"`
	Rate        float64 `json:"rate"`
}

type stockDividend struct {
	PaymentDate *string `json:"paymentDate"`
	Factor      float64 `json:"factor"`
}

type errorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// List returns one page of B3 assets sorted by volume. Real estate funds are
// not a first-class filter on the API, so fund pages over-fetch and keep only
// tickers that look like FIIs.
func (c *Client) List(ctx context.Context, assetType string, page, limit int) (*asset.Listing, error) {
	fetchLimit := limit
	if assetType == asset.TypeFundo {
		// FIIs are sparse in the volume ranking; fetch extra rows to fill the page
		fetchLimit = limit * 3
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(fetchLimit))
	params.Set("sortBy", "volume")
	params.Set("sortOrder", "desc")
	if c.token != "" {
		params.Set("token", c.token)
	}

	var listResp listResponse
	if err := c.get(ctx, "/quote/list?"+params.Encode(), &listResp); err != nil {
		return nil, fmt.Errorf("failed to list stocks: %w", err)
	}

	assets := make([]asset.Asset, 0, limit)
	for _, s := range listResp.Stocks {
		t := classifyTicker(s.Stock)
		if t != assetType {
			continue
		}
		assets = append(assets, asset.Asset{
			Ticker:   s.Stock,
			Nome:     s.Name,
			Preco:    s.Close,
			Variacao: s.Change,
			Tipo:     t,
			Logo:     s.Logo,
		})
		if len(assets) == limit {
			break
		}
	}

	return &asset.Listing{
		Assets:     assets,
		TotalPages: listResp.TotalPages,
		TotalCount: listResp.TotalCount,
	}, nil
}

// Quote returns the current quote for a single ticker
func (c *Client) Quote(ctx context.Context, ticker string) (*asset.Quote, error) {
	result, err := c.quote(ctx, ticker, false)
	if err != nil {
		return nil, err
	}

	price := result.RegularMarketPrice
	if price == 0 {
		price = result.Close
	}

	return &asset.Quote{
		Ticker:        result.Symbol,
		Price:         price,
		Change:        result.RegularMarketChange,
		ChangePercent: result.RegularMarketChangePercent,
		Volume:        result.RegularMarketVolume,
		LastUpdate:    time.Now(),
	}, nil
}

// Dividends returns the price and dividend history for a ticker
func (c *Client) Dividends(ctx context.Context, ticker string) (*dividend.ProviderData, error) {
	result, err := c.quote(ctx, ticker, true)
	if err != nil {
		return nil, err
	}

	price := result.RegularMarketPrice
	if price == 0 {
		price = result.Close
	}

	data := &dividend.ProviderData{Price: price}
	if result.DividendsData == nil {
		return data, nil
	}

	for _, d := range result.DividendsData.CashDividends {
		data.CashDividends = append(data.CashDividends, dividend.ProviderEvent{
			PaymentDate: parsePaymentDate(d.PaymentDate),
			Rate:        d.Rate,
		})
	}
	for _, d := range result.DividendsData.StockDividends {
		data.StockDividends = append(data.StockDividends, dividend.ProviderEvent{
			PaymentDate: parsePaymentDate(d.PaymentDate),
			Rate:        d.Factor,
		})
	}

	return data, nil
}

func (c *Client) quote(ctx context.Context, ticker string, withDividends bool) (*quoteResult, error) {
	params := url.Values{}
	if withDividends {
		params.Set("dividends", "true")
	}
	if c.token != "" {
		params.Set("token", c.token)
	}

	path := "/quote/" + url.PathEscape(strings.ToUpper(ticker))
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var quoteResp quoteResponse
	if err := c.get(ctx, path, &quoteResp); err != nil {
		return nil, fmt.Errorf("failed to quote %s: %w", ticker, err)
	}

	if len(quoteResp.Results) == 0 {
		return nil, fmt.Errorf("no quote results for %s", ticker)
	}

	return &quoteResp.Results[0], nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err != nil || errResp.Message == "" {
			return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
		}
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, errResp.Message)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

// classifyTicker separates real estate funds from equities. B3 fund tickers
// carry the "11" suffix.
func classifyTicker(ticker string) string {
	if strings.Contains(ticker, "11") {
		return asset.TypeFundo
	}
	return asset.TypeAcao
}

// parsePaymentDate parses brapi payment dates, which arrive as RFC 3339
// timestamps or bare dates. Unparseable or absent dates are dropped upstream.
func parsePaymentDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		t, err = time.Parse("2006-01-02", *s)
		if err != nil {
			return nil
		}
	}
	return &t
}
