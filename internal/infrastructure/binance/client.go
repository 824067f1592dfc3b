package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"carteira/internal/domain/asset"
)

const (
	baseURL        = "https://api.binance.com/api/v3"
	defaultTimeout = 30 * time.Second
)

// popularSymbols are the USDT pairs surfaced to users. Binance lists
// thousands of pairs; the app only shows the established coins.
var popularSymbols = []string{
	"BTCUSDT", "ETHUSDT", "BNBUSDT", "ADAUSDT", "DOGEUSDT",
	"XRPUSDT", "DOTUSDT", "UNIUSDT", "LTCUSDT", "LINKUSDT",
	"MATICUSDT", "SOLUSDT", "AVAXUSDT", "ATOMUSDT",
}

var cryptoNames = map[string]string{
	"BTC":   "Bitcoin",
	"ETH":   "Ethereum",
	"BNB":   "Binance Coin",
	"ADA":   "Cardano",
	"DOGE":  "Dogecoin",
	"XRP":   "XRP",
	"DOT":   "Polkadot",
	"UNI":   "Uniswap",
	"LTC":   "Litecoin",
	"LINK":  "Chainlink",
	"MATIC": "Polygon",
	"SOL":   "Solana",
	"AVAX":  "Avalanche",
	"ATOM":  "Cosmos",
}

// coingeckoIDs map symbols to CoinGecko image IDs for logo URLs
var coingeckoIDs = map[string]int{
	"BTC":   1,
	"ETH":   279,
	"BNB":   825,
	"ADA":   975,
	"DOGE":  5,
	"XRP":   44,
	"DOT":   12171,
	"UNI":   7083,
	"LTC":   2,
	"LINK":  1975,
	"MATIC": 4713,
	"SOL":   4128,
	"AVAX":  12559,
	"ATOM":  3794,
}

// Client lists popular crypto assets from the Binance public API, converted
// to BRL with a configured exchange rate.
type Client struct {
	httpClient *http.Client
	baseURL    string
	usdToBRL   float64
}

var _ asset.CryptoProvider = (*Client)(nil)

// NewClient creates a new Binance client
func NewClient(usdToBRL float64) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:  baseURL,
		usdToBRL: usdToBRL,
	}
}

// tickerStats is one row of the /ticker/24hr response. Binance returns
// numbers as strings.
type tickerStats struct {
	Symbol             string `json:"symbol"`
	LastPrice          string `json:"lastPrice"`
	PriceChangePercent string `json:"priceChangePercent"`
}

// List returns the popular crypto pairs priced in BRL
func (c *Client) List(ctx context.Context) ([]asset.Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ticker/24hr", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var stats []tickerStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	bySymbol := make(map[string]tickerStats, len(stats))
	for _, s := range stats {
		bySymbol[s.Symbol] = s
	}

	// Keep the configured presentation order regardless of API ordering
	assets := make([]asset.Asset, 0, len(popularSymbols))
	for _, pair := range popularSymbols {
		s, ok := bySymbol[pair]
		if !ok {
			continue
		}

		price, err := strconv.ParseFloat(s.LastPrice, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse price '%s' for %s: %w", s.LastPrice, pair, err)
		}
		change, err := strconv.ParseFloat(s.PriceChangePercent, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse change '%s' for %s: %w", s.PriceChangePercent, pair, err)
		}

		symbol := strings.TrimSuffix(pair, "USDT")
		assets = append(assets, asset.Asset{
			Ticker:   symbol,
			Nome:     cryptoName(symbol),
			Preco:    price * c.usdToBRL,
			Variacao: change,
			Tipo:     asset.TypeCripto,
			Logo:     logoURL(symbol),
		})
	}

	return assets, nil
}

func cryptoName(symbol string) string {
	if name, ok := cryptoNames[symbol]; ok {
		return name
	}
	return symbol
}

func logoURL(symbol string) string {
	id, ok := coingeckoIDs[symbol]
	if !ok {
		return ""
	}
	return fmt.Sprintf("https://assets.coingecko.com/coins/images/%d/small/%s.png", id, strings.ToLower(symbol))
}
