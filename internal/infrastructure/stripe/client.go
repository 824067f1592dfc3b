package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"carteira/internal/domain/billing"
)

const (
	baseURL        = "https://api.stripe.com/v1"
	defaultTimeout = 30 * time.Second
)

// Client handles communication with the Stripe API. Stripe takes
// form-encoded requests and answers JSON.
type Client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
}

var _ billing.Provider = (*Client)(nil)

// NewClient creates a new Stripe client
func NewClient(secretKey string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:   baseURL,
		secretKey: secretKey,
	}
}

type customerList struct {
	Data []billing.Customer `json:"data"`
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// FindCustomerByEmail returns the first customer matching the email, or nil
// when none exists
func (c *Client) FindCustomerByEmail(ctx context.Context, email string) (*billing.Customer, error) {
	params := url.Values{}
	params.Set("email", email)
	params.Set("limit", "1")

	var list customerList
	if err := c.do(ctx, http.MethodGet, "/customers?"+params.Encode(), nil, &list); err != nil {
		return nil, err
	}

	if len(list.Data) == 0 {
		return nil, nil
	}
	return &list.Data[0], nil
}

// CreateCustomer creates a customer carrying the user reference in metadata
func (c *Client) CreateCustomer(ctx context.Context, email, userID string) (*billing.Customer, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("metadata[userID]", userID)

	var customer billing.Customer
	if err := c.do(ctx, http.MethodPost, "/customers", form, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetCustomer retrieves a customer by ID
func (c *Client) GetCustomer(ctx context.Context, id string) (*billing.Customer, error) {
	var customer billing.Customer
	if err := c.do(ctx, http.MethodGet, "/customers/"+url.PathEscape(id), nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// CreateCheckoutSession opens a hosted subscription checkout. The user
// reference goes on both the session and the subscription so every webhook
// can resolve it.
func (c *Client) CreateCheckoutSession(ctx context.Context, params billing.CheckoutParams) (*billing.CheckoutSession, error) {
	form := url.Values{}
	form.Set("customer", params.CustomerID)
	form.Set("mode", "subscription")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price]", params.PriceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("metadata[userID]", params.UserID)
	form.Set("subscription_data[metadata][userID]", params.UserID)

	var session billing.CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/checkout/sessions", form, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetCheckoutSession retrieves a checkout session by ID
func (c *Client) GetCheckoutSession(ctx context.Context, id string) (*billing.CheckoutSession, error) {
	var session billing.CheckoutSession
	if err := c.do(ctx, http.MethodGet, "/checkout/sessions/"+url.PathEscape(id), nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values, out any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp apiError
		if err := json.Unmarshal(respBody, &errResp); err != nil || errResp.Error.Message == "" {
			return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
		}
		return fmt.Errorf("API error (status %d): %s - %s", resp.StatusCode, errResp.Error.Type, errResp.Error.Message)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}
