package http

import (
	"context"

	"carteira/internal/domain/asset"
	"carteira/internal/domain/billing"
	"carteira/internal/domain/investment"
	"carteira/internal/domain/user"
)

// mockUserRepo implements user.Repository for testing
type mockUserRepo struct {
	CreateFunc                   func(ctx context.Context, params user.CreateParams) (*user.User, error)
	GetByIDFunc                  func(ctx context.Context, id string) (*user.User, error)
	GetByEmailFunc               func(ctx context.Context, email string) (*user.User, error)
	GetByOAuthFunc               func(ctx context.Context, provider, oauthID string) (*user.User, error)
	GetByCustomerIDFunc          func(ctx context.Context, customerID string) (*user.User, error)
	UpdateRiskProfileFunc        func(ctx context.Context, id, profile string) error
	UpdateSubscriptionFunc       func(ctx context.Context, id string, params user.SubscriptionParams) error
	UpdateSubscriptionStatusFunc func(ctx context.Context, id, status string) error
}

func (m *mockUserRepo) Create(ctx context.Context, params user.CreateParams) (*user.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepo) GetByOAuth(ctx context.Context, provider, oauthID string) (*user.User, error) {
	if m.GetByOAuthFunc != nil {
		return m.GetByOAuthFunc(ctx, provider, oauthID)
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepo) GetByCustomerID(ctx context.Context, customerID string) (*user.User, error) {
	if m.GetByCustomerIDFunc != nil {
		return m.GetByCustomerIDFunc(ctx, customerID)
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepo) UpdateRiskProfile(ctx context.Context, id, profile string) error {
	if m.UpdateRiskProfileFunc != nil {
		return m.UpdateRiskProfileFunc(ctx, id, profile)
	}
	return nil
}

func (m *mockUserRepo) UpdateSubscription(ctx context.Context, id string, params user.SubscriptionParams) error {
	if m.UpdateSubscriptionFunc != nil {
		return m.UpdateSubscriptionFunc(ctx, id, params)
	}
	return nil
}

func (m *mockUserRepo) UpdateSubscriptionStatus(ctx context.Context, id, status string) error {
	if m.UpdateSubscriptionStatusFunc != nil {
		return m.UpdateSubscriptionStatusFunc(ctx, id, status)
	}
	return nil
}

// mockInvestmentRepo implements investment.Repository for testing
type mockInvestmentRepo struct {
	CreateFunc              func(ctx context.Context, params investment.CreateParams) (*investment.Investment, error)
	ListByUserIDFunc        func(ctx context.Context, userID string) ([]*investment.Investment, error)
	ListByUserIDAndTypeFunc func(ctx context.Context, userID, investmentType string) ([]*investment.Investment, error)
}

func (m *mockInvestmentRepo) Create(ctx context.Context, params investment.CreateParams) (*investment.Investment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	inv := investment.Investment(params)
	return &inv, nil
}

func (m *mockInvestmentRepo) ListByUserID(ctx context.Context, userID string) ([]*investment.Investment, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockInvestmentRepo) ListByUserIDAndType(ctx context.Context, userID, investmentType string) ([]*investment.Investment, error) {
	if m.ListByUserIDAndTypeFunc != nil {
		return m.ListByUserIDAndTypeFunc(ctx, userID, investmentType)
	}
	return nil, nil
}

// mockStockProvider implements asset.StockProvider for testing
type mockStockProvider struct {
	ListFunc  func(ctx context.Context, assetType string, page, limit int) (*asset.Listing, error)
	QuoteFunc func(ctx context.Context, ticker string) (*asset.Quote, error)
}

func (m *mockStockProvider) List(ctx context.Context, assetType string, page, limit int) (*asset.Listing, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, assetType, page, limit)
	}
	return &asset.Listing{Assets: []asset.Asset{}}, nil
}

func (m *mockStockProvider) Quote(ctx context.Context, ticker string) (*asset.Quote, error) {
	if m.QuoteFunc != nil {
		return m.QuoteFunc(ctx, ticker)
	}
	return nil, asset.ErrQuoteNotFound
}

// mockCryptoProvider implements asset.CryptoProvider for testing
type mockCryptoProvider struct {
	ListFunc func(ctx context.Context) ([]asset.Asset, error)
}

func (m *mockCryptoProvider) List(ctx context.Context) ([]asset.Asset, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []asset.Asset{}, nil
}

// mockFixedIncomeProvider implements asset.FixedIncomeProvider for testing
type mockFixedIncomeProvider struct {
	ListFunc func(ctx context.Context) ([]asset.Asset, error)
}

func (m *mockFixedIncomeProvider) List(ctx context.Context) ([]asset.Asset, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []asset.Asset{}, nil
}

// mockBillingProvider implements billing.Provider for testing
type mockBillingProvider struct {
	FindCustomerByEmailFunc   func(ctx context.Context, email string) (*billing.Customer, error)
	CreateCustomerFunc        func(ctx context.Context, email, userID string) (*billing.Customer, error)
	GetCustomerFunc           func(ctx context.Context, id string) (*billing.Customer, error)
	CreateCheckoutSessionFunc func(ctx context.Context, params billing.CheckoutParams) (*billing.CheckoutSession, error)
	GetCheckoutSessionFunc    func(ctx context.Context, id string) (*billing.CheckoutSession, error)
}

func (m *mockBillingProvider) FindCustomerByEmail(ctx context.Context, email string) (*billing.Customer, error) {
	if m.FindCustomerByEmailFunc != nil {
		return m.FindCustomerByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockBillingProvider) CreateCustomer(ctx context.Context, email, userID string) (*billing.Customer, error) {
	if m.CreateCustomerFunc != nil {
		return m.CreateCustomerFunc(ctx, email, userID)
	}
	return &billing.Customer{ID: "cus_test"}, nil
}

func (m *mockBillingProvider) GetCustomer(ctx context.Context, id string) (*billing.Customer, error) {
	if m.GetCustomerFunc != nil {
		return m.GetCustomerFunc(ctx, id)
	}
	return &billing.Customer{ID: id}, nil
}

func (m *mockBillingProvider) CreateCheckoutSession(ctx context.Context, params billing.CheckoutParams) (*billing.CheckoutSession, error) {
	if m.CreateCheckoutSessionFunc != nil {
		return m.CreateCheckoutSessionFunc(ctx, params)
	}
	return &billing.CheckoutSession{ID: "cs_test", URL: "https://checkout.test/cs_test"}, nil
}

func (m *mockBillingProvider) GetCheckoutSession(ctx context.Context, id string) (*billing.CheckoutSession, error) {
	if m.GetCheckoutSessionFunc != nil {
		return m.GetCheckoutSessionFunc(ctx, id)
	}
	return &billing.CheckoutSession{ID: id}, nil
}
