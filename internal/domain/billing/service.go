package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"carteira/internal/domain/user"
)

// Provider abstracts the payment gateway
type Provider interface {
	// FindCustomerByEmail returns the customer for an email, or nil when none exists
	FindCustomerByEmail(ctx context.Context, email string) (*Customer, error)
	CreateCustomer(ctx context.Context, email, userID string) (*Customer, error)
	GetCustomer(ctx context.Context, id string) (*Customer, error)
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error)
}

// Service implements subscription billing on top of a payment provider
type Service struct {
	provider Provider
	users    user.Repository
	priceID  string
	appURL   string
}

// NewService creates a new billing service
func NewService(provider Provider, users user.Repository, priceID, appURL string) *Service {
	return &Service{provider: provider, users: users, priceID: priceID, appURL: appURL}
}

// CreateCheckoutSession opens a subscription checkout for the user, reusing the
// provider customer for their email when one already exists.
func (s *Service) CreateCheckoutSession(ctx context.Context, userID string) (*CheckoutResult, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}

	customer, err := s.provider.FindCustomerByEmail(ctx, u.Email)
	if err != nil {
		return nil, fmt.Errorf("looking up customer: %w", err)
	}
	if customer == nil {
		customer, err = s.provider.CreateCustomer(ctx, u.Email, userID)
		if err != nil {
			return nil, fmt.Errorf("creating customer: %w", err)
		}
	}

	session, err := s.provider.CreateCheckoutSession(ctx, CheckoutParams{
		CustomerID: customer.ID,
		PriceID:    s.priceID,
		SuccessURL: s.appURL + "/planos/sucesso?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.appURL + "/planos",
		UserID:     userID,
	})
	if err != nil {
		return nil, fmt.Errorf("creating checkout session: %w", err)
	}

	return &CheckoutResult{URL: session.URL}, nil
}

// CheckPayment verifies a checkout session after the user returns from the
// hosted page. A paid session with a subscription activates the user's plan;
// anything else reports the session's payment status without side effects.
func (s *Service) CheckPayment(ctx context.Context, userID, sessionID string) (*CheckPaymentResult, error) {
	if sessionID == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.provider.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("retrieving checkout session: %w", err)
	}

	if session.PaymentStatus != "paid" || session.Subscription == "" {
		return &CheckPaymentResult{Success: false, PaymentStatus: session.PaymentStatus}, nil
	}

	err = s.users.UpdateSubscription(ctx, userID, user.SubscriptionParams{
		Status:         user.SubscriptionPaid,
		SubscriptionID: session.Subscription,
		CustomerID:     session.Customer,
	})
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("activating subscription: %w", err)
	}

	return &CheckPaymentResult{Success: true}, nil
}

// CancelSubscription downgrades the user to the free plan. The provider-side
// subscription keeps running until its period ends and the deletion webhook is
// the source of truth, so only our record changes here.
func (s *Service) CancelSubscription(ctx context.Context, userID string) error {
	err := s.users.UpdateSubscription(ctx, userID, user.SubscriptionParams{
		Status: user.SubscriptionFree,
	})
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("cancelling subscription: %w", err)
	}
	return nil
}

// HandleEvent applies a verified webhook event. Unknown event types are
// ignored so the provider does not retry them.
func (s *Service) HandleEvent(ctx context.Context, event Event) error {
	switch event.Type {
	case EventCheckoutCompleted:
		return s.handleCheckoutCompleted(ctx, event)
	case EventSubscriptionUpdated:
		return s.handleSubscriptionUpdated(ctx, event)
	case EventSubscriptionDeleted:
		return s.handleSubscriptionDeleted(ctx, event)
	default:
		log.Printf("billing: ignoring webhook event %s", event.Type)
		return nil
	}
}

func (s *Service) handleCheckoutCompleted(ctx context.Context, event Event) error {
	var session CheckoutSession
	if err := json.Unmarshal(event.Data.Object, &session); err != nil {
		return fmt.Errorf("decoding checkout session: %w", err)
	}

	userID := session.Metadata["userID"]
	if userID == "" || session.Subscription == "" {
		log.Printf("billing: checkout %s completed without user or subscription", session.ID)
		return nil
	}

	err := s.users.UpdateSubscription(ctx, userID, user.SubscriptionParams{
		Status:         user.SubscriptionPaid,
		SubscriptionID: session.Subscription,
		CustomerID:     session.Customer,
	})
	if err != nil {
		return fmt.Errorf("activating subscription: %w", err)
	}
	log.Printf("billing: subscription active for user %s", userID)
	return nil
}

func (s *Service) handleSubscriptionUpdated(ctx context.Context, event Event) error {
	var sub subscriptionObject
	if err := json.Unmarshal(event.Data.Object, &sub); err != nil {
		return fmt.Errorf("decoding subscription: %w", err)
	}

	customer, err := s.provider.GetCustomer(ctx, sub.Customer)
	if err != nil {
		return fmt.Errorf("retrieving customer: %w", err)
	}

	userID := customer.Metadata["userID"]
	if userID == "" {
		log.Printf("billing: customer %s has no user reference", sub.Customer)
		return nil
	}

	status := user.SubscriptionFree
	if sub.Status == "active" {
		status = user.SubscriptionPaid
	}
	if err := s.users.UpdateSubscriptionStatus(ctx, userID, status); err != nil {
		return fmt.Errorf("updating subscription status: %w", err)
	}
	return nil
}

func (s *Service) handleSubscriptionDeleted(ctx context.Context, event Event) error {
	var sub subscriptionObject
	if err := json.Unmarshal(event.Data.Object, &sub); err != nil {
		return fmt.Errorf("decoding subscription: %w", err)
	}

	u, err := s.users.GetByCustomerID(ctx, sub.Customer)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			log.Printf("billing: no user for customer %s", sub.Customer)
			return nil
		}
		return fmt.Errorf("loading user by customer: %w", err)
	}

	// Keep the customer reference so a future checkout reuses it.
	err = s.users.UpdateSubscription(ctx, u.ID, user.SubscriptionParams{
		Status:     user.SubscriptionFree,
		CustomerID: sub.Customer,
	})
	if err != nil {
		return fmt.Errorf("downgrading subscription: %w", err)
	}
	log.Printf("billing: subscription ended for user %s", u.ID)
	return nil
}
