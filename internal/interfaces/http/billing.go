package http

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"carteira/internal/domain/billing"
	"carteira/internal/shared/middleware"
)

// webhookBodyLimit bounds webhook payloads; real events are a few KB.
const webhookBodyLimit = 1 << 20

// SignatureVerifier checks webhook signatures before events are processed
type SignatureVerifier interface {
	Verify(payload []byte, header string) error
}

type BillingHandler struct {
	billing  *billing.Service
	verifier SignatureVerifier
}

func NewBillingHandler(billingService *billing.Service, verifier SignatureVerifier) *BillingHandler {
	return &BillingHandler{billing: billingService, verifier: verifier}
}

// HandleCreateCheckoutSession opens a subscription checkout and returns the
// hosted payment URL
func (h *BillingHandler) HandleCreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result, err := h.billing.CreateCheckoutSession(r.Context(), userID)
	if err != nil {
		if errors.Is(err, billing.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Printf("Error creating checkout session for user %s: %v", userID, err)
		http.Error(w, "Failed to create checkout session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// HandleCheckPayment verifies a checkout session after the user returns from
// the hosted page
func (h *BillingHandler) HandleCheckPayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sessionID := r.URL.Query().Get("session_id")

	result, err := h.billing.CheckPayment(r.Context(), userID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrInvalidInput):
			http.Error(w, "session_id is required", http.StatusBadRequest)
		case errors.Is(err, billing.ErrUserNotFound):
			http.Error(w, "User not found", http.StatusNotFound)
		default:
			log.Printf("Error checking payment for user %s: %v", userID, err)
			http.Error(w, "Failed to check payment", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// HandleCancelSubscription downgrades the authenticated user to the free plan
func (h *BillingHandler) HandleCancelSubscription(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.billing.CancelSubscription(r.Context(), userID); err != nil {
		if errors.Is(err, billing.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Printf("Error cancelling subscription for user %s: %v", userID, err)
		http.Error(w, "Failed to cancel subscription", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// HandleWebhook processes payment provider events. The signature is checked
// against the raw body before anything else happens; unverifiable requests
// get a 400 with no side effects.
func (h *BillingHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, webhookBodyLimit))
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	if err := h.verifier.Verify(payload, r.Header.Get("Stripe-Signature")); err != nil {
		log.Printf("Webhook signature rejected: %v", err)
		http.Error(w, "Invalid signature", http.StatusBadRequest)
		return
	}

	var event billing.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	if err := h.billing.HandleEvent(r.Context(), event); err != nil {
		log.Printf("Error handling webhook event %s (%s): %v", event.ID, event.Type, err)
		http.Error(w, "Failed to process event", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"received": true})
}
