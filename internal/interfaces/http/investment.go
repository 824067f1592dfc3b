package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"carteira/internal/domain/investment"
	"carteira/internal/domain/portfolio"
	"carteira/internal/shared/middleware"
)

type InvestmentHandler struct {
	investments *investment.Service
	portfolio   *portfolio.Service
}

func NewInvestmentHandler(investments *investment.Service, portfolio *portfolio.Service) *InvestmentHandler {
	return &InvestmentHandler{investments: investments, portfolio: portfolio}
}

// HandleInvestments routes requests to the appropriate handler based on method
func (h *InvestmentHandler) HandleInvestments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListInvestments(w, r)
	case http.MethodPost:
		h.handlePurchase(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleListInvestments returns the authenticated user's purchase ledger
func (h *InvestmentHandler) handleListInvestments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	investments, err := h.investments.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing investments for user %s: %v", userID, err)
		http.Error(w, "Failed to list investments", http.StatusInternalServerError)
		return
	}

	if investments == nil {
		investments = []*investment.Investment{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(investments)
}

// handlePurchase records a simulated purchase
func (h *InvestmentHandler) handlePurchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var params investment.PurchaseParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	inv, err := h.investments.Purchase(r.Context(), userID, params)
	if err != nil {
		switch {
		case errors.Is(err, investment.ErrTypeNotAllowed):
			http.Error(w, "Investment type not allowed for your risk profile", http.StatusForbidden)
		case errors.Is(err, investment.ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Printf("Error recording purchase for user %s: %v", userID, err)
			http.Error(w, "Failed to record purchase", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(inv)
}

// HandlePortfolioSummary returns the consolidated portfolio position
func (h *InvestmentHandler) HandlePortfolioSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	summary, err := h.portfolio.Summarize(r.Context(), userID)
	if err != nil {
		log.Printf("Error summarizing portfolio for user %s: %v", userID, err)
		http.Error(w, "Failed to summarize portfolio", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}
