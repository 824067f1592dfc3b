package http

import (
	"encoding/json"
	"log"
	"net/http"

	"carteira/internal/domain/dividend"
	"carteira/internal/shared/middleware"
)

type DividendHandler struct {
	dividends *dividend.Service
}

func NewDividendHandler(dividends *dividend.Service) *DividendHandler {
	return &DividendHandler{dividends: dividends}
}

// HandlePortfolioDividends returns the per-holding dividend aggregates and
// the flat payment history for the authenticated user's stock holdings
func (h *DividendHandler) HandlePortfolioDividends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result, err := h.dividends.Aggregate(r.Context(), userID)
	if err != nil {
		log.Printf("Error aggregating dividends for user %s: %v", userID, err)
		http.Error(w, "Failed to aggregate dividends", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// HandleTickerDividends returns the dividend report for one ticker.
// Provider failures yield a zeroed report rather than an error status.
func (h *DividendHandler) HandleTickerDividends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ticker := r.PathValue("ticker")
	if ticker == "" {
		http.Error(w, "Ticker is required", http.StatusBadRequest)
		return
	}

	report := h.dividends.BuildReport(r.Context(), ticker)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}
