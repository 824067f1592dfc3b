package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"carteira/internal/domain/asset"
	"carteira/internal/domain/user"
	"carteira/internal/shared/middleware"
)

type AssetHandler struct {
	assets *asset.Service
	users  *user.Service
}

func NewAssetHandler(assets *asset.Service, users *user.Service) *AssetHandler {
	return &AssetHandler{assets: assets, users: users}
}

// HandleListAssets returns one page of browsable assets of the requested
// type, gated by the user's risk profile
func (h *AssetHandler) HandleListAssets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userModel, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		log.Printf("Error getting user %s: %v", userID, err)
		http.Error(w, "Failed to get user", http.StatusInternalServerError)
		return
	}

	assetType := r.URL.Query().Get("type")
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 50)

	listing, err := h.assets.Browse(r.Context(), userModel.EffectiveProfile(), assetType, page, limit)
	if err != nil {
		switch {
		case errors.Is(err, asset.ErrInvalidType):
			http.Error(w, "Invalid asset type", http.StatusBadRequest)
		case errors.Is(err, asset.ErrTypeNotAllowed):
			http.Error(w, "Asset type not allowed for your risk profile", http.StatusForbidden)
		default:
			log.Printf("Error browsing assets (type=%s): %v", assetType, err)
			http.Error(w, "Failed to list assets", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listing)
}

// HandleQuote returns the current quote for a ticker
func (h *AssetHandler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ticker := r.PathValue("ticker")
	if ticker == "" {
		http.Error(w, "Ticker is required", http.StatusBadRequest)
		return
	}

	quote, err := h.assets.GetQuote(r.Context(), ticker)
	if err != nil {
		if errors.Is(err, asset.ErrQuoteNotFound) {
			http.Error(w, "Quote not found", http.StatusNotFound)
			return
		}
		log.Printf("Error quoting %s: %v", ticker, err)
		http.Error(w, "Failed to get quote", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quote)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
