package http

import (
	"encoding/json"
	"net/http"

	"carteira/internal/domain/news"
)

type NewsHandler struct {
	news *news.Service
}

func NewNewsHandler(news *news.Service) *NewsHandler {
	return &NewsHandler{news: news}
}

// HandleNews returns today's curated finance headlines. Feed failures are
// absorbed upstream, so this never errors.
func (h *NewsHandler) HandleNews(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	result := h.news.GetNews(r.Context(), page, limit)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
