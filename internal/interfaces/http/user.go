package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"carteira/internal/domain/user"
	"carteira/internal/shared/middleware"
)

type UserHandler struct {
	users *user.Service
}

func NewUserHandler(users *user.Service) *UserHandler {
	return &UserHandler{users: users}
}

type QuizRequest struct {
	Answers []int `json:"answers"`
}

type QuizResponse struct {
	RiskProfile string `json:"riskProfile"`
}

// HandleMe returns the authenticated user
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
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
		if errors.Is(err, user.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting user %s: %v", userID, err)
		http.Error(w, "Failed to get user", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(userModel)
}

// HandleRiskProfile scores the suitability quiz and stores the resulting
// profile
func (h *UserHandler) HandleRiskProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req QuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.users.SubmitQuiz(r.Context(), userID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidAnswers):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, user.ErrUserNotFound):
			http.Error(w, "User not found", http.StatusNotFound)
		default:
			log.Printf("Error submitting quiz for user %s: %v", userID, err)
			http.Error(w, "Failed to submit quiz", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(QuizResponse{RiskProfile: profile})
}
