package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"carteira/internal/domain/user"
)

func TestHandleMe(t *testing.T) {
	t.Run("returns authenticated user", func(t *testing.T) {
		repo := &mockUserRepo{
			GetByIDFunc: func(ctx context.Context, id string) (*user.User, error) {
				return &user.User{
					ID:                 id,
					Email:              "ana@example.com",
					DisplayName:        "Ana",
					SubscriptionStatus: user.SubscriptionFree,
					RiskProfile:        user.ProfileModerado,
				}, nil
			},
		}
		handler := NewUserHandler(user.NewService(repo))

		rr := httptest.NewRecorder()
		handler.HandleMe(rr, authedRequest(http.MethodGet, "/api/users/me", nil, "user-1"))

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
		}

		var body map[string]any
		if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if body["email"] != "ana@example.com" || body["riskProfile"] != user.ProfileModerado {
			t.Errorf("unexpected body %+v", body)
		}
		if _, leaked := body["PasswordHash"]; leaked {
			t.Error("password hash must not be serialized")
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		handler := NewUserHandler(user.NewService(&mockUserRepo{}))

		rr := httptest.NewRecorder()
		handler.HandleMe(rr, authedRequest(http.MethodGet, "/api/users/me", nil, "ghost"))

		if rr.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusNotFound)
		}
	})

	t.Run("missing auth context", func(t *testing.T) {
		handler := NewUserHandler(user.NewService(&mockUserRepo{}))

		rr := httptest.NewRecorder()
		handler.HandleMe(rr, httptest.NewRequest(http.MethodGet, "/api/users/me", nil))

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
		}
	})
}

func TestHandleRiskProfile(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		expectedStatus  int
		expectedProfile string
	}{
		{
			name:            "conservative answers",
			body:            `{"answers": [1, 1, 1, 2, 1]}`,
			expectedStatus:  http.StatusOK,
			expectedProfile: user.ProfileConservador,
		},
		{
			name:            "aggressive answers",
			body:            `{"answers": [3, 3, 3, 2, 3]}`,
			expectedStatus:  http.StatusOK,
			expectedProfile: user.ProfileArrojado,
		},
		{
			name:           "too few answers",
			body:           `{"answers": [1, 2, 3]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "answer out of range",
			body:           `{"answers": [1, 2, 3, 4, 1]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var savedProfile string
			repo := &mockUserRepo{
				GetByIDFunc: func(ctx context.Context, id string) (*user.User, error) {
					return &user.User{ID: id}, nil
				},
				UpdateRiskProfileFunc: func(ctx context.Context, id, profile string) error {
					savedProfile = profile
					return nil
				},
			}
			handler := NewUserHandler(user.NewService(repo))

			req := authedRequest(http.MethodPost, "/api/users/risk-profile", bytes.NewBufferString(tt.body), "user-1")
			rr := httptest.NewRecorder()
			handler.HandleRiskProfile(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d: %s", rr.Code, tt.expectedStatus, rr.Body.String())
			}

			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp QuizResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if resp.RiskProfile != tt.expectedProfile {
				t.Errorf("profile = %s, want %s", resp.RiskProfile, tt.expectedProfile)
			}
			if savedProfile != tt.expectedProfile {
				t.Errorf("saved profile = %s, want %s", savedProfile, tt.expectedProfile)
			}
		})
	}
}
