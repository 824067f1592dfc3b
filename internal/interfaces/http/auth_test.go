package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"carteira/internal/domain/user"
	"carteira/internal/shared/auth"
)

type mockOAuthProvider struct {
	GetAuthURLFunc  func(state string) string
	ExchangeFunc    func(ctx context.Context, code string) (*auth.OAuthToken, error)
	GetUserInfoFunc func(ctx context.Context, token string) (*auth.OAuthUserInfo, error)
}

func (m *mockOAuthProvider) GetAuthURL(state string) string {
	if m.GetAuthURLFunc != nil {
		return m.GetAuthURLFunc(state)
	}
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

func (m *mockOAuthProvider) ExchangeCode(ctx context.Context, code string) (*auth.OAuthToken, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code)
	}
	return &auth.OAuthToken{AccessToken: "oauth-token"}, nil
}

func (m *mockOAuthProvider) GetUserInfo(ctx context.Context, token string) (*auth.OAuthUserInfo, error) {
	if m.GetUserInfoFunc != nil {
		return m.GetUserInfoFunc(ctx, token)
	}
	return &auth.OAuthUserInfo{ID: "google-1", Email: "ana@example.com", Name: "Ana"}, nil
}

func newAuthHandler(repo *mockUserRepo, provider *mockOAuthProvider) *AuthHandler {
	if provider == nil {
		provider = &mockOAuthProvider{}
	}
	return NewAuthHandler(user.NewService(repo), provider, auth.NewJWT("test-secret"))
}

func authCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == "access_token" {
			return c
		}
	}
	return nil
}

func TestHandleRegister(t *testing.T) {
	t.Run("creates user and returns token", func(t *testing.T) {
		repo := &mockUserRepo{
			GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
				return nil, user.ErrUserNotFound
			},
			CreateFunc: func(ctx context.Context, params user.CreateParams) (*user.User, error) {
				return &user.User{ID: params.ID, Email: params.Email, DisplayName: params.DisplayName}, nil
			},
		}
		handler := newAuthHandler(repo, nil)

		body := bytes.NewBufferString(`{"email":"ana@example.com","password":"segredo","displayName":"Ana"}`)
		rr := httptest.NewRecorder()
		handler.HandleRegister(rr, httptest.NewRequest(http.MethodPost, "/api/auth/register", body))

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
		}

		var resp AuthResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Token == "" {
			t.Error("expected a token in the response")
		}
		if resp.User == nil || resp.User.Email != "ana@example.com" {
			t.Errorf("expected user ana@example.com, got %+v", resp.User)
		}
		cookie := authCookie(t, rr)
		if cookie == nil || cookie.Value == "" {
			t.Error("expected access_token cookie to be set")
		}
	})

	t.Run("duplicate email returns conflict", func(t *testing.T) {
		repo := &mockUserRepo{
			GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
				return &user.User{ID: "user-1", Email: email}, nil
			},
		}
		handler := newAuthHandler(repo, nil)

		body := bytes.NewBufferString(`{"email":"ana@example.com","password":"segredo","displayName":"Ana"}`)
		rr := httptest.NewRecorder()
		handler.HandleRegister(rr, httptest.NewRequest(http.MethodPost, "/api/auth/register", body))

		if rr.Code != http.StatusConflict {
			t.Errorf("expected status 409, got %d", rr.Code)
		}
	})

	t.Run("short password is rejected", func(t *testing.T) {
		handler := newAuthHandler(&mockUserRepo{}, nil)

		body := bytes.NewBufferString(`{"email":"ana@example.com","password":"abc","displayName":"Ana"}`)
		rr := httptest.NewRecorder()
		handler.HandleRegister(rr, httptest.NewRequest(http.MethodPost, "/api/auth/register", body))

		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rr.Code)
		}
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		handler := newAuthHandler(&mockUserRepo{}, nil)

		body := bytes.NewBufferString(`{"email":"ana@example.com"}`)
		rr := httptest.NewRecorder()
		handler.HandleRegister(rr, httptest.NewRequest(http.MethodPost, "/api/auth/register", body))

		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rr.Code)
		}
	})
}

func TestHandleLogin(t *testing.T) {
	hash, err := auth.HashPassword("segredo")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	repo := &mockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
			if email == "ana@example.com" {
				return &user.User{ID: "user-1", Email: email, PasswordHash: hash}, nil
			}
			return nil, user.ErrUserNotFound
		},
	}

	t.Run("valid credentials return token", func(t *testing.T) {
		handler := newAuthHandler(repo, nil)

		body := bytes.NewBufferString(`{"email":"ana@example.com","password":"segredo"}`)
		rr := httptest.NewRecorder()
		handler.HandleLogin(rr, httptest.NewRequest(http.MethodPost, "/api/auth/login", body))

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
		}
		var resp AuthResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Token == "" {
			t.Error("expected a token in the response")
		}
	})

	t.Run("wrong password returns unauthorized", func(t *testing.T) {
		handler := newAuthHandler(repo, nil)

		body := bytes.NewBufferString(`{"email":"ana@example.com","password":"errada"}`)
		rr := httptest.NewRecorder()
		handler.HandleLogin(rr, httptest.NewRequest(http.MethodPost, "/api/auth/login", body))

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rr.Code)
		}
	})

	t.Run("unknown email returns unauthorized", func(t *testing.T) {
		handler := newAuthHandler(repo, nil)

		body := bytes.NewBufferString(`{"email":"ghost@example.com","password":"segredo"}`)
		rr := httptest.NewRecorder()
		handler.HandleLogin(rr, httptest.NewRequest(http.MethodPost, "/api/auth/login", body))

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rr.Code)
		}
	})
}

func TestHandleLogout(t *testing.T) {
	handler := newAuthHandler(&mockUserRepo{}, nil)

	rr := httptest.NewRecorder()
	handler.HandleLogout(rr, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rr.Code)
	}
	cookie := authCookie(t, rr)
	if cookie == nil {
		t.Fatal("expected access_token cookie to be cleared")
	}
	if cookie.MaxAge != -1 {
		t.Errorf("expected cookie MaxAge -1, got %d", cookie.MaxAge)
	}
}

func TestHandleAuthURL(t *testing.T) {
	var gotState string
	provider := &mockOAuthProvider{
		GetAuthURLFunc: func(state string) string {
			gotState = state
			return "https://accounts.google.com/o/oauth2/auth?state=" + state
		},
	}
	handler := newAuthHandler(&mockUserRepo{}, provider)

	rr := httptest.NewRecorder()
	handler.HandleAuthURL(rr, httptest.NewRequest(http.MethodGet, "/api/auth/oauth/url", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var resp AuthURLResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.URL == "" {
		t.Error("expected a URL in the response")
	}
	if gotState == "" {
		t.Error("expected a random state to be generated")
	}
}

func TestHandleCallback(t *testing.T) {
	t.Run("signs user in and redirects", func(t *testing.T) {
		repo := &mockUserRepo{
			GetByOAuthFunc: func(ctx context.Context, provider, oauthID string) (*user.User, error) {
				return &user.User{ID: "user-1", Email: "ana@example.com"}, nil
			},
		}
		handler := newAuthHandler(repo, nil)

		rr := httptest.NewRecorder()
		handler.HandleCallback(rr, httptest.NewRequest(http.MethodGet, "/api/auth/oauth/callback?code=abc", nil))

		if rr.Code != http.StatusFound {
			t.Fatalf("expected status 302, got %d: %s", rr.Code, rr.Body.String())
		}
		if loc := rr.Header().Get("Location"); loc != "/oauth-callback" {
			t.Errorf("expected redirect to /oauth-callback, got %q", loc)
		}
		cookie := authCookie(t, rr)
		if cookie == nil || cookie.Value == "" {
			t.Error("expected access_token cookie to be set")
		}
	})

	t.Run("provider error is rejected", func(t *testing.T) {
		handler := newAuthHandler(&mockUserRepo{}, nil)

		rr := httptest.NewRecorder()
		handler.HandleCallback(rr, httptest.NewRequest(http.MethodGet, "/api/auth/oauth/callback?error=access_denied", nil))

		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rr.Code)
		}
	})

	t.Run("missing code is rejected", func(t *testing.T) {
		handler := newAuthHandler(&mockUserRepo{}, nil)

		rr := httptest.NewRecorder()
		handler.HandleCallback(rr, httptest.NewRequest(http.MethodGet, "/api/auth/oauth/callback", nil))

		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rr.Code)
		}
	})
}
