package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clubmanager/internal/security"
)

func TestRequireAuth(t *testing.T) {
	tokens := security.NewTokenManager("test-key", time.Hour)
	middleware := NewMiddleware(tokens)

	var seenClaims *security.Claims
	protected := middleware.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		seenClaims = GetClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("missing token", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("GET", "/api/members/1", nil)

		protected(recorder, request)

		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", recorder.Code)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("GET", "/api/members/1", nil)
		request.Header.Set("Authorization", "Basic abc123")

		protected(recorder, request)

		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", recorder.Code)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("GET", "/api/members/1", nil)
		request.Header.Set("Authorization", "Bearer not.a.token")

		protected(recorder, request)

		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", recorder.Code)
		}
	})

	t.Run("valid token reaches the handler with claims", func(t *testing.T) {
		token, err := tokens.Issue("office@club.example", "admin")
		if err != nil {
			t.Fatalf("Issue() error: %v", err)
		}

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("GET", "/api/members/1", nil)
		request.Header.Set("Authorization", "Bearer "+token)

		protected(recorder, request)

		if recorder.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", recorder.Code)
		}
		if seenClaims == nil || seenClaims.Subject != "office@club.example" {
			t.Errorf("claims = %+v, want subject office@club.example", seenClaims)
		}
	})
}
