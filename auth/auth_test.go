package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/xraph/prospect/auth"
)

var secret = []byte("some secret string")

func TestJWTAuthenticator(t *testing.T) {
	a := auth.NewJWTAuthenticator(secret)
	valid, err := a.Sign("user-1", "jane", time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	expired, err := a.Sign("user-1", "jane", -time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	foreign, err := auth.NewJWTAuthenticator([]byte("other secret")).Sign("user-1", "", time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid", valid, false},
		{"empty", "", true},
		{"garbage", "not-a-jwt", true},
		{"expired", expired, true},
		{"wrong secret", foreign, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			id, err := a.Authenticate(context.Background(), tt.token)
			if tt.wantErr {
				if !errors.Is(err, auth.ErrUnauthorized) {
					t.Fatalf("expected ErrUnauthorized, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate: %v", err)
			}
			if id.Subject != "user-1" || id.Username != "jane" {
				t.Errorf("identity = %+v", id)
			}
		})
	}
}

func TestJWTAuthenticator_EmptySecret(t *testing.T) {
	a := auth.NewJWTAuthenticator(nil)
	if _, err := a.Authenticate(context.Background(), "anything"); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestNoopAuthenticator(t *testing.T) {
	id, err := auth.NoopAuthenticator{}.Authenticate(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Subject != "anonymous" {
		t.Errorf("subject = %q", id.Subject)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		if got := auth.BearerToken(r); got != tt.want {
			t.Errorf("BearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestMiddleware(t *testing.T) {
	a := auth.NewJWTAuthenticator(secret)
	token, err := a.Sign("user-1", "jane", time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFrom(r.Context())
		if !ok {
			t.Error("identity missing from context")
			return
		}
		_, _ = w.Write([]byte(id.Username))
	})
	h := auth.Middleware(a, next)

	t.Run("authorized", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/business/1/status", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != http.StatusOK || w.Body.String() != "jane" {
			t.Errorf("got %d %q", w.Code, w.Body.String())
		}
	})

	t.Run("missing header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/business/1/status", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"error":"not authorized"`) {
			t.Errorf("body = %q", w.Body.String())
		}
	})

	t.Run("bad token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/business/1/status", nil)
		r.Header.Set("Authorization", "Bearer nope")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
	})
}
