package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nurdn/binarytalk-be/internal/apperr"
	"github.com/nurdn/binarytalk-be/internal/models"
)

type stubAccounts struct {
	getFn func(username string) (models.Account, error)
}

func (s *stubAccounts) GetUser(username string) (models.Account, error) {
	return s.getFn(username)
}

var testAccount = models.Account{
	ID:           "acc-1",
	Username:     "ana",
	Email:        "a@x.com",
	Name:         "Ana",
	ProfilePic:   "pics/ana.png",
	PasswordHash: "$2a$10$notforclients",
}

func TestGenerateParse(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	tokenStr, err := m.Generate("ana")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := m.Parse(tokenStr)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Username != "ana" {
		t.Errorf("username = %q", claims.Username)
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 59*time.Minute || ttl > 61*time.Minute {
		t.Errorf("ttl = %v, want ~1h", ttl)
	}
}

func TestMiddleware(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	validToken, err := m.Generate("ana")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	expiredToken, err := NewTokenManager("secret", -time.Minute).Generate("ana")
	if err != nil {
		t.Fatalf("generate expired: %v", err)
	}
	foreignToken, err := NewTokenManager("other-secret", time.Hour).Generate("ana")
	if err != nil {
		t.Fatalf("generate foreign: %v", err)
	}

	found := func(username string) (models.Account, error) { return testAccount, nil }
	missing := func(username string) (models.Account, error) {
		return models.Account{}, apperr.NotFound("User not found")
	}

	tests := []struct {
		name       string
		header     string
		getFn      func(string) (models.Account, error)
		wantStatus int
	}{
		{name: "missing header", header: "", getFn: found, wantStatus: http.StatusUnauthorized},
		{name: "not a bearer scheme", header: "Basic abc", getFn: found, wantStatus: http.StatusUnauthorized},
		{name: "missing token part", header: "Bearer", getFn: found, wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not.a.jwt", getFn: found, wantStatus: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer " + expiredToken, getFn: found, wantStatus: http.StatusUnauthorized},
		{name: "bad signature", header: "Bearer " + foreignToken, getFn: found, wantStatus: http.StatusUnauthorized},
		{name: "account gone", header: "Bearer " + validToken, getFn: missing, wantStatus: http.StatusNotFound},
		{name: "success", header: "Bearer " + validToken, getFn: found, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var nextCalled bool
			var ctxAccount models.Account
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				ctxAccount, _ = AccountFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			handler := m.Middleware(&stubAccounts{getFn: tt.getFn})(next)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body: %s", w.Code, tt.wantStatus, w.Body.String())
			}

			if tt.wantStatus != http.StatusOK {
				if nextCalled {
					t.Error("next handler ran on a rejected request")
				}
				var body map[string]string
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
					t.Fatalf("error body is not JSON: %v", err)
				}
				if body["errors"] == "" {
					t.Error("error envelope missing message")
				}
				if strings.Contains(w.Body.String(), "ana") || w.Header().Get("User") != "" {
					t.Error("account data exposed on a rejected request")
				}
				return
			}

			if !nextCalled {
				t.Fatal("next handler did not run")
			}
			if ctxAccount.Username != "ana" || ctxAccount.PasswordHash != "" {
				t.Errorf("context account = %+v", ctxAccount)
			}

			headerBlob := w.Header().Get("User")
			var exposed map[string]interface{}
			if err := json.Unmarshal([]byte(headerBlob), &exposed); err != nil {
				t.Fatalf("User header is not JSON: %v", err)
			}
			if exposed["username"] != "ana" || exposed["email"] != "a@x.com" {
				t.Errorf("User header = %s", headerBlob)
			}
			if strings.Contains(headerBlob, "notforclients") {
				t.Error("password hash leaked in User header")
			}
		})
	}
}
