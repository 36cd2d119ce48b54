package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/nurdn/binarytalk-be/internal/apperr"
	"github.com/nurdn/binarytalk-be/internal/models"
)

// Claims defines the JWT claims structure.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type contextKey string

// AccountKey is the context key under which the middleware stores the
// authenticated account.
const AccountKey = contextKey("account")

// AccountGetter resolves a username to an account.
type AccountGetter interface {
	GetUser(username string) (models.Account, error)
}

// TokenManager signs and verifies bearer tokens with a shared secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager. ttl is the validity window of
// issued tokens.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Generate creates a new signed token for a username.
func (m *TokenManager) Generate(username string) (string, error) {
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse validates a token string and returns its claims.
func (m *TokenManager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Middleware protects routes with bearer-token authentication. On success the
// resolved account, minus its password hash, is stored on the request context
// and echoed JSON-encoded in the User response header.
func (m *TokenManager) Middleware(accounts AccountGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, apperr.Unauthorized("Unauthorized"))
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				respondError(w, apperr.Unauthorized("Unauthorized"))
				return
			}

			claims, err := m.Parse(parts[1])
			if err != nil {
				log.Warn().Err(err).Msg("Rejected bearer token")
				respondError(w, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			account, err := accounts.GetUser(claims.Username)
			if err != nil {
				respondError(w, err)
				return
			}

			view := account.PublicView()
			if blob, err := json.Marshal(view); err == nil {
				w.Header().Set("User", string(blob))
			}

			ctx := context.WithValue(r.Context(), AccountKey, view)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountFromContext returns the account injected by Middleware.
func AccountFromContext(ctx context.Context) (models.Account, bool) {
	account, ok := ctx.Value(AccountKey).(models.Account)
	return account, ok
}

func respondError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperr.StatusOf(err))
	json.NewEncoder(w).Encode(map[string]string{"errors": apperr.MessageOf(err)})
}
