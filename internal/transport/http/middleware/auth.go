package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"epms/internal/domain/auth"
	"epms/internal/transport/http/api"
)

type ctxKey int

const (
	ctxKeyUser ctxKey = iota
	ctxKeyTokenHash
)

// SessionStore answers whether a token is still live, so a revoked
// session stops working before its JWT expires.
type SessionStore interface {
	SessionValid(ctx context.Context, userID int64, tokenHash string) (bool, error)
}

// Auth decorates the request context with the authenticated user when a
// valid bearer token is presented. It never rejects: route guards do
// that via RequireAuth.
func Auth(secret string, sessions SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			tokenHash := HashToken(token)
			if sessions != nil {
				valid, err := sessions.SessionValid(r.Context(), claims.UserID, tokenHash)
				if err != nil || !valid {
					next.ServeHTTP(w, r)
					return
				}
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, auth.UserContext{
				UserID:   claims.UserID,
				Username: claims.Username,
				Role:     claims.Role,
			})
			ctx = context.WithValue(ctx, ctxKeyTokenHash, tokenHash)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that did not authenticate.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "please login", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetUser(ctx context.Context) (auth.UserContext, bool) {
	user, ok := ctx.Value(ctxKeyUser).(auth.UserContext)
	return user, ok
}

func GetTokenHash(ctx context.Context) string {
	if hash, ok := ctx.Value(ctxKeyTokenHash).(string); ok {
		return hash
	}
	return ""
}

func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
