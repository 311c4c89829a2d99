package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"wordapp/pkg/logger"
)

type contextKey string

const credentialKey contextKey = "credential"

// Credential returns the bearer token the auth middleware attached to the
// request, or "" when the request never passed through it.
func Credential(r *http.Request) string {
	token, _ := r.Context().Value(credentialKey).(string)
	return token
}

// AuthMiddleware extracts the caller's bearer credential and rejects requests
// without one. The token itself is opaque to us: the storage provider is the
// authority on whether it is valid. The one local check is a best-effort
// expiry peek on JWT-shaped tokens, which saves a doomed upstream round trip.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const prefix = "Bearer "
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, prefix) {
			unauthorized(w, "No access token provided")
			return
		}
		tokenString := strings.TrimSpace(authHeader[len(prefix):])
		if tokenString == "" {
			unauthorized(w, "No access token provided")
			return
		}

		if expired(tokenString) {
			logger.Sugar.Debug("Rejected request with expired bearer token")
			unauthorized(w, "Your session has expired. Please sign in again.")
			return
		}

		ctx := context.WithValue(r.Context(), credentialKey, tokenString)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// expired reports whether the token is a JWT whose exp claim has passed.
// Opaque tokens (Google OAuth access tokens are not JWTs) always pass.
func expired(tokenString string) bool {
	if strings.Count(tokenString, ".") != 2 {
		return false
	}
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Now().After(exp.Time)
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
