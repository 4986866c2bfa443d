package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const actorKey contextKey = "actor_id"

// Authenticator verifies the caller's bearer token and stores the subject
// claim as the acting user ID. The escrow core trusts this ID for its
// party/arbitrator checks; issuing tokens is the identity service's job.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, `{"error":"missing bearer token"}`, http.StatusUnauthorized)
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return a.secret, nil
		})
		if err != nil || !token.Valid {
			http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
			return
		}

		subject, err := token.Claims.GetSubject()
		if err != nil || subject == "" {
			http.Error(w, `{"error":"token has no subject"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), actorKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorID returns the authenticated user ID stored by the middleware.
func ActorID(ctx context.Context) string {
	actor, _ := ctx.Value(actorKey).(string)
	return actor
}
