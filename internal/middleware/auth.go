package middleware

import (
	"context"
	"net/http"
	"strings"

	"rabbits_den/pkg/resp"
	"rabbits_den/pkg/token"
)

type ctxKey struct{}

// WithUserID кладет ID пользователя в контекст
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserIDFromContext ID пользователя, проверенный Auth
func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(ctxKey{}).(int)
	return id, ok && id > 0
}

// Auth пропускает запрос только с валидным "Authorization: Bearer <token>"
func Auth(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				resp.WriteError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := token.VerifyToken(raw, secretKey)
			if err != nil {
				resp.WriteError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			userID, err := token.UserID(claims)
			if err != nil {
				resp.WriteError(w, http.StatusUnauthorized, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
