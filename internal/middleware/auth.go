package middleware

import (
	"context"
	"net/http"

	"StockKeeper/internal/auth"
)

type contextKey string

const userContextKey contextKey = "auth_user"

// WithAuth разбирает заголовок Authorization: Bearer <token> один раз на запрос.
// При валидном токене личность кладётся в контекст; иначе запрос идёт дальше
// анонимным — решение отдать 401 принимает защищённый хендлер.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := auth.ParseBearer(r.Header.Get("Authorization"))
			if err == nil {
				claims, perr := auth.ParseToken(raw, secret)
				if perr == nil {
					ctx := context.WithValue(r.Context(), userContextKey, claims)
					r = r.WithContext(ctx)
				} else {
					logger.Infow("auth: rejected bearer token", "error", perr)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext возвращает личность из контекста запроса, если токен прошёл проверку.
func GetUserFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(userContextKey).(*auth.Claims)
	return claims, ok
}
