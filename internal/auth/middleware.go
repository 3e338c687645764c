package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"stockroom/internal/models"
	"stockroom/internal/repo"
)

type ctxKey string

const userKey ctxKey = "auth.user"

// UserFrom достаёт аутентифицированного пользователя из контекста запроса.
func UserFrom(r *http.Request) *models.User {
	u, _ := r.Context().Value(userKey).(*models.User)
	return u
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// Authenticate проверяет Authorization: Bearer <jwt> и кладёт пользователя
// в контекст. Без валидного токена дальше не пускаем.
func Authenticate(tokens TokenProvider, users *repo.UserStore) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const p = "Bearer "
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, p) {
				writeError(w, http.StatusUnauthorized, "Unauthenticated.")
				return
			}
			claims, err := tokens.Verify(strings.TrimPrefix(h, p))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Unauthenticated.")
				return
			}
			id, err := claims.UserID()
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Unauthenticated.")
				return
			}
			u, err := users.ByID(r.Context(), id)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Unauthenticated.")
				return
			}
			ctx := context.WithValue(r.Context(), userKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole пропускает только пользователей, чья роль точно совпадает
// с одной из разрешённых. Без иерархий и частичных совпадений.
func RequireRole(roles ...models.Role) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := UserFrom(r)
			if u == nil {
				writeError(w, http.StatusUnauthorized, "Unauthenticated.")
				return
			}
			if !u.Role.Known() {
				writeError(w, http.StatusForbidden, "User not found or invalid.")
				return
			}
			for _, role := range roles {
				if u.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "Forbidden. You do not have the required role.")
		})
	}
}
