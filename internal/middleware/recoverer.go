package middleware

import (
	"net/http"
	"runtime/debug"

	"stockroom/internal/logs"
	"stockroom/internal/models"
)

// Recoverer перехватывает панику в обработчике, пишет лог со стеком
// и возвращает 500 в общем формате конверта. Открытых транзакций здесь
// быть не может: все транзакции закрываются на уровне store.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				reqid := GetRequestID(r)
				logs.Logger.Errorf("panic: %v reqid=%s uri=%s method=%s\nstack:\n%s",
					rec, reqid, r.RequestURI, r.Method, string(debug.Stack()))
				models.Failure("unexpected server error (see logs by reqid "+reqid+")").
					Code(http.StatusInternalServerError).Write(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
