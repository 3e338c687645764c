package inventory

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes вешает /admin/* за переданной цепочкой middleware
// (аутентификация + роль admin).
func RegisterRoutes(r *mux.Router, h *Handler, mw ...mux.MiddlewareFunc) {
	sub := r.PathPrefix("/admin").Subrouter()
	sub.Use(mw...)
	sub.HandleFunc("/inventories", h.List).Methods(http.MethodGet)
	sub.HandleFunc("/inventory", h.Create).Methods(http.MethodPost)
	sub.HandleFunc("/inventory/{id}", h.Get).Methods(http.MethodGet)
	sub.HandleFunc("/inventory/{id}", h.Update).Methods(http.MethodPut)
	sub.HandleFunc("/inventory/{id}", h.Delete).Methods(http.MethodDelete)
}
