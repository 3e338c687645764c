package auth

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes вешает /auth/*: login — публичный,
// me и refresh — только с валидным токеном.
func RegisterRoutes(r *mux.Router, h *Handler, authn mux.MiddlewareFunc) {
	pub := r.PathPrefix("/auth").Subrouter()
	pub.HandleFunc("/login", h.Login).Methods(http.MethodPost)

	priv := r.PathPrefix("/auth").Subrouter()
	priv.Use(authn)
	priv.HandleFunc("/me", h.Me).Methods(http.MethodGet)
	priv.HandleFunc("/refresh", h.Refresh).Methods(http.MethodPost)
}
