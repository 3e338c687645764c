package auth

import (
	"encoding/json"
	"errors"
	"net/http"
)

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

type Handler struct {
	svc *Service
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type loginRequest struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

// Login: POST /auth/login {user, password} → 200 {access_token,...}.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	resp, err := h.svc.Login(r.Context(), req.User, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Me: GET /auth/me — текущий пользователь по токену.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u := UserFrom(r)
	if u == nil {
		// маршрут смонтирован без Authenticate — не падаем
		writeError(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// Refresh: POST /auth/refresh — свежий токен для текущего пользователя.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	u := UserFrom(r)
	if u == nil {
		writeError(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}
	resp, err := h.svc.Refresh(u)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
