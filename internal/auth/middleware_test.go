package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"stockroom/internal/auth"
	"stockroom/internal/models"
	"stockroom/internal/repo"
)

// Мини-роутер с admin-зоной за Authenticate + RequireRole(admin).
func newGatedRouter(t *testing.T) (*mux.Router, *auth.JWTProvider, *repo.UserStore) {
	t.Helper()
	users := repo.NewUserStore(memdb(t))
	tokens := auth.NewJWTProvider("test-secret", 60)

	r := mux.NewRouter()
	sub := r.PathPrefix("/admin").Subrouter()
	sub.Use(auth.Authenticate(tokens, users), auth.RequireRole(models.RoleAdmin))
	sub.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	return r, tokens, users
}

func doGet(r *mux.Router, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGateRejectsAnonymous(t *testing.T) {
	r, _, _ := newGatedRouter(t)
	if rec := doGet(r, "/admin/ping", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing token, got %d", rec.Code)
	}
}

func TestGateRejectsBadToken(t *testing.T) {
	r, _, _ := newGatedRouter(t)
	if rec := doGet(r, "/admin/ping", "garbage"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", rec.Code)
	}
}

func TestGateAllowsAdmin(t *testing.T) {
	r, tokens, users := newGatedRouter(t)
	admin := seedUser(t, users, "boss", "boss@example.com", "pw", models.RoleAdmin)
	tok, _, err := tokens.Issue(admin)
	if err != nil {
		t.Fatal(err)
	}
	if rec := doGet(r, "/admin/ping", tok); rec.Code != http.StatusOK {
		t.Fatalf("admin expected 200, got %d", rec.Code)
	}
}

func TestGateForbidsWrongRole(t *testing.T) {
	r, tokens, users := newGatedRouter(t)
	student := seedUser(t, users, "kid", "kid@example.com", "pw", models.RoleStudent)
	tok, _, err := tokens.Issue(student)
	if err != nil {
		t.Fatal(err)
	}
	if rec := doGet(r, "/admin/ping", tok); rec.Code != http.StatusForbidden {
		t.Fatalf("student expected 403, got %d", rec.Code)
	}
}

func TestGateForbidsUnknownRole(t *testing.T) {
	r, tokens, users := newGatedRouter(t)
	ghost := seedUser(t, users, "ghost", "ghost@example.com", "pw", models.RoleGuest)
	tok, _, err := tokens.Issue(ghost)
	if err != nil {
		t.Fatal(err)
	}
	// роль вне закрытого набора — 403, не 401
	if rec := doGet(r, "/admin/ping", tok); rec.Code != http.StatusForbidden {
		t.Fatalf("guest expected 403, got %d", rec.Code)
	}
}
