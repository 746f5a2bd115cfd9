package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	api "github.com/rogerio-castellano/pos-tracker/internal/http"
	handler "github.com/rogerio-castellano/pos-tracker/internal/http/handlers"
)

func TestRegisterHandler(t *testing.T) {
	r := api.NewRouter(nil)

	w := doJSON(r, http.MethodPost, "/register", "", handler.CredentialsRequest{Username: "newshop", Password: "secret123"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var result handler.RegisterResult
	json.NewDecoder(w.Body).Decode(&result)
	if result.Token == "" {
		t.Error("expected a token with registration")
	}

	// duplicate username
	if w := doJSON(r, http.MethodPost, "/register", "", handler.CredentialsRequest{Username: "newshop", Password: "secret123"}); w.Code != http.StatusConflict {
		t.Errorf("expected 409 for a duplicate username, got %d", w.Code)
	}
}

func TestRegisterHandler_Invalid(t *testing.T) {
	r := api.NewRouter(nil)

	tests := []struct {
		name  string
		creds handler.CredentialsRequest
	}{
		{"missing credentials", handler.CredentialsRequest{}},
		{"short username", handler.CredentialsRequest{Username: "ab", Password: "secret123"}},
		{"short password", handler.CredentialsRequest{Username: "shop", Password: "12345"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := doJSON(r, http.MethodPost, "/register", "", tt.creds); w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	r := api.NewRouter(nil)

	w := doJSON(r, http.MethodPost, "/login", "", handler.CredentialsRequest{Username: "admin", Password: "secret"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var result handler.LoginResult
	json.NewDecoder(w.Body).Decode(&result)
	if result.Token == "" || result.RefreshToken == "" {
		t.Errorf("expected both tokens, got %+v", result)
	}

	if w := doJSON(r, http.MethodPost, "/login", "", handler.CredentialsRequest{Username: "admin", Password: "wrong"}); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for a bad password, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodPost, "/login", "", handler.CredentialsRequest{Username: "ghost", Password: "secret"}); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for an unknown user, got %d", w.Code)
	}
}

func TestRefreshHandler_RotatesToken(t *testing.T) {
	r := api.NewRouter(nil)

	w := doJSON(r, http.MethodPost, "/login", "", handler.CredentialsRequest{Username: "admin", Password: "secret"})
	var login handler.LoginResult
	json.NewDecoder(w.Body).Decode(&login)

	w = doJSON(r, http.MethodPost, "/refresh", "", handler.RefreshRequest{Username: "admin", RefreshToken: login.RefreshToken})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var refreshed handler.LoginResult
	json.NewDecoder(w.Body).Decode(&refreshed)
	if refreshed.Token == "" {
		t.Error("expected a fresh JWT")
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Error("expected the refresh token rotated")
	}

	// the old refresh token is spent
	if w := doJSON(r, http.MethodPost, "/refresh", "", handler.RefreshRequest{Username: "admin", RefreshToken: login.RefreshToken}); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for a spent refresh token, got %d", w.Code)
	}
}
