package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"store-ratings/internal/data/entity"
	"store-ratings/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func testTokens() *utils.TokenManager {
	return utils.NewTokenManager(utils.JWTConfig{
		Secret:      "test-secret",
		ExpiryHours: 1,
	})
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	called := false
	handler := Authenticate(testTokens(), zap.NewNop())(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/stores", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Fatalf("handler must not run without a token")
	}
}

func TestAuthenticateRejectsMalformedHeader(t *testing.T) {
	for _, header := range []string{"Token abc", "Bearer", "abc"} {
		called := false
		handler := Authenticate(testTokens(), zap.NewNop())(okHandler(&called))

		req := httptest.NewRequest(http.MethodGet, "/api/stores", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
		if called {
			t.Fatalf("header %q: handler must not run", header)
		}
	}
}

func TestAuthenticateRejectsInvalidToken(t *testing.T) {
	called := false
	handler := Authenticate(testTokens(), zap.NewNop())(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/stores", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Fatalf("handler must not run with a garbage token")
	}
}

func TestAuthenticatePassesIdentityThrough(t *testing.T) {
	tokens := testTokens()
	userID := uuid.New()
	token, _, err := tokens.Generate(userID, string(entity.RoleNormalUser))
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	var gotID uuid.UUID
	var gotRole string
	handler := Authenticate(tokens, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = utils.GetUserIDFromContext(r.Context())
		gotRole, _ = utils.GetRoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/stores", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != userID {
		t.Fatalf("context user ID %s, want %s", gotID, userID)
	}
	if gotRole != string(entity.RoleNormalUser) {
		t.Fatalf("context role %s, want %s", gotRole, entity.RoleNormalUser)
	}
}

func TestRequireRolesEnforcesSet(t *testing.T) {
	tokens := testTokens()

	cases := []struct {
		role    entity.UserRole
		allowed []entity.UserRole
		want    int
	}{
		{entity.RoleSystemAdmin, []entity.UserRole{entity.RoleSystemAdmin}, http.StatusOK},
		{entity.RoleNormalUser, []entity.UserRole{entity.RoleSystemAdmin}, http.StatusForbidden},
		{entity.RoleStoreOwner, []entity.UserRole{entity.RoleSystemAdmin, entity.RoleStoreOwner}, http.StatusOK},
		{entity.RoleNormalUser, []entity.UserRole{entity.RoleSystemAdmin, entity.RoleStoreOwner}, http.StatusForbidden},
	}

	for _, tc := range cases {
		token, _, err := tokens.Generate(uuid.New(), string(tc.role))
		if err != nil {
			t.Fatalf("token generation failed: %v", err)
		}

		called := false
		handler := Authenticate(tokens, zap.NewNop())(
			RequireRoles(zap.NewNop(), tc.allowed...)(okHandler(&called)))

		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != tc.want {
			t.Fatalf("role %s against %v: expected %d, got %d",
				tc.role, tc.allowed, tc.want, rec.Code)
		}
		if tc.want == http.StatusOK && !called {
			t.Fatalf("role %s against %v: handler not reached", tc.role, tc.allowed)
		}
		if tc.want != http.StatusOK && called {
			t.Fatalf("role %s against %v: handler must not run", tc.role, tc.allowed)
		}
	}
}

func TestRequireRolesWithoutIdentity(t *testing.T) {
	called := false
	handler := RequireRoles(zap.NewNop(), entity.RoleSystemAdmin)(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Fatalf("handler must not run without identity")
	}
}
