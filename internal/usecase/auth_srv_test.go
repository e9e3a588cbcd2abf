package usecase

import (
	"context"
	"testing"

	"store-ratings/internal/data/entity"
	"store-ratings/internal/dto/request"
	"store-ratings/pkg/apperr"
	"store-ratings/pkg/utils"
)

func testTokens() *utils.TokenManager {
	return utils.NewTokenManager(utils.JWTConfig{
		Secret:      "test-secret",
		ExpiryHours: 1,
	})
}

func TestRegisterAndLogin(t *testing.T) {
	repo, _, _, _ := newTestRepo()
	svc := NewAuthService(repo, testTokens(), testLogger())

	registered, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "New User",
		Email:    "new@test.dev",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if registered.User.Role != entity.RoleNormalUser {
		t.Fatalf("self registration must produce a normal user, got %s", registered.User.Role)
	}
	if registered.Token == "" {
		t.Fatalf("register returned no token")
	}

	loggedIn, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "new@test.dev",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if loggedIn.User.ID != registered.User.ID {
		t.Fatalf("login returned a different user")
	}

	claims, err := testTokens().Parse(loggedIn.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Subject != registered.User.ID {
		t.Fatalf("token subject %s, want %s", claims.Subject, registered.User.ID)
	}
	if claims.Role != string(entity.RoleNormalUser) {
		t.Fatalf("token role %s, want %s", claims.Role, entity.RoleNormalUser)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo, _, _, _ := newTestRepo()
	svc := NewAuthService(repo, testTokens(), testLogger())

	req := &request.RegisterRequest{
		Name:     "New User",
		Email:    "dup@test.dev",
		Password: "secret123",
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), req)
	assertKind(t, err, apperr.KindConflict)
}

func TestLoginWrongCredentials(t *testing.T) {
	repo, _, _, _ := newTestRepo()
	svc := NewAuthService(repo, testTokens(), testLogger())

	if _, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "New User",
		Email:    "user@test.dev",
		Password: "secret123",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Unknown email and wrong password must be indistinguishable
	_, unknownErr := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "nobody@test.dev",
		Password: "secret123",
	})
	assertKind(t, unknownErr, apperr.KindAuthentication)

	_, wrongErr := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "user@test.dev",
		Password: "wrong-password",
	})
	assertKind(t, wrongErr, apperr.KindAuthentication)

	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("credential failures leak which part was wrong: %q vs %q",
			unknownErr.Error(), wrongErr.Error())
	}
}

func TestRegisterValidation(t *testing.T) {
	repo, _, _, _ := newTestRepo()
	svc := NewAuthService(repo, testTokens(), testLogger())

	cases := []request.RegisterRequest{
		{Name: "A", Email: "short-name@test.dev", Password: "secret123"},
		{Name: "No Email", Email: "", Password: "secret123"},
		{Name: "Bad Email", Email: "not-an-email", Password: "secret123"},
		{Name: "Short Password", Email: "short-pass@test.dev", Password: "abc"},
	}
	for _, req := range cases {
		_, err := svc.Register(context.Background(), &req)
		assertKind(t, err, apperr.KindValidation)
	}
}
