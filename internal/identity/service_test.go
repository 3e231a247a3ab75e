package identity

import (
	"context"
	"errors"
	"testing"
)

func validInput() RegisterInput {
	return RegisterInput{
		Email:         "alice@example.com",
		Name:          "Alice",
		AccountNumber: "1234567890",
		Password:      "correct-horse",
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	user, err := svc.Register(ctx, validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != RoleUser {
		t.Fatalf("expected User role at registration, got %s", user.Role)
	}

	authed, err := svc.Authenticate(ctx, "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, authed.ID)
	}
}

func TestAuthenticateNoEnumerationSignal(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Register(ctx, validInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPassword := svc.Authenticate(ctx, "alice@example.com", "not-the-password")
	_, unknownEmail := svc.Authenticate(ctx, "nobody@example.com", "not-the-password")

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("errors differ: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestAuthenticateCaseSensitiveEmail(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Register(ctx, validInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "Alice@example.com", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for case mismatch, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	cases := map[string]RegisterInput{
		"bad email":          {Email: "not-an-email", Name: "A", AccountNumber: "1234567890", Password: "longenough"},
		"missing name":       {Email: "a@b.co", Name: "", AccountNumber: "1234567890", Password: "longenough"},
		"short account":      {Email: "a@b.co", Name: "A", AccountNumber: "1234", Password: "longenough"},
		"alpha account":      {Email: "a@b.co", Name: "A", AccountNumber: "12345abcde", Password: "longenough"},
		"short password":     {Email: "a@b.co", Name: "A", AccountNumber: "1234567890", Password: "short"},
		"oversized account":  {Email: "a@b.co", Name: "A", AccountNumber: "123456789012345678901", Password: "longenough"},
	}
	for name, input := range cases {
		if _, err := svc.Register(ctx, input); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", name, err)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Register(ctx, validInput()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, validInput()); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSetRole(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	user, err := svc.Register(ctx, validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.SetRole(ctx, user.ID, RoleEmployee); err != nil {
		t.Fatalf("set role: %v", err)
	}
	if err := svc.SetRole(ctx, user.ID, Role("Superuser")); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown role, got %v", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "admin@example.com", "admin-secret"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	// Second call is a no-op, not a duplicate error.
	if err := svc.EnsureAdmin(ctx, "admin@example.com", "admin-secret"); err != nil {
		t.Fatalf("ensure admin again: %v", err)
	}

	admin, err := repo.FindByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("find admin: %v", err)
	}
	if admin.Role != RoleAdmin {
		t.Fatalf("expected Admin role, got %s", admin.Role)
	}
}

func TestParseRoleClosedSet(t *testing.T) {
	for _, valid := range []string{"Admin", "Employee", "User"} {
		if _, err := ParseRole(valid); err != nil {
			t.Errorf("ParseRole(%q): %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "admin", "root", "ADMIN"} {
		if _, err := ParseRole(invalid); err == nil {
			t.Errorf("ParseRole(%q): expected error", invalid)
		}
	}
}
