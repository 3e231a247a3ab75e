package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/swiftpay/swiftpay/internal/identity"
)

func newTestService(t *testing.T) (*Service, *identity.Service) {
	t.Helper()
	ids := identity.NewService(identity.NewMemoryRepository())
	tokens := NewTokenManager("secret", "swiftpay", "swiftpay-api", time.Minute)
	return NewService(ids, tokens), ids
}

func TestLoginIssuesRoleBearingToken(t *testing.T) {
	svc, ids := newTestService(t)
	ctx := context.Background()

	user, err := ids.Register(ctx, identity.RegisterInput{
		Email:         "bob@example.com",
		Name:          "Bob",
		AccountNumber: "9876543210",
		Password:      "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := ids.SetRole(ctx, user.ID, identity.RoleEmployee); err != nil {
		t.Fatalf("set role: %v", err)
	}

	result, err := svc.Login(ctx, "bob@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Role != identity.RoleEmployee {
		t.Fatalf("expected Employee role in result, got %s", result.Role)
	}
	if result.ExpiresIn <= 0 {
		t.Fatalf("expected positive expires_in, got %d", result.ExpiresIn)
	}

	principal, err := svc.tokens.Verify(result.Token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if principal.UserID != user.ID || principal.Role != identity.RoleEmployee {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Login(context.Background(), "ghost@example.com", "whatever1"); !errors.Is(err, identity.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
