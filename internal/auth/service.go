package auth

import (
	"context"
	"time"

	"github.com/swiftpay/swiftpay/internal/identity"
)

// Service glues credential checks to token issuance.
type Service struct {
	ids    *identity.Service
	tokens *TokenManager
}

// NewService constructs the authentication service.
func NewService(ids *identity.Service, tokens *TokenManager) *Service {
	return &Service{ids: ids, tokens: tokens}
}

// LoginResult is returned to a successfully authenticated caller.
type LoginResult struct {
	Token     string        `json:"token"`
	Role      identity.Role `json:"role"`
	ExpiresIn int64         `json:"expires_in"`
}

// Login validates credentials and issues a role-bearing access token.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.ids.Authenticate(ctx, email, password)
	if err != nil {
		return LoginResult{}, err
	}

	token, exp, err := s.tokens.Issue(user)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Token:     token,
		Role:      user.Role,
		ExpiresIn: int64(time.Until(exp).Seconds()),
	}, nil
}
