package identity

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both unknown email and wrong password so the
// API gives no enumeration signal.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrValidation indicates malformed registration input.
var ErrValidation = errors.New("invalid input")

var (
	emailPattern   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	accountPattern = regexp.MustCompile(`^[0-9]{5,20}$`)
)

const minPasswordLength = 8

// Service manages user lifecycle and credential checks.
type Service struct {
	repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new account holder. Registration always yields the User
// role; elevated roles are granted afterwards by an admin.
func (s *Service) Register(ctx context.Context, input RegisterInput) (User, error) {
	if err := validateRegistration(input); err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:            uuid.New().String(),
		Email:         input.Email,
		AccountNumber: input.AccountNumber,
		Name:          input.Name,
		Role:          RoleUser,
		PasswordHash:  hash,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	return user, nil
}

// Authenticate verifies an email/password pair. Lookup is case-sensitive;
// unknown email and wrong password both return ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

// ChangePassword re-hashes and stores a new credential for the user.
func (s *Service) ChangePassword(ctx context.Context, userID, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ErrValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, userID, hash)
}

// SetRole assigns a role from the closed set. Route-level authorization
// restricts this to admins.
func (s *Service) SetRole(ctx context.Context, userID string, role Role) error {
	if _, err := ParseRole(string(role)); err != nil {
		return ErrValidation
	}
	return s.repo.UpdateRole(ctx, userID, role)
}

// EnsureAdmin creates the bootstrap admin account if it does not exist yet.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := User{
		ID:            uuid.New().String(),
		Email:         email,
		AccountNumber: "00000000",
		Name:          "Administrator",
		Role:          RoleAdmin,
		PasswordHash:  hash,
		CreatedAt:     time.Now().UTC(),
	}
	return s.repo.Create(ctx, admin)
}

func validateRegistration(input RegisterInput) error {
	if !emailPattern.MatchString(input.Email) {
		return ErrValidation
	}
	if input.Name == "" {
		return ErrValidation
	}
	if !accountPattern.MatchString(input.AccountNumber) {
		return ErrValidation
	}
	if len(input.Password) < minPasswordLength {
		return ErrValidation
	}
	return nil
}
