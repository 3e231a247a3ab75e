package payment

import (
	"context"
	"errors"
	"math"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/swiftpay/swiftpay/internal/notification"
)

// ErrValidation indicates a submitted payment failed field validation.
var ErrValidation = errors.New("payment validation failed")

var (
	swiftPattern   = regexp.MustCompile(`^[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}([A-Z0-9]{3})?$`)
	accountPattern = regexp.MustCompile(`^[0-9]{5,20}$`)
)

// knownCurrencies is the recognized ISO 4217 subset accepted for submission.
var knownCurrencies = map[string]struct{}{
	"ZAR": {}, "USD": {}, "EUR": {}, "GBP": {}, "JPY": {}, "CHF": {},
	"AUD": {}, "CAD": {}, "CNY": {}, "INR": {}, "NGN": {}, "KES": {},
	"XAF": {}, "XOF": {}, "BWP": {}, "MZN": {}, "NAD": {}, "ZMW": {},
}

// Service owns the payment state machine: submission into Pending and the
// admin-gated Pending -> Verified -> Processed transitions.
type Service struct {
	repo     Repository
	notifier notification.Notifier
}

// NewService constructs the payment service.
func NewService(repo Repository, notifier notification.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// SubmitInput carries a customer's payment instruction. Amount is a decimal
// in major currency units with at most two fractional digits.
type SubmitInput struct {
	Amount             float64
	Currency           string
	SwiftCode          string
	BeneficiaryAccount string
	Reference          string
}

// Submit validates the instruction and records a new Pending payment.
func (s *Service) Submit(ctx context.Context, ownerID string, input SubmitInput) (Payment, error) {
	cents, err := toCents(input.Amount)
	if err != nil {
		return Payment{}, err
	}
	if _, ok := knownCurrencies[input.Currency]; !ok {
		return Payment{}, ErrValidation
	}
	if !swiftPattern.MatchString(input.SwiftCode) {
		return Payment{}, ErrValidation
	}
	if !accountPattern.MatchString(input.BeneficiaryAccount) {
		return Payment{}, ErrValidation
	}

	now := time.Now().UTC()
	p := Payment{
		ID:                 uuid.New().String(),
		OwnerID:            ownerID,
		AmountCents:        cents,
		Currency:           input.Currency,
		SwiftCode:          input.SwiftCode,
		BeneficiaryAccount: input.BeneficiaryAccount,
		Reference:          input.Reference,
		Status:             StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Payment{}, err
	}

	s.publish(ctx, notification.KindPaymentSubmitted, p)
	return p, nil
}

// Verify moves a Pending payment to Verified. The transition is a single
// conditional write; a payment already past Pending yields
// ErrInvalidTransition, never a silent success.
func (s *Service) Verify(ctx context.Context, paymentID string) (Payment, error) {
	return s.transition(ctx, paymentID, StatusPending, notification.KindPaymentVerified)
}

// Process moves a Verified payment to the terminal Processed state.
func (s *Service) Process(ctx context.Context, paymentID string) (Payment, error) {
	return s.transition(ctx, paymentID, StatusVerified, notification.KindPaymentProcessed)
}

func (s *Service) transition(ctx context.Context, paymentID string, from Status, kind string) (Payment, error) {
	to, ok := from.Next()
	if !ok {
		return Payment{}, ErrInvalidTransition
	}
	p, err := s.repo.UpdateStatus(ctx, paymentID, from, to)
	if err != nil {
		return Payment{}, err
	}
	s.publish(ctx, kind, p)
	return p, nil
}

// Get fetches one payment by id.
func (s *Service) Get(ctx context.Context, paymentID string) (Payment, error) {
	return s.repo.Get(ctx, paymentID)
}

// ListAll returns the full payment queue for admin review.
func (s *Service) ListAll(ctx context.Context) ([]Payment, error) {
	return s.repo.ListAll(ctx)
}

// ListOwn returns the caller's payment history.
func (s *Service) ListOwn(ctx context.Context, ownerID string) ([]Payment, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) publish(ctx context.Context, kind string, p Payment) {
	if s.notifier == nil {
		return
	}
	_ = s.notifier.Send(ctx, notification.Message{
		Kind:      kind,
		PaymentID: p.ID,
		OwnerID:   p.OwnerID,
		Status:    string(p.Status),
	})
}

// toCents converts a decimal amount in major units to minor units, rejecting
// non-positive values and sub-cent precision.
func toCents(amount float64) (int64, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, ErrValidation
	}
	scaled := amount * 100
	cents := math.Round(scaled)
	if math.Abs(scaled-cents) > 1e-6 {
		return 0, ErrValidation
	}
	return int64(cents), nil
}
