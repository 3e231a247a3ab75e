package payment

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a payment. Transitions only ever move
// forward through the chain Pending -> Verified -> Processed.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusVerified  Status = "Verified"
	StatusProcessed Status = "Processed"
)

// ParseStatus maps a stored column value onto the closed status set.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusVerified, StatusProcessed:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown payment status %q", s)
	}
}

// Next returns the successor state. Processed is terminal and reports ok=false.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusPending:
		return StatusVerified, true
	case StatusVerified:
		return StatusProcessed, true
	default:
		return "", false
	}
}

// Payment is an international payment instruction submitted by a customer.
// Amounts are stored in minor units of the payment currency.
type Payment struct {
	ID                 string
	OwnerID            string
	AmountCents        int64
	Currency           string
	SwiftCode          string
	BeneficiaryAccount string
	Reference          string
	Status             Status
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
