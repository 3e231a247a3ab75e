package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates the payment id is unknown.
	ErrNotFound = errors.New("payment not found")

	// ErrInvalidTransition indicates the payment exists but is not in the
	// state the transition requires.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Repository persists payments. UpdateStatus must be a single atomic
// conditional write: the status changes only if the stored value still
// matches the expected prior state, so concurrent transitions cannot both
// pass the precondition.
type Repository interface {
	Create(ctx context.Context, p Payment) error
	Get(ctx context.Context, id string) (Payment, error)
	ListAll(ctx context.Context) ([]Payment, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Payment, error)
	UpdateStatus(ctx context.Context, id string, from, to Status) (Payment, error)
}

// PostgresRepository stores payments in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const paymentColumns = `id, owner_id, amount_cents, currency, swift_code, beneficiary_account, reference, status, created_at, updated_at`

// Create inserts a payment record.
func (r *PostgresRepository) Create(ctx context.Context, p Payment) error {
	paymentID, err := uuid.Parse(p.ID)
	if err != nil {
		return err
	}
	ownerID, err := uuid.Parse(p.OwnerID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO payments (`+paymentColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		paymentID, ownerID, p.AmountCents, p.Currency, p.SwiftCode, p.BeneficiaryAccount,
		p.Reference, string(p.Status), p.CreatedAt.UTC(), p.UpdatedAt.UTC())
	return err
}

// Get fetches a payment by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Payment, error) {
	paymentID, err := uuid.Parse(id)
	if err != nil {
		return Payment{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, paymentID)
	return scanPayment(row)
}

// ListAll returns every payment, oldest first. Admin verification queue.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]Payment, error) {
	rows, err := r.db.Query(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

// ListByOwner returns the payments submitted by one user, oldest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]Payment, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, ErrNotFound
	}
	rows, err := r.db.Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE owner_id = $1 ORDER BY created_at`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

// UpdateStatus performs the guarded transition in one statement. Zero rows
// matched means either the id is unknown or another caller already moved the
// payment on; a follow-up read disambiguates.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, from, to Status) (Payment, error) {
	paymentID, err := uuid.Parse(id)
	if err != nil {
		return Payment{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `UPDATE payments SET status = $1, updated_at = now()
        WHERE id = $2 AND status = $3
        RETURNING `+paymentColumns, string(to), paymentID, string(from))
	p, err := scanPayment(row)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Payment{}, err
	}
	if _, getErr := r.Get(ctx, id); getErr != nil {
		return Payment{}, getErr
	}
	return Payment{}, ErrInvalidTransition
}

func scanPayment(row pgx.Row) (Payment, error) {
	var (
		id        uuid.UUID
		ownerID   uuid.UUID
		status    string
		createdAt time.Time
		updatedAt time.Time
		p         Payment
	)
	err := row.Scan(&id, &ownerID, &p.AmountCents, &p.Currency, &p.SwiftCode,
		&p.BeneficiaryAccount, &p.Reference, &status, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Payment{}, ErrNotFound
		}
		return Payment{}, err
	}
	parsed, err := ParseStatus(status)
	if err != nil {
		return Payment{}, err
	}
	p.ID = id.String()
	p.OwnerID = ownerID.String()
	p.Status = parsed
	p.CreatedAt = createdAt.UTC()
	p.UpdatedAt = updatedAt.UTC()
	return p, nil
}

func collectPayments(rows pgx.Rows) ([]Payment, error) {
	payments := []Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
