package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stockpoint/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("account with this email already exists")
)

// pgUniqueViolation is the SQLSTATE for a unique constraint violation.
const pgUniqueViolation = "23505"

// AccountRepository defines the interface for account data access.
//
// The database is the source of truth: every call round-trips to storage,
// no state is cached between calls.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, email string) error
	Authenticate(ctx context.Context, email, credential string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	UpdateName(ctx context.Context, email, newName string) error
	UpdateEmail(ctx context.Context, email, newEmail string) error
	UpdateCredential(ctx context.Context, email, newCredential string) error
	IsAdministrator(ctx context.Context, email string) bool
	Count(ctx context.Context) (int, error)
}

type accountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new instance of AccountRepository
func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create inserts a new account. Email uniqueness is not pre-checked; the
// database constraint surfaces as ErrAccountAlreadyExists.
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (name, email, credential, is_admin)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		account.Name,
		account.Email,
		account.Credential,
		account.Admin,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrAccountAlreadyExists
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// Delete removes the account matching email. Deleting a non-existent
// account is a no-op, not an error; the affected-row count is not inspected.
func (r *accountRepository) Delete(ctx context.Context, email string) error {
	query := `DELETE FROM accounts WHERE email = $1`

	if _, err := r.db.ExecContext(ctx, query, email); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return nil
}

// Authenticate reports whether a stored account matches both email and
// credential exactly. A storage failure propagates as an error rather than
// being interpreted as "not authenticated".
//
// Credentials are compared in plaintext for fidelity with the stored
// format. Replace with a salted one-way hash comparison (e.g. bcrypt)
// before any real deployment.
func (r *accountRepository) Authenticate(ctx context.Context, email, credential string) (bool, error) {
	query := `SELECT COUNT(*) FROM accounts WHERE email = $1 AND credential = $2`

	var count int
	if err := r.db.QueryRowContext(ctx, query, email, credential).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to authenticate account: %w", err)
	}

	return count > 0, nil
}

// FindByEmail retrieves an account by email.
func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `
		SELECT name, email, credential, is_admin
		FROM accounts
		WHERE email = $1
	`

	account := &domain.Account{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&account.Name,
		&account.Email,
		&account.Credential,
		&account.Admin,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account by email: %w", err)
	}

	return account, nil
}

// UpdateName changes the display name of the account keyed by email.
func (r *accountRepository) UpdateName(ctx context.Context, email, newName string) error {
	query := `UPDATE accounts SET name = $1 WHERE email = $2`

	if _, err := r.db.ExecContext(ctx, query, newName, email); err != nil {
		return fmt.Errorf("failed to update account name: %w", err)
	}

	return nil
}

// UpdateEmail re-keys the account: the current email selects the row, the
// new email replaces it. All future lookups must use the new email; callers
// holding a session for the old email are responsible for refreshing it.
func (r *accountRepository) UpdateEmail(ctx context.Context, email, newEmail string) error {
	query := `UPDATE accounts SET email = $1 WHERE email = $2`

	if _, err := r.db.ExecContext(ctx, query, newEmail, email); err != nil {
		return fmt.Errorf("failed to update account email: %w", err)
	}

	return nil
}

// UpdateCredential changes the credential of the account keyed by email.
func (r *accountRepository) UpdateCredential(ctx context.Context, email, newCredential string) error {
	query := `UPDATE accounts SET credential = $1 WHERE email = $2`

	if _, err := r.db.ExecContext(ctx, query, newCredential, email); err != nil {
		return fmt.Errorf("failed to update account credential: %w", err)
	}

	return nil
}

// IsAdministrator returns the stored administrator flag for the matching
// account. It fails closed: a missing row or any storage failure yields
// false, never true.
func (r *accountRepository) IsAdministrator(ctx context.Context, email string) bool {
	query := `SELECT is_admin FROM accounts WHERE email = $1`

	var admin bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&admin); err != nil {
		return false
	}

	return admin
}

// Count returns the number of stored accounts.
func (r *accountRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}

	return count, nil
}
