package service

import (
	"context"
	"errors"
	"fmt"

	"stockpoint/internal/domain"
	"stockpoint/internal/repository"

	"go.uber.org/zap"
)

var (
	ErrNotAuthenticated = errors.New("no authenticated session")
	ErrNotAdministrator = errors.New("administrator privileges required")
)

// Session is the authenticated state of the interactive loop. Email and
// Admin are fixed for the session's lifetime; logging out and back in is
// the only way to change either.
type Session struct {
	Email string
	Admin bool
}

// AccountService defines the interface for account business logic and
// session handling. Exactly one session may be authenticated at a time.
type AccountService interface {
	Login(ctx context.Context, email, credential string) (bool, error)
	Logout()
	Current() (Session, bool)
	CreateAccount(ctx context.Context, name, email, credential string, admin bool) error
	DeleteAccount(ctx context.Context, email string) error
	ChangeName(ctx context.Context, newName string) error
	ChangeEmail(ctx context.Context, newEmail string) error
	ChangeCredential(ctx context.Context, newCredential string) error
}

type accountService struct {
	repo    repository.AccountRepository
	logger  *zap.Logger
	session *Session
}

// NewAccountService creates a new instance of AccountService
func NewAccountService(repo repository.AccountRepository, logger *zap.Logger) AccountService {
	return &accountService{
		repo:   repo,
		logger: logger,
	}
}

// Login authenticates against the account store. On success the session
// transitions to Authenticated with the administrator flag resolved once;
// on failure the session stays anonymous and the caller may simply retry
// (no lockout, no backoff).
func (s *accountService) Login(ctx context.Context, email, credential string) (bool, error) {
	ok, err := s.repo.Authenticate(ctx, email, credential)
	if err != nil {
		return false, fmt.Errorf("login failed: %w", err)
	}
	if !ok {
		s.logger.Info("Authentication failed", zap.String("email", email))
		return false, nil
	}

	s.session = &Session{
		Email: email,
		Admin: s.repo.IsAdministrator(ctx, email),
	}
	s.logger.Info("Session opened",
		zap.String("email", email),
		zap.Bool("admin", s.session.Admin),
	)
	return true, nil
}

// Logout discards the current session, returning to the anonymous state.
func (s *accountService) Logout() {
	if s.session != nil {
		s.logger.Info("Session closed", zap.String("email", s.session.Email))
	}
	s.session = nil
}

// Current returns the active session, if any.
func (s *accountService) Current() (Session, bool) {
	if s.session == nil {
		return Session{}, false
	}
	return *s.session, true
}

// CreateAccount registers a new account. Only an authenticated
// administrator may create accounts.
func (s *accountService) CreateAccount(ctx context.Context, name, email, credential string, admin bool) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}

	account := &domain.Account{
		Name:       name,
		Email:      email,
		Credential: credential,
		Admin:      admin,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// DeleteAccount removes an account by email. Only an authenticated
// administrator may delete accounts; deleting an unknown email is a no-op.
func (s *accountService) DeleteAccount(ctx context.Context, email string) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, email); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return nil
}

// ChangeName updates the display name of the logged-in account.
func (s *accountService) ChangeName(ctx context.Context, newName string) error {
	if s.session == nil {
		return ErrNotAuthenticated
	}

	if err := s.repo.UpdateName(ctx, s.session.Email, newName); err != nil {
		return fmt.Errorf("failed to change name: %w", err)
	}

	return nil
}

// ChangeEmail re-keys the logged-in account to a new email and refreshes
// the session so that subsequent operations use the new key.
func (s *accountService) ChangeEmail(ctx context.Context, newEmail string) error {
	if s.session == nil {
		return ErrNotAuthenticated
	}

	if err := s.repo.UpdateEmail(ctx, s.session.Email, newEmail); err != nil {
		return fmt.Errorf("failed to change email: %w", err)
	}

	s.session.Email = newEmail
	return nil
}

// ChangeCredential updates the credential of the logged-in account.
func (s *accountService) ChangeCredential(ctx context.Context, newCredential string) error {
	if s.session == nil {
		return ErrNotAuthenticated
	}

	if err := s.repo.UpdateCredential(ctx, s.session.Email, newCredential); err != nil {
		return fmt.Errorf("failed to change credential: %w", err)
	}

	return nil
}

func (s *accountService) requireAdmin() error {
	if s.session == nil {
		return ErrNotAuthenticated
	}
	if !s.session.Admin {
		return ErrNotAdministrator
	}
	return nil
}
