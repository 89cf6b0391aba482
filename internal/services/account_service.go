// Package services holds the account lifecycle engine: signup, verification,
// and login orchestration on top of the credential store and the mailer.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/verigate/verigate/internal/models"
	"github.com/verigate/verigate/internal/store"
	"github.com/verigate/verigate/pkg/crypto"
	apperrors "github.com/verigate/verigate/pkg/errors"
	"github.com/verigate/verigate/pkg/logger"
	"github.com/verigate/verigate/pkg/mail"
	"github.com/verigate/verigate/pkg/metrics"
)

const verificationSubject = "Please verify your email"

// AccountOption customises the AccountService.
type AccountOption func(*AccountService)

// WithBaseURL sets the public base URL embedded in verification links.
func WithBaseURL(url string) AccountOption {
	return func(s *AccountService) {
		s.baseURL = strings.TrimRight(url, "/")
	}
}

// WithTokenBytes adjusts the number of random bytes in verification tokens.
func WithTokenBytes(n int) AccountOption {
	return func(s *AccountService) {
		if n > 0 {
			s.tokenBytes = n
		}
	}
}

// WithBcryptCost overrides the password hashing work factor.
func WithBcryptCost(cost int) AccountOption {
	return func(s *AccountService) {
		if cost > 0 {
			s.bcryptCost = cost
		}
	}
}

// WithDetachedWrites toggles whether signup persistence and email dispatch
// run as detached tasks. Disabled in tests to make outcomes observable
// without draining.
func WithDetachedWrites(detached bool) AccountOption {
	return func(s *AccountService) {
		s.detach = detached
	}
}

// AccountService orchestrates the account lifecycle state machine. It never
// caches account records; every operation re-fetches through the store.
type AccountService struct {
	store      store.AccountStore
	mailer     mail.Mailer
	baseURL    string
	tokenBytes int
	bcryptCost int
	detach     bool
	log        *zap.Logger

	wg sync.WaitGroup
}

// NewAccountService constructs the lifecycle engine with the provided dependencies.
func NewAccountService(accounts store.AccountStore, mailer mail.Mailer, opts ...AccountOption) (*AccountService, error) {
	if accounts == nil {
		return nil, errors.New("account service: store is required")
	}

	service := &AccountService{
		store:      accounts,
		mailer:     mailer,
		tokenBytes: crypto.DefaultTokenBytes,
		detach:     true,
		log:        logger.WithModule("accounts"),
	}

	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// SignUp mints a verification token, then persists the account and dispatches
// the verification email as two independent best-effort tasks. Neither task
// blocks the caller: persistence or delivery failures are logged, not
// surfaced, and the caller always redirects to the pending page.
//
// The returned error covers only token minting; everything downstream is
// fire-and-forget by design.
func (s *AccountService) SignUp(ctx context.Context, name, password, email string) error {
	token, err := crypto.GenerateToken(s.tokenBytes)
	if err != nil {
		metrics.Signups.WithLabelValues("failed").Inc()
		return fmt.Errorf("account service: generate token: %w", err)
	}

	s.spawn(ctx, func(ctx context.Context) {
		s.persistAccount(ctx, name, password, email, token)
	})
	s.spawn(ctx, func(ctx context.Context) {
		s.sendVerification(ctx, email, token)
	})

	return nil
}

func (s *AccountService) persistAccount(ctx context.Context, name, password, email, token string) {
	hash, err := crypto.HashPassword(password, s.bcryptCost)
	if err != nil {
		metrics.Signups.WithLabelValues("failed").Inc()
		s.log.Error("password hashing failed", zap.String("email", email), zap.Error(err))
		return
	}

	account := &models.Account{
		Name:              name,
		Email:             email,
		PasswordHash:      hash,
		IsVerified:        false,
		VerificationToken: token,
	}
	if err := s.store.Create(ctx, account); err != nil {
		metrics.Signups.WithLabelValues("failed").Inc()
		s.log.Error("account persistence failed", zap.String("email", email), zap.Error(err))
		return
	}

	metrics.Signups.WithLabelValues("created").Inc()
}

func (s *AccountService) sendVerification(ctx context.Context, email, token string) {
	if s.mailer == nil {
		return
	}

	msg := mail.Message{
		To:      []string{email},
		Subject: verificationSubject,
		Body:    s.verificationBody(token),
		HTML:    true,
	}
	if err := s.mailer.Send(ctx, msg); err != nil && !errors.Is(err, mail.ErrSMTPDisabled) {
		metrics.VerificationEmails.WithLabelValues("failed").Inc()
		s.log.Error("verification email dispatch failed",
			zap.String("email", email),
			zap.Error(apperrors.ErrNotificationFailed.WithInternal(err)),
		)
		return
	}

	metrics.VerificationEmails.WithLabelValues("sent").Inc()
}

// Verify redeems a verification token. The token is cleared on the first
// redemption attempt regardless of whether the status flip succeeded; the
// two updates are independent store operations, not a transaction.
func (s *AccountService) Verify(ctx context.Context, token string) error {
	account, err := s.store.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			metrics.Verifications.WithLabelValues("not_found").Inc()
		} else {
			metrics.Verifications.WithLabelValues("error").Inc()
		}
		return err
	}

	defer s.clearToken(ctx, token)

	if account.IsVerified {
		// Stale token on an already-verified record, left behind by an
		// earlier failed clear.
		metrics.Verifications.WithLabelValues("already_verified").Inc()
		return apperrors.ErrAlreadyVerified
	}

	// The update targets the record resolved above by its identity, never
	// by verification status.
	if err := s.store.MarkVerified(ctx, account.ID); err != nil {
		metrics.Verifications.WithLabelValues("error").Inc()
		return apperrors.ErrStoreUnavailable.WithInternal(err)
	}

	metrics.Verifications.WithLabelValues("verified").Inc()
	return nil
}

func (s *AccountService) clearToken(ctx context.Context, token string) {
	if err := s.store.ClearToken(ctx, token); err != nil {
		s.log.Error("token clear failed", zap.Error(err))
	}
}

// LogIn checks the supplied credentials against the stored hash and the
// verification gate. It is a pure guard: no state changes on any outcome.
func (s *AccountService) LogIn(ctx context.Context, email, password string) error {
	account, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			metrics.Logins.WithLabelValues("not_found").Inc()
		} else {
			metrics.Logins.WithLabelValues("error").Inc()
		}
		return err
	}

	if !crypto.VerifyPassword(account.PasswordHash, password) {
		metrics.Logins.WithLabelValues("bad_credential").Inc()
		return apperrors.ErrBadCredential
	}

	if !account.IsVerified {
		metrics.Logins.WithLabelValues("not_verified").Inc()
		return apperrors.ErrNotVerified
	}

	metrics.Logins.WithLabelValues("success").Inc()
	return nil
}

// Drain blocks until all detached signup tasks have finished. Shutdown and
// tests use it; request handlers never do.
func (s *AccountService) Drain() {
	s.wg.Wait()
}

// spawn runs fn as a detached task when detached writes are enabled,
// synchronously otherwise. Detached tasks outlive the request context.
func (s *AccountService) spawn(ctx context.Context, fn func(context.Context)) {
	if !s.detach {
		fn(ctx)
		return
	}

	detachedCtx := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(detachedCtx)
	}()
}

func (s *AccountService) verificationBody(token string) string {
	link := fmt.Sprintf("%s/verify/users/%s", s.baseURL, token)
	return fmt.Sprintf(`<h5>Thanks for signing up! Please verify your email</h5>
<a href="%s">Click here to verify</a>
`, link)
}
