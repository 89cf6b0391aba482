// Package store implements the credential store: the single shared mutable
// resource holding Account records.
package store

import (
	"context"

	"github.com/verigate/verigate/internal/models"
)

// AccountStore is the persistence contract used by the account lifecycle
// service. All mutation is single-record; MarkVerified and ClearToken are
// deliberately independent operations with no transactional coupling.
type AccountStore interface {
	// Create inserts a new account record. No email-format or uniqueness
	// validation happens here; only persistence failures are returned.
	Create(ctx context.Context, account *models.Account) error

	// FindByToken returns the account whose pending verification token
	// matches, or errors.ErrAccountNotFound.
	FindByToken(ctx context.Context, token string) (*models.Account, error)

	// FindByEmail returns the oldest account with the given email, or
	// errors.ErrAccountNotFound. Ordering by creation time makes the
	// duplicate-email first-match rule explicit.
	FindByEmail(ctx context.Context, email string) (*models.Account, error)

	// MarkVerified flips is_verified for the record with the given ID.
	// The selector is record identity so a redemption can never promote an
	// unrelated unverified account.
	MarkVerified(ctx context.Context, id string) error

	// ClearToken blanks the verification token of the matching record.
	// Clearing a token that no longer exists is not an error.
	ClearToken(ctx context.Context, token string) error

	// CountPending reports how many accounts are still unverified.
	CountPending(ctx context.Context) (int64, error)
}
