package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/verigate/verigate/internal/models"
	apperrors "github.com/verigate/verigate/pkg/errors"
)

// GormAccountStore persists accounts through a gorm database handle.
type GormAccountStore struct {
	db *gorm.DB
}

// NewGormAccountStore wraps the provided database handle.
func NewGormAccountStore(db *gorm.DB) (*GormAccountStore, error) {
	if db == nil {
		return nil, errors.New("account store: db is required")
	}
	return &GormAccountStore{db: db}, nil
}

func (s *GormAccountStore) Create(ctx context.Context, account *models.Account) error {
	if account == nil {
		return errors.New("account store: account is required")
	}

	if err := s.db.WithContext(ctx).Create(account).Error; err != nil {
		return apperrors.ErrStoreUnavailable.WithInternal(fmt.Errorf("create account: %w", err))
	}
	return nil
}

func (s *GormAccountStore) FindByToken(ctx context.Context, token string) (*models.Account, error) {
	if token == "" {
		return nil, apperrors.ErrAccountNotFound
	}

	var account models.Account
	err := s.db.WithContext(ctx).
		Where("verification_token = ?", token).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.ErrStoreUnavailable.WithInternal(fmt.Errorf("find by token: %w", err))
	}
	return &account, nil
}

func (s *GormAccountStore) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := s.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at ASC").
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.ErrStoreUnavailable.WithInternal(fmt.Errorf("find by email: %w", err))
	}
	return &account, nil
}

func (s *GormAccountStore) MarkVerified(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		Update("is_verified", true)
	if result.Error != nil {
		return apperrors.ErrStoreUnavailable.WithInternal(fmt.Errorf("mark verified: %w", result.Error))
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

func (s *GormAccountStore) ClearToken(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	err := s.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("verification_token = ?", token).
		Update("verification_token", "").Error
	if err != nil {
		return apperrors.ErrStoreUnavailable.WithInternal(fmt.Errorf("clear token: %w", err))
	}
	return nil
}

func (s *GormAccountStore) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("is_verified = ?", false).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.ErrStoreUnavailable.WithInternal(fmt.Errorf("count pending: %w", err))
	}
	return count, nil
}
