package models

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

func openModelTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:models_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&Account{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

func TestAccountGeneratesUUID(t *testing.T) {
	db := openModelTestDB(t)

	account := Account{
		Name:              "Alice",
		Email:             "alice@example.com",
		PasswordHash:      "$2a$10$fake",
		VerificationToken: "token",
	}
	require.NoError(t, db.Create(&account).Error)

	require.NotEmpty(t, account.ID)
	_, err := uuid.Parse(account.ID)
	require.NoError(t, err)
}

func TestAccountKeepsExplicitID(t *testing.T) {
	db := openModelTestDB(t)

	account := Account{
		BaseModel:    BaseModel{ID: "11111111-1111-1111-1111-111111111111"},
		Email:        "bob@example.com",
		PasswordHash: "$2a$10$fake",
	}
	require.NoError(t, db.Create(&account).Error)
	require.Equal(t, "11111111-1111-1111-1111-111111111111", account.ID)
}

func TestAccountDefaultsToUnverified(t *testing.T) {
	db := openModelTestDB(t)

	account := Account{
		Email:        "carol@example.com",
		PasswordHash: "$2a$10$fake",
	}
	require.NoError(t, db.Create(&account).Error)

	var stored Account
	require.NoError(t, db.First(&stored, "email = ?", "carol@example.com").Error)
	require.False(t, stored.IsVerified)
}

func TestDuplicateEmailsAreAllowed(t *testing.T) {
	db := openModelTestDB(t)

	first := Account{Email: "dup@example.com", PasswordHash: "h1"}
	second := Account{Email: "dup@example.com", PasswordHash: "h2"}

	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	var count int64
	require.NoError(t, db.Model(&Account{}).Where("email = ?", "dup@example.com").Count(&count).Error)
	require.EqualValues(t, 2, count)
}
