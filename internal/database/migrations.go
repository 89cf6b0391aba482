package database

import (
	"gorm.io/gorm"

	"github.com/verigate/verigate/internal/models"
)

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Account{},
	)
}
