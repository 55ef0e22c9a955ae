// Package db contains things related to SQLite
package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"synco/social-api/internal/model"
)

func New(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		// Unique index violations come back as gorm.ErrDuplicatedKey so
		// duplicate-insert races surface as conflicts, not raw driver errors
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
	}

	err = db.AutoMigrate(
		model.Country{},
		model.City{},
		model.User{},
		model.Profile{},
		model.Address{},
		model.PrivacySetting{},
		model.Education{},
		model.WorkExperience{},
		model.UserRelation{},
		model.VerificationToken{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
