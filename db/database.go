package db

import (
	"fmt"
	"os"
	"path/filepath"

	"hydrolink/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init opens (creating if necessary) the sqlite database at path and runs
// the schema migration. Tests pass an in-memory DSN instead of a file path.
func Init(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create database directory: %w", err)
			}
		}
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	return Migrate(DB)
}

// Migrate runs AutoMigrate for every model.
func Migrate(g *gorm.DB) error {
	return g.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Subcategory{},
		&models.Product{}, &models.Order{}, &models.OrderItem{},
		&models.RevokedToken{},
	)
}
