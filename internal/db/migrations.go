package db

import (
	"fmt"

	"gorm.io/gorm"

	"civic-reports/internal/model"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports (created_at);`,
	`CREATE INDEX IF NOT EXISTS idx_reports_status_category ON reports (status, category);`,
	`CREATE INDEX IF NOT EXISTS idx_reports_coords ON reports (latitude, longitude);`,
}

func runMigrations(db *gorm.DB) error {
	if err := db.Exec(migrationStatements[0]).Error; err != nil {
		return fmt.Errorf("migration 1 failed: %w", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Department{}, &model.Report{}); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	for i, stmt := range migrationStatements[1:] {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+2, err)
		}
	}
	return nil
}
