package listing

import (
	"fmt"

	"gorm.io/gorm"
)

// RunMigrations ensures the users and ads tables exist with the required
// schema. AutoMigrate is create-if-absent, so repeated startups are safe. The
// service must not accept traffic if this fails.
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&User{},
		&Ad{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate listing tables: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// createIndexes creates indexes backing the list query and author lookups
func createIndexes(db *gorm.DB) error {
	adIndexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_ads_is_active ON ads(is_active)",
		"CREATE INDEX IF NOT EXISTS idx_ads_created_at ON ads(created_at)",
		"CREATE INDEX IF NOT EXISTS idx_ads_author_id ON ads(author_id)",
		"CREATE INDEX IF NOT EXISTS idx_ads_category ON ads(category)",
		"CREATE INDEX IF NOT EXISTS idx_ads_active_created ON ads(is_active, created_at)",
	}

	for _, index := range adIndexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create ad index: %w", err)
		}
	}

	return nil
}

// DropTables drops all listing tables (for testing cleanup)
func DropTables(db *gorm.DB) error {
	// Ads first: author_id references users
	tables := []string{
		"ads",
		"users",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	return nil
}

// ValidateMigrations checks that the required tables exist
func ValidateMigrations(db *gorm.DB) error {
	requiredTables := []string{"users", "ads"}

	for _, table := range requiredTables {
		var exists bool
		err := db.Raw("SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = ?)", table).Scan(&exists).Error
		if err != nil {
			return fmt.Errorf("failed to check table existence for %s: %w", table, err)
		}
		if !exists {
			return fmt.Errorf("required table %s does not exist", table)
		}
	}

	return nil
}
