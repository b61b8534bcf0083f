package database

import (
	"fmt"

	"github.com/lshigami/schooltest/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AutoMigrate creates the engine tables and one table per configured result type.
func AutoMigrate(db *gorm.DB, resultTables []string) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Test{},
		&model.RetestAssignment{},
		&model.RetestTarget{},
		&model.Attempt{},
		&model.BestAttempt{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	for _, table := range resultTables {
		if err := db.Table(table).AutoMigrate(&model.TestResult{}); err != nil {
			log.Error().Err(err).Str("table", table).Msg("Result table migration failed")
			return fmt.Errorf("migrate %s: %w", table, err)
		}
	}
	log.Info().Int("resultTables", len(resultTables)).Msg("Database migration completed successfully.")
	return nil
}
