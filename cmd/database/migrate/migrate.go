package migration

import (
	"yummy-backend/entities"
	"yummy-backend/pkg/logger"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB, log *logger.Logger) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";").Error; err != nil {
			log.Warn("uuid-ossp extension unavailable", "error", err)
		}
	}

	for _, model := range entities.Models() {
		if err := db.AutoMigrate(model); err != nil {
			log.Error("Error migrating database", "model", model, "error", err)
			return err
		}
	}

	log.Info("Database migration complete")
	return nil
}
