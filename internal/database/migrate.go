package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/pageza/recipe-api/backend/internal/models"
)

// Models lists every table managed by the application, in dependency order.
var Models = []interface{}{
	&models.User{},
	&models.Tag{},
	&models.Ingredient{},
	&models.Recipe{},
}

// RunMigrations creates or updates the schema, including the recipe join tables.
func RunMigrations(db *gorm.DB) error {
	slog.Info("Running auto-migration", "dialect", db.Dialector.Name())
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
