package db

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/certhub/internal/config"
	"github.com/BruksfildServices01/certhub/internal/logging"
	"github.com/BruksfildServices01/certhub/internal/models"
)

// Partial unique indexes over pending records. They back the application
// level conflict checks when two submissions race past them.
var pendingIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_pending_actions_in_flight
        ON pending_actions (resource_type, resource_id, action_type)
        WHERE status = 'pending' AND resource_id IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_pending_actions_unique_key
        ON pending_actions (resource_type, unique_key)
        WHERE status = 'pending' AND unique_key IS NOT NULL`,
}

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		logging.Log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logging.Log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		logging.Log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// Migrate creates the schema and the pending-action indexes. The index SQL
// is valid on both PostgreSQL and SQLite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}

	for _, stmt := range pendingIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return errors.Wrap(err, "create pending action index")
		}
	}
	return nil
}
