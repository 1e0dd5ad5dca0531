package database

import (
	"fmt"
	"log/slog"

	"impactcore/internal/config"
	"impactcore/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table owned by the service, in migration order.
func Models() []interface{} {
	return []interface{}{
		&model.Organization{},
		&model.User{},
		&model.StateTaxRule{},
		&model.ExemptionCertificate{},
		&model.Listing{},
		&model.BarterTransaction{},
		&model.PointSettlement{},
		&model.ImpactPoint{},
		&model.AuditLog{},
	}
}

// NewConnection opens the configured database and migrates the schema.
// DB_DRIVER=sqlite runs against a local file for development.
func NewConnection(cfg config.DatabaseConfig, log *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	case "postgres", "":
		dialector = postgres.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		log.Warn("failed to auto-migrate models", "error", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
