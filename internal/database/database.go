package database

import (
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/menucraft/backend/config"
)

// Connect opens the configured database, postgres in production and sqlite
// for local development. Connection attempts retry with exponential backoff
// so the API survives the database coming up after it.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Surface unique-index violations as gorm.ErrDuplicatedKey so the
		// service layer can map them to its conflict error.
		TranslateError: true,
	}

	maxRetries := 5
	delay := time.Second
	for attempt := 1; attempt <= maxRetries; attempt++ {
		switch cfg.DBDriver {
		case "postgres":
			db, err = gorm.Open(postgres.Open(cfg.PostgresDSN()), gormCfg)
		case "sqlite":
			db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", cfg.DBDriver)
		}

		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else if pingErr := sqlDB.Ping(); pingErr != nil {
				err = pingErr
			} else {
				configurePool(sqlDB)
				log.WithFields(log.Fields{
					"driver":  cfg.DBDriver,
					"attempt": attempt,
				}).Info("Database connection established")
				return db, nil
			}
		}

		log.WithFields(log.Fields{
			"attempt": attempt,
			"error":   err.Error(),
		}).Warn("Database connection attempt failed")

		if attempt < maxRetries {
			time.Sleep(delay)
			delay *= 2
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

func configurePool(sqlDB *sql.DB) {
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
}
