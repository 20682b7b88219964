package database

import (
	"errors"
	"fmt"
	"strings"

	"matka/config"
	"matka/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the postgres database described by cfg and migrates it when asked to.
func Connect(cfg config.DB) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	logrus.Info("connected to database")

	if cfg.AutoMigrate {
		logrus.Info("starting auto-migration")
		if err := Migrate(db); err != nil {
			return nil, err
		}
		logrus.Info("auto migration completed")
	}
	return db, nil
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.Game{},
		&models.Rate{},
		&models.Setting{},
		&models.Bid{},
		&models.Wager{},
		&models.Result{},
		&models.Winner{},
	); err != nil {
		return fmt.Errorf("auto-migrate database: %w", err)
	}
	return nil
}

// IsUniqueViolation reports whether err came from a unique index.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
