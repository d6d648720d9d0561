package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tablebanking/internal/domain/loan"
	"tablebanking/internal/domain/member"
	"tablebanking/internal/domain/pool"
	"tablebanking/internal/domain/settings"
)

// OpenGorm connects to MySQL and tunes the pool for the API's short
// transactions.
func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

// OpenGormWithDialector lets tests hand in a dialector over a mocked *sql.DB.
func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("gorm ping: %w", err)
	}
	log.Println("gorm: connected")
	return db, nil
}

// Ping adapts the pool to a health check.
func Ping(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

// Migrate creates or updates every table the service reads.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&member.Member{},
		&loan.Loan{},
		&loan.Repayment{},
		&pool.Contribution{},
		&pool.ExternalFund{},
		&pool.RegistrationFee{},
		&pool.Fine{},
		&pool.Expense{},
		&settings.Setting{},
	)
}
