package database

import (
	"context"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"compliance-backend/config"
	"compliance-backend/models"
)

// Connect opens the store described by cfg and applies the pool limits.
// The connection itself is established lazily so the service can boot while
// the database is briefly unreachable; callers use Ping to probe health.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError:       true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.PoolMaxOpen)
	sqlDB.SetMaxIdleConns(cfg.PoolMaxIdle)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLife)

	return db, nil
}

// Ping probes the backing store within the given timeout.
func Ping(db *gorm.DB, timeout time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Permission{},
		&models.RolePermission{},
		&models.AuditLog{},
		&models.Client{},
		&models.ChartOfAccounts{},
		&models.GeneralLedger{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.Payment{},
		&models.BankReconciliation{},
		&models.Project{},
		&models.Task{},
		&models.Compliance{},
		&models.GSTReturn{},
		&models.TDSReturn{},
		&models.TimeEntry{},
		&models.Document{},
		&models.IdempotencyKey{},
	)
}
