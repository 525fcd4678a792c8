package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sangkips/pos-ledger/internal/config"
	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectTimeout = 5 * time.Second

// NewPostgresDB opens the store database and checks it answers before the
// terminal starts taking orders.
func NewPostgresDB(ctx context.Context, cfg *config.DatabaseConfig, debug bool, log *zap.Logger) (*gorm.DB, error) {
	level := logger.Silent
	if debug {
		level = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(level),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open store database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("store database handle: %w", err)
	}
	// one writer per terminal
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping store database %s:%s: %w", cfg.Host, cfg.Port, err)
	}

	log.Info("store database ready",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name),
		zap.Bool("sql_logging", debug))
	return db, nil
}

// AutoMigrate ensures the key-value table aggregates are stored in exists
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(&entity.KVEntry{}); err != nil {
		return fmt.Errorf("migrate kv table: %w", err)
	}
	log.Debug("kv table migrated", zap.String("table", entity.KVEntry{}.TableName()))
	return nil
}
