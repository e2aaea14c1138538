package database

import (
	"fmt"

	"github.com/caioogatalabs/dashboard-workshop/internal/logger"
	"github.com/caioogatalabs/dashboard-workshop/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Manager handles the volatile sqlite database backing the store
type Manager struct {
	db  *gorm.DB
	dsn string
}

// NewManager opens an in-memory sqlite database. The data lives as long as
// the process keeps the connection open.
func NewManager(dsn string) (*Manager, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	// A shared-cache memory database disappears when its last connection
	// closes, so a single long-lived connection is kept.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return &Manager{db: db, dsn: dsn}, nil
}

// Migrate creates the tables for every model
func (m *Manager) Migrate() error {
	logger.Get().Debugw("Creating in-memory schema", "dsn", m.dsn)
	if err := m.db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close releases the connection, discarding all data
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
