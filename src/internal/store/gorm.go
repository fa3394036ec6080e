package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/VectorBits/solo/src/internal/report"
)

// GormStore SQLite / Postgres 存储
type GormStore struct {
	DB *gorm.DB
}

func NewSQLiteStore(dbPath string) (*GormStore, error) {
	// Create directory if not exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
	}
	return newGormStore(db)
}

func NewPostgresStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	return newGormStore(db)
}

func newGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&ParseRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate parse_results: %w", err)
	}
	return &GormStore{DB: db}, nil
}

func (s *GormStore) SaveResult(ctx context.Context, res *report.Result) error {
	rec, err := newRecord(res)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to save result for %s: %w", res.File, err)
	}
	return nil
}

func (s *GormStore) RecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []RunSummary
	if err := s.DB.WithContext(ctx).Raw(recentRunsQuery, limit).Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to query recent runs: %w", err)
	}
	return out, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
