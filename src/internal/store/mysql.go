package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/VectorBits/solo/src/internal/config"
	"github.com/VectorBits/solo/src/internal/logger"
	"github.com/VectorBits/solo/src/internal/report"
)

// MySQLStore database/sql + go-sql-driver/mysql
type MySQLStore struct {
	DB *sql.DB
}

// helloq NewMySQLStore 初始化 MySQL 连接池，数据库不存在时自动创建
func NewMySQLStore(ctx context.Context, cfg *config.AppConfig) (*MySQLStore, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// 1. 尝试直接连接指定数据库
	dsn := cfg.GetDatabaseDSN(true)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	ctxPing, cancelPing := context.WithTimeout(ctx, 2*time.Second)
	err = db.PingContext(ctxPing)
	cancelPing()

	if err != nil {
		// 2. 连接失败（可能是数据库不存在），连接到 server 并创建数据库
		logger.Warn("Database ping failed for '%s': %v", cfg.Database.Name, err)

		dbRoot, errRoot := sql.Open("mysql", cfg.GetDatabaseDSN(false))
		if errRoot != nil {
			db.Close()
			return nil, fmt.Errorf("open mysql server: %w", errRoot)
		}
		defer dbRoot.Close()

		createDBSQL := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` DEFAULT CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci", cfg.Database.Name)
		if _, errExec := dbRoot.ExecContext(ctx, createDBSQL); errExec != nil {
			db.Close()
			return nil, fmt.Errorf("create database %s: %w", cfg.Database.Name, errExec)
		}
		logger.Info("Database '%s' created successfully (or already exists)", cfg.Database.Name)

		// 重新连接到新创建的数据库
		_ = db.Close()
		db, err = sql.Open("mysql", dsn)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctxPing); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql ping failed: %w", err)
	}

	// 3. 自动迁移表结构
	if err := AutoMigrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &MySQLStore{DB: db}, nil
}

// AutoMigrate 自动检查并创建 parse_results 表
func AutoMigrate(ctx context.Context, db *sql.DB) error {
	const tableSchema = `
CREATE TABLE IF NOT EXISTS parse_results (
    id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    run_id VARCHAR(36) NOT NULL COMMENT 'Run ID',
    file VARCHAR(1024) NOT NULL COMMENT 'Source File',
    parsed_at DATETIME(6) NOT NULL COMMENT 'Parse Time',
    decl_count INT NOT NULL DEFAULT 0 COMMENT 'Declaration Count',
    declarations LONGTEXT NULL COMMENT 'Declarations (JSON)',
    selectors LONGTEXT NULL COMMENT 'Selectors (JSON)',
    err_msg TEXT NULL COMMENT 'Parse Error',
    INDEX idx_run_id (run_id),
    INDEX idx_parsed_at (parsed_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci COMMENT='Solidity Parse Results';
`
	if _, err := db.ExecContext(ctx, tableSchema); err != nil {
		return fmt.Errorf("failed to migrate parse_results: %w", err)
	}
	return nil
}

func (s *MySQLStore) SaveResult(ctx context.Context, res *report.Result) error {
	rec, err := newRecord(res)
	if err != nil {
		return err
	}
	_, err = s.DB.ExecContext(ctx,
		"INSERT INTO parse_results (run_id, file, parsed_at, decl_count, declarations, selectors, err_msg) VALUES (?, ?, ?, ?, ?, ?, ?)",
		rec.RunID, rec.File, rec.ParsedAt, rec.DeclCount, rec.Declarations, rec.Selectors, rec.ErrMsg,
	)
	if err != nil {
		return fmt.Errorf("failed to save result for %s: %w", res.File, err)
	}
	return nil
}

func (s *MySQLStore) RecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if s.DB == nil {
		return nil, fmt.Errorf("RecentRuns: db is nil")
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.DB.QueryContext(ctx, recentRunsQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.RunID, &r.Files, &r.Failed, &r.Declarations); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MySQLStore) Close() error {
	return s.DB.Close()
}
