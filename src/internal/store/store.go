// Package store persists parse results. MySQL goes through database/sql,
// SQLite and Postgres through gorm.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/VectorBits/solo/src/internal/config"
	"github.com/VectorBits/solo/src/internal/report"
)

// Store 保存每个文件的解析结果
type Store interface {
	SaveResult(ctx context.Context, res *report.Result) error
	RecentRuns(ctx context.Context, limit int) ([]RunSummary, error)
	Close() error
}

// RunSummary 一次运行的汇总
type RunSummary struct {
	RunID        string
	Files        int64
	Failed       int64
	Declarations int64
}

// ParseRecord parse_results 表的一行
type ParseRecord struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement"`
	RunID        string    `gorm:"column:run_id;size:36;index"`
	File         string    `gorm:"column:file;size:1024"`
	ParsedAt     time.Time `gorm:"column:parsed_at"`
	DeclCount    int       `gorm:"column:decl_count"`
	Declarations string    `gorm:"column:declarations;type:text"`
	Selectors    string    `gorm:"column:selectors;type:text"`
	ErrMsg       string    `gorm:"column:err_msg;type:text"`
}

func (ParseRecord) TableName() string { return "parse_results" }

// newRecord 把声明和选择器序列化为 JSON 文本列
func newRecord(res *report.Result) (*ParseRecord, error) {
	decls, err := json.Marshal(res.Declarations)
	if err != nil {
		return nil, fmt.Errorf("failed to encode declarations: %w", err)
	}
	rec := &ParseRecord{
		RunID:        res.RunID,
		File:         res.File,
		ParsedAt:     res.ParsedAt,
		DeclCount:    len(res.Declarations),
		Declarations: string(decls),
		ErrMsg:       res.Error,
	}
	if len(res.Selectors) > 0 {
		sels, err := json.Marshal(res.Selectors)
		if err != nil {
			return nil, fmt.Errorf("failed to encode selectors: %w", err)
		}
		rec.Selectors = string(sels)
	}
	return rec, nil
}

// Open 按 driver 打开存储；driver 为 none 或空时返回 nil
func Open(ctx context.Context, driver string, cfg *config.AppConfig) (Store, error) {
	var (
		s   Store
		err error
	)
	switch driver {
	case "", "none":
		return nil, nil
	case "sqlite":
		s, err = NewSQLiteStore(cfg.Database.Path)
	case "postgres":
		s, err = NewPostgresStore(cfg.GetPostgresDSN())
	case "mysql":
		s, err = NewMySQLStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", driver)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

const recentRunsQuery = `
	SELECT run_id,
	       COUNT(*) AS files,
	       SUM(CASE WHEN err_msg <> '' THEN 1 ELSE 0 END) AS failed,
	       SUM(decl_count) AS declarations
	FROM parse_results
	GROUP BY run_id
	ORDER BY MAX(id) DESC
	LIMIT ?`
