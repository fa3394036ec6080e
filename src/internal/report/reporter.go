package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/VectorBits/solo/src/internal/parser"
	"github.com/VectorBits/solo/src/internal/selector"
)

type Reporter struct {
	generator Generator
	storage   Storage
}

func NewReporter(generator Generator, storage Storage) *Reporter {
	return &Reporter{
		generator: generator,
		storage:   storage,
	}
}

func (r *Reporter) GenerateAndSave(report *Report) (string, error) {
	// 生成报告内容
	content, err := r.generator.Generate(report)
	if err != nil {
		return "", fmt.Errorf("failed to generate report: %w", err)
	}

	// 保存报告
	path, err := r.storage.Save(report, content, r.generator.Extension())
	if err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}

	return path, nil
}

// NewReport 每次运行生成一个 UUID 作为 run id
func NewReport() *Report {
	return &Report{
		RunID:            uuid.NewString(),
		GeneratedAt:      time.Now(),
		KindDistribution: make(map[string]int),
		Results:          make([]Result, 0),
	}
}

func (r *Report) AddResult(result Result) {
	if result.RunID == "" {
		result.RunID = r.RunID
	}
	r.Results = append(r.Results, result)
	r.TotalFiles++

	if result.Error != "" {
		r.FailedFiles++
		return
	}

	// 统计声明类型分布
	for _, d := range result.Declarations {
		r.TotalDeclarations++
		r.KindDistribution[string(d.Type)]++
	}
}

func NewResult(runID, file, normalized string) Result {
	return Result{
		RunID:      runID,
		File:       file,
		ParsedAt:   time.Now(),
		Normalized: normalized,
	}
}

func (r *Result) SetDeclarations(decls []parser.Declaration) {
	r.Declarations = decls
}

func (r *Result) SetSelectors(entries []selector.Entry) {
	r.Selectors = entries
}

func (r *Result) SetError(err error) {
	if err != nil {
		r.Error = err.Error()
	}
}
