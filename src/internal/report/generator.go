package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/VectorBits/solo/src/internal/parser"
	"github.com/VectorBits/solo/src/internal/report/renderers"
	"github.com/VectorBits/solo/src/internal/selector"
)

// Result 一个源文件的解析结果
type Result struct {
	RunID        string               `json:"run_id" yaml:"run_id"`
	File         string               `json:"file" yaml:"file"`
	ParsedAt     time.Time            `json:"parsed_at" yaml:"parsed_at"`
	Normalized   string               `json:"-" yaml:"-"`
	Declarations []parser.Declaration `json:"declarations" yaml:"declarations"`
	Selectors    []selector.Entry     `json:"selectors,omitempty" yaml:"selectors,omitempty"`
	Error        string               `json:"error,omitempty" yaml:"error,omitempty"`
}

type Report struct {
	RunID             string         `json:"run_id" yaml:"run_id"`
	GeneratedAt       time.Time      `json:"generated_at" yaml:"generated_at"`
	TotalFiles        int            `json:"total_files" yaml:"total_files"`
	FailedFiles       int            `json:"failed_files" yaml:"failed_files"`
	TotalDeclarations int            `json:"total_declarations" yaml:"total_declarations"`
	KindDistribution  map[string]int `json:"kind_distribution" yaml:"kind_distribution"`
	Results           []Result       `json:"results" yaml:"results"`
}

// Generator 渲染整份报告，或只渲染单个文件（stdout 输出）
type Generator interface {
	Generate(report *Report) (string, error)
	GenerateResult(result *Result) (string, error)
	Extension() string
}

// NewGenerator 按格式名创建生成器
func NewGenerator(format string) (Generator, error) {
	switch format {
	case "json", "":
		return NewJSONGenerator(), nil
	case "yaml", "yml":
		return NewYAMLGenerator(), nil
	case "markdown", "md":
		return NewMarkdownGenerator(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// JSONGenerator 四空格缩进，不转义 <>&
type JSONGenerator struct {
	Indent string
}

func NewJSONGenerator() *JSONGenerator {
	return &JSONGenerator{Indent: "    "}
}

func (g *JSONGenerator) encode(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", g.Indent)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode json: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func (g *JSONGenerator) Generate(report *Report) (string, error) {
	return g.encode(report)
}

// GenerateResult 只输出声明列表
func (g *JSONGenerator) GenerateResult(result *Result) (string, error) {
	if result.Declarations == nil {
		return g.encode([]parser.Declaration{})
	}
	return g.encode(result.Declarations)
}

func (g *JSONGenerator) Extension() string { return "json" }

type YAMLGenerator struct{}

func NewYAMLGenerator() *YAMLGenerator {
	return &YAMLGenerator{}
}

func (g *YAMLGenerator) encode(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode yaml: %w", err)
	}
	return buf.String(), nil
}

func (g *YAMLGenerator) Generate(report *Report) (string, error) {
	return g.encode(report)
}

func (g *YAMLGenerator) GenerateResult(result *Result) (string, error) {
	if result.Declarations == nil {
		return g.encode([]parser.Declaration{})
	}
	return g.encode(result.Declarations)
}

func (g *YAMLGenerator) Extension() string { return "yaml" }

type MarkdownGenerator struct {
	renderer *renderers.MarkdownRenderer
}

func NewMarkdownGenerator() *MarkdownGenerator {
	return &MarkdownGenerator{renderer: renderers.NewMarkdownRenderer()}
}

// helloq Generate 生成 markdown 报告
func (g *MarkdownGenerator) Generate(report *Report) (string, error) {
	var result strings.Builder

	// 报告头部
	result.WriteString("# Solo Parse Report\n\n")
	result.WriteString(fmt.Sprintf("**Run ID**: %s\n", report.RunID))
	result.WriteString(fmt.Sprintf("**Generated At**: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05")))

	// 统计
	result.WriteString("## Statistics\n\n")
	result.WriteString(fmt.Sprintf("- **Total Files**: %d\n", report.TotalFiles))
	result.WriteString(fmt.Sprintf("- **Failed Files**: %d\n", report.FailedFiles))
	result.WriteString(fmt.Sprintf("- **Declarations**: %d\n\n", report.TotalDeclarations))

	if len(report.KindDistribution) > 0 {
		result.WriteString("## Declaration Kinds\n\n")
		for _, kind := range []parser.DeclKind{parser.DeclPragma, parser.DeclImport, parser.DeclLibrary, parser.DeclInterface, parser.DeclContract} {
			if n := report.KindDistribution[string(kind)]; n > 0 {
				result.WriteString(fmt.Sprintf("- **%s**: %d\n", kind, n))
			}
		}
		result.WriteString("\n")
	}

	for i := range report.Results {
		content, err := g.GenerateResult(&report.Results[i])
		if err != nil {
			return "", err
		}
		result.WriteString(content)
		// 如果不是最后一个结果，添加分隔线
		if i < len(report.Results)-1 {
			result.WriteString("---\n\n")
		}
	}

	return result.String(), nil
}

func (g *MarkdownGenerator) GenerateResult(r *Result) (string, error) {
	return g.renderer.RenderFile(r.File, r.Error, r.Declarations, r.Selectors), nil
}

func (g *MarkdownGenerator) Extension() string { return "md" }
