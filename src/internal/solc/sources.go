package solc

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// StandardInputJSON 标准 JSON 输入格式（Etherscan 多文件源码）
type StandardInputJSON struct {
	Language string                 `json:"language"`
	Sources  map[string]SourceFile  `json:"sources"`
	Settings map[string]interface{} `json:"settings,omitempty"`
}

type SourceFile struct {
	Content string `json:"content"`
}

// Source 是多文件输入中的一个文件
type Source struct {
	Path    string
	Content string
}

// IsJSONSource 检查源代码是否为多文件 JSON 格式
func IsJSONSource(source string) bool {
	trimmed := strings.TrimSpace(source)
	return strings.HasPrefix(trimmed, "{") && strings.Contains(trimmed, "\"content\"")
}

// SplitJSONSource 拆分多文件 JSON，按路径排序返回各文件源码
func SplitJSONSource(source string) ([]Source, error) {
	raw := []byte(normalizeJSONSource(source))

	var input StandardInputJSON
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, fmt.Errorf("failed to decode standard JSON input: %w", err)
	}
	if len(input.Sources) == 0 {
		// 部分浏览器直接返回 sources 映射
		var sources map[string]SourceFile
		if err := json.Unmarshal(raw, &sources); err == nil {
			input.Sources = sources
		}
	}
	if len(input.Sources) == 0 {
		return nil, fmt.Errorf("standard JSON input has no sources")
	}

	out := make([]Source, 0, len(input.Sources))
	for path, f := range input.Sources {
		out = append(out, Source{Path: path, Content: f.Content})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// normalizeJSONSource 规范化 JSON 字符串（Etherscan 的 {{ ... }} 包装）
func normalizeJSONSource(jsonStr string) string {
	trimmed := strings.TrimSpace(jsonStr)
	if strings.HasPrefix(trimmed, "{{") && strings.HasSuffix(trimmed, "}}") {
		return trimmed[1 : len(trimmed)-1]
	}
	return trimmed
}
