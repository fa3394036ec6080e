package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/VectorBits/solo/src/internal/parser"
	"github.com/VectorBits/solo/src/internal/selector"
)

func parsed(t *testing.T, src string) []parser.Declaration {
	t.Helper()
	decls, err := parser.Parse(src, parser.Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return decls
}

func TestJSONGenerateResult(t *testing.T) {
	res := NewResult("run", "c.sol", "")
	res.SetDeclarations(parsed(t, "contract C { uint x; }"))

	got, err := NewJSONGenerator().GenerateResult(&res)
	if err != nil {
		t.Fatal(err)
	}
	want := `[
    {
        "type": "contract",
        "name": "C",
        "body": {
            "variables": [
                {
                    "type": "uint",
                    "name": "x"
                }
            ]
        }
    }
]`
	if got != want {
		t.Errorf("json =\n%s\nwant\n%s", got, want)
	}
}

func TestJSONDoesNotEscapeBodies(t *testing.T) {
	res := NewResult("run", "c.sol", "")
	res.SetDeclarations(parsed(t, "contract C { function f() public { if (a < b && c > d) {} } }"))

	got, err := NewJSONGenerator().GenerateResult(&res)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `"body": "if (a < b && c > d) {}"`) {
		t.Errorf("body escaped or missing:\n%s", got)
	}

	empty := NewResult("run", "e.sol", "")
	if got, _ := NewJSONGenerator().GenerateResult(&empty); got != "[]" {
		t.Errorf("empty result = %q, want []", got)
	}
}

func TestYAMLGenerateResult(t *testing.T) {
	res := NewResult("run", "c.sol", "")
	res.SetDeclarations(parsed(t, "pragma solidity ^0.8.0; contract C is A { }"))

	got, err := NewYAMLGenerator().GenerateResult(&res)
	if err != nil {
		t.Fatal(err)
	}

	var back []map[string]interface{}
	if err := yaml.Unmarshal([]byte(got), &back); err != nil {
		t.Fatalf("yaml output does not decode: %v\n%s", err, got)
	}
	if len(back) != 2 || back[0]["content"] != "solidity ^0.8.0" || back[1]["name"] != "C" {
		t.Errorf("decoded = %+v", back)
	}
	if _, ok := back[0]["name"]; ok {
		t.Errorf("pragma has a name key:\n%s", got)
	}
}

func TestReportCounters(t *testing.T) {
	rep := NewReport()
	if rep.RunID == "" {
		t.Fatal("RunID is empty")
	}

	ok := NewResult("", "a.sol", "")
	ok.SetDeclarations(parsed(t, "pragma solidity ^0.8.0; contract A {} contract B {}"))
	rep.AddResult(ok)

	bad := NewResult("", "b.sol", "")
	bad.SetError(errors.New("structural error at offset 3: boom"))
	rep.AddResult(bad)

	if rep.TotalFiles != 2 || rep.FailedFiles != 1 || rep.TotalDeclarations != 3 {
		t.Errorf("counters = %d/%d/%d", rep.TotalFiles, rep.FailedFiles, rep.TotalDeclarations)
	}
	if rep.KindDistribution["contract"] != 2 || rep.KindDistribution["pragma"] != 1 {
		t.Errorf("KindDistribution = %v", rep.KindDistribution)
	}
	if rep.Results[0].RunID != rep.RunID {
		t.Errorf("result RunID = %q, want %q", rep.Results[0].RunID, rep.RunID)
	}
}

func TestMarkdownGenerate(t *testing.T) {
	rep := NewReport()
	res := NewResult("", "token.sol", "")
	decls := parsed(t, `import "./IERC20.sol"; contract Token is IERC20 { event Transfer(address indexed from, address indexed to, uint256 value); function transfer(address to, uint256 amount) public returns (bool) { return true; } function batch(address[] calldata to, uint[2] memory range) external {} }`)
	res.SetDeclarations(decls)
	res.SetSelectors(selector.Derive(decls))
	rep.AddResult(res)

	bad := NewResult("", "broken.sol", "")
	bad.SetError(errors.New("unknown construct"))
	rep.AddResult(bad)

	got, err := NewMarkdownGenerator().Generate(rep)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"# Solo Parse Report",
		"- **Total Files**: 2",
		"- **Failed Files**: 1",
		"- **contract**: 1",
		"# 📄 File: `token.sol`",
		"## contract Token is IERC20",
		"function `transfer(address to, uint256 amount)` public returns (bool)",
		"event `Transfer(address from, address to, uint256 value)`",
		"function `batch(address[] to, uint[2] range)` external",
		"`transfer(address,uint256)` | `0xa9059cbb`",
		"**Status**: ❌ unknown construct",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("markdown missing %q:\n%s", want, got)
		}
	}
}

func TestNewGenerator(t *testing.T) {
	for format, ext := range map[string]string{"json": "json", "yaml": "yaml", "markdown": "md", "md": "md"} {
		g, err := NewGenerator(format)
		if err != nil {
			t.Fatalf("NewGenerator(%q): %v", format, err)
		}
		if g.Extension() != ext {
			t.Errorf("NewGenerator(%q).Extension() = %q, want %q", format, g.Extension(), ext)
		}
	}
	if _, err := NewGenerator("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestReporterGenerateAndSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	rep := NewReport()
	res := NewResult("", "a.sol", "")
	res.SetDeclarations(parsed(t, "contract A {}"))
	rep.AddResult(res)

	path, err := NewReporter(NewJSONGenerator(), NewFileStorage(dir)).GenerateAndSave(rep)
	if err != nil {
		t.Fatalf("GenerateAndSave: %v", err)
	}
	if filepath.Ext(path) != ".json" || !strings.HasPrefix(filepath.Base(path), "parse_report_"+rep.RunID[:8]) {
		t.Errorf("path = %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"run_id": "`+rep.RunID+`"`) {
		t.Errorf("report content:\n%s", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the final report in %s, got %d entries", dir, len(entries))
	}
}

func TestSanitizeFilenameComponent(t *testing.T) {
	tests := map[string]string{
		"":           "unknown",
		"  ":         "unknown",
		"abc-123":    "abc-123",
		"a/b c":      "a_b_c",
		"..//..":     "unknown",
		"run.id_01-": "run.id_01",
	}
	for in, want := range tests {
		if got := sanitizeFilenameComponent(in); got != want {
			t.Errorf("sanitizeFilenameComponent(%q) = %q, want %q", in, got, want)
		}
	}
}
