package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/VectorBits/solo/src/internal/config"
	"github.com/VectorBits/solo/src/internal/parser"
	"github.com/VectorBits/solo/src/internal/solc"
	"github.com/VectorBits/solo/src/internal/store"
	"github.com/VectorBits/solo/src/internal/ui"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runConfig(files ...string) config.RunConfiguration {
	rc := config.DefaultRunConfiguration()
	rc.Files = files
	return rc
}

func decodeAll(t *testing.T, r io.Reader) [][]parser.Declaration {
	t.Helper()
	var out [][]parser.Declaration
	dec := json.NewDecoder(r)
	for {
		var decls []parser.Declaration
		err := dec.Decode(&decls)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("decode output: %v", err)
		}
		out = append(out, decls)
	}
}

func TestExecutePrintsNormalizedContentThenJSON(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.sol", "pragma solidity ^0.8.0;\n// note\ncontract A {\n  uint x;\n}\n")

	var out bytes.Buffer
	if err := Execute(context.Background(), runConfig(file), nil, &out); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	first, rest, ok := strings.Cut(out.String(), "\n")
	if !ok {
		t.Fatalf("output = %q", out.String())
	}
	if want := "pragma solidity ^0.8.0; contract A { uint x; } $"; first != want {
		t.Errorf("normalized line = %q, want %q", first, want)
	}

	got := decodeAll(t, strings.NewReader(rest))
	if len(got) != 1 || len(got[0]) != 2 {
		t.Fatalf("declarations = %+v", got)
	}
	if got[0][0].Type != parser.DeclPragma || got[0][1].Name != "A" {
		t.Errorf("declarations = %+v", got[0])
	}
}

func TestExecuteKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for _, name := range []string{"c", "a", "b", "d"} {
		files = append(files, writeFile(t, dir, name+".sol", "contract "+strings.ToUpper(name)+" {}"))
	}

	rc := runConfig(files...)
	rc.PrintContent = false
	rc.Concurrency = 3

	var out bytes.Buffer
	if err := Execute(context.Background(), rc, nil, &out); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	got := decodeAll(t, &out)
	var names []string
	for _, decls := range got {
		names = append(names, decls[0].Name)
	}
	if strings.Join(names, ",") != "C,A,B,D" {
		t.Errorf("order = %v", names)
	}
}

func TestExecuteReportsFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.sol", "contract A {}")
	bad := writeFile(t, dir, "bad.sol", "contract C { function f() { ] }")

	rc := runConfig(good, bad, filepath.Join(dir, "missing.sol"))
	rc.PrintContent = false

	var out bytes.Buffer
	err := Execute(context.Background(), rc, nil, &out)
	if err == nil || !strings.Contains(err.Error(), "2 of 3") {
		t.Fatalf("err = %v, want 2 of 3 failures", err)
	}
	if got := decodeAll(t, &out); len(got) != 1 {
		t.Errorf("only the good file should be printed, got %d outputs", len(got))
	}
}

func TestExecuteStandardJSONInput(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "input.json", `{
		"language": "Solidity",
		"sources": {
			"contracts/B.sol": {"content": "contract B {}"},
			"contracts/A.sol": {"content": "interface IA { function f() external; }"}
		}
	}`)

	rc := runConfig(file)
	rc.PrintContent = false
	rc.Selectors = true

	var out bytes.Buffer
	if err := Execute(context.Background(), rc, nil, &out); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	got := decodeAll(t, &out)
	if len(got) != 2 || got[0][0].Name != "IA" || got[1][0].Name != "B" {
		t.Errorf("declarations = %+v", got)
	}
}

func TestExecuteSavesReportAndStore(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "t.sol", "contract T { function transfer(address to, uint256 v) public returns (bool) { return true; } }")
	reports := filepath.Join(dir, "reports")

	app := config.Default()
	app.Database.Path = filepath.Join(dir, "solo.db")

	rc := runConfig(file)
	rc.PrintContent = false
	rc.Selectors = true
	rc.OutputDir = reports
	rc.Store = "sqlite"

	if err := Execute(context.Background(), rc, app, io.Discard); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	entries, err := os.ReadDir(reports)
	if err != nil || len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), ".json") {
		t.Fatalf("reports dir = %v, %v", entries, err)
	}

	s, err := store.NewSQLiteStore(app.Database.Path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	runs, err := s.RecentRuns(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Files != 1 || runs[0].Declarations != 1 {
		t.Errorf("runs = %+v", runs)
	}
}

func TestExecuteRejectsUnknownFormat(t *testing.T) {
	rc := runConfig("/tmp/a.sol")
	rc.Format = "xml"
	if err := Execute(context.Background(), rc, nil, io.Discard); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestListRuns(t *testing.T) {
	dir := t.TempDir()
	app := config.Default()
	app.Database.Path = filepath.Join(dir, "solo.db")

	rc := runConfig(writeFile(t, dir, "a.sol", "contract A {} contract B {}"))
	rc.PrintContent = false
	rc.Store = "sqlite"
	if err := Execute(context.Background(), rc, app, io.Discard); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	var out bytes.Buffer
	if err := ListRuns(context.Background(), "sqlite", app, 5, &out); err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "RUN") {
		t.Fatalf("output =\n%s", out.String())
	}
	if fields := strings.Fields(lines[1]); len(fields) != 4 || fields[1] != "1" || fields[2] != "0" || fields[3] != "2" {
		t.Errorf("run line = %q", lines[1])
	}

	if err := ListRuns(context.Background(), "none", app, 5, io.Discard); err == nil {
		t.Error("expected error without a store")
	}
}

func TestCheckCompilerAutoReportsPragmaVersion(t *testing.T) {
	var warn bytes.Buffer
	ui.Out = &warn
	defer func() { ui.Out = io.Discard }()

	decls, err := parser.Parse("pragma solidity >=0.8.4 <0.9.0; contract A {} $", parser.Options{})
	if err != nil {
		t.Fatal(err)
	}
	rc := runConfig()
	rc.Solc = "auto"
	r := &runner{cfg: rc, compilers: solc.NewManager(t.TempDir())}
	r.checkCompiler("a.sol", decls)

	if !strings.Contains(warn.String(), "a.sol: pragma targets solc 0.9.0") {
		t.Errorf("warning = %q", warn.String())
	}
}
