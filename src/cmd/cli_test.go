package cmd

import (
	"errors"
	"flag"
	"io"
	"os"
	"testing"

	"github.com/VectorBits/solo/src/internal/config"
	"github.com/VectorBits/solo/src/internal/logger"
	"github.com/VectorBits/solo/src/internal/ui"
)

func TestMain(m *testing.M) {
	ui.Out = io.Discard
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		check   func(t *testing.T, c *CLIConfig)
	}{
		{
			name:    "no input files",
			args:    []string{"-f", "yaml"},
			wantErr: errNoInput,
		},
		{
			name: "defaults",
			args: []string{"/tmp/a.sol"},
			check: func(t *testing.T, c *CLIConfig) {
				if c.Format != "json" || !c.PrintContent || c.Store != "none" || c.Concurrency != 4 {
					t.Errorf("unexpected defaults: %+v", c)
				}
				if len(c.Files) != 1 || c.Files[0] != "/tmp/a.sol" {
					t.Errorf("files = %v", c.Files)
				}
			},
		},
		{
			name: "all flags",
			args: []string{"-f", "YAML", "-n=false", "-selectors", "-solc", "0.8.19", "-store", "sqlite", "-concurrency", "2", "-watch", "/tmp/a.sol", "/tmp/b.sol"},
			check: func(t *testing.T, c *CLIConfig) {
				if c.Format != "yaml" || c.PrintContent || !c.Selectors || c.Solc != "0.8.19" ||
					c.Store != "sqlite" || c.Concurrency != 2 || !c.Watch || len(c.Files) != 2 {
					t.Errorf("unexpected config: %+v", c)
				}
			},
		},
		{
			name: "non-positive concurrency falls back",
			args: []string{"-concurrency", "0", "/tmp/a.sol"},
			check: func(t *testing.T, c *CLIConfig) {
				if c.Concurrency != 4 {
					t.Errorf("concurrency = %d, want 4", c.Concurrency)
				}
			},
		},
		{
			name: "runs without input files",
			args: []string{"-store", "sqlite", "-runs", "3"},
			check: func(t *testing.T, c *CLIConfig) {
				if c.Runs != 3 || len(c.Files) != 0 {
					t.Errorf("unexpected config: %+v", c)
				}
			},
		},
		{name: "bad format", args: []string{"-f", "xml", "/tmp/a.sol"}},
		{name: "bad store", args: []string{"-store", "oracle", "/tmp/a.sol"}},
		{name: "bad solc version", args: []string{"-solc", "latest", "/tmp/a.sol"}},
		{name: "help", args: []string{"-h"}, wantErr: flag.ErrHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseFlags(tt.args)
			if tt.check == nil {
				if err == nil {
					t.Fatalf("expected error, got %+v", c)
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFlags: %v", err)
			}
			tt.check(t, c)
		})
	}
}

func TestMergeConfigsExplicitFlagsWin(t *testing.T) {
	app := config.Default()
	app.Output.Format = "markdown"
	app.Output.WithSelectors = true
	app.Parser.Concurrency = 8
	app.Database.Driver = "sqlite"

	c, err := ParseFlags([]string{"-f", "yaml", "/tmp/a.sol"})
	if err != nil {
		t.Fatal(err)
	}
	rc := c.MergeConfigs(app)

	if rc.Format != "yaml" {
		t.Errorf("Format = %s, want yaml (flag)", rc.Format)
	}
	if !rc.Selectors || rc.Concurrency != 8 || rc.Store != "sqlite" {
		t.Errorf("config file values lost: %+v", rc)
	}
	if len(rc.Files) != 1 {
		t.Errorf("Files = %v", rc.Files)
	}
}
