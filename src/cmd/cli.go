package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/Masterminds/semver/v3"

	"github.com/VectorBits/solo/src/internal/config"
	"github.com/VectorBits/solo/src/internal/logger"
	"github.com/VectorBits/solo/src/internal/ui"
)

// errNoInput 没有输入文件时只打印用法
var errNoInput = errors.New("no input files")

type CLIConfig struct {
	Files               []string
	Format              string
	OutputDir           string
	PrintContent        bool
	Selectors           bool
	Solc                string
	Store               string
	Concurrency         int
	Watch               bool
	ConfigPath          string
	LogFile             bool
	Verbose             bool
	KeepUserReturnTypes bool
	Runs                int

	// 命令行上显式给出的 flag，用于覆盖配置文件
	set map[string]bool
}

var (
	validFormats = []string{"json", "yaml", "yml", "markdown", "md"}
	validStores  = []string{"none", "sqlite", "postgres", "mysql"}
)

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (c *CLIConfig) Validate() error {
	if len(c.Files) == 0 && c.Runs <= 0 {
		return errNoInput
	}
	if !contains(validFormats, c.Format) {
		return fmt.Errorf("-f must be one of: json, yaml, markdown (got %s)", c.Format)
	}
	if !contains(validStores, c.Store) {
		return fmt.Errorf("unsupported store: %s, supported stores: %v", c.Store, validStores)
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	if c.Solc != "" && c.Solc != "auto" {
		if _, err := semver.NewVersion(strings.TrimPrefix(c.Solc, "v")); err != nil {
			return fmt.Errorf("-solc must be a compiler version or auto: %w", err)
		}
	}
	return nil
}

// MergeConfigs 配置文件提供默认值，命令行显式给出的 flag 优先
func (c *CLIConfig) MergeConfigs(appConfig *config.AppConfig) config.RunConfiguration {
	// 1. Start with defaults / config file
	cfg := config.RunConfigurationFrom(appConfig)

	// 2. Override with CLI arguments (if provided)
	cfg.Files = c.Files
	if c.set["f"] {
		cfg.Format = c.Format
	}
	if c.set["o"] {
		cfg.OutputDir = c.OutputDir
	}
	if c.set["n"] {
		cfg.PrintContent = c.PrintContent
	}
	if c.set["selectors"] {
		cfg.Selectors = c.Selectors
	}
	if c.set["solc"] {
		cfg.Solc = c.Solc
	}
	if c.set["store"] {
		cfg.Store = c.Store
	}
	if c.set["concurrency"] {
		cfg.Concurrency = c.Concurrency
	}
	if c.set["keep-return-types"] {
		cfg.KeepUserReturnTypes = c.KeepUserReturnTypes
	}
	if c.set["log"] {
		cfg.LogFile = c.LogFile
	}
	if c.set["v"] {
		cfg.Verbose = c.Verbose
	}
	cfg.Watch = c.Watch
	return cfg
}

func showGeneralHelp(w io.Writer) {
	fmt.Fprintln(w, ui.Cyan+"USAGE:"+ui.Reset)
	fmt.Fprintln(w, "  solo [OPTIONS] <file.sol> [more.sol ...]")
	fmt.Fprintln(w)

	fmt.Fprintln(w, ui.Cyan+"OPTIONS:"+ui.Reset)
	fmt.Fprintf(w, "  %-25s %s\n", "-f <format>", "Output format: json|yaml|markdown (default: json)")
	fmt.Fprintf(w, "  %-25s %s\n", "-o <dir>", "Also save a full report into <dir>")
	fmt.Fprintf(w, "  %-25s %s\n", "-n", "Print normalized content before the output (default: true)")
	fmt.Fprintf(w, "  %-25s %s\n", "-selectors", "Derive function selectors and event topics")
	fmt.Fprintf(w, "  %-25s %s\n", "-keep-return-types", "Keep user-defined return types")
	fmt.Fprintf(w, "  %-25s %s\n", "-solc <version|auto>", "Check pragma solidity against a compiler version")
	fmt.Fprintf(w, "  %-25s %s\n", "-store <driver>", "Persist results: none|sqlite|postgres|mysql")
	fmt.Fprintf(w, "  %-25s %s\n", "-concurrency <n>", "Files parsed in parallel (default: 4)")
	fmt.Fprintf(w, "  %-25s %s\n", "-watch", "Re-parse files when they change")
	fmt.Fprintf(w, "  %-25s %s\n", "-runs <n>", "List the n most recent stored runs and exit")
	fmt.Fprintf(w, "  %-25s %s\n", "-config <path>", "Config file (yaml or toml)")
	fmt.Fprintf(w, "  %-25s %s\n", "-log", "Write a log file under logs/")
	fmt.Fprintf(w, "  %-25s %s\n", "-v", "Verbose output")
	fmt.Fprintln(w)

	fmt.Fprintln(w, ui.Cyan+"EXAMPLES:"+ui.Reset)
	fmt.Fprintln(w, "  solo Token.sol")
	fmt.Fprintln(w, "  solo -f yaml -n=false -selectors Token.sol Vault.sol")
	fmt.Fprintln(w, "  solo -solc auto -store sqlite -o reports contracts/*.sol")
	fmt.Fprintln(w, "  solo -watch Token.sol")
	fmt.Fprintln(w, "  solo -store sqlite -runs 5")
}

// helloq ParseFlags 解析命令行参数
func ParseFlags(args []string) (*CLIConfig, error) {
	fs := flag.NewFlagSet("solo", flag.ContinueOnError)
	fs.SetOutput(ui.Out)
	fs.Usage = func() {
		showGeneralHelp(ui.Out)
	}

	format := fs.String("f", "json", "Output format: json | yaml | markdown")
	outputDir := fs.String("o", "", "Report output directory")
	printContent := fs.Bool("n", true, "Print normalized content")
	selectors := fs.Bool("selectors", false, "Derive selectors")
	keepReturns := fs.Bool("keep-return-types", false, "Keep user-defined return types")
	solcVersion := fs.String("solc", "", "Compiler version to check pragmas against, or auto")
	storeDriver := fs.String("store", "none", "Result store: none | sqlite | postgres | mysql")
	concurrency := fs.Int("concurrency", 4, "Worker concurrency")
	watchFlag := fs.Bool("watch", false, "Watch files and re-parse on change")
	configPath := fs.String("config", "", "Config file path")
	logFile := fs.Bool("log", false, "Write log file")
	verbose := fs.Bool("v", false, "Verbose output")
	runs := fs.Int("runs", 0, "List recent stored runs")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &CLIConfig{
		Format:              strings.ToLower(strings.TrimSpace(*format)),
		OutputDir:           strings.TrimSpace(*outputDir),
		PrintContent:        *printContent,
		Selectors:           *selectors,
		Solc:                strings.TrimSpace(*solcVersion),
		Store:               strings.ToLower(strings.TrimSpace(*storeDriver)),
		Concurrency:         *concurrency,
		Watch:               *watchFlag,
		ConfigPath:          strings.TrimSpace(*configPath),
		LogFile:             *logFile,
		Verbose:             *verbose,
		KeepUserReturnTypes: *keepReturns,
		Runs:                *runs,
		set:                 make(map[string]bool),
	}
	fs.Visit(func(f *flag.Flag) { cfg.set[f.Name] = true })

	for _, f := range fs.Args() {
		if !filepath.IsAbs(f) {
			if abs, err := filepath.Abs(f); err == nil {
				f = abs
			}
		}
		cfg.Files = append(cfg.Files, f)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadAppConfig(path string) (*config.AppConfig, error) {
	if path != "" {
		return config.LoadConfigFrom(path)
	}
	return config.LoadConfig()
}

func Run() error {
	cfg, err := ParseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		if errors.Is(err, errNoInput) {
			showGeneralHelp(ui.Out)
			return nil
		}
		return err
	}

	appConfig, err := loadAppConfig(cfg.ConfigPath)
	if err != nil {
		if cfg.ConfigPath != "" {
			return fmt.Errorf("failed to load config: %w", err)
		}
		ui.LogWarn("Failed to load config: %v", err)
		appConfig = config.Default()
	}
	runConfig := cfg.MergeConfigs(appConfig)

	logger.SetVerbose(runConfig.Verbose)
	if runConfig.LogFile {
		if err := logger.InitLogger(appConfig.Log.Dir); err != nil {
			ui.LogWarn("Failed to init logger: %v", err)
		}
		defer logger.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(sigChan)
		close(sigChan)
	}()

	go func() {
		count := 0
		for range sigChan {
			count++
			if count == 1 {
				fmt.Fprintln(os.Stderr, "\nInterrupt received, stopping... (press Ctrl+C again to force exit)")
				cancel()
				continue
			}
			fmt.Fprintln(os.Stderr, "\nForce exiting...")
			os.Exit(130)
		}
	}()

	if cfg.Runs > 0 {
		return ListRuns(ctx, runConfig.Store, appConfig, cfg.Runs, os.Stdout)
	}
	return Execute(ctx, runConfig, appConfig, os.Stdout)
}

func PrintFatal(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		return
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
