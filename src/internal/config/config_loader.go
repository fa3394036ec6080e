package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/VectorBits/solo/src/internal/parser"
)

type OutputConfig struct {
	Format        string `yaml:"format" toml:"format"`
	Dir           string `yaml:"dir" toml:"dir"`
	PrintContent  bool   `yaml:"print_content" toml:"print_content"`
	WithSelectors bool   `yaml:"with_selectors" toml:"with_selectors"`
}

type ParserConfig struct {
	KeepUserReturnTypes bool   `yaml:"keep_user_return_types" toml:"keep_user_return_types"`
	Sentinel            string `yaml:"sentinel" toml:"sentinel"`
	Concurrency         int    `yaml:"concurrency" toml:"concurrency"`
	Solc                string `yaml:"solc" toml:"solc"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver" toml:"driver"` // none | sqlite | postgres | mysql
	Path     string `yaml:"path" toml:"path"`     // sqlite
	Host     string `yaml:"host" toml:"host"`
	Port     string `yaml:"port" toml:"port"`
	User     string `yaml:"user" toml:"user"`
	Password string `yaml:"password" toml:"password"`
	Name     string `yaml:"name" toml:"name"`
	SSLMode  string `yaml:"sslmode" toml:"sslmode"`
}

type LogConfig struct {
	Dir     string `yaml:"dir" toml:"dir"`
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Verbose bool   `yaml:"verbose" toml:"verbose"`
}

type AppConfig struct {
	Output   OutputConfig   `yaml:"output" toml:"output"`
	Parser   ParserConfig   `yaml:"parser" toml:"parser"`
	Database DatabaseConfig `yaml:"database" toml:"database"`
	Log      LogConfig      `yaml:"log" toml:"log"`
}

var GlobalConfig *AppConfig
var loadOnce sync.Once
var loadedConfig *AppConfig
var loadedErr error

// Default 返回未找到配置文件时使用的默认配置
func Default() *AppConfig {
	return &AppConfig{
		Output: OutputConfig{Format: "json", PrintContent: true},
		Parser: ParserConfig{Sentinel: "$", Concurrency: 4},
		Database: DatabaseConfig{
			Driver:  "none",
			Path:    "data/solo.db",
			Host:    "127.0.0.1",
			Port:    "3306",
			User:    "root",
			Name:    "solo",
			SSLMode: "disable",
		},
		Log: LogConfig{Dir: "logs"},
	}
}

// helloq LoadConfig 加载配置（只加载一次），找不到文件时使用默认值
func LoadConfig() (*AppConfig, error) {
	loadOnce.Do(func() {
		configPath := findConfigFile()
		if configPath == "" {
			cfg := Default()
			applyEnvOverrides(cfg)
			loadedConfig = cfg
			GlobalConfig = loadedConfig
			return
		}

		loadedConfig, loadedErr = LoadConfigFrom(configPath)
		GlobalConfig = loadedConfig
	})

	if loadedErr != nil {
		return nil, loadedErr
	}
	return loadedConfig, nil
}

// LoadConfigFrom 按扩展名解析 YAML 或 TOML 文件，未设置的字段保留默认值
func LoadConfigFrom(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported configuration format: %s", path)
	}

	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	possiblePaths := []string{
		"config/settings.yaml",
		"config/settings.toml",
		"settings.yaml",
		"settings.toml",
		"src/config/settings.yaml",
		"../config/settings.yaml",
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// Validate 检查枚举类字段
func (c *AppConfig) Validate() error {
	switch c.Output.Format {
	case "json", "yaml", "markdown":
	default:
		return fmt.Errorf("invalid output.format %q (json|yaml|markdown)", c.Output.Format)
	}
	switch c.Database.Driver {
	case "", "none", "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("invalid database.driver %q (none|sqlite|postgres|mysql)", c.Database.Driver)
	}
	if len(c.Parser.Sentinel) > 1 {
		return fmt.Errorf("parser.sentinel must be a single character, got %q", c.Parser.Sentinel)
	}
	if c.Parser.Sentinel != "" && !parser.ValidSentinel(c.Parser.Sentinel[0]) {
		return fmt.Errorf("parser.sentinel %q can occur in Solidity source", c.Parser.Sentinel)
	}
	if c.Parser.Concurrency < 0 {
		return fmt.Errorf("parser.concurrency must not be negative")
	}
	return nil
}

// GetDatabaseDSN MySQL DSN
func (c *AppConfig) GetDatabaseDSN(includeDBName bool) string {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
	)
	if includeDBName {
		dsn += fmt.Sprintf("%s?parseTime=true&charset=utf8mb4", c.Database.Name)
	} else {
		dsn += "?parseTime=true&charset=utf8mb4"
	}
	return dsn
}

// GetPostgresDSN gorm postgres 驱动使用的 key=value DSN
func (c *AppConfig) GetPostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func GetConfigPath() string {
	return findConfigFile()
}

func GetConfigDir() string {
	configPath := findConfigFile()
	if configPath == "" {
		return "config"
	}
	return filepath.Dir(configPath)
}
