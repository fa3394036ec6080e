package config

import (
	"os"
	"strconv"
)

// applyEnvOverrides 环境变量优先于配置文件
func applyEnvOverrides(c *AppConfig) {
	c.Output.Format = getEnv("SOLO_OUTPUT_FORMAT", c.Output.Format)
	c.Output.Dir = getEnv("SOLO_OUTPUT_DIR", c.Output.Dir)

	c.Parser.KeepUserReturnTypes = getEnvAsBool("SOLO_KEEP_USER_RETURN_TYPES", c.Parser.KeepUserReturnTypes)
	c.Parser.Concurrency = getEnvAsInt("SOLO_CONCURRENCY", c.Parser.Concurrency)
	c.Parser.Solc = getEnv("SOLO_SOLC", c.Parser.Solc)

	c.Database.Driver = getEnv("SOLO_DB_DRIVER", c.Database.Driver)
	c.Database.Path = getEnv("SOLO_DB_PATH", c.Database.Path)
	c.Database.Host = getEnv("SOLO_DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("SOLO_DB_PORT", c.Database.Port)
	c.Database.User = getEnv("SOLO_DB_USER", c.Database.User)
	c.Database.Password = getEnv("SOLO_DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("SOLO_DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnv("SOLO_DB_SSLMODE", c.Database.SSLMode)

	c.Log.Dir = getEnv("SOLO_LOG_DIR", c.Log.Dir)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
