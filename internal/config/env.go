package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

type Env struct {
	AppAddr         string   `toml:"app_addr"`
	GinMode         string   `toml:"gin_mode"`
	DBDriver        string   `toml:"db_driver"`
	DatabaseURL     string   `toml:"database_url"`
	MigrationsPath  string   `toml:"migrations_path"`
	EncKey          string   `toml:"enc_key"`
	SiteURL         string   `toml:"site_url"`
	CORSOrigins     []string `toml:"cors_allowed_origins"`
	DefaultPageSize uint64   `toml:"default_page_size"`
	LogLevel        string   `toml:"log_level"`
	LogFormat       string   `toml:"log_format"`
}

// LoadEnv reads CONFIG_FILE (TOML) when set, then applies environment
// variables on top and fills defaults.
func LoadEnv() (Env, error) {
	var env Env
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if _, err := toml.DecodeFile(path, &env); err != nil {
			return env, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	str := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	str(&env.AppAddr, "APP_ADDR")
	str(&env.GinMode, "GIN_MODE")
	str(&env.DBDriver, "DB_DRIVER")
	str(&env.DatabaseURL, "DATABASE_URL")
	str(&env.MigrationsPath, "MIGRATIONS_PATH")
	str(&env.EncKey, "ENC_KEY")
	str(&env.SiteURL, "SITE_URL")
	str(&env.LogLevel, "LOG_LEVEL")
	str(&env.LogFormat, "LOG_FORMAT")

	if v := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		env.CORSOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSOrigins = append(env.CORSOrigins, o)
			}
		}
	}
	if v := strings.TrimSpace(os.Getenv("DEFAULT_PAGE_SIZE")); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil || n == 0 {
			return env, fmt.Errorf("DEFAULT_PAGE_SIZE must be a positive integer, got %q", v)
		}
		env.DefaultPageSize = n
	}

	if env.AppAddr == "" {
		env.AppAddr = ":8080"
	}
	if env.DBDriver == "" {
		env.DBDriver = "postgres"
	}
	if env.MigrationsPath == "" {
		env.MigrationsPath = "migrations"
	}
	if env.SiteURL == "" {
		env.SiteURL = "http://domain.com/"
	}
	if len(env.CORSOrigins) == 0 {
		env.CORSOrigins = []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
	}
	if env.DefaultPageSize == 0 {
		env.DefaultPageSize = 20
	}
	if env.LogLevel == "" {
		env.LogLevel = "INFO"
	}
	if env.LogFormat == "" {
		env.LogFormat = "text"
	}
	return env, nil
}

// Require fails when any of the named settings is empty.
func (e Env) Require(keys ...string) error {
	values := map[string]string{
		"DATABASE_URL": e.DatabaseURL,
		"ENC_KEY":      e.EncKey,
	}
	for _, k := range keys {
		if strings.TrimSpace(values[k]) == "" {
			return fmt.Errorf("%s var must be set", k)
		}
	}
	return nil
}
