package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Scanner  ScannerConfig  `yaml:"scanner"`
	Audit    AuditConfig    `yaml:"audit"`
	Redis    RedisConfig    `yaml:"redis"`
}

type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Mode     string `yaml:"mode"` // debug, release, test
	LogLevel string `yaml:"log_level"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	ExpireHour int    `yaml:"expire_hour"`
}

// ScannerConfig controls the Trivy vulnerability scanner integration.
type ScannerConfig struct {
	TrivyPath string `yaml:"trivy_path"` // path to the trivy binary
	RepoRoot  string `yaml:"repo_root"`  // directory holding project repositories
}

type AuditConfig struct {
	RetentionDays int `yaml:"retention_days"`
}

// RedisConfig for the optional async scan queue.
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// InsecureDefaultJWTSecret is the development fallback signing key. The
// server warns at startup when it is still in use.
const InsecureDefaultJWTSecret = "sithub-secret-key-change-in-production"

func Load(configPath string) (*Config, error) {
	// .env is optional; real env vars win over it.
	_ = godotenv.Load()

	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
	}

	cfg.overrideFromEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			Port:     "8080",
			Mode:     "debug",
			LogLevel: "info",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "sithub.db",
		},
		JWT: JWTConfig{
			Secret:     InsecureDefaultJWTSecret,
			ExpireHour: 24,
		},
		Scanner: ScannerConfig{
			TrivyPath: "trivy",
			RepoRoot:  "repositories",
		},
		Audit: AuditConfig{
			RetentionDays: 90,
		},
		Redis: RedisConfig{
			Enabled: false,
			Addr:    "localhost:6379",
			DB:      0,
		},
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Server.LogLevel = level
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	if path := os.Getenv("TRIVY_PATH"); path != "" {
		c.Scanner.TrivyPath = path
	}
	if root := os.Getenv("REPO_ROOT"); root != "" {
		c.Scanner.RepoRoot = root
	}
	if days := os.Getenv("AUDIT_RETENTION_DAYS"); days != "" {
		if n, err := strconv.Atoi(days); err == nil && n > 0 {
			c.Audit.RetentionDays = n
		}
	}
	// Redis URL override (format: redis://:password@host:port/db)
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.Enabled = true
		c.parseRedisURL(redisURL)
	}
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Server.Host == "" {
		c.Server.Host = def.Server.Host
	}
	if c.Server.Port == "" {
		c.Server.Port = def.Server.Port
	}
	if c.Server.Mode == "" {
		c.Server.Mode = def.Server.Mode
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = def.Server.LogLevel
	}
	if c.Database.Driver == "" {
		c.Database.Driver = def.Database.Driver
	}
	if c.Database.DSN == "" {
		c.Database.DSN = def.Database.DSN
	}
	if c.JWT.Secret == "" {
		c.JWT.Secret = def.JWT.Secret
	}
	if c.JWT.ExpireHour <= 0 {
		c.JWT.ExpireHour = def.JWT.ExpireHour
	}
	if c.Scanner.TrivyPath == "" {
		c.Scanner.TrivyPath = def.Scanner.TrivyPath
	}
	if c.Scanner.RepoRoot == "" {
		c.Scanner.RepoRoot = def.Scanner.RepoRoot
	}
	if c.Audit.RetentionDays <= 0 {
		c.Audit.RetentionDays = def.Audit.RetentionDays
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = def.Redis.Addr
	}
}

// parseRedisURL parses a Redis URL and sets config values
// Format: redis://:password@host:port/db
func (c *Config) parseRedisURL(redisURL string) {
	url := strings.TrimPrefix(redisURL, "redis://")

	if atIdx := strings.Index(url, "@"); atIdx != -1 {
		authPart := url[:atIdx]
		url = url[atIdx+1:]
		if colonIdx := strings.Index(authPart, ":"); colonIdx != -1 {
			c.Redis.Password = authPart[colonIdx+1:]
		}
	}

	if slashIdx := strings.LastIndex(url, "/"); slashIdx != -1 {
		dbStr := url[slashIdx+1:]
		url = url[:slashIdx]
		if db, err := strconv.Atoi(dbStr); err == nil {
			c.Redis.DB = db
		}
	}

	c.Redis.Addr = url
}
