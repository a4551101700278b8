package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %q, expected %q", cfg.Server.Port, "8080")
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("default driver = %q, expected %q", cfg.Database.Driver, "sqlite")
	}
	if cfg.JWT.Secret != InsecureDefaultJWTSecret {
		t.Errorf("default JWT secret = %q", cfg.JWT.Secret)
	}
	if cfg.JWT.ExpireHour != 24 {
		t.Errorf("default expire hour = %d, expected 24", cfg.JWT.ExpireHour)
	}
	if cfg.Audit.RetentionDays != 90 {
		t.Errorf("default retention = %d, expected 90", cfg.Audit.RetentionDays)
	}
	if cfg.Redis.Enabled {
		t.Error("redis must be disabled by default")
	}
}

func TestLoad_FromFileWithPartialValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "9090"
database:
  driver: postgres
  dsn: "host=localhost user=sithub dbname=sithub"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, expected %q", cfg.Server.Port, "9090")
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("driver = %q, expected %q", cfg.Database.Driver, "postgres")
	}
	// Unset values are filled with defaults
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("host = %q, expected default", cfg.Server.Host)
	}
	if cfg.JWT.ExpireHour != 24 {
		t.Errorf("expire hour = %d, expected default 24", cfg.JWT.ExpireHour)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DB_DRIVER", "mysql")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "3000" {
		t.Errorf("port = %q, expected %q", cfg.Server.Port, "3000")
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("secret = %q, expected env value", cfg.JWT.Secret)
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("driver = %q, expected %q", cfg.Database.Driver, "mysql")
	}
}

func TestParseRedisURL(t *testing.T) {
	cases := []struct {
		url      string
		addr     string
		password string
		db       int
	}{
		{"redis://localhost:6379", "localhost:6379", "", 0},
		{"redis://:secret@redis.internal:6380/2", "redis.internal:6380", "secret", 2},
		{"redis://localhost:6379/1", "localhost:6379", "", 1},
	}

	for _, tc := range cases {
		cfg := DefaultConfig()
		cfg.parseRedisURL(tc.url)

		if cfg.Redis.Addr != tc.addr {
			t.Errorf("%s: addr = %q, expected %q", tc.url, cfg.Redis.Addr, tc.addr)
		}
		if cfg.Redis.Password != tc.password {
			t.Errorf("%s: password = %q, expected %q", tc.url, cfg.Redis.Password, tc.password)
		}
		if cfg.Redis.DB != tc.db {
			t.Errorf("%s: db = %d, expected %d", tc.url, cfg.Redis.DB, tc.db)
		}
	}
}

func TestLoad_RedisURLEnablesAsyncMode(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://:pw@localhost:6379/0")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.Redis.Enabled {
		t.Error("REDIS_URL must enable the redis queue")
	}
	if cfg.Redis.Password != "pw" {
		t.Errorf("password = %q, expected %q", cfg.Redis.Password, "pw")
	}
}
