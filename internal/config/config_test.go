package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

// clearEnv unsets every variable the loader reads so host settings do not leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"SERVER_HOST", "SERVER_PORT", "PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
		"SERVER_IDLE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT", "SERVER_REQUEST_TIMEOUT", "SERVER_MAX_FORM_BYTES",
		"SESSION_COOKIE_NAME", "SESSION_COOKIE_SECURE", "SESSION_IDLE_TIMEOUT", "SESSION_SWEEP_INTERVAL",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_KEY_PREFIX",
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_REQUESTS_PER_MINUTE", "RATE_LIMIT_BURST",
		"EXPORT_MAX_CONCURRENT", "EXPORT_MAX_WAIT",
		"TRUSTED_PROXIES", "SECURITY_ENABLE_CSP", "LOG_LEVEL", "LOG_FORMAT",
	} {
		os.Unsetenv(name)
	}
}

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080, ShutdownTimeout: time.Second, RequestTimeout: time.Second, MaxFormBytes: 1024},
		Session: SessionConfig{CookieName: "s", IdleTimeout: time.Hour, SweepInterval: time.Minute},
		Rate:    RateLimitConfig{Enabled: true, RequestsPerMinute: 100, Burst: 10},
		Export:  ExportConfig{MaxConcurrent: 2, MaxWait: time.Second},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Session.CookieName != "tohands_session" {
		t.Errorf("Session.CookieName = %q, want %q", cfg.Session.CookieName, "tohands_session")
	}
	if cfg.Session.IdleTimeout != 2*time.Hour {
		t.Errorf("Session.IdleTimeout = %v, want %v", cfg.Session.IdleTimeout, 2*time.Hour)
	}
	if cfg.Redis.Enabled() {
		t.Error("Redis.Enabled() = true, want false without REDIS_ADDR")
	}
	if cfg.Redis.KeyPrefix != "session:" {
		t.Errorf("Redis.KeyPrefix = %q, want %q", cfg.Redis.KeyPrefix, "session:")
	}
	if cfg.Rate.RequestsPerMinute != 120 {
		t.Errorf("Rate.RequestsPerMinute = %d, want %d", cfg.Rate.RequestsPerMinute, 120)
	}
	if cfg.Export.MaxConcurrent != 4 {
		t.Errorf("Export.MaxConcurrent = %d, want %d", cfg.Export.MaxConcurrent, 4)
	}
	if cfg.Export.MaxWait != 5*time.Second {
		t.Errorf("Export.MaxWait = %v, want %v", cfg.Export.MaxWait, 5*time.Second)
	}
	if !cfg.Security.EnableCSP {
		t.Error("Security.EnableCSP = false, want true")
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	clearEnv(t)
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("SESSION_COOKIE_SECURE", "true")
	os.Setenv("REDIS_ADDR", "localhost:6379")
	os.Setenv("LOG_LEVEL", "debug")
	defer clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if !cfg.Session.CookieSecure {
		t.Error("Session.CookieSecure = false, want true")
	}
	if !cfg.Redis.Enabled() {
		t.Error("Redis.Enabled() = false, want true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	clearEnv(t)
	os.Setenv("PORT", "5000")
	defer clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 5000)
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	clearEnv(t)
	os.Setenv("SERVER_PORT", "eighty")
	defer clearEnv(t)

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for non-numeric SERVER_PORT")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Errorf("error should mention SERVER_PORT: %v", err)
	}
}

func TestLoad_Duration(t *testing.T) {
	clearEnv(t)
	os.Setenv("SERVER_READ_TIMEOUT", "45s")
	os.Setenv("SESSION_IDLE_TIMEOUT", "1h30m")
	defer clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.Session.IdleTimeout != 90*time.Minute {
		t.Errorf("Session.IdleTimeout = %v, want %v", cfg.Session.IdleTimeout, 90*time.Minute)
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	clearEnv(t)
	os.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.0/12 , 192.168.0.0/16")
	defer clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}
	if len(cfg.Security.TrustedProxies) != len(expected) {
		t.Fatalf("TrustedProxies length = %d, want %d", len(cfg.Security.TrustedProxies), len(expected))
	}
	for i, v := range expected {
		if cfg.Security.TrustedProxies[i] != v {
			t.Errorf("TrustedProxies[%d] = %q, want %q", i, cfg.Security.TrustedProxies[i], v)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 99999 },
			wantErr: "SERVER_PORT",
		},
		{
			name:    "zero idle timeout",
			mutate:  func(c *Config) { c.Session.IdleTimeout = 0 },
			wantErr: "SESSION_IDLE_TIMEOUT",
		},
		{
			name:    "empty cookie name",
			mutate:  func(c *Config) { c.Session.CookieName = "  " },
			wantErr: "SESSION_COOKIE_NAME",
		},
		{
			name:    "rate limit without burst",
			mutate:  func(c *Config) { c.Rate.Burst = 0 },
			wantErr: "RATE_LIMIT_BURST",
		},
		{
			name: "disabled rate limit ignores zero values",
			mutate: func(c *Config) {
				c.Rate = RateLimitConfig{Enabled: false}
			},
		},
		{
			name:    "zero export slots",
			mutate:  func(c *Config) { c.Export.MaxConcurrent = 0 },
			wantErr: "EXPORT_MAX_CONCURRENT",
		},
		{
			name:    "negative export wait",
			mutate:  func(c *Config) { c.Export.MaxWait = -time.Second },
			wantErr: "EXPORT_MAX_WAIT",
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "LOG_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error mentioning %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %s: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, want := range []string{"SERVER_PORT", "LOG_FORMAT"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s: %v", want, err)
		}
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
		{"localhost", 443, "localhost:443"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		got := cfg.Addr()
		if got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestConfigString_MasksRedisPassword(t *testing.T) {
	cfg := &Config{
		Redis: RedisConfig{Addr: "cache:6379", Password: "hunter2"},
	}
	str := cfg.String()
	if strings.Contains(str, "hunter2") {
		t.Error("String() should mask the Redis password")
	}
	if !strings.Contains(str, "MASKED") {
		t.Error("String() should contain MASKED placeholder")
	}
}
