package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		setup   func()
		cleanup func()
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name: "load with defaults (no config file)",
			setup: func() {
				viper.Reset()
			},
			cleanup: func() {},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Server.Port != 8080 {
					t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
				}
				if cfg.Database.Host != "localhost" {
					t.Errorf("Database.Host = %s, want localhost", cfg.Database.Host)
				}
				if cfg.Database.Name != "church_site" {
					t.Errorf("Database.Name = %s, want church_site", cfg.Database.Name)
				}
				if cfg.Admin.Password != "" {
					t.Errorf("Admin.Password = %q, want empty", cfg.Admin.Password)
				}
				if cfg.YouTube.FeedLimit != 15 {
					t.Errorf("YouTube.FeedLimit = %d, want 15", cfg.YouTube.FeedLimit)
				}
				if cfg.RabbitMQ.Enabled {
					t.Error("RabbitMQ.Enabled = true, want false")
				}
			},
		},
		{
			name: "load with environment variables",
			setup: func() {
				viper.Reset()
				viper.SetEnvPrefix("APP")
				viper.AutomaticEnv()
				os.Setenv("APP_SERVER_PORT", "9090")
				os.Setenv("APP_DATABASE_HOST", "testdb")
				os.Setenv("ADMIN_PASSWORD", "hunter2")
				os.Setenv("YOUTUBE_API_KEY", "test-key")
				// Manually bind env vars since AutomaticEnv doesn't work with nested keys
				viper.BindEnv("server.port", "APP_SERVER_PORT")
				viper.BindEnv("database.host", "APP_DATABASE_HOST")
			},
			cleanup: func() {
				os.Unsetenv("APP_SERVER_PORT")
				os.Unsetenv("APP_DATABASE_HOST")
				os.Unsetenv("ADMIN_PASSWORD")
				os.Unsetenv("YOUTUBE_API_KEY")
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Server.Port != 9090 {
					t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
				}
				if cfg.Database.Host != "testdb" {
					t.Errorf("Database.Host = %s, want testdb", cfg.Database.Host)
				}
				if cfg.Admin.Password != "hunter2" {
					t.Errorf("Admin.Password = %q, want hunter2", cfg.Admin.Password)
				}
				if cfg.YouTube.APIKey != "test-key" {
					t.Errorf("YouTube.APIKey = %q, want test-key", cfg.YouTube.APIKey)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}
			defer func() {
				if tt.cleanup != nil {
					tt.cleanup()
				}
			}()

			cfg, err := Load()
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && cfg == nil {
				t.Fatal("Load() returned nil config")
			}

			if tt.check != nil && cfg != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestSetDefaults(t *testing.T) {
	viper.Reset()
	setDefaults()

	tests := []struct {
		name string
		key  string
		want interface{}
	}{
		{"server port", "server.port", 8080},
		{"database host", "database.host", "localhost"},
		{"database port", "database.port", 5432},
		{"database name", "database.name", "church_site"},
		{"database user", "database.user", "postgres"},
		{"database sslmode", "database.sslmode", "disable"},
		{"database maxconnections", "database.maxconnections", 10},
		{"database minconnections", "database.minconnections", 5},
		{"admin password", "admin.password", ""},
		{"admin cookiesecure", "admin.cookiesecure", false},
		{"youtube apikey", "youtube.apikey", ""},
		{"youtube feedlimit", "youtube.feedlimit", 15},
		{"rabbitmq enabled", "rabbitmq.enabled", false},
		{"rabbitmq host", "rabbitmq.host", "localhost"},
		{"rabbitmq port", "rabbitmq.port", 5672},
		{"rabbitmq exchange", "rabbitmq.exchange", "church.reviews"},
		{"rabbitmq queue", "rabbitmq.queue", "church.reviews.decided"},
		{"rabbitmq routingkey", "rabbitmq.routingkey", "review.decided"},
		{"logging level", "logging.level", "info"},
		{"logging file", "logging.file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := viper.Get(tt.key)
			if got != tt.want {
				t.Errorf("viper.Get(%s) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}

	// Test time.Duration defaults
	if viper.GetDuration("server.shutdowntimeout") != 30*time.Second {
		t.Errorf("server.shutdowntimeout = %v, want 30s", viper.GetDuration("server.shutdowntimeout"))
	}
	if viper.GetDuration("database.maxidletime") != 10*time.Minute {
		t.Errorf("database.maxidletime = %v, want 10m", viper.GetDuration("database.maxidletime"))
	}
	if viper.GetDuration("database.maxlifetime") != 1*time.Hour {
		t.Errorf("database.maxlifetime = %v, want 1h", viper.GetDuration("database.maxlifetime"))
	}
}
