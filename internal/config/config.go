package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Security  SecurityConfig  `mapstructure:"security"`
	Training  TrainingConfig  `mapstructure:"training"`
	Content   ContentConfig   `mapstructure:"content"`
	Report    ReportConfig    `mapstructure:"report"`
	Evidence  EvidenceConfig  `mapstructure:"evidence"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Runtime flags set from the command line, not the config file.
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type SecurityConfig struct {
	EncryptionKey      string `mapstructure:"encryption_key"`
	EncryptionSalt     string `mapstructure:"encryption_salt"`
	MaxFailedAttempts  int    `mapstructure:"max_failed_attempts"`
	LockoutMinutes     int    `mapstructure:"lockout_minutes"`
	AuditRetentionDays int    `mapstructure:"audit_retention_days"`
}

type TrainingConfig struct {
	PassThreshold    float64 `mapstructure:"pass_threshold"`
	GoodThreshold    float64 `mapstructure:"good_threshold"`
	MiniQuizPass     float64 `mapstructure:"mini_quiz_pass"`
	CertValidityDays int     `mapstructure:"cert_validity_days"`
}

type ContentConfig struct {
	Dir string `mapstructure:"dir"`
}

type ReportConfig struct {
	Dir string `mapstructure:"dir"`
}

type EvidenceConfig struct {
	Dir          string `mapstructure:"dir"`
	MaxSizeBytes int64  `mapstructure:"max_size_bytes"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("HIPAA")
	viper.AutomaticEnv()

	viper.BindEnv("database.path", "DB_URL")
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("security.encryption_key", "HIPAA_ENCRYPTION_KEY")
	viper.BindEnv("security.encryption_salt", "HIPAA_SALT")
	viper.BindEnv("security.audit_retention_days", "AUDIT_RETENTION_DAYS")
	viper.BindEnv("training.pass_threshold", "PASS_THRESHOLD")
	viper.BindEnv("training.cert_validity_days", "TRAINING_EXPIRY_DAYS")
	viper.BindEnv("server.mode", "SERVER_MODE")
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Defaults and env vars are enough to run; only a malformed file is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	if cfg.Server.Mode == "release" {
		if len(cfg.JWT.Secret) < 32 {
			return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
		}
		if cfg.Security.EncryptionKey == "" || cfg.Security.EncryptionKey == "default_key_change_in_production" {
			return nil, fmt.Errorf("encryption key must be set to a non-default value in release mode")
		}
	}

	for _, dir := range []string{cfg.Content.Dir, cfg.Report.Dir, cfg.Evidence.Dir} {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0700); err != nil {
				return nil, err
			}
		}
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.path", "hipaa_training.db")
	viper.SetDefault("jwt.expire_hours", 8)
	viper.SetDefault("security.encryption_key", "default_key_change_in_production")
	viper.SetDefault("security.encryption_salt", "hipaa-training-static-salt")
	viper.SetDefault("security.max_failed_attempts", 5)
	viper.SetDefault("security.lockout_minutes", 15)
	viper.SetDefault("security.audit_retention_days", 365*6)
	viper.SetDefault("training.pass_threshold", 80)
	viper.SetDefault("training.good_threshold", 60)
	viper.SetDefault("training.mini_quiz_pass", 70)
	viper.SetDefault("training.cert_validity_days", 365)
	viper.SetDefault("content.dir", "content")
	viper.SetDefault("report.dir", "reports")
	viper.SetDefault("evidence.dir", "evidence")
	viper.SetDefault("evidence.max_size_bytes", 5*1024*1024)
	viper.SetDefault("rate_limit.max_requests", 600)
	viper.SetDefault("rate_limit.window_minutes", 1)
}
