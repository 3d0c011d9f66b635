package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host        string   `yaml:"host"`
		Port        int      `yaml:"port"`
		Env         string   `yaml:"env"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`

	Database struct {
		Driver       string `yaml:"driver"` // postgres, mysql
		DSN          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
		AutoMigrate  bool   `yaml:"auto_migrate"`
	} `yaml:"database"`

	JWT struct {
		Secret          string `yaml:"secret"`
		TTL             int    `yaml:"ttl"` // минуты
		RefreshTTLHours int    `yaml:"refresh_ttl_hours"`
	} `yaml:"jwt"`

	Email struct {
		Enabled      bool   `yaml:"enabled"`
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		UseTLS       bool   `yaml:"use_tls"`
		TemplatesDir string `yaml:"templates_dir"`
	} `yaml:"email"`

	Dispatch struct {
		Type    string `yaml:"type"` // inprocess, amqp
		Workers int    `yaml:"workers"`
		Buffer  int    `yaml:"buffer"`
		AMQPURL string `yaml:"amqp_url"`
		Queue   string `yaml:"queue"`
	} `yaml:"dispatch"`

	Storage struct {
		Type      string `yaml:"type"`      // local, s3
		BasePath  string `yaml:"base_path"` // For local storage
		BaseURL   string `yaml:"base_url"`  // Public URL base
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Endpoint  string `yaml:"endpoint"` // R2, MinIO или другой S3-совместимый
	} `yaml:"storage"`

	Upload struct {
		MaxResumeSize int64 `yaml:"max_resume_size"` // байты
		MaxLogoSize   int64 `yaml:"max_logo_size"`
	} `yaml:"upload"`

	Jobs struct {
		ExpireIntervalMinutes int `yaml:"expire_interval_minutes"`
		PageSize              int `yaml:"page_size"`
		FeaturedCount         int `yaml:"featured_count"`
	} `yaml:"jobs"`

	RateLimit struct {
		Enabled       bool   `yaml:"enabled"`
		RedisURL      string `yaml:"redis_url"` // пусто - счётчики в памяти
		AuthAttempts  int    `yaml:"auth_attempts"`
		WindowSeconds int    `yaml:"window_seconds"`
	} `yaml:"rate_limit"`

	FirstAdmin struct {
		Username string `yaml:"username"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"first_admin"`
}

var AppConfig *Config

// LoadConfig загружает конфигурацию: .env -> config.yaml (если есть) -> переменные окружения -> значения по умолчанию.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// Load - то же, что LoadConfig, но без глобального состояния и с возвратом ошибки
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Skipping .env: %v", err)
	}

	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	f, err := os.Open(configPath)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", configPath, err)
		}
	case errors.Is(err, os.ErrNotExist):
		log.Printf("Config file %s not found, using environment", configPath)
	default:
		return nil, fmt.Errorf("failed to open config file at %s: %w", configPath, err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if cfg.Database.DSN == "" {
		return nil, errors.New("database url is not configured (database.url or DATABASE_URL)")
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Database.DSN, "DATABASE_URL")
	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Server.Env, "SERVER_ENV")
	setInt(&cfg.Server.Port, "SERVER_PORT")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setString(&cfg.Dispatch.AMQPURL, "AMQP_URL")
	setString(&cfg.Dispatch.Type, "DISPATCH_TYPE")
	setString(&cfg.Email.SMTPHost, "SMTP_HOST")
	setInt(&cfg.Email.SMTPPort, "SMTP_PORT")
	setString(&cfg.Email.SMTPUsername, "SMTP_USER")
	setString(&cfg.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&cfg.Storage.Type, "STORAGE_TYPE")
	setString(&cfg.Storage.Bucket, "STORAGE_BUCKET")
	setString(&cfg.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "STORAGE_SECRET_KEY")
	setString(&cfg.Storage.Endpoint, "STORAGE_ENDPOINT")
	setString(&cfg.RateLimit.RedisURL, "REDIS_URL")
	setBool(&cfg.RateLimit.Enabled, "RATE_LIMIT_ENABLED")
	setString(&cfg.FirstAdmin.Username, "FIRST_ADMIN_USERNAME")
	setString(&cfg.FirstAdmin.Email, "FIRST_ADMIN_EMAIL")
	setString(&cfg.FirstAdmin.Password, "FIRST_ADMIN_PASSWORD")

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.Server.CORSOrigins = strings.Split(origins, ",")
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"*"}
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60
	}
	if cfg.JWT.RefreshTTLHours == 0 {
		cfg.JWT.RefreshTTLHours = 24 * 7
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "Job Portal"
	}
	if cfg.Dispatch.Type == "" {
		cfg.Dispatch.Type = "inprocess"
	}
	if cfg.Dispatch.Workers == 0 {
		cfg.Dispatch.Workers = 2
	}
	if cfg.Dispatch.Buffer == 0 {
		cfg.Dispatch.Buffer = 100
	}
	if cfg.Dispatch.Queue == "" {
		cfg.Dispatch.Queue = "emails"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/api/v1/files"
	}
	if cfg.Upload.MaxResumeSize == 0 {
		cfg.Upload.MaxResumeSize = 5 * 1024 * 1024 // 5MB
	}
	if cfg.Upload.MaxLogoSize == 0 {
		cfg.Upload.MaxLogoSize = 2 * 1024 * 1024
	}
	if cfg.Jobs.ExpireIntervalMinutes == 0 {
		cfg.Jobs.ExpireIntervalMinutes = 60
	}
	if cfg.Jobs.PageSize == 0 {
		cfg.Jobs.PageSize = 20
	}
	if cfg.Jobs.FeaturedCount == 0 {
		cfg.Jobs.FeaturedCount = 6
	}
	if cfg.RateLimit.AuthAttempts == 0 {
		cfg.RateLimit.AuthAttempts = 10
	}
	if cfg.RateLimit.WindowSeconds == 0 {
		cfg.RateLimit.WindowSeconds = 60
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// IsProduction - удобный флаг для отключения debug-режимов
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
