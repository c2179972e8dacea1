package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	SMTP     SMTPConfig
	NAS      NASConfig
	Upload   UploadConfig
	Reminder ReminderConfig
	App      AppConfig
}

type ServerConfig struct {
	Port    string
	BaseURL string
}

type SMTPConfig struct {
	Host       string
	Port       int
	User       string
	Password   string
	From       string
	AdminEmail string
	Timeout    time.Duration
	// SendsPerMinute caps outgoing mail so a reminder sweep cannot
	// hammer the relay.
	SendsPerMinute int
}

// NASConfig points the file mirror at an S3-compatible gateway
// (MinIO and most NAS boxes expose one). Mirroring is disabled when
// Endpoint is empty.
type NASConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Timeout   time.Duration
}

type UploadConfig struct {
	Dir         string
	StagingDir  string
	MaxFileSize int64
}

type ReminderConfig struct {
	CronSecret string
	StaleDays  int
	// Schedule is a cron expression (with seconds) for the in-process
	// reminder sweep. Empty disables the scheduler.
	Schedule string
}

type AppConfig struct {
	Environment string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			BaseURL: getEnv("BASE_URL", "http://localhost:8080"),
		},
		SMTP: SMTPConfig{
			Host:           getEnv("SMTP_HOST", ""),
			Port:           getEnvAsInt("SMTP_PORT", 587),
			User:           getEnv("SMTP_USER", ""),
			Password:       getEnv("SMTP_PASS", ""),
			From:           getEnv("SMTP_FROM", "통컴퍼니 <noreply@tongcompany.co.kr>"),
			AdminEmail:     getEnv("ADMIN_EMAIL", "admin@tongcompany.co.kr"),
			Timeout:        getEnvAsDuration("SMTP_TIMEOUT", 10*time.Second),
			SendsPerMinute: getEnvAsInt("SMTP_SENDS_PER_MINUTE", 30),
		},
		NAS: NASConfig{
			Endpoint:  getEnv("NAS_ENDPOINT", ""),
			AccessKey: getEnv("NAS_ACCESS_KEY", ""),
			SecretKey: getEnv("NAS_SECRET_KEY", ""),
			Bucket:    getEnv("NAS_BUCKET", "projects"),
			Region:    getEnv("NAS_REGION", "us-east-1"),
			Timeout:   getEnvAsDuration("NAS_TIMEOUT", 15*time.Second),
		},
		Upload: UploadConfig{
			Dir:         getEnv("UPLOAD_DIR", "uploads"),
			StagingDir:  getEnv("STAGING_DIR", "temp"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10<<20),
		},
		Reminder: ReminderConfig{
			CronSecret: getEnv("CRON_SECRET", ""),
			StaleDays:  getEnvAsInt("REMINDER_STALE_DAYS", 3),
			Schedule:   getEnv("REMINDER_SCHEDULE", "0 0 9 * * *"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive")
	}

	if c.NAS.Endpoint != "" && (c.NAS.AccessKey == "" || c.NAS.SecretKey == "") {
		return fmt.Errorf("NAS_ACCESS_KEY and NAS_SECRET_KEY are required when NAS_ENDPOINT is set")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}
