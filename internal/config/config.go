package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DBDSN        string
	LogFile      string
	TemplatesDir string
	StaticDir    string

	SMTP SMTPConfig

	AdminEmail    string
	AdminName     string
	AdminPassword string
	SeedDemo      bool

	// RejectedBucket names the dashboard tile rejected products count toward.
	RejectedBucket string
	MetricsEnabled bool
}

type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	Encryption string // starttls | ssl | none
	From       string
	FromName   string
}

func Load() Config {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		DBDSN:        getEnv("DB_DSN", "prodx.db"),
		LogFile:      getEnv("LOG_FILE", "./prodx.log"),
		TemplatesDir: getEnv("TEMPLATES_DIR", "./web/templates"),
		StaticDir:    getEnv("STATIC_DIR", "./web/static"),
		SMTP: SMTPConfig{
			Host:       os.Getenv("SMTP_HOST"),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Username:   os.Getenv("SMTP_USERNAME"),
			Password:   os.Getenv("SMTP_PASSWORD"),
			Encryption: strings.ToLower(getEnv("SMTP_ENCRYPTION", "starttls")),
			From:       os.Getenv("MAIL_FROM"),
			FromName:   getEnv("MAIL_FROM_NAME", "Project Hiraya"),
		},
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminName:      getEnv("ADMIN_NAME", "Admin"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		SeedDemo:       getEnvAsBool("SEED_DEMO", false),
		RejectedBucket: getEnv("STATS_REJECTED_BUCKET", "declined"),
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", false),
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.Username
	}

	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s SMTP_HOST=%s SMTP_PORT=%d SMTP_USERNAME=%s SMTP_PASSWORD=%s STATS_REJECTED_BUCKET=%s",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, mask(cfg.SMTP.Password), cfg.RejectedBucket)
	return cfg
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if n, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return n
	}
	return def
}

func getEnvAsBool(key string, def bool) bool {
	if b, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return b
	}
	return def
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "****"
}
