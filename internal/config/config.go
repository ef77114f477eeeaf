package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ResetTokenTTL bounds how long a password reset link stays usable.
const ResetTokenTTL = 15 * time.Minute

type Config struct {
	ServerAddr string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret       string
	SessionTokenTTL time.Duration
	BcryptCost      int

	FrontendURL string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	UseS3     bool
	S3Bucket  string
	S3Region  string
	ExportDir string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "xtreme_panel"),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		SessionTokenTTL: getEnvDuration("SESSION_TOKEN_TTL", 24*time.Hour),
		BcryptCost:      getEnvInt("BCRYPT_COST", 10),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),

		UseS3:     getEnv("USE_S3", "false") == "true",
		S3Bucket:  os.Getenv("S3_BUCKET"),
		S3Region:  os.Getenv("S3_REGION"),
		ExportDir: getEnv("EXPORT_DIR", "./exports"),
	}

	log.Println("✅ Config loaded")
	return cfg
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long (current: %d)", len(c.JWTSecret))
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31 (current: %d)", c.BcryptCost)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("⚠️  Invalid duration for %s, using default %s", key, fallback)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("⚠️  Invalid integer for %s, using default %d", key, fallback)
	}
	return fallback
}
