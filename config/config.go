package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	JWTSecret string
	DBPath    string

	// WorkdayOffset shifts the current UTC instant before truncating to a
	// calendar date. Every endpoint that needs "today" goes through it.
	WorkdayOffset time.Duration

	CheckInColor string
	AbsentColor  string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	MailFrom string

	ConfirmBaseURL  string
	RegistrationTTL time.Duration

	TokenExpiryDuration string
}

var AppConfig Config

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	AppConfig = Config{
		Port:                getEnvOrDefault("PORT", "3000"),
		JWTSecret:           mustGetEnv("JWT_SECRET"),
		DBPath:              getEnvOrDefault("DB_PATH", "company.db"),
		WorkdayOffset:       time.Duration(getEnvIntOrDefault("WORKDAY_OFFSET_HOURS", 7)) * time.Hour,
		CheckInColor:        getEnvOrDefault("CHECKIN_COLOR", "#00FF00"),
		AbsentColor:         getEnvOrDefault("ABSENT_COLOR", "#FF0000"),
		SMTPHost:            getEnvOrDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:            getEnvOrDefault("SMTP_PORT", "587"),
		SMTPUser:            getEnvOrDefault("SMTP_USER", ""),
		SMTPPass:            getEnvOrDefault("SMTP_PASS", ""),
		MailFrom:            getEnvOrDefault("MAIL_FROM", "no-reply@example.com"),
		ConfirmBaseURL:      getEnvOrDefault("CONFIRM_BASE_URL", "http://localhost:3000/confirm"),
		RegistrationTTL:     time.Duration(getEnvIntOrDefault("REGISTRATION_TTL_MINUTES", 30)) * time.Minute,
		TokenExpiryDuration: getEnvOrDefault("TOKEN_EXPIRY", "24h"),
	}
}

func mustGetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Environment variable %s is required", key)
	}
	return value
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Environment variable %s must be an integer, got %q", key, value)
	}
	return n
}
