package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Server configuration
	ServerPort  string `yaml:"port"`
	Environment string `yaml:"env"`
	Language    string `yaml:"language"`
	LogLevel    string `yaml:"log_level"`

	// Knowledge-base backend
	APIBaseURL string        `yaml:"api_base_url"`
	APITimeout time.Duration `yaml:"api_timeout"`

	// Session configuration
	SessionBackend       string        `yaml:"session_backend"`
	SessionTTL           time.Duration `yaml:"session_ttl"`
	SessionCookie        string        `yaml:"session_cookie"`
	SessionPurgeInterval time.Duration `yaml:"session_purge_interval"`

	// Redis configuration
	RedisAddress string `yaml:"redis_address"`

	// Database configuration
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`

	// JWT configuration, signs the session cookie
	JWTSecret string `yaml:"jwt_secret"`

	FrontendAddress string `yaml:"frontend_address"`
	WorkerCount     int    `yaml:"worker_count"`
}

// Global application configuration
var AppConfig Config

// LoadConfig loads configuration from environment variables
func LoadConfig() {
	// Find .env file
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		// Try to find .env in parent directories
		envPath = filepath.Join("..", ".env")
		if _, err := os.Stat(envPath); os.IsNotExist(err) {
			envPath = filepath.Join("..", "..", ".env")
		}
	}

	// Load .env file if it exists
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			log.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	AppConfig = FromEnv()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := AppConfig.ApplyFile(path); err != nil {
			log.Printf("Warning: Error loading config file %s: %v\n", path, err)
		}
	}

	if AppConfig.JWTSecret == "" {
		AppConfig.JWTSecret = generateRandomSecret(32)
		log.Println("Generated random JWT secret")
	}
}

// FromEnv builds a Config from environment variables and defaults.
func FromEnv() Config {
	return Config{
		ServerPort:           getEnv("PORT", "8080"),
		Environment:          getEnv("ENV", "development"),
		Language:             getEnv("LANGUAGE", "pt"),
		LogLevel:             getEnv("LOG_LEVEL", ""),
		APIBaseURL:           strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:3001/api"), "/"),
		APITimeout:           getDuration("API_TIMEOUT", 15*time.Second),
		SessionBackend:       getEnv("SESSION_BACKEND", "redis"),
		SessionTTL:           getDuration("SESSION_TTL", 72*time.Hour),
		SessionCookie:        getEnv("SESSION_COOKIE", "portal_session"),
		SessionPurgeInterval: getDuration("SESSION_PURGE_INTERVAL", 10*time.Minute),
		RedisAddress:         getEnv("REDIS_ADDRESS", "localhost:6379"),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnv("DB_PORT", "5432"),
		DBUser:               getEnv("DB_USER", "postgres"),
		DBPassword:           getEnv("DB_PASSWORD", "postgres"),
		DBName:               getEnv("DB_NAME", "support_portal"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		FrontendAddress:      getEnv("FRONTEND_ADDRESS", "https://portal.example.com"),
		WorkerCount:          getInt("WORKER_COUNT", 2),
	}
}

// ApplyFile overlays values from a YAML file. Keys absent from the file keep
// their current value.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return err
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
	return nil
}

// IsProduction reports whether the portal runs with production settings.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid duration for %s: %q\n", key, value)
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		log.Printf("Warning: invalid integer for %s: %q\n", key, value)
		return defaultValue
	}
	return n
}

// generateRandomSecret generates a random hex secret from length random bytes
func generateRandomSecret(length int) string {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("failed to generate secret: %v", err)
	}
	return hex.EncodeToString(b)
}
