package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DBPath       string
	JWTSecret    string
	CORSOrigins  string
	SnapshotHour int
	AdminUser    string
	AdminPass    string
}

var (
	cfg  *Config
	once sync.Once
)

// Load reads configuration from a .env file when present, falling back
// to environment variables and sane defaults. Safe to call repeatedly.
func Load() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, relying on environment variables")
		}
		cfg = &Config{
			Port:         getEnv("PORT", "8080"),
			DBPath:       getEnv("DB_PATH", "./clinic.db"),
			JWTSecret:    os.Getenv("JWT_SECRET"),
			CORSOrigins:  os.Getenv("CORS_ALLOWED_ORIGINS"),
			SnapshotHour: getEnvInt("SNAPSHOT_HOUR", 23),
			AdminUser:    getEnv("ADMIN_USERNAME", "admin"),
			AdminPass:    os.Getenv("ADMIN_PASSWORD"),
		}
	})
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
