package config

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
}

type Config struct {
	Port          string
	PublicAppURL  string
	AllowedOrigin string
	TTLSeconds    int64
	MaxBytes      int64
	R2            R2Config
}

// Load reads the environment (and an optional dotenv file) once at startup.
// The returned value is immutable; everything downstream receives it by
// injection.
func Load() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found")
	}

	return Config{
		Port:          getEnv("PORT", "8080"),
		PublicAppURL:  getEnv("PUBLIC_APP_URL", "https://app.solsync.dev/upload.html"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
		TTLSeconds:    getEnvInt64("TTL_SECONDS", 1800),
		MaxBytes:      getEnvInt64("MAX_BYTES", 100<<20),
		R2: R2Config{
			AccountID:       getEnv("R2_ACCOUNT_ID", ""),
			AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("R2_BUCKET_NAME", ""),
			Region:          getEnv("R2_REGION", "auto"),
		},
	}
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %d", key, value, fallback)
		return fallback
	}
	return n
}

func (c Config) CorsConfig() cors.Options {
	return cors.Options{
		AllowedOrigins: []string{c.AllowedOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Filename"},
		MaxAge:         86400,
	}
}
