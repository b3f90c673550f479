package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string
	AppPort    string
	AppEnv     string
	LogLevel   string
	JWTSecret  string
	CORSOrigin string

	// Requests carrying this value in X-Service-Auth get the internal rate tier.
	InternalSecretKey string

	// Prescription documents are written to a gocloud blob bucket.
	// mem:// keeps them in process, file:///var/medicore/uploads persists them.
	UploadBucketURL string
	MaxUploadBytes  int64

	DecrementStockOnOrder bool
	LowStockThreshold     int
	ExpiryWindowMonths    int
}

const (
	defaultAppPort        = "5002"
	defaultSSLMode        = "disable"
	defaultBucketURL      = "mem://"
	defaultMaxUploadBytes = 5 << 20
	defaultLowStock       = 10
	defaultExpiryMonths   = 3
)

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		DBSSLMode:  getEnv("DB_SSLMODE", defaultSSLMode),
		AppPort:    getEnv("APP_PORT", defaultAppPort),
		AppEnv:     os.Getenv("APP_ENV"),
		LogLevel:   os.Getenv("LOG_LEVEL"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),

		InternalSecretKey: os.Getenv("INTERNAL_SECRET_KEY"),

		UploadBucketURL: getEnv("UPLOAD_BUCKET_URL", defaultBucketURL),
		MaxUploadBytes:  int64(getEnvInt("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)),

		DecrementStockOnOrder: getEnvBool("DECREMENT_STOCK_ON_ORDER", true),
		LowStockThreshold:     getEnvInt("LOW_STOCK_THRESHOLD", defaultLowStock),
		ExpiryWindowMonths:    getEnvInt("EXPIRY_WINDOW_MONTHS", defaultExpiryMonths),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %t", key, v, fallback)
		return fallback
	}
	return b
}
