// Package config reads process-wide settings from the environment once at
// startup. The resulting Config is immutable and passed into constructors.
package config

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the API server.
//
// Fields:
//   - Port: HTTP listen port.
//   - JWTSecret: HMAC secret for signing identity tokens (HS256).
//   - DatabaseURL: PostgreSQL DSN (pgx).
//   - AWSRegion / AWSAccessKeyID / AWSSecretAccessKey: object storage credentials.
//   - S3Bucket: bucket receiving video uploads.
//   - S3Endpoint: optional custom endpoint for S3-compatible backends (MinIO).
type Config struct {
	Port               string
	JWTSecret          string
	DatabaseURL        string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	S3Bucket           string
	S3Endpoint         string
}

// Load reads .env if present, then the environment. DATABASE_URL and
// JWT_SECRET are required; everything else has a default or is optional.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{
		Port:               getenv("PORT", "5000"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		AWSRegion:          getenv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		S3Bucket:           os.Getenv("S3_BUCKET_NAME"),
		S3Endpoint:         os.Getenv("S3_ENDPOINT"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("config: DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("config: JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
