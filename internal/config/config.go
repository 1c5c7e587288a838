package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config is built once at start-up and handed to every component that needs it.
type Config struct {
	Port        string
	MongoURI    string
	DBName      string
	CORSOrigins []string

	LogLevel  string
	LogFormat string

	// Resume uploads
	MaxResumeBytes int
	FileStorage    string
	UploadPath     string
	PublicURL      string

	S3 S3Config

	RateLimitMax    int
	RateLimitWindow time.Duration
	RequestTimeout  time.Duration

	// Rating assigned to embedded feedback copied by the legacy migration.
	LegacyFeedbackRating int
}

type S3Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // S3-compatible providers (R2, Wasabi, MinIO)
	PublicURL       string
	KeyPrefix       string
}

func Load() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "5000"),
		MongoURI:    getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "candidate_tracker"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		MaxResumeBytes: getEnvInt("MAX_FILE_SIZE", 5<<20),
		FileStorage:    strings.ToLower(getEnv("FILE_STORAGE", StorageLocal)),
		UploadPath:     getEnv("UPLOAD_PATH", "uploads"),
		PublicURL:      strings.TrimRight(getEnv("PUBLIC_URL", ""), "/"),

		S3: S3Config{
			Bucket:          getEnv("S3_BUCKET", ""),
			Region:          getEnv("S3_REGION", "us-east-1"),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			Endpoint:        strings.TrimRight(getEnv("S3_ENDPOINT", ""), "/"),
			PublicURL:       strings.TrimRight(getEnv("S3_PUBLIC_URL", ""), "/"),
			KeyPrefix:       strings.Trim(getEnv("S3_KEY_PREFIX", "resumes"), "/"),
		},

		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),

		LegacyFeedbackRating: getEnvInt("LEGACY_FEEDBACK_RATING", 3),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.FileStorage {
	case StorageLocal:
		if c.UploadPath == "" {
			return fmt.Errorf("UPLOAD_PATH must not be empty for local file storage")
		}
	case StorageS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when FILE_STORAGE=s3")
		}
	default:
		return fmt.Errorf("unknown FILE_STORAGE %q (want %q or %q)", c.FileStorage, StorageLocal, StorageS3)
	}
	if c.MaxResumeBytes <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive")
	}
	if c.LegacyFeedbackRating < 1 || c.LegacyFeedbackRating > 5 {
		return fmt.Errorf("LEGACY_FEEDBACK_RATING must be between 1 and 5, got %d", c.LegacyFeedbackRating)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimRight(strings.TrimSpace(part), "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}
