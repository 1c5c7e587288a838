package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FILE_STORAGE", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageLocal, cfg.FileStorage)
	assert.Equal(t, "uploads", cfg.UploadPath)
	assert.Equal(t, 5<<20, cfg.MaxResumeBytes)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 3, cfg.LegacyFeedbackRating)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CORS_ORIGINS", "https://app.example.com/, http://localhost:3000")
	t.Setenv("FILE_STORAGE", "S3")
	t.Setenv("S3_BUCKET", "resumes")
	t.Setenv("S3_KEY_PREFIX", "/cv/")
	t.Setenv("REQUEST_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"https://app.example.com", "http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, StorageS3, cfg.FileStorage)
	assert.Equal(t, "cv", cfg.S3.KeyPrefix)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{FileStorage: StorageLocal, UploadPath: "uploads", MaxResumeBytes: 1, LegacyFeedbackRating: 3}
	}

	t.Run("valid local", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("s3 without bucket", func(t *testing.T) {
		cfg := base()
		cfg.FileStorage = StorageS3
		assert.ErrorContains(t, cfg.Validate(), "S3_BUCKET")
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := base()
		cfg.FileStorage = "ftp"
		assert.Error(t, cfg.Validate())
	})

	t.Run("legacy rating out of range", func(t *testing.T) {
		cfg := base()
		cfg.LegacyFeedbackRating = 0
		assert.ErrorContains(t, cfg.Validate(), "LEGACY_FEEDBACK_RATING")
	})
}
