package storage

import (
	"context"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/developia-II/candidate-tracker-backend/internal/config"
	"golang.org/x/crypto/blake2b"
)

// Upload is a resume file already read into memory.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// FileStore persists uploaded resumes. Store returns a key that Resolve turns
// into the dereferenceable string saved on the candidate, and Remove deletes.
type FileStore interface {
	Store(ctx context.Context, upload Upload) (string, error)
	Resolve(key string) string
	Remove(ctx context.Context, key string) error
	Backend() string
}

// New picks the implementation named by cfg.FileStorage.
func New(ctx context.Context, cfg *config.Config) (FileStore, error) {
	switch cfg.FileStorage {
	case config.StorageLocal:
		return NewLocalStore(cfg.UploadPath, localURLPrefix(cfg.PublicURL))
	case config.StorageS3:
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown file storage %q", cfg.FileStorage)
	}
}

// LocalURLPath is where the HTTP layer serves locally stored resumes.
const LocalURLPath = "/uploads"

func localURLPrefix(publicURL string) string {
	return strings.TrimRight(publicURL, "/") + LocalURLPath
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFilename keeps the base name readable while dropping path tricks and
// characters that need escaping in URLs.
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		return "resume.pdf"
	}
	if !strings.EqualFold(filepath.Ext(base), ".pdf") {
		base += ".pdf"
	}
	if len(base) > 120 {
		base = base[len(base)-120:]
	}
	return base
}

// Checksum is the hex BLAKE2b-256 digest of the file contents.
func Checksum(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
