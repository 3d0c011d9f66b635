package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("file not found")

// Storage defines the interface for file storage operations
type Storage interface {
	// Save stores a file at the given key
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Get retrieves a file by key
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a file
	Delete(ctx context.Context, key string) error

	// Exists checks if a file exists
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns a URL the API clients can fetch the file from
	GetURL(ctx context.Context, key string) (string, error)

	// GetSignedURL returns a temporary signed URL for private files
	GetSignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// Config holds storage configuration
type Config struct {
	Type      string // local, s3
	BasePath  string // For local storage
	BaseURL   string // Public URL base
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // R2, MinIO or another S3-compatible endpoint
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg)
	case "s3", "cloudflare_r2":
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// Каталоги для разных типов файлов
const (
	PrefixResumes            = "resumes"
	PrefixApplicationResumes = "application_resumes"
	PrefixCompanyLogos       = "company_logos"
)

// NewKey генерирует ключ вида <prefix>/<uuid><ext>, ext берётся из исходного имени
func NewKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return prefix + "/" + uuid.NewString() + ext
}

// CleanKey отбрасывает ведущие слэши и попытки выйти за пределы хранилища
func CleanKey(key string) (string, error) {
	cleaned := path.Clean("/" + key)
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", ErrNotFound
	}
	return cleaned, nil
}
