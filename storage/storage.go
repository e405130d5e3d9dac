package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Storage stores profile avatar images.
type Storage interface {
	// Save stores an avatar for a profile and returns the storage path
	Save(ctx context.Context, profileID uuid.UUID, filename string, data io.Reader) (string, error)

	// Open retrieves an avatar by storage path
	Open(ctx context.Context, storagePath string) (io.ReadCloser, error)

	// Remove deletes an avatar by storage path
	Remove(ctx context.Context, storagePath string) error
}

// StorageType represents the storage backend type
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
)

// StorageConfig holds configuration for avatar storage
type StorageConfig struct {
	Type         StorageType
	LocalPath    string // For local storage
	S3Bucket     string // For S3 storage
	S3Region     string // For S3 storage
	AWSAccessKey string
	AWSSecretKey string
}

// ErrUnsupportedImage is returned for uploads that are not one of the
// accepted image formats.
var ErrUnsupportedImage = errors.New("unsupported image format")

var imageContentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// NewStorageFromEnv creates a storage instance from environment variables
func NewStorageFromEnv() (Storage, error) {
	storageType := os.Getenv("STORAGE_TYPE")
	if storageType == "" {
		storageType = "local" // Default to local for development
	}

	switch StorageType(storageType) {
	case StorageTypeLocal:
		localPath := os.Getenv("STORAGE_LOCAL_PATH")
		if localPath == "" {
			localPath = "./storage/avatars"
		}
		return NewLocalStorage(localPath)

	case StorageTypeS3:
		cfg := StorageConfig{
			Type:         StorageTypeS3,
			S3Bucket:     os.Getenv("AWS_S3_BUCKET"),
			S3Region:     os.Getenv("AWS_REGION"),
			AWSAccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		}
		if cfg.S3Region == "" {
			cfg.S3Region = "us-east-1"
		}
		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET environment variable is required for S3 storage")
		}
		return NewS3Storage(cfg)

	default:
		return nil, fmt.Errorf("unknown storage type: %s", storageType)
	}
}

// avatarPath builds the storage key for a profile's avatar. Keyed by
// profile id so a re-upload overwrites the previous image.
func avatarPath(profileID uuid.UUID, filename string) (string, error) {
	ext := strings.ToLower(extOf(filename))
	if _, ok := imageContentTypes[ext]; !ok {
		return "", ErrUnsupportedImage
	}
	id := profileID.String()
	return fmt.Sprintf("%s/%s%s", id[:2], id, ext), nil
}

func extOf(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return filename[idx:]
}

// ContentTypeFor returns the MIME type for a stored avatar path.
func ContentTypeFor(storagePath string) string {
	if ct, ok := imageContentTypes[strings.ToLower(extOf(storagePath))]; ok {
		return ct
	}
	return "application/octet-stream"
}
