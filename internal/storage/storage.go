package storage

import (
	"bytes"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	storage_go "github.com/supabase-community/storage-go"
)

// Storage uploads CV documents into a private bucket and hands out
// time-limited download links.
type Storage struct {
	client *storage_go.Client
	bucket string
	base   string
}

// NewStorage builds a client against the project's storage endpoint.
// The bucket must already exist.
func NewStorage(projectURL, key, bucket string) *Storage {
	base := strings.TrimSuffix(projectURL, "/")
	return &Storage{
		client: storage_go.NewClient(base+"/storage/v1", key, nil),
		bucket: bucket,
		base:   base,
	}
}

// objectKey builds the storage key for one upload. The timestamp has
// second resolution, so a short random suffix keeps two uploads by the
// same user within the same second from colliding.
func objectKey(userID int64, originalName string, now time.Time, suffix string) string {
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("cvs/%d/%s_%s%s", userID, now.Format("20060102_150405"), suffix, ext)
}

// UploadCV stores the original document under a user- and
// timestamp-scoped key and returns a stable reference to it.
func (s *Storage) UploadCV(userID int64, content []byte, originalName string) (string, error) {
	key := objectKey(userID, originalName, time.Now(), uuid.New().String()[:8])

	contentType := mime.TypeByExtension(filepath.Ext(originalName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.UploadFile(s.bucket, key, bytes.NewReader(content), storage_go.FileOptions{
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload cv: %w", err)
	}

	return fmt.Sprintf("%s/storage/v1/object/%s/%s", s.base, s.bucket, key), nil
}

// GetCVURL generates a presigned download URL, valid for one hour.
func (s *Storage) GetCVURL(key string) (string, error) {
	resp, err := s.client.CreateSignedUrl(s.bucket, key, 3600)
	if err != nil {
		return "", fmt.Errorf("failed to sign cv url: %w", err)
	}
	return resp.SignedURL, nil
}
