// Package images stores product and weaver photos in Google Cloud
// Storage and serves them through public URLs.
package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"loomledger/internal/core/apperror"
	"loomledger/internal/core/id"
	"loomledger/pkg/logger"
)

// Config holds image store configuration.
type Config struct {
	Bucket          string
	CredentialsJSON string
	// PublicBaseURL overrides the default storage.googleapis.com URL.
	PublicBaseURL string
}

// allowed upload content types
var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Store uploads images to a GCS bucket.
type Store struct {
	client *storage.Client
	config Config
}

// NewStore creates a store with a shared GCS client. Credentials come
// from CredentialsJSON when set, otherwise application default
// credentials.
func NewStore(ctx context.Context, config Config) (*Store, error) {
	if config.Bucket == "" {
		return nil, apperror.NewValidation("storage bucket is required").WithDetail("field", "bucket")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(config.CredentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(config.CredentialsJSON)))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, apperror.NewExternal("create storage client", err)
	}

	return &Store{client: client, config: config}, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Upload stores image content under a generated object name and returns
// its public URL. The content type is sniffed from the first bytes and
// must be an image.
func (s *Store) Upload(ctx context.Context, folder string, content io.Reader) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", apperror.NewExternal("read upload", err)
	}
	if len(data) == 0 {
		return "", apperror.NewValidation("file is empty")
	}

	contentType := http.DetectContentType(data)
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return "", apperror.NewValidation("unsupported file type").
			WithDetail("contentType", contentType)
	}

	objectName := s.objectName(folder, ext)

	wc := s.client.Bucket(s.config.Bucket).Object(objectName).NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=86400"

	if _, err := wc.Write(data); err != nil {
		return "", apperror.NewExternal("upload image", err)
	}
	if err := wc.Close(); err != nil {
		return "", apperror.NewExternal("upload image", err)
	}

	logger.Info(ctx, "image uploaded",
		"object", objectName,
		"content_type", contentType,
		"size", len(data))

	return s.publicURL(objectName), nil
}

// Delete removes an object by its public URL or raw object key. A
// missing object is not an error.
func (s *Store) Delete(ctx context.Context, imageURL string) error {
	objectName := s.objectKey(imageURL)
	if objectName == "" {
		return apperror.NewValidation("invalid image url").WithDetail("url", imageURL)
	}

	err := s.client.Bucket(s.config.Bucket).Object(objectName).Delete(ctx)
	if err == storage.ErrObjectNotExist {
		return nil
	}
	if err != nil {
		return apperror.NewExternal("delete image", err)
	}

	logger.Info(ctx, "image deleted", "object", objectName)
	return nil
}

// Exists checks whether the object behind a URL is present.
func (s *Store) Exists(ctx context.Context, imageURL string) (bool, error) {
	objectName := s.objectKey(imageURL)
	if objectName == "" {
		return false, nil
	}

	_, err := s.client.Bucket(s.config.Bucket).Object(objectName).Attrs(ctx)
	if err == storage.ErrObjectNotExist {
		return false, nil
	}
	if err != nil {
		return false, apperror.NewExternal("stat image", err)
	}

	return true, nil
}

// objectName builds a collision-free object key: folder, date and a
// fresh UUID.
func (s *Store) objectName(folder, ext string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		folder = "misc"
	}
	return path.Join(folder, time.Now().UTC().Format("2006/01"), id.New().String()+ext)
}

// publicURL returns the object's public address.
func (s *Store) publicURL(objectName string) string {
	if base := strings.TrimSpace(s.config.PublicBaseURL); base != "" {
		return strings.TrimRight(base, "/") + "/" + objectName
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.config.Bucket, objectName)
}

// objectKey extracts the object key from a public URL. Raw keys pass
// through untouched, path traversal is rejected.
func (s *Store) objectKey(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" || strings.Contains(rawURL, "..") {
		return ""
	}

	if base := strings.TrimSpace(s.config.PublicBaseURL); base != "" {
		prefix := strings.TrimRight(base, "/") + "/"
		if strings.HasPrefix(rawURL, prefix) {
			return strings.TrimPrefix(rawURL, prefix)
		}
	}

	for _, prefix := range []string{
		"https://storage.googleapis.com/" + s.config.Bucket + "/",
		"https://storage.cloud.google.com/" + s.config.Bucket + "/",
		"gs://" + s.config.Bucket + "/",
	} {
		if strings.HasPrefix(rawURL, prefix) {
			return strings.TrimPrefix(rawURL, prefix)
		}
	}

	// Raw object keys are accepted directly.
	if !strings.Contains(rawURL, "://") && !strings.HasPrefix(rawURL, "/") {
		return rawURL
	}

	return ""
}
