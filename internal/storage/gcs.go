// Package storage uploads product images to Google Cloud Storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/nikolayk812/roze-storefront/internal/port"
	"google.golang.org/api/option"
)

const defaultPublicBaseURL = "https://storage.googleapis.com"

type GCS struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

var _ port.ImageStore = (*GCS)(nil)

// NewClient opens a storage client. An empty credentials file falls back to
// application default credentials.
func NewClient(ctx context.Context, credentialsFile string) (*storage.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}

	return client, nil
}

// NewGCS stores objects in bucket. Public URLs are built from baseURL, or
// from the storage.googleapis.com host when baseURL is empty.
func NewGCS(client *storage.Client, bucket, baseURL string) (*GCS, error) {
	if client == nil {
		return nil, fmt.Errorf("client is nil")
	}
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, fmt.Errorf("bucket is empty")
	}

	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultPublicBaseURL + "/" + bucket
	}

	return &GCS{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

func (s *GCS) Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if name == "" {
		return "", fmt.Errorf("name is empty")
	}

	// cancelling the context is the only way to abort a started upload
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=31536000"

	if _, err := io.Copy(w, r); err != nil {
		cancel()
		_ = w.Close()
		return "", fmt.Errorf("io.Copy: %w", err)
	}

	if err := w.Close(); err != nil {
		return "", fmt.Errorf("w.Close: %w", err)
	}

	return name, nil
}

func (s *GCS) PublicURL(name string) string {
	return s.baseURL + "/" + url.PathEscape(name)
}

// ObjectName prefixes the uploaded file's base name with the upload time in
// unix milliseconds, keeping names unique per upload.
func ObjectName(now time.Time, fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if base == "." || base == "/" {
		base = "image"
	}
	base = strings.Join(strings.Fields(base), "-")

	return fmt.Sprintf("%d-%s", now.UnixMilli(), base)
}
