package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/nikolayk812/roze-storefront/internal/port"
)

type Image struct {
	ContentType string
	Data        []byte
}

// Images keeps uploaded images in memory.
type Images struct {
	mu      sync.Mutex
	baseURL string
	objects map[string]Image
}

var _ port.ImageStore = (*Images)(nil)

func NewImages(baseURL string) *Images {
	return &Images{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]Image),
	}
}

func (s *Images) Upload(_ context.Context, name, contentType string, r io.Reader) (string, error) {
	if name == "" {
		return "", fmt.Errorf("name is empty")
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", fmt.Errorf("io.Copy: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[name] = Image{ContentType: contentType, Data: buf.Bytes()}

	return name, nil
}

func (s *Images) PublicURL(name string) string {
	return s.baseURL + "/" + url.PathEscape(name)
}

func (s *Images) Get(name string) (Image, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	img, ok := s.objects[name]
	return img, ok
}

// ServeHTTP serves uploaded images under their object name, so public URLs
// work when the server runs without object storage.
func (s *Images) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	img, ok := s.Get(name)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if img.ContentType != "" {
		w.Header().Set("Content-Type", img.ContentType)
	}
	_, _ = w.Write(img.Data)
}
