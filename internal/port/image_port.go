package port

import (
	"context"
	"io"
)

type ImageStore interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error)
	PublicURL(name string) string
}
