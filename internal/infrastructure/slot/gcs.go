package slot

import (
	"context"
	"errors"
	"io"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/oksasatya/inclusive-studai/internal/domain/repository"
	"github.com/oksasatya/inclusive-studai/pkg/helpers"
)

// GCS stores each key as the object <prefix><key>.json in a bucket.
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewGCS(client *storage.Client, bucket, prefix string) *GCS {
	return &GCS{client: client, bucket: bucket, prefix: prefix}
}

func (g *GCS) objectPath(key string) string {
	return g.prefix + key + ".json"
}

func (g *GCS) Get(ctx context.Context, key string) (string, bool, error) {
	r, err := g.client.Bucket(g.bucket).Object(g.objectPath(key)).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	defer func() { _ = r.Close() }()
	b, err := io.ReadAll(r)
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}

func (g *GCS) Set(ctx context.Context, key, value string) error {
	_, err := helpers.UploadObject(ctx, g.client, g.bucket, g.objectPath(key), "application/json", strings.NewReader(value))
	return err
}

var _ repository.KeyValueSlot = (*GCS)(nil)
