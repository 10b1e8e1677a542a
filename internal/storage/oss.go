// safemap/internal/storage/oss.go
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// ObjectStore stores uploaded media and returns a public URL for it.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

// OSSStore stores objects in an Alibaba Cloud OSS bucket.
type OSSStore struct {
	bucket     *oss.Bucket
	publicBase string
}

// NewOSSStoreFromEnv builds the store from OSS_ENDPOINT,
// OSS_ACCESS_KEY_ID, OSS_ACCESS_KEY_SECRET and OSS_BUCKET. The public
// URL base defaults to the bucket's virtual-host address and can be
// overridden with OSS_PUBLIC_BASE_URL (e.g. a CDN domain).
func NewOSSStoreFromEnv() (*OSSStore, error) {
	endpoint := strings.TrimSpace(os.Getenv("OSS_ENDPOINT"))
	keyID := strings.TrimSpace(os.Getenv("OSS_ACCESS_KEY_ID"))
	keySecret := strings.TrimSpace(os.Getenv("OSS_ACCESS_KEY_SECRET"))
	bucketName := strings.TrimSpace(os.Getenv("OSS_BUCKET"))
	if endpoint == "" || keyID == "" || keySecret == "" || bucketName == "" {
		return nil, fmt.Errorf("oss: OSS_ENDPOINT, OSS_ACCESS_KEY_ID, OSS_ACCESS_KEY_SECRET and OSS_BUCKET must be set")
	}

	client, err := oss.New(endpoint, keyID, keySecret)
	if err != nil {
		return nil, fmt.Errorf("oss: create client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("oss: open bucket %s: %w", bucketName, err)
	}

	publicBase := strings.TrimSpace(os.Getenv("OSS_PUBLIC_BASE_URL"))
	if publicBase == "" {
		host := strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
		publicBase = fmt.Sprintf("https://%s.%s", bucketName, host)
	}
	publicBase = strings.TrimRight(publicBase, "/")

	return &OSSStore{bucket: bucket, publicBase: publicBase}, nil
}

func (s *OSSStore) Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	opts := []oss.Option{
		oss.ContentType(contentType),
		oss.CacheControl("max-age=3600"),
		oss.WithContext(ctx),
	}
	if err := s.bucket.PutObject(key, r, opts...); err != nil {
		return "", fmt.Errorf("oss: put object %s: %w", key, err)
	}
	return s.publicBase + "/" + key, nil
}
