// Package media uploads report images to an S3-compatible object store
// (Cloudflare R2 or any S3 endpoint).
package media

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"civictide/internal/config"
	"civictide/internal/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// uploadTimeout bounds a single object upload. Uploads run inline in the
// request that triggered them and must not stall it indefinitely.
const uploadTimeout = 15 * time.Second

// Upload is the stored location of an uploaded image.
type Upload struct {
	// URL is the public URL the image is served from.
	URL string
	// Key is the object key in the external store, kept so the object can
	// be referenced or removed later.
	Key string
}

// Store is the narrow interface the report service uses to host images.
type Store interface {
	Upload(ctx context.Context, data []byte, contentType, folder string) (*Upload, error)
}

// ObjectStore is an S3-compatible Store implementation.
type ObjectStore struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewObjectStore builds an ObjectStore from the configured credentials,
// targeting an R2-style account endpoint.
func NewObjectStore(cfg *config.Config) *ObjectStore {
	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.StorageAccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.StorageAccessKey,
			cfg.StorageSecretKey,
			"",
		),
		Region: "auto",
	})

	return &ObjectStore{
		client:    client,
		bucket:    cfg.StorageBucket,
		publicURL: cfg.StoragePublicURL,
	}
}

// Upload stores the image bytes under a random key inside folder and returns
// its public location.
func (s *ObjectStore) Upload(ctx context.Context, data []byte, contentType, folder string) (*Upload, error) {
	key := path.Join(folder, uuid.NewString()+extensionFor(contentType))

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		observability.ImageUploads.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("put object %q: %w", key, err)
	}

	observability.ImageUploads.WithLabelValues("ok").Inc()
	return &Upload{
		URL: fmt.Sprintf("%s/%s", s.publicURL, key),
		Key: key,
	}, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ""
	}
}
