// Package storage persists receipt images in Cloudflare R2 through the
// S3-compatible API.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"math/rand"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/baysidepv/charter-api/internal/config"
	"github.com/baysidepv/charter-api/pkg/apperror"
)

// ObjectStorage stores a blob and returns its public locator.
type ObjectStorage interface {
	Store(ctx context.Context, data []byte, contentType, key string) (string, error)
}

// Only images may land in the bucket. The map doubles as MIME -> extension.
var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// IsAllowedImageType reports whether the MIME type is on the image allow-list.
func IsAllowedImageType(contentType string) bool {
	_, ok := allowedImageTypes[contentType]
	return ok
}

// R2Storage is an ObjectStorage backed by a Cloudflare R2 bucket.
type R2Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewR2Storage builds the R2 client from static credentials and validates the
// configured public URL up front.
func NewR2Storage(ctx context.Context, cfg *config.StorageConfig) (*R2Storage, error) {
	if cfg.AccountID == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("R2 storage not configured, check R2_* environment variables")
	}

	publicURL, err := normalizePublicURL(cfg.PublicURL)
	if err != nil {
		return nil, err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build R2 client config: %w", err)
	}

	endpoint := cfg.Endpoint()
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &R2Storage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicURL,
	}, nil
}

// Store uploads the blob under the given key and returns its public URL.
// Non-image content types are rejected before any network call.
func (s *R2Storage) Store(ctx context.Context, data []byte, contentType, key string) (string, error) {
	if !IsAllowedImageType(contentType) {
		return "", apperror.NewBadRequestError(
			fmt.Sprintf("File type %s not allowed. Only images (JPEG, PNG, GIF, WebP) are supported", contentType))
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}

	url := s.publicURL + "/" + key
	log.Printf("Uploaded %s (%d bytes) to R2", key, len(data))
	return url, nil
}

// ObjectKey derives a collision-resistant storage key for a receipt:
// work-orders/{order}/{category}-{millis}-{random}.{ext}
func ObjectKey(workOrderID uint, category, fileName, contentType string) string {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		// Fall back to the filename extension when the MIME type is unknown.
		ext = "jpg"
		if nameExt := strings.ToLower(strings.TrimPrefix(path.Ext(fileName), ".")); nameExt != "" {
			switch nameExt {
			case "jpg", "jpeg", "png", "gif", "webp":
				ext = nameExt
			}
		}
	}
	if category == "" {
		category = "general"
	}
	return fmt.Sprintf("work-orders/%d/%s-%d-%s.%s",
		workOrderID, category, time.Now().UnixMilli(), randomSuffix(7), ext)
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSuffix(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(suffixAlphabet[rand.Intn(len(suffixAlphabet))])
	}
	return b.String()
}

// normalizePublicURL cleans up the configured public base URL: stray leading
// colons and trailing slashes are common .env typos in the field.
func normalizePublicURL(raw string) (string, error) {
	url := strings.TrimSpace(raw)
	url = strings.TrimLeft(url, ":")
	url = strings.TrimRight(url, "/")
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", fmt.Errorf("invalid R2 public URL %q: must start with http:// or https://", raw)
	}
	return url, nil
}
