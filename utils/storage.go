package utils

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"

	"jubetech/config"
)

// ErrStorageDisabled is returned when no bucket is configured.
var ErrStorageDisabled = errors.New("object storage is not configured")

// Storage proxies file uploads to the object store. Constructed once at
// startup from config; nil-safe when the bucket is not configured.
type Storage struct {
	bucket   *oss.Bucket
	bucketID string
	endpoint string
	prefix   string
}

func NewStorage(cfg *config.Config) (*Storage, error) {
	s := &Storage{
		bucketID: cfg.OSSBucket,
		endpoint: cfg.OSSEndpoint,
		prefix:   strings.Trim(cfg.OSSPrefix, "/"),
	}
	if cfg.OSSEndpoint == "" || cfg.OSSKeyID == "" || cfg.OSSKeySecret == "" || cfg.OSSBucket == "" {
		return s, nil
	}

	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSKeyID, cfg.OSSKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}
	s.bucket = bucket
	return s, nil
}

// Upload streams a multipart file to the bucket under a unique object key and
// returns that key. The key keeps the original extension only.
func (s *Storage) Upload(ctx context.Context, file *multipart.FileHeader, dir string) (string, error) {
	if s.bucket == nil {
		return "", ErrStorageDisabled
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := strings.ToLower(path.Ext(file.Filename))
	key := path.Join(s.prefix, strings.Trim(dir, "/"),
		time.Now().Format("20060102")+"-"+uuid.NewString()+ext)

	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentDisposition("inline"),
	}
	if err := s.bucket.PutObject(key, src, opts...); err != nil {
		return "", err
	}
	return key, nil
}

// Delete removes a stored object. Missing objects are not an error.
func (s *Storage) Delete(key string) error {
	if s.bucket == nil {
		return ErrStorageDisabled
	}
	return s.bucket.DeleteObject(key)
}

// PublicURL renders the browser-reachable URL of a stored object key.
func (s *Storage) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	endpoint := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.bucketID, endpoint, strings.TrimPrefix(key, "/"))
}
