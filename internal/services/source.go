package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ResumeSource resolves a resume location to a local file. The returned
// cleanup must be called once the file is no longer needed.
type ResumeSource interface {
	Fetch(ctx context.Context, location string) (string, func(), error)
}

type LocalSource struct{}

func noCleanup() {}

// Fetch implements ResumeSource.
func (LocalSource) Fetch(_ context.Context, location string) (string, func(), error) {
	return location, noCleanup, nil
}

// ObjectDownloader reads a whole object from a bucket.
type ObjectDownloader interface {
	Download(ctx context.Context, bucket, key string) ([]byte, error)
}

// S3Source downloads s3://bucket/key locations into tempDir. Anything else
// is treated as a local path.
type S3Source struct {
	downloader ObjectDownloader
	tempDir    string
}

func NewS3Source(downloader ObjectDownloader, tempDir string) *S3Source {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &S3Source{
		downloader: downloader,
		tempDir:    tempDir,
	}
}

// Fetch implements ResumeSource. The temp file keeps the key's extension so
// the file type can still be inferred from its name.
func (s *S3Source) Fetch(ctx context.Context, location string) (string, func(), error) {
	bucket, key, ok := parseS3Location(location)
	if !ok {
		return LocalSource{}.Fetch(ctx, location)
	}

	data, err := s.downloader.Download(ctx, bucket, key)
	if err != nil {
		return "", noCleanup, fmt.Errorf("fetch %s: %w", location, err)
	}

	if err := os.MkdirAll(s.tempDir, 0755); err != nil {
		return "", noCleanup, fmt.Errorf("failed to create temp directory: %w", err)
	}

	localPath := filepath.Join(s.tempDir, fmt.Sprintf("resume_%s%s", uuid.New().String(), strings.ToLower(filepath.Ext(key))))
	if err := os.WriteFile(localPath, data, 0600); err != nil {
		return "", noCleanup, fmt.Errorf("failed to write downloaded resume: %w", err)
	}

	log.Printf("📥 Downloaded s3://%s/%s (%d bytes)\n", bucket, key, len(data))

	cleanup := func() {
		if err := os.Remove(localPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("⚠️  Failed to remove downloaded resume %s: %v\n", localPath, err)
		}
	}
	return localPath, cleanup, nil
}

func parseS3Location(location string) (bucket, key string, ok bool) {
	if !strings.HasPrefix(location, "s3://") {
		return "", "", false
	}
	u, err := url.Parse(location)
	if err != nil || u.Host == "" {
		return "", "", false
	}
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", false
	}
	return u.Host, key, true
}

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// S3FileStore is an ObjectDownloader over S3 or any S3-compatible store.
type S3FileStore struct {
	client *s3.Client
}

func NewS3FileStore(ctx context.Context, conf S3Config) (*S3FileStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(conf.Region),
	}
	if conf.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AccessKey, conf.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	if conf.Endpoint != "" {
		cfg.BaseEndpoint = aws.String(conf.Endpoint)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	return &S3FileStore{client: client}, nil
}

// Download implements ObjectDownloader.
func (fs *S3FileStore) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	result, err := fs.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer result.Body.Close()

	body, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}

	return body, nil
}
