package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/prizoapp/prizo-cli/internal/client/api"
	"github.com/prizoapp/prizo-cli/internal/client/models"
	"github.com/prizoapp/prizo-cli/internal/logging"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
)

// EvidenceUploader stores proof-of-payment files. The API upload endpoint
// is the primary path; when it fails and the raffle config carries storage
// credentials, the file goes straight to the S3-compatible bucket instead.
type EvidenceUploader struct {
	api     api.API
	storage models.StorageConfig
	log     logging.Logger
}

func NewEvidenceUploader(apiClient api.API, storage models.StorageConfig, log logging.Logger) *EvidenceUploader {
	return &EvidenceUploader{api: apiClient, storage: storage, log: log}
}

var _ Uploader = (*EvidenceUploader)(nil)

// Upload sends the evidence through the API, falling back to the direct
// storage path. Both failing is fatal to the purchase attempt.
func (u *EvidenceUploader) Upload(ctx context.Context, raffleID, filename string, data []byte) (string, error) {
	url, err := u.api.UploadEvidence(ctx, raffleID, filename, data)
	if err == nil {
		return url, nil
	}

	if !u.storageConfigured() {
		return "", fmt.Errorf("evidence upload failed and no fallback storage configured: %w", err)
	}

	u.log.Warn(ctx, "api evidence upload failed, falling back to storage", "error", err)

	url, s3err := u.uploadToStorage(ctx, filename, data)
	if s3err != nil {
		return "", fmt.Errorf("evidence upload failed on both paths: api: %v; storage: %w", err, s3err)
	}
	return url, nil
}

func (u *EvidenceUploader) storageConfigured() bool {
	s := u.storage
	return s.Bucket != "" && s.AccessKey != "" && s.SecretKey != ""
}

// storageKey places evidence under a date-partitioned prefix with a random
// name, keeping the original extension.
func storageKey(filename string, now time.Time) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("evidence/%d/%02d/%02d/%s%s",
		now.Year(), now.Month(), now.Day(), uuid.New(), ext)
}

func (u *EvidenceUploader) uploadToStorage(ctx context.Context, filename string, data []byte) (string, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(u.storage.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			u.storage.AccessKey,
			u.storage.SecretKey,
			"",
		)))
	if err != nil {
		return "", err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if u.storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(u.storage.Endpoint)
		}
	})

	key := storageKey(filename, time.Now())
	bucket := u.storage.Bucket

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   bytes.NewReader(data),
	}); err != nil {
		return "", err
	}

	return u.objectURL(key), nil
}

// objectURL builds the public URL of an uploaded object. A configured base
// URL wins; otherwise the endpoint/bucket pair is used.
func (u *EvidenceUploader) objectURL(key string) string {
	if u.storage.BaseURL != "" {
		return strings.TrimRight(u.storage.BaseURL, "/") + "/" + key
	}
	return strings.TrimRight(u.storage.Endpoint, "/") + "/" + u.storage.Bucket + "/" + key
}
