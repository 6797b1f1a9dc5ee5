// Package storage uploads applicant resumes to an S3-compatible object
// store. Objects are keyed per user and per submission batch so one
// application's files can be removed together.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/gartstein/jobboard/internal/jobboard/models"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type ResumeStore struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

// NewResumeStore connects to the object store and ensures the bucket exists.
func NewResumeStore(ctx context.Context, cfg *Config, logger *zap.Logger) (*ResumeStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to object store: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &ResumeStore{
		client: client,
		bucket: cfg.Bucket,
		logger: logger.Named("resume_store"),
	}, nil
}

// Upload stores one resume under resume/<userID>/<batchID>/<filename> and
// returns its descriptor.
func (s *ResumeStore) Upload(ctx context.Context, userID uuid.UUID, batchID, filename string, body io.Reader, size int64, contentType string) (models.ResumeFile, error) {
	key := fmt.Sprintf("resume/%s/%s/%s", userID, batchID, filename)
	_, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return models.ResumeFile{}, fmt.Errorf("failed to upload resume: %w", err)
	}
	return models.ResumeFile{
		SecureURL:  s.objectURL(key),
		StorageKey: key,
		BatchID:    batchID,
	}, nil
}

// Remove deletes an uploaded object. Used as the compensating action when
// the database write after an upload fails.
func (s *ResumeStore) Remove(ctx context.Context, storageKey string) error {
	err := s.client.RemoveObject(ctx, s.bucket, storageKey, minio.RemoveObjectOptions{})
	if err != nil {
		s.logger.Warn("failed to remove uploaded resume",
			zap.Error(err),
			zap.String("storage_key", storageKey),
		)
	}
	return err
}

func (s *ResumeStore) objectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL(), s.bucket, key)
}
