package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/socialbattery/internal/models"
)

// s3API is the slice of the S3 client the store uses. The real client and
// test fakes both satisfy it.
type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options configures the object storage backend. Works with AWS S3 and
// MinIO (set BaseEndpoint and UsePathStyle for the latter).
type S3Options struct {
	Region       string
	BaseEndpoint string
	AccessKey    string // MINIO_ROOT_USER
	SecretKey    string // MINIO_ROOT_PASSWORD
	Bucket       string
	UsePathStyle bool
}

// S3Store keeps the record set as a single JSON object in a bucket.
type S3Store struct {
	mu     sync.Mutex
	api    s3API
	bucket string
	key    string
}

func NewS3Store(ctx context.Context, opts S3Options, objectKey string) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config error: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})

	return &S3Store{api: client, bucket: opts.Bucket, key: objectKey}, nil
}

func (s *S3Store) read(ctx context.Context) []models.UserRecord {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		// missing or unreachable object behaves like an empty store
		return []models.UserRecord{}
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return []models.UserRecord{}
	}

	var records []models.UserRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return []models.UserRecord{}
	}
	return records
}

func (s *S3Store) write(ctx context.Context, records []models.UserRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}

	_, err = s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put object error: %w", err)
	}
	return nil
}

func (s *S3Store) LoadAll(ctx context.Context) ([]models.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(ctx), nil
}

func (s *S3Store) SaveAll(ctx context.Context, records []models.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(ctx, records)
}

func (s *S3Store) Find(ctx context.Context, identifier string) (*models.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return findIn(s.read(ctx), identifier)
}

func (s *S3Store) Upsert(ctx context.Context, record models.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(ctx, upsertIn(s.read(ctx), record))
}

func (s *S3Store) Close() error {
	return nil
}
