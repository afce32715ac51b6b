package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/trustvote/internal/models"
	sc "github.com/dmitrijs2005/trustvote/internal/server/config"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// PassportUpload is a one-shot upload slot for a rendered passport image.
type PassportUpload struct {
	Key         string
	UploadURL   string
	DownloadURL string
}

// PassportService issues presigned S3 URLs for passport images. The server
// never sees the image bytes.
type PassportService struct {
	config *sc.Config
	now    func() time.Time
}

func NewPassportService(config *sc.Config) *PassportService {
	return &PassportService{config: config, now: time.Now}
}

// PassportStorageKey returns passports/<y>/<m>/<d>/<bare handle>-<uuid>.png.
func PassportStorageKey(handle string, d time.Time) string {
	return fmt.Sprintf("passports/%d/%d/%d/%s-%v.png", d.Year(), d.Month(), d.Day(), models.BareHandle(handle), uuid.New())
}

func (s *PassportService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// Presign returns a PUT URL for uploading and a GET URL for sharing the
// same object. Both expire after the configured TTL.
func (s *PassportService) Presign(ctx context.Context, handle, contentType string) (*PassportUpload, error) {
	h, err := models.NormalizeHandle(handle)
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = "image/png"
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3 config: %w", err)
	}

	bucket := s.config.S3Bucket
	key := PassportStorageKey(h, s.now())
	ttl := s.config.PresignTTL

	put, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}

	get, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return nil, fmt.Errorf("presign get: %w", err)
	}

	return &PassportUpload{Key: key, UploadURL: put.URL, DownloadURL: get.URL}, nil
}
