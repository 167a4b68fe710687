package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"yummy-backend/internal/utils"
)

// ThumbnailFunc resolves a displayable URL for a stored photo.
type ThumbnailFunc func(ctx context.Context, storageKey string) (string, error)

type (
	AwsS3 interface {
		ThumbnailURL(ctx context.Context, storageKey string) (string, error)
		GetObjectKeyFromLink(link string) string
	}

	awsS3 struct {
		presign *s3.PresignClient
		bucket  string
		region  string
		expiry  time.Duration
	}
)

func NewAwsS3() (AwsS3, error) {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	region := utils.GetConfig("AWS_S3_REGION")
	if bucket == "" || region == "" {
		return nil, fmt.Errorf("missing AWS_S3_BUCKET or AWS_S3_REGION")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if key := utils.GetConfig("AWS_ACCESS_KEY"); key != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, utils.GetConfig("AWS_SECRET_KEY"), ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewAwsS3FromConfig(cfg, bucket, utils.GetConfigSeconds("THUMBNAIL_URL_EXPIRY")), nil
}

func NewAwsS3FromConfig(cfg aws.Config, bucket string, expiry time.Duration) AwsS3 {
	return &awsS3{
		presign: s3.NewPresignClient(s3.NewFromConfig(cfg)),
		bucket:  bucket,
		region:  cfg.Region,
		expiry:  expiry,
	}
}

// ThumbnailURL presigns a GET for the object. Keys imported as public bucket
// links are accepted too. No request leaves the process.
func (s *awsS3) ThumbnailURL(ctx context.Context, storageKey string) (string, error) {
	storageKey = s.GetObjectKeyFromLink(storageKey)
	if storageKey == "" {
		return "", nil
	}
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", storageKey, err)
	}
	return req.URL, nil
}

func (s *awsS3) publicLink(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, objectKey)
}

func (s *awsS3) GetObjectKeyFromLink(link string) string {
	return strings.TrimPrefix(link, s.publicLink(""))
}

// PublicURLThumbnails serves photos from a static base URL; used when no
// bucket is configured.
func PublicURLThumbnails(baseURL string) ThumbnailFunc {
	base := strings.TrimRight(baseURL, "/")
	return func(ctx context.Context, storageKey string) (string, error) {
		if storageKey == "" {
			return "", nil
		}
		return base + "/" + strings.TrimLeft(storageKey, "/"), nil
	}
}
