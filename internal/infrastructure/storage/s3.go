package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	appconfig "github.com/alimikegami/apparel-store/config"
	circuitbreaker "github.com/alimikegami/apparel-store/internal/infrastructure/circuit-breaker"
	"github.com/alimikegami/apparel-store/internal/dto"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Storage struct {
	client s3API
	bucket string
	region string
	cb     *gobreaker.CircuitBreaker[string]
}

// CreateS3Client uses static credentials when a key pair is configured and the SDK's
// default chain otherwise.
func CreateS3Client(ctx context.Context, conf appconfig.AWSConfig) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(conf.Region),
		awsconfig.WithHTTPClient(tracedHTTPClient()),
	}
	if conf.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.SecretAccessKey, ""),
		))
	}

	awsConf, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return s3.NewFromConfig(awsConf), nil
}

// tracedHTTPClient records every S3 call as a client span under the request's trace.
func tracedHTTPClient(opts ...otelhttp.Option) *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport, opts...),
	}
}

func CreateS3Storage(client s3API, bucket string, region string) *S3Storage {
	return &S3Storage{
		client: client,
		bucket: bucket,
		region: region,
		cb:     circuitbreaker.CreateCircuitBreaker[string]("s3-storage"),
	}
}

// Upload stores the file under key and returns its public URL.
func (s *S3Storage) Upload(ctx context.Context, key string, file dto.FileUpload) (string, error) {
	url, err := s.cb.Execute(func() (string, error) {
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(file.Content),
			ContentType: aws.String(file.ContentType),
			Metadata:    map[string]string{"fieldName": file.FieldName},
		})
		if err != nil {
			return "", err
		}

		return s.PublicURL(key), nil
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Upload").Str("key", key).Msg("")
		return "", err
	}

	return url, nil
}

// DeleteByKey reports whether the object was deleted. Failures are logged, not returned.
func (s *S3Storage) DeleteByKey(ctx context.Context, key string) bool {
	_, err := s.cb.Execute(func() (string, error) {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		return key, err
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteByKey").Str("key", key).Msg("Error deleting file from S3")
		return false
	}

	return true
}

func (s *S3Storage) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
