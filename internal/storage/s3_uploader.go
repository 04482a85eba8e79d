package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// S3Uploader mirrors uploaded photos to S3-compatible storage
type S3Uploader struct {
	s3Client s3iface.S3API
	bucket   string
	prefix   string
}

// Config holds configuration for S3 uploader
type Config struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	Region          string
	Prefix          string // optional key prefix inside the bucket
}

// Enabled reports whether enough configuration is present to mirror uploads
func (c *Config) Enabled() bool {
	return c != nil && c.Bucket != ""
}

// NewS3Uploader creates a new S3 uploader
func NewS3Uploader(config *Config) (*S3Uploader, error) {
	if config.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is not configured")
	}
	if (config.AccessKeyID == "") != (config.AccessKeySecret == "") {
		return nil, fmt.Errorf("S3 configuration is incomplete")
	}

	region := config.Region
	if region == "" {
		region = "us-east-1"
	}

	awsConfig := &aws.Config{
		Region: aws.String(region),
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	if config.AccessKeyID != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(config.AccessKeyID, config.AccessKeySecret, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return NewS3UploaderWithClient(s3.New(sess), config.Bucket, config.Prefix), nil
}

// NewS3UploaderWithClient wraps an existing S3 client
func NewS3UploaderWithClient(client s3iface.S3API, bucket, prefix string) *S3Uploader {
	return &S3Uploader{
		s3Client: client,
		bucket:   bucket,
		prefix:   prefix,
	}
}

// Put uploads data under key and returns the object key that was written
func (u *S3Uploader) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	objectKey := u.prefix + key
	_, err := u.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return objectKey, nil
}
