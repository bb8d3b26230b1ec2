// Package s3 implements the backends.Adapter contract on top of an
// S3-compatible object store. The store has no native directories:
// directory semantics are emulated with key prefixes, zero-length marker
// objects, and delimiter-constrained listings.
package s3

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"go.uber.org/zap"

	"github.com/ebogdum/driftfs/config"
	"github.com/ebogdum/driftfs/internal/pathutil"
)

// Adapter is an object storage backend.
type Adapter struct {
	client     *s3.S3
	bucketName string
	region     string
	endpoint   string
	logger     *zap.Logger
}

// New creates an object storage adapter for the configured bucket and
// verifies the bucket is reachable.
func New(cfg config.S3Config, logger *zap.Logger) (*Adapter, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket name is required")
	}

	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		),
		DisableSSL: aws.Bool(cfg.DisableSSL),
	}

	// Set custom endpoint if provided (for MinIO compatibility)
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true) // Required for MinIO
	} else if cfg.ForcePathStyle {
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	client := s3.New(sess)

	// Verify bucket access
	if _, err := client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(cfg.Bucket),
	}); err != nil {
		return nil, fmt.Errorf("failed to access S3 bucket %s: %w", cfg.Bucket, err)
	}

	return &Adapter{
		client:     client,
		bucketName: cfg.Bucket,
		region:     cfg.Region,
		endpoint:   strings.TrimSuffix(cfg.Endpoint, "/"),
		logger:     logger,
	}, nil
}

// pathToKey converts a virtual path to an S3 object key.
func (a *Adapter) pathToKey(path string) (string, error) {
	return pathutil.Clean(path)
}

// directoryPrefix converts a virtual path to the key prefix under which
// the emulated directory's objects live.
func directoryPrefix(key string) string {
	if key == "" {
		return ""
	}
	return key + "/"
}

// isS3NotFound checks if an error indicates the object was not found
func isS3NotFound(err error) bool {
	return strings.Contains(err.Error(), "NoSuchKey") || strings.Contains(err.Error(), "NotFound")
}

// isS3NotImplemented checks if an error indicates the provider does not
// support the requested operation (e.g. per-object ACLs on MinIO).
func isS3NotImplemented(err error) bool {
	return strings.Contains(err.Error(), "NotImplemented")
}
