package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"go.uber.org/zap"

	"github.com/ebogdum/driftfs/internal/mimeutil"
	"github.com/ebogdum/driftfs/object"
)

// FileExists reports whether an object exists at path.
func (a *Adapter) FileExists(ctx context.Context, path string) (bool, error) {
	key, err := a.pathToKey(path)
	if err != nil {
		return false, err
	}

	_, err = a.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to head object in S3: %w", err)
	}

	return true, nil
}

// Write creates or wholly replaces the object at path, tagging it with a
// content type inferred from the extension. Visibility of a new object is
// whatever the provider's default ACL grants; use SetVisibility to pin it.
func (a *Adapter) Write(ctx context.Context, path string, content []byte) error {
	key, err := a.pathToKey(path)
	if err != nil {
		return err
	}

	_, err = a.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(mimeutil.Detect(path)),
	})
	if err != nil {
		return fmt.Errorf("failed to put object to S3: %w", err)
	}

	a.logger.Debug("File written to S3",
		zap.String("bucket", a.bucketName),
		zap.String("key", key),
		zap.Int("size", len(content)))

	return nil
}

// Read downloads the complete object at path.
func (a *Adapter) Read(ctx context.Context, path string) (object.Contents, error) {
	key, err := a.pathToKey(path)
	if err != nil {
		return nil, err
	}

	result, err := a.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, object.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}

	return object.Contents(data), nil
}

// Delete removes the object at path. The native API reports success even
// for a key that never existed; this is a documented weaker guarantee than
// the contract's general Not-Found requirement.
func (a *Adapter) Delete(ctx context.Context, path string) error {
	key, err := a.pathToKey(path)
	if err != nil {
		return err
	}

	_, err = a.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object from S3: %w", err)
	}

	a.logger.Debug("File deleted from S3",
		zap.String("bucket", a.bucketName),
		zap.String("key", key))

	return nil
}

// MimeType returns the content type stored with the object. This requires
// a live lookup, so it fails with ErrNotFound for absent objects.
func (a *Adapter) MimeType(ctx context.Context, path string) (string, error) {
	head, err := a.headObject(ctx, path)
	if err != nil {
		return "", err
	}

	if head.ContentType == nil || *head.ContentType == "" {
		return "", fmt.Errorf("S3 did not return a Content-Type header: %w", object.ErrMissingMetadata)
	}

	return *head.ContentType, nil
}

// LastModified returns the object's modification time.
func (a *Adapter) LastModified(ctx context.Context, path string) (time.Time, error) {
	head, err := a.headObject(ctx, path)
	if err != nil {
		return time.Time{}, err
	}

	if head.LastModified == nil {
		return time.Time{}, fmt.Errorf("S3 did not return a Last-Modified header: %w", object.ErrMissingMetadata)
	}

	return *head.LastModified, nil
}

// FileSize returns the object's size in bytes.
func (a *Adapter) FileSize(ctx context.Context, path string) (int64, error) {
	head, err := a.headObject(ctx, path)
	if err != nil {
		return 0, err
	}

	if head.ContentLength == nil {
		return 0, fmt.Errorf("S3 did not return a Content-Length header: %w", object.ErrMissingMetadata)
	}

	return *head.ContentLength, nil
}

// Checksum returns the provider's integrity tag (ETag) for the object.
// The tag is stable for unchanged content but is not computed with the
// same algorithm other backends use for their checksums.
func (a *Adapter) Checksum(ctx context.Context, path string) (string, error) {
	head, err := a.headObject(ctx, path)
	if err != nil {
		return "", err
	}

	if head.ETag == nil {
		return "", fmt.Errorf("S3 did not return an ETag header: %w", object.ErrMissingMetadata)
	}

	return strings.Trim(*head.ETag, `"`), nil
}

// Move relocates an object with a server-side copy followed by a delete.
// A failure after the copy leaves both keys populated.
func (a *Adapter) Move(ctx context.Context, source, destination string) error {
	if err := a.Copy(ctx, source, destination); err != nil {
		return err
	}
	return a.Delete(ctx, source)
}

// Copy duplicates an object server-side. The destination's modification
// time is that of the copy.
func (a *Adapter) Copy(ctx context.Context, source, destination string) error {
	srcKey, err := a.pathToKey(source)
	if err != nil {
		return err
	}
	dstKey, err := a.pathToKey(destination)
	if err != nil {
		return err
	}

	_, err = a.client.CopyObjectWithContext(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(a.bucketName),
		CopySource: aws.String(a.bucketName + "/" + srcKey),
		Key:        aws.String(dstKey),
	})
	if err != nil {
		if isS3NotFound(err) {
			return object.ErrNotFound
		}
		return fmt.Errorf("failed to copy object in S3: %w", err)
	}

	return nil
}

// headObject fetches an object's metadata, translating the provider's
// not-found responses into the contract taxonomy.
func (a *Adapter) headObject(ctx context.Context, path string) (*s3.HeadObjectOutput, error) {
	key, err := a.pathToKey(path)
	if err != nil {
		return nil, err
	}

	head, err := a.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, object.ErrNotFound
		}
		return nil, fmt.Errorf("failed to head object in S3: %w", err)
	}

	return head, nil
}
