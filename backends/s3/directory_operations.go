package s3

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"go.uber.org/zap"

	"github.com/ebogdum/driftfs/object"
)

// deleteBatchSize is the provider's limit on keys per DeleteObjects call.
const deleteBatchSize = 1000

// DirectoryExists reports whether at least one object key begins with the
// emulated directory's prefix.
func (a *Adapter) DirectoryExists(ctx context.Context, path string) (bool, error) {
	key, err := a.pathToKey(path)
	if err != nil {
		return false, err
	}

	result, err := a.client.ListObjectsV2WithContext(ctx, &s3.ListObjectsV2Input{
		Bucket:    aws.String(a.bucketName),
		Prefix:    aws.String(directoryPrefix(key)),
		Delimiter: aws.String("/"),
		MaxKeys:   aws.Int64(1),
	})
	if err != nil {
		return false, fmt.Errorf("failed to list objects in S3: %w", err)
	}

	return len(result.Contents) > 0 || len(result.CommonPrefixes) > 0, nil
}

// CreateDirectory emulates a directory by writing a zero-length marker
// object at the directory's prefix. It is idempotent.
func (a *Adapter) CreateDirectory(ctx context.Context, path string) error {
	key, err := a.pathToKey(path)
	if err != nil {
		return err
	}

	markerKey := directoryPrefix(key)
	_, err = a.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(markerKey),
		Body:   bytes.NewReader([]byte{}),
	})
	if err != nil {
		return fmt.Errorf("failed to create directory marker in S3: %w", err)
	}

	a.logger.Debug("Directory marker created in S3",
		zap.String("bucket", a.bucketName),
		zap.String("key", markerKey))

	return nil
}

// DeleteDirectory removes every object under the emulated directory's
// prefix, including marker objects, in provider-sized batches.
func (a *Adapter) DeleteDirectory(ctx context.Context, path string) error {
	key, err := a.pathToKey(path)
	if err != nil {
		return err
	}

	keys, err := a.listKeys(ctx, directoryPrefix(key), true, false)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return object.ErrNotFound
	}

	for start := 0; start < len(keys); start += deleteBatchSize {
		end := min(start+deleteBatchSize, len(keys))

		identifiers := make([]*s3.ObjectIdentifier, 0, end-start)
		for _, k := range keys[start:end] {
			identifiers = append(identifiers, &s3.ObjectIdentifier{Key: aws.String(k)})
		}

		_, err = a.client.DeleteObjectsWithContext(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(a.bucketName),
			Delete: &s3.Delete{Objects: identifiers},
		})
		if err != nil {
			return fmt.Errorf("failed to delete objects from S3: %w", err)
		}
	}

	a.logger.Debug("Directory deleted from S3",
		zap.String("bucket", a.bucketName),
		zap.String("prefix", directoryPrefix(key)),
		zap.Int("objects", len(keys)))

	return nil
}

// ListContents returns the files under path as virtual paths. With deep
// false the listing is constrained to one path-segment depth with a
// delimiter; marker objects are never reported. A non-existent prefix
// yields an empty sequence rather than Not-Found, a documented asymmetry
// of object storage.
func (a *Adapter) ListContents(ctx context.Context, path string, deep bool) ([]string, error) {
	key, err := a.pathToKey(path)
	if err != nil {
		return nil, err
	}

	return a.listKeys(ctx, directoryPrefix(key), deep, true)
}

// listKeys pages through ListObjectsV2 results for a prefix. Pagination is
// transparent: empty pages mean "no more results", never an error. With
// skipMarkers set, zero-length directory markers are filtered out.
func (a *Adapter) listKeys(ctx context.Context, prefix string, deep, skipMarkers bool) ([]string, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucketName),
		Prefix: aws.String(prefix),
	}
	if !deep {
		input.Delimiter = aws.String("/")
	}

	var keys []string
	for {
		result, err := a.client.ListObjectsV2WithContext(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects in S3: %w", err)
		}

		for _, obj := range result.Contents {
			if obj.Key == nil {
				continue
			}
			if skipMarkers && strings.HasSuffix(*obj.Key, "/") {
				continue
			}
			keys = append(keys, *obj.Key)
		}

		if result.NextContinuationToken == nil {
			break
		}
		input.ContinuationToken = result.NextContinuationToken
	}

	return keys, nil
}
