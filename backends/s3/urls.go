package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
)

// PublicURL returns the stable URL at which a Public object can be read
// without authentication. Whether the URL actually resolves depends on the
// object's visibility and the bucket's policy.
func (a *Adapter) PublicURL(ctx context.Context, path string) (string, error) {
	key, err := a.pathToKey(path)
	if err != nil {
		return "", err
	}

	if a.endpoint != "" {
		// Custom endpoints use path-style addressing.
		return fmt.Sprintf("%s/%s/%s", a.endpoint, a.bucketName, key), nil
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucketName, a.region, key), nil
}

// TemporaryURL mints a signed URL granting read access to the object until
// the expiry. The expiry is baked into the signature; it is not a
// cancellation mechanism. Signing failures are reported distinctly from
// not-found failures.
func (a *Adapter) TemporaryURL(ctx context.Context, path string, expiresIn time.Duration) (string, error) {
	key, err := a.pathToKey(path)
	if err != nil {
		return "", err
	}

	req, _ := a.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(key),
	})
	req.SetContext(ctx)

	signed, err := req.Presign(expiresIn)
	if err != nil {
		return "", fmt.Errorf("failed to presign request: %w", err)
	}

	return signed, nil
}
