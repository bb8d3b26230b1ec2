package s3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/ebogdum/driftfs/object"
)

// allUsersGroupURI is the grantee URI identifying the anonymous all-users
// group in an object's access-control list.
const allUsersGroupURI = "http://acs.amazonaws.com/groups/global/AllUsers"

// SetVisibility rewrites the object's ACL with the canned grant matching
// the requested visibility. Providers without per-object ACL support fail
// with ErrUnsupported; that is a capability gap, not data corruption.
func (a *Adapter) SetVisibility(ctx context.Context, path string, visibility object.Visibility) error {
	key, err := a.pathToKey(path)
	if err != nil {
		return err
	}

	_, err = a.client.PutObjectAclWithContext(ctx, &s3.PutObjectAclInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(key),
		ACL:    aws.String(cannedACL(visibility)),
	})
	if err != nil {
		if isS3NotFound(err) {
			return object.ErrNotFound
		}
		if isS3NotImplemented(err) {
			return fmt.Errorf("provider does not support per-object ACLs: %w", object.ErrUnsupported)
		}
		return fmt.Errorf("failed to put object ACL in S3: %w", err)
	}

	return nil
}

// Visibility reads the object's ACL grants back into the two-state model:
// Public iff the all-users group holds a READ grant.
func (a *Adapter) Visibility(ctx context.Context, path string) (object.Visibility, error) {
	key, err := a.pathToKey(path)
	if err != nil {
		return object.Public, err
	}

	result, err := a.client.GetObjectAclWithContext(ctx, &s3.GetObjectAclInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return object.Public, object.ErrNotFound
		}
		if isS3NotImplemented(err) {
			return object.Public, fmt.Errorf("provider does not support per-object ACLs: %w", object.ErrUnsupported)
		}
		return object.Public, fmt.Errorf("failed to get object ACL from S3: %w", err)
	}

	return grantsVisibility(result.Grants), nil
}

// cannedACL maps a visibility onto the provider's canned ACL name.
func cannedACL(visibility object.Visibility) string {
	if visibility == object.Private {
		return s3.ObjectCannedACLPrivate
	}
	return s3.ObjectCannedACLPublicRead
}

// grantsVisibility collapses an ACL grant list into the two-state model.
func grantsVisibility(grants []*s3.Grant) object.Visibility {
	for _, grant := range grants {
		if grant == nil || grant.Grantee == nil || grant.Permission == nil {
			continue
		}

		affectsAllUsers := grant.Grantee.URI != nil && *grant.Grantee.URI == allUsersGroupURI
		canRead := *grant.Permission == s3.PermissionRead

		if affectsAllUsers && canRead {
			return object.Public
		}
	}

	return object.Private
}
