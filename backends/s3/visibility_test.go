package s3

import (
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/ebogdum/driftfs/object"
)

func TestCannedACL(t *testing.T) {
	if got := cannedACL(object.Private); got != s3.ObjectCannedACLPrivate {
		t.Errorf("cannedACL(Private) = %q, want %q", got, s3.ObjectCannedACLPrivate)
	}
	if got := cannedACL(object.Public); got != s3.ObjectCannedACLPublicRead {
		t.Errorf("cannedACL(Public) = %q, want %q", got, s3.ObjectCannedACLPublicRead)
	}
}

func TestGrantsVisibility(t *testing.T) {
	tests := []struct {
		name     string
		grants   []*s3.Grant
		expected object.Visibility
	}{
		{
			name:     "no grants",
			grants:   nil,
			expected: object.Private,
		},
		{
			name: "all users read",
			grants: []*s3.Grant{
				{
					Grantee:    &s3.Grantee{URI: aws.String(allUsersGroupURI)},
					Permission: aws.String(s3.PermissionRead),
				},
			},
			expected: object.Public,
		},
		{
			name: "all users write only",
			grants: []*s3.Grant{
				{
					Grantee:    &s3.Grantee{URI: aws.String(allUsersGroupURI)},
					Permission: aws.String(s3.PermissionWrite),
				},
			},
			expected: object.Private,
		},
		{
			name: "owner read only",
			grants: []*s3.Grant{
				{
					Grantee:    &s3.Grantee{ID: aws.String("owner-id")},
					Permission: aws.String(s3.PermissionFullControl),
				},
			},
			expected: object.Private,
		},
		{
			name: "mixed grants with public read",
			grants: []*s3.Grant{
				{
					Grantee:    &s3.Grantee{ID: aws.String("owner-id")},
					Permission: aws.String(s3.PermissionFullControl),
				},
				{
					Grantee:    &s3.Grantee{URI: aws.String(allUsersGroupURI)},
					Permission: aws.String(s3.PermissionRead),
				},
			},
			expected: object.Public,
		},
		{
			name:     "nil entries tolerated",
			grants:   []*s3.Grant{nil, {Grantee: &s3.Grantee{}}},
			expected: object.Private,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := grantsVisibility(tt.grants); got != tt.expected {
				t.Errorf("grantsVisibility() = %v, want %v", got, tt.expected)
			}
		})
	}
}
