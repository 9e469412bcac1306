package provision

import (
	"context"
	"time"
)

// AccessKeyStatusActive is the status a freshly created access key must reach
// before it can authenticate calls.
const AccessKeyStatusActive = "Active"

type Group struct {
	Name         string
	Arn          string
	CreationDate time.Time
}

type User struct {
	Name         string
	Arn          string
	CreationDate time.Time
}

type AccessKey struct {
	ID       string
	Secret   string
	UserName string
	Status   string
}

// Bucket is one row of the verification listing.
type Bucket struct {
	Name         string
	CreationDate time.Time
}

// IdentityService is the identity-management collaborator. Create calls return
// typed errors for the two recoverable cases: CreateUser returns
// *DuplicateResourceError when the user already exists and CreateAccessKey
// returns *QuotaExceededError when the per-user key quota is reached.
type IdentityService interface {
	CreateGroup(ctx context.Context, name string) (*Group, error)
	PutGroupPolicy(ctx context.Context, groupName, policyName, policyDocument string) error
	CreateUser(ctx context.Context, name string) (*User, error)
	CreateAccessKey(ctx context.Context, userName string) (*AccessKey, error)
	AddUserToGroup(ctx context.Context, userName, groupName string) error
	AccessKeyStatus(ctx context.Context, userName, keyID string) (string, error)
	RemoveUserFromGroup(ctx context.Context, userName, groupName string) error
	DeleteAccessKey(ctx context.Context, userName, keyID string) error
	DeleteUser(ctx context.Context, name string) error
	DeleteGroupPolicy(ctx context.Context, groupName, policyName string) error
	DeleteGroup(ctx context.Context, name string) error
}

// StorageService lists the buckets reachable with a given access key. The
// implementation must authenticate with that key only, not with the ambient
// credentials the IdentityService uses.
type StorageService interface {
	ListBuckets(ctx context.Context, key AccessKey) ([]Bucket, error)
}
