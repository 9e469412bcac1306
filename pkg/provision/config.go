package provision

import (
	"errors"
	"time"
)

// DuplicatePolicy decides what a run does when CreateUser reports that the
// user already exists.
type DuplicatePolicy string

const (
	// ContinueOnDuplicate logs the duplicate and carries on without a user
	// handle. The user is still torn down at the end of the run.
	ContinueOnDuplicate DuplicatePolicy = "continue"
	// AbortOnDuplicate treats the duplicate as fatal. Cleanup still runs for
	// whatever was created before the abort.
	AbortOnDuplicate DuplicatePolicy = "abort"
)

// DefaultPolicyDocument grants read-only access to every bucket, which is all
// the verification step needs.
const DefaultPolicyDocument = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Action": ["s3:Get*", "s3:List*"],
      "Resource": "*"
    }
  ]
}`

const (
	DefaultGroupName  = "S3ReadonlyGroup"
	DefaultUserName   = "S3ReadOnlyUser"
	DefaultPolicyName = "S3ReadOnlyAccess"

	defaultKeyPollInterval = time.Second
	defaultKeyWaitTimeout  = 2 * time.Minute
)

// Config carries everything a run needs. The zero value is not usable; call
// DefaultConfig or fill the names in explicitly.
type Config struct {
	GroupName      string
	UserName       string
	PolicyName     string
	PolicyDocument string

	// OnDuplicateUser defaults to ContinueOnDuplicate, matching the historic
	// behavior of the workflow.
	OnDuplicateUser DuplicatePolicy

	// KeyPollInterval is the initial interval of the exponential-backoff poll
	// waiting for the access key to become active. KeyWaitTimeout bounds the
	// total wait.
	KeyPollInterval time.Duration
	KeyWaitTimeout  time.Duration

	// SkipVerify provisions and tears down without the bucket-listing check.
	SkipVerify bool
}

func DefaultConfig() Config {
	return Config{
		GroupName:       DefaultGroupName,
		UserName:        DefaultUserName,
		PolicyName:      DefaultPolicyName,
		PolicyDocument:  DefaultPolicyDocument,
		OnDuplicateUser: ContinueOnDuplicate,
		KeyPollInterval: defaultKeyPollInterval,
		KeyWaitTimeout:  defaultKeyWaitTimeout,
	}
}

func (c *Config) Validate() error {
	if c.GroupName == "" {
		return errors.New("group name is required")
	}
	if c.UserName == "" {
		return errors.New("user name is required")
	}
	if c.PolicyName == "" {
		return errors.New("policy name is required")
	}
	if c.PolicyDocument == "" {
		return errors.New("policy document is required")
	}
	switch c.OnDuplicateUser {
	case "":
		c.OnDuplicateUser = ContinueOnDuplicate
	case ContinueOnDuplicate, AbortOnDuplicate:
	default:
		return errors.New("unknown duplicate-user policy: " + string(c.OnDuplicateUser))
	}
	if c.KeyPollInterval <= 0 {
		c.KeyPollInterval = defaultKeyPollInterval
	}
	if c.KeyWaitTimeout <= 0 {
		c.KeyWaitTimeout = defaultKeyWaitTimeout
	}
	return nil
}
