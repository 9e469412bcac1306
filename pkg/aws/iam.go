package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/iam"
	log "github.com/sirupsen/logrus"

	"github.com/RomiBareiro/iamprobe/pkg/provision"
)

// IdentityClient implements provision.IdentityService on the IAM API.
type IdentityClient struct {
	iam *iam.IAM
}

func NewIdentityClient(sess *session.Session) *IdentityClient {
	return &IdentityClient{iam: iam.New(sess)}
}

func (c *IdentityClient) CreateGroup(ctx context.Context, name string) (*provision.Group, error) {
	result, err := c.iam.CreateGroupWithContext(ctx,
		&iam.CreateGroupInput{
			GroupName: aws.String(name),
		})

	if err != nil {
		return nil, classifyIAMError(err, "group", name)
	}

	group := &provision.Group{
		Name: *result.Group.GroupName,
		Arn:  *result.Group.Arn,
	}
	if result.Group.CreateDate != nil {
		group.CreationDate = *result.Group.CreateDate
	}
	log.Debugf("IAM group %s created.", group.Name)
	return group, nil
}

func (c *IdentityClient) PutGroupPolicy(ctx context.Context, groupName, policyName, policyDocument string) error {
	_, err := c.iam.PutGroupPolicyWithContext(ctx,
		&iam.PutGroupPolicyInput{
			GroupName:      aws.String(groupName),
			PolicyName:     aws.String(policyName),
			PolicyDocument: aws.String(policyDocument),
		})

	if err != nil {
		return err
	}
	log.Debugf("Policy %s attached to group %s.", policyName, groupName)
	return nil
}

func (c *IdentityClient) CreateUser(ctx context.Context, name string) (*provision.User, error) {
	result, err := c.iam.CreateUserWithContext(ctx,
		&iam.CreateUserInput{
			UserName: aws.String(name),
		})

	if err != nil {
		return nil, classifyIAMError(err, "user", name)
	}

	user := &provision.User{
		Name: *result.User.UserName,
		Arn:  *result.User.Arn,
	}
	if result.User.CreateDate != nil {
		user.CreationDate = *result.User.CreateDate
	}
	log.Debugf("IAM user %s created.", user.Name)
	return user, nil
}

func (c *IdentityClient) CreateAccessKey(ctx context.Context, userName string) (*provision.AccessKey, error) {
	result, err := c.iam.CreateAccessKeyWithContext(ctx,
		&iam.CreateAccessKeyInput{
			UserName: aws.String(userName),
		})

	if err != nil {
		return nil, classifyIAMError(err, "access key", userName)
	}

	key := result.AccessKey
	log.Debugf("Access key %s created for user %s.", *key.AccessKeyId, userName)
	return &provision.AccessKey{
		ID:       *key.AccessKeyId,
		Secret:   *key.SecretAccessKey,
		UserName: userName,
		Status:   aws.StringValue(key.Status),
	}, nil
}

func (c *IdentityClient) AddUserToGroup(ctx context.Context, userName, groupName string) error {
	_, err := c.iam.AddUserToGroupWithContext(ctx,
		&iam.AddUserToGroupInput{
			UserName:  aws.String(userName),
			GroupName: aws.String(groupName),
		})

	if err != nil {
		return err
	}
	log.Debugf("User %s added to group %s.", userName, groupName)
	return nil
}

// AccessKeyStatus reads the key status through ListAccessKeys: a just-created
// key can lag behind in listings, which is exactly what the activation poll
// waits out.
func (c *IdentityClient) AccessKeyStatus(ctx context.Context, userName, keyID string) (string, error) {
	result, err := c.iam.ListAccessKeysWithContext(ctx,
		&iam.ListAccessKeysInput{
			UserName: aws.String(userName),
		})

	if err != nil {
		return "", err
	}

	for _, metadata := range result.AccessKeyMetadata {
		if aws.StringValue(metadata.AccessKeyId) == keyID {
			return aws.StringValue(metadata.Status), nil
		}
	}
	return "", fmt.Errorf("access key %s not listed for user %s", keyID, userName)
}

func (c *IdentityClient) RemoveUserFromGroup(ctx context.Context, userName, groupName string) error {
	_, err := c.iam.RemoveUserFromGroupWithContext(ctx,
		&iam.RemoveUserFromGroupInput{
			UserName:  aws.String(userName),
			GroupName: aws.String(groupName),
		})
	return err
}

func (c *IdentityClient) DeleteAccessKey(ctx context.Context, userName, keyID string) error {
	_, err := c.iam.DeleteAccessKeyWithContext(ctx,
		&iam.DeleteAccessKeyInput{
			UserName:    aws.String(userName),
			AccessKeyId: aws.String(keyID),
		})
	return err
}

func (c *IdentityClient) DeleteUser(ctx context.Context, name string) error {
	_, err := c.iam.DeleteUserWithContext(ctx,
		&iam.DeleteUserInput{
			UserName: aws.String(name),
		})
	return err
}

func (c *IdentityClient) DeleteGroupPolicy(ctx context.Context, groupName, policyName string) error {
	_, err := c.iam.DeleteGroupPolicyWithContext(ctx,
		&iam.DeleteGroupPolicyInput{
			GroupName:  aws.String(groupName),
			PolicyName: aws.String(policyName),
		})
	return err
}

func (c *IdentityClient) DeleteGroup(ctx context.Context, name string) error {
	_, err := c.iam.DeleteGroupWithContext(ctx,
		&iam.DeleteGroupInput{
			GroupName: aws.String(name),
		})
	return err
}

// classifyIAMError maps the two recoverable IAM error codes onto the
// workflow's error kinds. Everything else passes through untouched.
func classifyIAMError(err error, resource, name string) error {
	aerr, ok := err.(awserr.Error)
	if !ok {
		return err
	}

	switch aerr.Code() {
	case iam.ErrCodeEntityAlreadyExistsException:
		return &provision.DuplicateResourceError{Resource: resource, Name: name, Err: err}
	case iam.ErrCodeLimitExceededException:
		return &provision.QuotaExceededError{Resource: resource, Name: name, Err: err}
	}
	return err
}
