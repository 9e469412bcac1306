package aws

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/iam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RomiBareiro/iamprobe/pkg/provision"
)

func TestClassifyIAMErrorDuplicate(t *testing.T) {
	cause := awserr.New(iam.ErrCodeEntityAlreadyExistsException, "User already exists", nil)

	err := classifyIAMError(cause, "user", "S3ReadOnlyUser")

	require.True(t, provision.IsDuplicate(err))
	var dup *provision.DuplicateResourceError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "user", dup.Resource)
	assert.Equal(t, "S3ReadOnlyUser", dup.Name)
	assert.ErrorIs(t, err, cause)
}

func TestClassifyIAMErrorQuota(t *testing.T) {
	cause := awserr.New(iam.ErrCodeLimitExceededException, "Cannot exceed quota for AccessKeysPerUser: 2", nil)

	err := classifyIAMError(cause, "access key", "S3ReadOnlyUser")

	require.True(t, provision.IsQuotaExceeded(err))
	var quota *provision.QuotaExceededError
	require.ErrorAs(t, err, &quota)
	assert.Equal(t, "access key", quota.Resource)
}

func TestClassifyIAMErrorPassesThroughOtherCodes(t *testing.T) {
	cause := awserr.New(iam.ErrCodeServiceFailureException, "internal failure", nil)

	err := classifyIAMError(cause, "group", "S3ReadonlyGroup")

	assert.Equal(t, cause, err)
	assert.False(t, provision.IsDuplicate(err))
	assert.False(t, provision.IsQuotaExceeded(err))
}

func TestClassifyIAMErrorPassesThroughPlainErrors(t *testing.T) {
	cause := errors.New("connection reset")

	assert.Equal(t, cause, classifyIAMError(cause, "group", "S3ReadonlyGroup"))
}
