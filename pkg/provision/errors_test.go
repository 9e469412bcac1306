package provision

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsDuplicate(t *testing.T) {
	dup := &DuplicateResourceError{Resource: "user", Name: "S3ReadOnlyUser", Err: errors.New("EntityAlreadyExists")}

	assert.True(t, IsDuplicate(dup))
	assert.True(t, IsDuplicate(fmt.Errorf("create user: %w", dup)))
	assert.False(t, IsDuplicate(errors.New("EntityAlreadyExists")))
	assert.False(t, IsDuplicate(nil))
}

func TestIsQuotaExceeded(t *testing.T) {
	quota := &QuotaExceededError{Resource: "access key", Name: "S3ReadOnlyUser", Err: errors.New("LimitExceeded")}

	assert.True(t, IsQuotaExceeded(quota))
	assert.True(t, IsQuotaExceeded(fmt.Errorf("create key: %w", quota)))
	assert.False(t, IsQuotaExceeded(errors.New("LimitExceeded")))
}

func TestIsActivationTimeout(t *testing.T) {
	timeout := &ActivationTimeoutError{KeyID: "AKIAEXAMPLE", Waited: 2 * time.Minute}

	assert.True(t, IsActivationTimeout(timeout))
	assert.False(t, IsActivationTimeout(errors.New("deadline exceeded")))
	assert.Contains(t, timeout.Error(), "AKIAEXAMPLE")
}

func TestCleanupErrorAggregates(t *testing.T) {
	first := errors.New("DeleteConflict")
	second := errors.New("NoSuchEntity")
	cleanupErr := &CleanupError{Errs: []error{first, second}}

	assert.Contains(t, cleanupErr.Error(), "2 error(s)")
	assert.Contains(t, cleanupErr.Error(), "DeleteConflict")
	assert.True(t, errors.Is(cleanupErr, first))
	assert.True(t, errors.Is(cleanupErr, second))
}
