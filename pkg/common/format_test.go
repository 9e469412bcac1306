package common

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/RomiBareiro/iamprobe/pkg/provision"
)

func TestFormatBuckets(t *testing.T) {
	out := FormatBuckets([]provision.Bucket{
		{Name: "logs", CreationDate: time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)},
		{Name: "backups", CreationDate: time.Date(2023, 5, 2, 8, 30, 0, 0, time.UTC)},
	})

	assert.Contains(t, out, "2 bucket(s)")
	assert.Contains(t, out, "logs\t2023-04-01T12:00:00Z")
	assert.Contains(t, out, "backups\t2023-05-02T08:30:00Z")
}

func TestFormatBucketsEmpty(t *testing.T) {
	assert.Equal(t, "No bucket is accessible with the new key.", FormatBuckets(nil))
}

func TestFormatReport(t *testing.T) {
	verified := &provision.Report{State: provision.StateCleanedUp}
	assert.Contains(t, FormatReport(verified), "all resources removed")

	skipped := &provision.Report{State: provision.StateCleanedUp, VerifySkipped: true}
	assert.Contains(t, FormatReport(skipped), "without verification")

	aborted := &provision.Report{State: provision.StateAborted, RunErr: errors.New("MalformedPolicyDocument")}
	assert.Contains(t, FormatReport(aborted), "aborted")
	assert.Contains(t, FormatReport(aborted), "MalformedPolicyDocument")

	partial := &provision.Report{
		State:      provision.StateVerified,
		CleanupErr: &provision.CleanupError{Errs: []error{errors.New("DeleteConflict")}},
	}
	assert.Contains(t, FormatReport(partial), "teardown is incomplete")
}
