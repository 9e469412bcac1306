package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/RomiBareiro/iamprobe/pkg/provision"
)

// FormatBuckets renders the verification listing, one bucket per line with
// its creation date.
func FormatBuckets(buckets []provision.Bucket) string {
	if len(buckets) == 0 {
		return "No bucket is accessible with the new key."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d bucket(s) accessible with the new key:\n", len(buckets))
	for _, bucket := range buckets {
		fmt.Fprintf(&b, "  %s\t%s\n", bucket.Name, bucket.CreationDate.Format(time.RFC3339))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatReport renders the run summary line.
func FormatReport(report *provision.Report) string {
	switch {
	case report.RunErr != nil:
		return fmt.Sprintf("Run aborted (last state: %s): %s", report.State, report.RunErr.Error())
	case report.CleanupErr != nil:
		return fmt.Sprintf("Run finished but teardown is incomplete: %s", report.CleanupErr.Error())
	case report.VerifySkipped:
		return fmt.Sprintf("Run finished without verification (state: %s).", report.State)
	default:
		return fmt.Sprintf("Run finished, all resources removed (state: %s).", report.State)
	}
}
