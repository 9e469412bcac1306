package provision

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DuplicateResourceError reports a create call that failed because a resource
// with the same name already exists.
type DuplicateResourceError struct {
	Resource string
	Name     string
	Err      error
}

func (e *DuplicateResourceError) Error() string {
	return fmt.Sprintf("%s %s already exists: %s", e.Resource, e.Name, e.Err)
}

func (e *DuplicateResourceError) Unwrap() error {
	return e.Err
}

// QuotaExceededError reports a create call rejected because an account or
// per-resource quota is reached.
type QuotaExceededError struct {
	Resource string
	Name     string
	Err      error
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded creating %s for %s: %s", e.Resource, e.Name, e.Err)
}

func (e *QuotaExceededError) Unwrap() error {
	return e.Err
}

// ActivationTimeoutError reports an access key that never reached the Active
// status within the configured wait.
type ActivationTimeoutError struct {
	KeyID  string
	Waited time.Duration
}

func (e *ActivationTimeoutError) Error() string {
	return fmt.Sprintf("access key %s still not active after %s", e.KeyID, e.Waited)
}

// CleanupError aggregates the failures of individual cleanup sub-steps. A
// failing sub-step never prevents the remaining ones from being attempted, so
// a single run can collect several.
type CleanupError struct {
	Errs []error
}

func (e *CleanupError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("cleanup finished with %d error(s): %s", len(e.Errs), strings.Join(msgs, "; "))
}

func (e *CleanupError) Unwrap() []error {
	return e.Errs
}

func IsDuplicate(err error) bool {
	var dup *DuplicateResourceError
	return errors.As(err, &dup)
}

func IsQuotaExceeded(err error) bool {
	var quota *QuotaExceededError
	return errors.As(err, &quota)
}

func IsActivationTimeout(err error) bool {
	var timeout *ActivationTimeoutError
	return errors.As(err, &timeout)
}
