package provision

import (
	"context"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
)

var errKeyNotActive = errors.New("access key is not active yet")

// Controller runs the provisioning pipeline: create a group, attach a policy,
// create a user with an access key, add the user to the group, wait for the
// key to activate, list buckets with it, then tear everything down. Teardown
// covers exactly the resources that were created, in reverse-dependency
// order, and runs on every exit path.
type Controller struct {
	cfg      Config
	identity IdentityService
	storage  StorageService
	notify   Notifier
	confirm  ConfirmFunc
}

type Option func(*Controller)

// WithNotifier replaces the default logrus-backed progress notifier.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		c.notify = n
	}
}

// WithConfirm installs a pause point before the verification step.
func WithConfirm(fn ConfirmFunc) Option {
	return func(c *Controller) {
		c.confirm = fn
	}
}

func New(cfg Config, identity IdentityService, storage StorageService, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, errors.New("identity service is required")
	}
	if storage == nil && !cfg.SkipVerify {
		return nil, errors.New("storage service is required unless verification is skipped")
	}

	c := &Controller{
		cfg:      cfg,
		identity: identity,
		storage:  storage,
		notify:   logNotifier{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Run executes the pipeline. The returned error is the first fatal step
// error, or the aggregated cleanup error when provisioning itself succeeded.
// The report always reflects the terminal state, including partial teardowns.
func (c *Controller) Run(ctx context.Context) (report *Report, err error) {
	report = &Report{State: StateIdle}
	led := &ledger{}

	// Teardown must fire whatever happens above it, and must survive a
	// canceled run context.
	defer func() {
		c.cleanup(context.WithoutCancel(ctx), led, report)
		if err == nil && report.CleanupErr != nil {
			err = report.CleanupErr
		}
	}()

	if err = c.do(StepCreateGroup, func() error {
		group, stepErr := c.identity.CreateGroup(ctx, c.cfg.GroupName)
		if stepErr != nil {
			return stepErr
		}
		led.record(KindGroup, group.Name)
		return nil
	}); err != nil {
		report.fail(err)
		return report, err
	}
	report.State = StateGroupCreated

	if err = c.do(StepAttachPolicy, func() error {
		stepErr := c.identity.PutGroupPolicy(ctx, c.cfg.GroupName, c.cfg.PolicyName, c.cfg.PolicyDocument)
		if stepErr != nil {
			return stepErr
		}
		led.record(KindGroupPolicy, c.cfg.PolicyName)
		return nil
	}); err != nil {
		report.fail(err)
		return report, err
	}
	report.State = StatePolicyAttached

	if err = c.do(StepCreateUser, func() error {
		user, stepErr := c.identity.CreateUser(ctx, c.cfg.UserName)
		if stepErr != nil {
			if IsDuplicate(stepErr) && c.cfg.OnDuplicateUser == ContinueOnDuplicate {
				log.Warnf("User %s already exists, continuing without a fresh handle.", c.cfg.UserName)
				led.record(KindUser, c.cfg.UserName)
				return nil
			}
			return stepErr
		}
		led.record(KindUser, user.Name)
		return nil
	}); err != nil {
		report.fail(err)
		return report, err
	}
	report.State = StateUserCreated

	var key *AccessKey
	if err = c.do(StepCreateAccessKey, func() error {
		created, stepErr := c.identity.CreateAccessKey(ctx, c.cfg.UserName)
		if stepErr != nil {
			if IsQuotaExceeded(stepErr) {
				log.Warnf("Access key quota reached for user %s, continuing without a key.", c.cfg.UserName)
				return nil
			}
			return stepErr
		}
		key = created
		led.record(KindAccessKey, created.ID)
		return nil
	}); err != nil {
		report.fail(err)
		return report, err
	}
	if key != nil {
		report.State = StateKeyCreated
	}

	if err = c.do(StepAddUserToGroup, func() error {
		stepErr := c.identity.AddUserToGroup(ctx, c.cfg.UserName, c.cfg.GroupName)
		if stepErr != nil {
			return stepErr
		}
		led.record(KindMembership, c.cfg.UserName)
		return nil
	}); err != nil {
		report.fail(err)
		return report, err
	}
	report.State = StateMembered

	if key != nil {
		if err = c.do(StepWaitKeyActive, func() error {
			return c.waitKeyActive(ctx, key)
		}); err != nil {
			report.fail(err)
			return report, err
		}
		report.State = StateKeyActive
	}

	if key == nil || c.cfg.SkipVerify {
		report.VerifySkipped = true
		log.Info("Verification skipped.")
		return report, nil
	}
	if c.confirm != nil && !c.confirm("Verify bucket access with the new key?") {
		report.VerifySkipped = true
		log.Info("Verification declined.")
		return report, nil
	}

	if err = c.do(StepVerify, func() error {
		buckets, stepErr := c.storage.ListBuckets(ctx, *key)
		if stepErr != nil {
			return stepErr
		}
		report.Buckets = buckets
		return nil
	}); err != nil {
		report.fail(err)
		return report, err
	}
	report.State = StateVerified

	return report, nil
}

// waitKeyActive polls the key status with exponential backoff until it reads
// Active, the configured wait elapses, or ctx is canceled.
func (c *Controller) waitKeyActive(ctx context.Context, key *AccessKey) error {
	if key.Status == AccessKeyStatusActive {
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.cfg.KeyPollInterval
	bo.MaxElapsedTime = c.cfg.KeyWaitTimeout

	poll := func() error {
		status, err := c.identity.AccessKeyStatus(ctx, key.UserName, key.ID)
		if err != nil {
			return backoff.Permanent(err)
		}
		if status != AccessKeyStatusActive {
			return errKeyNotActive
		}
		return nil
	}

	if err := backoff.Retry(poll, backoff.WithContext(bo, ctx)); err != nil {
		if errors.Is(err, errKeyNotActive) {
			return &ActivationTimeoutError{KeyID: key.ID, Waited: c.cfg.KeyWaitTimeout}
		}
		return err
	}
	key.Status = AccessKeyStatusActive
	return nil
}

// cleanup walks the ledger newest-first so relations are dissolved before
// their endpoints: membership, then access key, then user, then group policy,
// then group. Failures are collected, never short-circuited.
func (c *Controller) cleanup(ctx context.Context, led *ledger, report *Report) {
	if len(led.entries) == 0 {
		return
	}

	c.notify.StepStarted(StepCleanup)

	var errs []error
	for _, entry := range led.reversed() {
		var err error
		switch entry.Kind {
		case KindMembership:
			err = c.identity.RemoveUserFromGroup(ctx, entry.ID, c.cfg.GroupName)
		case KindAccessKey:
			err = c.identity.DeleteAccessKey(ctx, c.cfg.UserName, entry.ID)
		case KindUser:
			err = c.identity.DeleteUser(ctx, entry.ID)
		case KindGroupPolicy:
			err = c.identity.DeleteGroupPolicy(ctx, c.cfg.GroupName, entry.ID)
		case KindGroup:
			err = c.identity.DeleteGroup(ctx, entry.ID)
		}

		if err != nil {
			log.Errorf("Can't delete %s %s : %s", entry.Kind, entry.ID, err.Error())
			errs = append(errs, fmt.Errorf("delete %s %s: %w", entry.Kind, entry.ID, err))
			continue
		}
		log.Debugf("%s %s deleted.", entry.Kind, entry.ID)
	}

	if len(errs) > 0 {
		report.CleanupErr = &CleanupError{Errs: errs}
		c.notify.StepFinished(StepCleanup, report.CleanupErr)
		return
	}
	if report.State != StateAborted {
		report.State = StateCleanedUp
	}
	c.notify.StepFinished(StepCleanup, nil)
}

func (c *Controller) do(step Step, fn func() error) error {
	c.notify.StepStarted(step)
	err := fn()
	c.notify.StepFinished(step, err)
	return err
}
