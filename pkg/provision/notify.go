package provision

import (
	log "github.com/sirupsen/logrus"
)

// Step names one stage of the workflow, used for progress notifications.
type Step string

const (
	StepCreateGroup     Step = "create-group"
	StepAttachPolicy    Step = "attach-policy"
	StepCreateUser      Step = "create-user"
	StepCreateAccessKey Step = "create-access-key"
	StepAddUserToGroup  Step = "add-user-to-group"
	StepWaitKeyActive   Step = "wait-key-active"
	StepVerify          Step = "verify"
	StepCleanup         Step = "cleanup"
)

// Notifier receives progress events at each step boundary. Implementations
// must not block the workflow.
type Notifier interface {
	StepStarted(step Step)
	StepFinished(step Step, err error)
}

// ConfirmFunc is called before the verification step when set. Returning
// false skips verification; cleanup still runs.
type ConfirmFunc func(prompt string) bool

type logNotifier struct{}

func (logNotifier) StepStarted(step Step) {
	log.Infof("Step %s started.", step)
}

func (logNotifier) StepFinished(step Step, err error) {
	if err != nil {
		log.Errorf("Step %s failed: %s", step, err.Error())
		return
	}
	log.Infof("Step %s done.", step)
}

// NopNotifier discards all progress events.
type NopNotifier struct{}

func (NopNotifier) StepStarted(Step)         {}
func (NopNotifier) StepFinished(Step, error) {}
