package provision

// State is the last point of the pipeline a run reached.
type State string

const (
	StateIdle           State = "idle"
	StateGroupCreated   State = "group-created"
	StatePolicyAttached State = "policy-attached"
	StateUserCreated    State = "user-created"
	StateKeyCreated     State = "key-created"
	StateMembered       State = "membered"
	StateKeyActive      State = "key-active"
	StateVerified       State = "verified"
	StateCleanedUp      State = "cleaned-up"
	StateAborted        State = "aborted"
)

// Report is the outcome of one run. Buckets holds the verification listing
// when the verify step ran. CleanupErr is set when one or more teardown
// sub-steps failed; the remaining sub-steps were still attempted.
type Report struct {
	State         State
	Buckets       []Bucket
	VerifySkipped bool
	RunErr        error
	CleanupErr    *CleanupError
}

func (r *Report) fail(err error) {
	r.State = StateAborted
	r.RunErr = err
}
