package provision

// ResourceKind identifies one kind of remote resource tracked by the ledger.
// The declaration order is the creation order; cleanup walks it backwards so
// relations (membership, policy attachment) are dissolved before their
// endpoints are deleted.
type ResourceKind int

const (
	KindGroup ResourceKind = iota
	KindGroupPolicy
	KindUser
	KindAccessKey
	KindMembership
)

func (k ResourceKind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindGroupPolicy:
		return "group policy"
	case KindUser:
		return "user"
	case KindAccessKey:
		return "access key"
	case KindMembership:
		return "group membership"
	default:
		return "unknown"
	}
}

type ledgerEntry struct {
	Kind ResourceKind
	ID   string
}

// ledger records which remote resources a run has created, in creation order.
// Cleanup is driven by exactly the recorded entries: a step that never ran, or
// failed, leaves nothing to delete.
type ledger struct {
	entries []ledgerEntry
}

func (l *ledger) record(kind ResourceKind, id string) {
	l.entries = append(l.entries, ledgerEntry{Kind: kind, ID: id})
}

// reversed returns the entries in teardown order, newest first.
func (l *ledger) reversed() []ledgerEntry {
	out := make([]ledgerEntry, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		out = append(out, l.entries[i])
	}
	return out
}
