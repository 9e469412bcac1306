package provision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedgerReversedIsTeardownOrder(t *testing.T) {
	led := &ledger{}
	led.record(KindGroup, "S3ReadonlyGroup")
	led.record(KindGroupPolicy, "S3ReadOnlyAccess")
	led.record(KindUser, "S3ReadOnlyUser")
	led.record(KindAccessKey, "AKIAEXAMPLE")
	led.record(KindMembership, "S3ReadOnlyUser")

	var kinds []ResourceKind
	for _, entry := range led.reversed() {
		kinds = append(kinds, entry.Kind)
	}

	assert.Equal(t, []ResourceKind{
		KindMembership,
		KindAccessKey,
		KindUser,
		KindGroupPolicy,
		KindGroup,
	}, kinds)
}

func TestLedgerReversedPartial(t *testing.T) {
	led := &ledger{}
	led.record(KindGroup, "S3ReadonlyGroup")
	led.record(KindGroupPolicy, "S3ReadOnlyAccess")

	entries := led.reversed()
	assert.Len(t, entries, 2)
	assert.Equal(t, KindGroupPolicy, entries[0].Kind)
	assert.Equal(t, KindGroup, entries[1].Kind)
}

func TestResourceKindString(t *testing.T) {
	assert.Equal(t, "group", KindGroup.String())
	assert.Equal(t, "group policy", KindGroupPolicy.String())
	assert.Equal(t, "user", KindUser.String())
	assert.Equal(t, "access key", KindAccessKey.String())
	assert.Equal(t, "group membership", KindMembership.String())
}
