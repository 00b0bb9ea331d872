package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulingAccessStateAt(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	future := now.Add(30 * 24 * time.Hour)
	past := now.Add(-time.Hour)

	var missing *SchedulingAccessGrant
	assert.Equal(t, SchedulingAccessAbsent, missing.StateAt(now), "nil grant is absent")

	revoked := &SchedulingAccessGrant{HasAccess: false, ExpiresAt: &future}
	assert.Equal(t, SchedulingAccessAbsent, revoked.StateAt(now), "revoked grant is absent even with future expiry")

	active := &SchedulingAccessGrant{HasAccess: true, ExpiresAt: &future}
	assert.Equal(t, SchedulingAccessActive, active.StateAt(now))

	expired := &SchedulingAccessGrant{HasAccess: true, ExpiresAt: &past}
	assert.Equal(t, SchedulingAccessExpired, expired.StateAt(now))

	// Expiry exactly at the query instant counts as expired.
	edge := &SchedulingAccessGrant{HasAccess: true, ExpiresAt: &now}
	assert.Equal(t, SchedulingAccessExpired, edge.StateAt(now))
}
