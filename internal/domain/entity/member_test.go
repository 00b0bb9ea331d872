package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMemberIsSubscriptionActive(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	future := now.AddDate(1, 0, 0)
	past := now.AddDate(0, 0, -1)

	m := &MemberProfile{SubscriptionStatus: SubscriptionStatusPending}
	assert.False(t, m.IsSubscriptionActive(now))

	m.SubscriptionStatus = SubscriptionStatusActive
	assert.False(t, m.IsSubscriptionActive(now), "active without expiry is not active")

	m.SubscriptionExpiresAt = &future
	assert.True(t, m.IsSubscriptionActive(now))

	m.SubscriptionExpiresAt = &past
	assert.False(t, m.IsSubscriptionActive(now))

	// Expiry exactly at now counts as expired.
	m.SubscriptionExpiresAt = &now
	assert.False(t, m.IsSubscriptionActive(now))
}

func TestMemberActivateEmitsFirstActivationOnce(t *testing.T) {
	expiry := time.Date(2027, 5, 1, 0, 0, 0, 0, time.UTC)
	m := &MemberProfile{UserID: uuid.New(), SubscriptionStatus: SubscriptionStatusPending}

	event := m.Activate(expiry)
	assert.True(t, event.FirstActivation)
	assert.Equal(t, m.UserID, event.UserID)
	assert.Equal(t, expiry, event.ExpiresAt)
	assert.Equal(t, SubscriptionStatusActive, m.SubscriptionStatus)
	assert.Equal(t, expiry, *m.SubscriptionExpiresAt)
	assert.True(t, m.EverActivated)

	// Renewal after expiry never re-fires the first activation.
	m.SubscriptionStatus = SubscriptionStatusExpired
	renewed := m.Activate(expiry.AddDate(1, 0, 0))
	assert.False(t, renewed.FirstActivation)
	assert.Equal(t, SubscriptionStatusActive, m.SubscriptionStatus)
}
