package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCouponIsWithinWindow(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	before := now.Add(-24 * time.Hour)
	after := now.Add(24 * time.Hour)

	tests := []struct {
		name       string
		validFrom  *time.Time
		validUntil *time.Time
		expected   bool
	}{
		{"no bounds", nil, nil, true},
		{"inside both bounds", &before, &after, true},
		{"before window opens", &after, nil, false},
		{"after window closes", nil, &before, false},
		{"open start, future end", nil, &after, true},
		{"past start, open end", &before, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Coupon{ValidFrom: tt.validFrom, ValidUntil: tt.validUntil}
			assert.Equal(t, tt.expected, c.IsWithinWindow(now))
		})
	}
}

func TestCouponResolvesFor(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	c := &Coupon{
		Code:       "CONVENIO50",
		Target:     PlanTargetTitular,
		FinalPrice: decimal.NewFromInt(300),
		Enabled:    true,
	}

	assert.True(t, c.ResolvesFor(PlanTargetTitular, now))
	assert.False(t, c.ResolvesFor(PlanTargetDependente, now), "target mismatch must not resolve")

	c.Enabled = false
	assert.False(t, c.ResolvesFor(PlanTargetTitular, now), "disabled coupon must not resolve")

	c.Enabled = true
	past := now.Add(-time.Hour)
	c.ValidUntil = &past
	assert.False(t, c.ResolvesFor(PlanTargetTitular, now), "expired coupon must not resolve")
}
