package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCommissionMarkPaid(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	admin := uuid.New()
	receipt := "receipt-123"

	c := &Commission{
		ID:           uuid.New(),
		AffiliateID:  uuid.New(),
		SourceUserID: uuid.New(),
		Amount:       decimal.NewFromInt(50),
		Status:       CommissionStatusPending,
	}

	err := c.MarkPaid(admin, "pix", &receipt, now)
	assert.NoError(t, err)
	assert.True(t, c.IsPaid())
	assert.Equal(t, now, *c.PaidAt)
	assert.Equal(t, admin, *c.PaidBy)
	assert.Equal(t, "pix", *c.PaidMethod)
	assert.Equal(t, receipt, *c.ReceiptReference)

	// Second payment attempt must fail and leave the row untouched.
	other := uuid.New()
	err = c.MarkPaid(other, "transfer", nil, now.Add(time.Hour))
	assert.ErrorIs(t, err, ErrCommissionAlreadyPaid)
	assert.Equal(t, admin, *c.PaidBy)
	assert.Equal(t, now, *c.PaidAt)
}

func TestCommissionBelongsToPeriod(t *testing.T) {
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	pending := &Commission{
		Status:    CommissionStatusPending,
		CreatedAt: start.Add(48 * time.Hour),
	}
	assert.True(t, pending.BelongsToPeriod(start, end))

	// A commission created in March but paid in April belongs to April.
	march := start.Add(-10 * 24 * time.Hour)
	paidAt := start.Add(5 * 24 * time.Hour)
	paid := &Commission{
		Status:    CommissionStatusPaid,
		CreatedAt: march,
		PaidAt:    &paidAt,
	}
	assert.True(t, paid.BelongsToPeriod(start, end))
	assert.False(t, paid.BelongsToPeriod(start.AddDate(0, -1, 0), start))

	// Window end is exclusive.
	edge := &Commission{Status: CommissionStatusPending, CreatedAt: end}
	assert.False(t, edge.BelongsToPeriod(start, end))
}
