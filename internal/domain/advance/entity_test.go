package advance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func intptr(i int) *int { return &i }

func TestIsDeductibleFor(t *testing.T) {
	adv := Advance{
		Amount:         decimal.NewFromInt(500_000),
		Status:         StatusApproved,
		DeductionMonth: intptr(7),
		DeductionYear:  intptr(2025),
	}

	assert.True(t, adv.IsDeductibleFor(7, 2025))
	assert.False(t, adv.IsDeductibleFor(6, 2025))
	assert.False(t, adv.IsDeductibleFor(7, 2024))

	now := time.Now()
	adv.DeductedAt = &now
	assert.False(t, adv.IsDeductibleFor(7, 2025), "already deducted")

	adv.DeductedAt = nil
	adv.Status = StatusPending
	assert.False(t, adv.IsDeductibleFor(7, 2025), "not approved")
}
