package softloan

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCoversPeriod(t *testing.T) {
	loan := SoftLoan{StartMonth: 11, StartYear: 2024, DurationMonths: 4}

	assert.False(t, loan.CoversPeriod(10, 2024))
	assert.True(t, loan.CoversPeriod(11, 2024))
	assert.True(t, loan.CoversPeriod(12, 2024))
	// Schedule crosses the year boundary.
	assert.True(t, loan.CoversPeriod(1, 2025))
	assert.True(t, loan.CoversPeriod(2, 2025))
	assert.False(t, loan.CoversPeriod(3, 2025))
}

func TestInstallmentFor(t *testing.T) {
	loan := SoftLoan{
		Status:          StatusActive,
		StartMonth:      1,
		StartYear:       2025,
		DurationMonths:  10,
		MonthlyAmount:   decimal.NewFromInt(100_000),
		RemainingAmount: decimal.NewFromInt(1_000_000),
	}

	assert.True(t, loan.InstallmentFor(1, 2025).Equal(decimal.NewFromInt(100_000)))

	// Final installment never exceeds what is left.
	loan.RemainingAmount = decimal.NewFromInt(40_000)
	assert.True(t, loan.InstallmentFor(5, 2025).Equal(decimal.NewFromInt(40_000)))

	loan.Status = StatusCompleted
	assert.True(t, loan.InstallmentFor(5, 2025).IsZero())

	loan.Status = StatusActive
	assert.True(t, loan.InstallmentFor(12, 2025).IsZero(), "outside schedule")
}
