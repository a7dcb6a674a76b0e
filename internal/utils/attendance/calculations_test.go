package attendance

import (
	"testing"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCompliancePercent(t *testing.T) {
	cases := []struct {
		name     string
		attended int
		required int
		want     string
	}{
		{"full week", 3, 3, "100"},
		{"partial", 1, 3, "33.33"},
		{"two thirds", 2, 3, "66.67"},
		{"zero attended", 0, 3, "0"},
		{"zero quota", 2, 0, "0"},
		{"over quota capped", 5, 3, "100"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tc.want)
			assert.NoError(t, err)
			got := CompliancePercent(tc.attended, tc.required)
			assert.True(t, want.Equal(got), "want %s got %s", want, got)
		})
	}
}

func TestWeeklyStatusFor(t *testing.T) {
	assert.Equal(t, domain.StatusGreen, WeeklyStatusFor(3, 3))
	assert.Equal(t, domain.StatusGreen, WeeklyStatusFor(4, 3))
	assert.Equal(t, domain.StatusRed, WeeklyStatusFor(2, 3))
	assert.Equal(t, domain.StatusRed, WeeklyStatusFor(0, 0))
}

func TestUtilizationPercent(t *testing.T) {
	got := UtilizationPercent(15, 20)
	assert.True(t, decimal.NewFromInt(75).Equal(got), "got %s", got)

	assert.True(t, decimal.Zero.Equal(UtilizationPercent(5, 0)))
}
