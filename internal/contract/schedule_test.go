package contract

import (
	"testing"
	"time"

	contracterrors "jornada40/internal/contract/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLegalWeeklyLimit(t *testing.T) {
	tests := []struct {
		start time.Time
		want  int64
	}{
		{date(2023, time.December, 31), 45},
		{date(2024, time.April, 25), 45},
		{date(2024, time.April, 26), 44},
		{date(2026, time.April, 25), 44},
		{date(2026, time.April, 26), 42},
		{date(2028, time.April, 25), 42},
		{date(2028, time.April, 26), 40},
		{date(2031, time.January, 1), 40},
	}
	for _, tt := range tests {
		t.Run(tt.start.Format("2006-01-02"), func(t *testing.T) {
			assert.True(t, decimal.NewFromInt(tt.want).Equal(LegalWeeklyLimit(tt.start)))
		})
	}
}

func TestDefaultWeeklyHours(t *testing.T) {
	tests := []struct {
		start time.Time
		want  float64
	}{
		{date(2023, time.June, 1), 44},
		{date(2025, time.March, 1), 44},
		{date(2026, time.April, 26), 42},
		{date(2029, time.January, 2), 40},
	}
	for _, tt := range tests {
		t.Run(tt.start.Format("2006-01-02"), func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultWeeklyHours(tt.start))
		})
	}
}

func TestLegalWeeklyLimit_IgnoresClockTime(t *testing.T) {
	late := time.Date(2026, time.April, 26, 23, 30, 0, 0, time.FixedZone("CLT", -4*3600))
	assert.True(t, decimal.NewFromInt(42).Equal(LegalWeeklyLimit(late)))
}

func TestValidateSchedule(t *testing.T) {
	end := date(2025, time.January, 1)

	tests := []struct {
		name    string
		c       Contract
		wantErr error
	}{
		{
			name: "ordinary at the 44h limit",
			c:    Contract{ScheduleType: ScheduleOrdinary, WeeklyHours: decimal.NewFromInt(44), WorkingDays: 5, StartDate: date(2025, 1, 1)},
		},
		{
			name:    "ordinary above the 42h limit",
			c:       Contract{ScheduleType: ScheduleOrdinary, WeeklyHours: decimal.NewFromInt(44), WorkingDays: 5, StartDate: date(2026, 5, 1)},
			wantErr: contracterrors.ErrWeeklyHoursAboveLimit,
		},
		{
			name:    "ordinary with zero hours",
			c:       Contract{ScheduleType: ScheduleOrdinary, WeeklyHours: decimal.Zero, WorkingDays: 5, StartDate: date(2025, 1, 1)},
			wantErr: contracterrors.ErrWeeklyHoursOutOfRange,
		},
		{
			name:    "ordinary on four days",
			c:       Contract{ScheduleType: ScheduleOrdinary, WeeklyHours: decimal.NewFromInt(40), WorkingDays: 4, StartDate: date(2025, 1, 1)},
			wantErr: contracterrors.ErrInvalidWorkingDays,
		},
		{
			name: "biweekly on seven days",
			c:    Contract{ScheduleType: ScheduleBiweekly, WeeklyHours: decimal.NewFromInt(40), WorkingDays: 7, StartDate: date(2028, 5, 1)},
		},
		{
			name:    "biweekly above limit",
			c:       Contract{ScheduleType: ScheduleBiweekly, WeeklyHours: decimal.RequireFromString("40.5"), WorkingDays: 7, StartDate: date(2028, 5, 1)},
			wantErr: contracterrors.ErrWeeklyHoursAboveLimit,
		},
		{
			name: "part time at two thirds",
			c:    Contract{ScheduleType: SchedulePartTime, WeeklyHours: decimal.NewFromInt(28), WorkingDays: 3, StartDate: date(2026, 5, 1)},
		},
		{
			name:    "part time above two thirds",
			c:       Contract{ScheduleType: SchedulePartTime, WeeklyHours: decimal.RequireFromString("28.1"), WorkingDays: 3, StartDate: date(2026, 5, 1)},
			wantErr: contracterrors.ErrPartTimeAboveLimit,
		},
		{
			name: "article 22 ignores the limit",
			c:    Contract{ScheduleType: ScheduleArt22, WeeklyHours: decimal.NewFromInt(60), WorkingDays: 6, StartDate: date(2028, 5, 1)},
		},
		{
			name: "article 22 with zero hours",
			c:    Contract{ScheduleType: ScheduleArt22, WeeklyHours: decimal.Zero, WorkingDays: 1, StartDate: date(2028, 5, 1)},
		},
		{
			name:    "above column bound",
			c:       Contract{ScheduleType: ScheduleArt22, WeeklyHours: decimal.NewFromInt(100), WorkingDays: 5, StartDate: date(2028, 5, 1)},
			wantErr: contracterrors.ErrWeeklyHoursOutOfRange,
		},
		{
			name:    "end before start",
			c:       Contract{ScheduleType: ScheduleOrdinary, WeeklyHours: decimal.NewFromInt(40), WorkingDays: 5, StartDate: date(2025, 2, 1), EndDate: &end},
			wantErr: contracterrors.ErrEndBeforeStart,
		},
		{
			name:    "unknown schedule",
			c:       Contract{ScheduleType: "NIGHT", WeeklyHours: decimal.NewFromInt(40), WorkingDays: 5, StartDate: date(2025, 1, 1)},
			wantErr: contracterrors.ErrInvalidScheduleType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchedule(&tt.c)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestScheduleType_Label(t *testing.T) {
	assert.Equal(t, "Artículo 22 (Sin horario)", ScheduleArt22.Label())
	assert.Equal(t, "Part-Time", SchedulePartTime.Label())
	assert.Equal(t, "OTHER", ScheduleType("OTHER").Label())
}
