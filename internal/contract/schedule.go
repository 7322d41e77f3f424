package contract

import (
	"time"

	contracterrors "jornada40/internal/contract/errors"

	"github.com/shopspring/decimal"
)

// Ley 21.561 reduces the ordinary week in steps.
var weeklyLimitSteps = []struct {
	from  time.Time
	hours int64
}{
	{time.Date(2028, time.April, 26, 0, 0, 0, 0, time.UTC), 40},
	{time.Date(2026, time.April, 26, 0, 0, 0, 0, time.UTC), 42},
	{time.Date(2024, time.April, 26, 0, 0, 0, 0, time.UTC), 44},
}

const preReformWeeklyLimit = 45

var maxStoredHours = decimal.RequireFromString("99.9")

// LegalWeeklyLimit returns the maximum ordinary weekly hours for a contract
// starting on start.
func LegalWeeklyLimit(start time.Time) decimal.Decimal {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	for _, step := range weeklyLimitSteps {
		if !day.Before(step.from) {
			return decimal.NewFromInt(step.hours)
		}
	}
	return decimal.NewFromInt(preReformWeeklyLimit)
}

// ValidateSchedule checks hours and working days against the schedule type
// and the legal limit in force on the start date.
func ValidateSchedule(c *Contract) error {
	hours := c.WeeklyHours
	if hours.IsNegative() || hours.GreaterThan(maxStoredHours) {
		return contracterrors.ErrWeeklyHoursOutOfRange
	}
	if c.EndDate != nil && c.EndDate.Before(c.StartDate) {
		return contracterrors.ErrEndBeforeStart
	}

	if c.ScheduleType == ScheduleArt22 {
		return checkDays(c.WorkingDays, 1, 7)
	}

	if !hours.IsPositive() {
		return contracterrors.ErrWeeklyHoursOutOfRange
	}

	limit := LegalWeeklyLimit(c.StartDate)
	switch c.ScheduleType {
	case ScheduleOrdinary:
		if hours.GreaterThan(limit) {
			return contracterrors.ErrWeeklyHoursAboveLimit
		}
		return checkDays(c.WorkingDays, 5, 6)
	case ScheduleBiweekly:
		if hours.GreaterThan(limit) {
			return contracterrors.ErrWeeklyHoursAboveLimit
		}
		return checkDays(c.WorkingDays, 1, 7)
	case SchedulePartTime:
		// hours <= 2/3 of the limit, compared without dividing
		if hours.Mul(decimal.NewFromInt(3)).GreaterThan(limit.Mul(decimal.NewFromInt(2))) {
			return contracterrors.ErrPartTimeAboveLimit
		}
		return checkDays(c.WorkingDays, 1, 7)
	default:
		return contracterrors.ErrInvalidScheduleType
	}
}

func checkDays(days, lo, hi int) error {
	if days < lo || days > hi {
		return contracterrors.ErrInvalidWorkingDays
	}
	return nil
}
