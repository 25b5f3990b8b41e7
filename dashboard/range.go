package dashboard

import (
	"time"

	"github.com/HalimKing/Point-of-Sale-System--sub001/apperrors"
)

// TimeRange is the enumerated window scoping dashboard aggregation.
type TimeRange string

const (
	RangeToday TimeRange = "today"
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
)

// ResolveRange turns the request's range parameter into an inclusive
// [start, end] window in the reporting zone. An empty value defaults
// to "today"; any other unrecognized value is rejected rather than
// silently coerced.
func ResolveRange(value string, now time.Time, loc *time.Location) (TimeRange, time.Time, time.Time, error) {
	if value == "" {
		value = string(RangeToday)
	}

	now = now.In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	switch TimeRange(value) {
	case RangeToday:
		return RangeToday, dayStart, dayEnd, nil
	case RangeWeek:
		return RangeWeek, startOfISOWeek(dayStart), dayEnd, nil
	case RangeMonth:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return RangeMonth, monthStart, dayEnd, nil
	default:
		return "", time.Time{}, time.Time{}, apperrors.NewValidation(
			"range", "must be one of: today, week, month")
	}
}

// startOfISOWeek walks back from the given day start to Monday.
func startOfISOWeek(dayStart time.Time) time.Time {
	offset := int(dayStart.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday
	}
	return dayStart.AddDate(0, 0, -offset)
}
