package domain

import "time"

// DayLayout is the canonical calendar-day key format.
const DayLayout = "2006-01-02"

// DayKey returns the local calendar day of t. Every service derives day keys
// through this function.
func DayKey(t time.Time) string {
	return t.In(time.Local).Format(DayLayout)
}

// ParseDay parses a YYYY-MM-DD key as UTC midnight.
func ParseDay(day string) (time.Time, error) {
	t, err := time.Parse(DayLayout, day)
	if err != nil {
		return time.Time{}, Invalid("date", "must be YYYY-MM-DD, got %q", day)
	}
	return t, nil
}

// LastNDays returns n consecutive day keys ending at today, oldest first.
// Arithmetic runs on UTC midnights so DST changes never skip a key.
func LastNDays(today string, n int) ([]string, error) {
	t, err := ParseDay(today)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return []string{}, nil
	}
	days := make([]string, n)
	for i := 0; i < n; i++ {
		days[i] = t.AddDate(0, 0, i-(n-1)).Format(DayLayout)
	}
	return days, nil
}

// DayStartLocal returns the start of the local day named by key, and the start
// of the following local day.
func DayStartLocal(day string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(DayLayout, day, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, Invalid("date", "must be YYYY-MM-DD, got %q", day)
	}
	return start, start.AddDate(0, 0, 1), nil
}
