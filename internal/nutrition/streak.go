package nutrition

import "github.com/Joshua-Precious/Nutrical/internal/domain"

// MaxStreakDays caps the backward scan, today included.
const MaxStreakDays = 365

// CurrentStreak counts consecutive days with calories > 0, walking backward
// from today. It stops at the first empty day and never scans more than
// MaxStreakDays.
func CurrentStreak(log domain.DailyLog, today string) (int, error) {
	t, err := domain.ParseDay(today)
	if err != nil {
		return 0, err
	}
	streak := 0
	for i := 0; i < MaxStreakDays; i++ {
		day := t.AddDate(0, 0, -i).Format(domain.DayLayout)
		if TotalsForDate(log, day).Calories <= 0 {
			break
		}
		streak++
	}
	return streak, nil
}

// ConsistencyLabel is a qualitative grade of a consistency percentage.
type ConsistencyLabel string

const (
	ConsistencyExcellent ConsistencyLabel = "excellent"
	ConsistencyFair      ConsistencyLabel = "fair"
	ConsistencyPoor      ConsistencyLabel = "poor"
)

// LabelFor grades pct: >= 85 excellent, >= 60 fair, else poor.
func LabelFor(pct float64) ConsistencyLabel {
	switch {
	case pct >= 85:
		return ConsistencyExcellent
	case pct >= 60:
		return ConsistencyFair
	}
	return ConsistencyPoor
}

// Consistency is the logging rate over the last week.
type Consistency struct {
	DaysLogged int              `json:"daysLogged"`
	Pct        float64          `json:"pct"`
	Label      ConsistencyLabel `json:"label"`
}

// WeekLength is the window of WeeklyConsistency.
const WeekLength = 7

// WeeklyConsistency counts the days of last7 with calories > 0. last7 must
// hold exactly seven days.
func WeeklyConsistency(log domain.DailyLog, last7 []string) (Consistency, error) {
	if len(last7) != WeekLength {
		return Consistency{}, domain.Invalid("dates", "need %d days, got %d", WeekLength, len(last7))
	}
	n := DaysLogged(log, last7)
	pct := float64(n) / WeekLength * 100
	return Consistency{DaysLogged: n, Pct: pct, Label: LabelFor(pct)}, nil
}

// StreakMilestone returns a celebration message for streaks of one week, two
// weeks and a month, or "" below a week.
func StreakMilestone(streak int) string {
	switch {
	case streak >= 30:
		return "Unstoppable! 30+ days of consistent logging."
	case streak >= 14:
		return "Two weeks strong! Keep the momentum going."
	case streak >= 7:
		return "One week streak! You're building a great habit."
	}
	return ""
}

