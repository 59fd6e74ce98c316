package reconcile

import "time"

// Period is a closed interval used to bucket meetings and sales.
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// WeekRange returns the business week containing d: the most recent
// Wednesday at 00:00:00.000 through the following Tuesday at 23:59:59.999.
// A date falling exactly on Wednesday 00:00:00 belongs to the week it starts.
func WeekRange(d time.Time) Period {
	daysBack := (int(d.Weekday()) - int(time.Wednesday) + 7) % 7
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location()).
		AddDate(0, 0, -daysBack)
	end := start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return Period{Start: start, End: end}
}

// MonthRange returns the calendar month containing d.
func MonthRange(d time.Time) Period {
	start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return Period{Start: start, End: end}
}
