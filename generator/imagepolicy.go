package generator

import "time"

// ShouldAttachImage reports whether the run dated day gets a rendered
// cover image. The alternate schedule keys on day-of-year parity,
// weekly renders only on Mondays.
func ShouldAttachImage(frequency string, day time.Time) bool {
	switch frequency {
	case "daily":
		return true
	case "weekly":
		return day.Weekday() == time.Monday
	case "never":
		return false
	default:
		return day.YearDay()%2 == 0
	}
}
