package provider

import "time"

// QuarterRange returns the UTC bounds of the calendar quarter containing
// now: the first instant of the quarter's first day through 23:59:59 on
// its last day. Providers fetch the current quarter's mail.
func QuarterRange(now time.Time) (start, end time.Time) {
	quarterStartMonth := time.Month((int(now.Month())-1)/3*3 + 1)
	start = time.Date(now.Year(), quarterStartMonth, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 3, 0).Add(-time.Second)
	return start, end
}
