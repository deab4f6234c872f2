package adfilter

import (
	"fmt"
	"time"
)

// QuietHours describes the local-time interval during which every message is
// removed regardless of content. The interval [Start, End) is in whole hours
// and wraps past midnight when Start > End, e.g. 23..7.
type QuietHours struct {
	Start    int            // first quiet hour, 0-23
	End      int            // first non-quiet hour, 0-23
	Location *time.Location // timezone the hours are defined in, UTC if nil
}

// Validate checks hour bounds.
func (q QuietHours) Validate() error {
	if q.Start < 0 || q.Start > 23 || q.End < 0 || q.End > 23 {
		return fmt.Errorf("quiet hours out of range: %d..%d", q.Start, q.End)
	}
	return nil
}

// active reports whether the given instant falls inside the quiet interval.
func (q QuietHours) active(now time.Time) bool {
	loc := q.Location
	if loc == nil {
		loc = time.UTC
	}
	hour := now.In(loc).Hour()

	if q.Start == q.End { // zero-length interval, never active
		return false
	}
	if q.Start > q.End { // wraps past midnight
		return hour >= q.Start || hour < q.End
	}
	return hour >= q.Start && hour < q.End
}

func (q QuietHours) String() string {
	loc := q.Location
	if loc == nil {
		loc = time.UTC
	}
	return fmt.Sprintf("%02d:00-%02d:00 %s", q.Start, q.End, loc)
}
