package model

import (
	"fmt"
	"time"
)

// Period is a half-open time window [Start, End) in µs since epoch.
type Period struct {
	Start int64
	End   int64
}

// LastWindow returns the window of length d ending (exclusively) at now.
func LastWindow(now int64, d time.Duration) Period {
	return Period{Start: now - d.Microseconds(), End: now}
}

// Contains reports whether ts falls inside the window. Start is
// inclusive, End is exclusive.
func (p Period) Contains(ts int64) bool {
	return ts >= p.Start && ts < p.End
}

func (p Period) String() string {
	return fmt.Sprintf("[%d, %d)", p.Start, p.End)
}
