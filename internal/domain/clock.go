package domain

import "time"

// Clock supplies timestamps for audit-relevant fields. The core derives all
// timestamps itself rather than trusting caller input; tests substitute a
// fixed clock for determinism.
type Clock func() time.Time

// SystemClock returns the current UTC time.
func SystemClock() time.Time {
	return time.Now().UTC()
}
