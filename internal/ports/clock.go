package ports

import "time"

// Clock abstracts the blocking sleeps in the tail loop so tests can drive
// EOF-wait and reopen-backoff cycles without real delays.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}
