package kernel

import "time"

// KST is Korea Standard Time. Korea observes no daylight saving, so a fixed
// zone keeps business dates independent of the host tz database.
var KST = time.FixedZone("KST", 9*60*60)

// Clock is the time source for lifecycle timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant. Tests advance it with Advance.
type FixedClock struct {
	At time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.At
}

func (c *FixedClock) Advance(d time.Duration) {
	c.At = c.At.Add(d)
}

// InKST converts t to Korea Standard Time.
func InKST(t time.Time) time.Time {
	return t.In(KST)
}
