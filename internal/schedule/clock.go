package schedule

// Clock wraps one schedule instance and tracks the current position as a
// model run advances.
type Clock struct {
	sched Schedule
	pos   int
}

// NewClock returns a clock positioned at the schedule's first time point.
func NewClock(s Schedule) *Clock {
	return &Clock{sched: s}
}

// Pos returns the current 0-based time-index position.
func (c *Clock) Pos() int { return c.pos }

// Time returns the time value at the current position, or the schedule's
// past-the-end sentinel once the clock has run off the end.
func (c *Clock) Time() int { return c.sched.TimeAt(c.pos) }

// Advance moves the clock forward by one position.
func (c *Clock) Advance() { c.pos++ }

// Finished reports whether the position is beyond the schedule's last index.
func (c *Clock) Finished() bool { return c.pos >= c.sched.Len() }

// Reset rewinds the clock to the first position.
func (c *Clock) Reset() { c.pos = 0 }

// Schedule returns the schedule this clock advances over.
func (c *Clock) Schedule() Schedule { return c.sched }
