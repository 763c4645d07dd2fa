package listview

import "time"

const DefaultQuietPeriod = 900 * time.Millisecond

// Debounce is Idle when Deadline is zero and Pending otherwise. Every Input
// pushes the deadline out by the quiet period; the last raw value wins.
type Debounce struct {
	Committed string
	Raw       string
	Deadline  time.Time
	Quiet     time.Duration
}

func NewDebounce(quiet time.Duration) Debounce {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return Debounce{Quiet: quiet}
}

func (d Debounce) Pending() bool {
	return !d.Deadline.IsZero()
}

func (d Debounce) Input(raw string, at time.Time) Debounce {
	d.Raw = raw
	d.Deadline = at.Add(d.quiet())
	return d
}

// Elapse commits the raw value if the quiet period has passed by at. The
// second result reports whether the committed value changed.
func (d Debounce) Elapse(at time.Time) (Debounce, bool) {
	if !d.Pending() || at.Before(d.Deadline) {
		return d, false
	}
	changed := d.Committed != d.Raw
	d.Committed = d.Raw
	d.Deadline = time.Time{}
	return d, changed
}

func (d Debounce) quiet() time.Duration {
	if d.Quiet <= 0 {
		return DefaultQuietPeriod
	}
	return d.Quiet
}
