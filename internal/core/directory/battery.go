package directory

import "strconv"

// Battery caches the unfiltered company total used as the denominator of
// the battery bar. Total is captured once and stays stale until Reset.
type Battery struct {
	Total     int
	Displayed int
}

// Captured reports whether the unfiltered total has been recorded.
func (b Battery) Captured() bool {
	return b.Total > 0
}

// Observe records a response count. The total is captured only on the first
// unfiltered response.
func (b Battery) Observe(total int, filtered bool) Battery {
	b.Displayed = total
	if !filtered && !b.Captured() {
		b.Total = total
	}
	return b
}

// Reset forgets the cached total so the next unfiltered load captures it.
func (b Battery) Reset() Battery {
	return Battery{Displayed: b.Displayed}
}

// FillPercent returns Displayed/Total as 0..100.
func (b Battery) FillPercent() float64 {
	if b.Total <= 0 {
		return 0
	}
	p := float64(b.Displayed) / float64(b.Total) * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

// StatsText returns the headline count sentence. With filters active it
// shows the current count, otherwise the full directory size.
func StatsText(count int, filtered bool) string {
	if filtered {
		return "Visar nu " + itoa(count) + " företag"
	}
	return "Leta bland " + itoa(count) + " företag i hela Sverige!"
}

// HeadlineCount picks the number for StatsText.
func (b Battery) HeadlineCount(filtered bool) int {
	if filtered || !b.Captured() {
		return b.Displayed
	}
	return b.Total
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
