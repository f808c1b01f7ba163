package utils

import "time"

// Clock supplies "now" to everything that classifies or groups records by date.
type Clock interface {
	Now() time.Time
}

type SystemClock struct {
	// Location is applied to the returned time. Nil means time.Local.
	Location *time.Location
}

func (s SystemClock) Now() time.Time {
	if s.Location == nil {
		return time.Now()
	}
	return time.Now().In(s.Location)
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

// StartOfDay returns midnight of t's calendar date in t's location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DateIn moves the calendar date of t to midnight in loc, ignoring t's clock time.
func DateIn(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
