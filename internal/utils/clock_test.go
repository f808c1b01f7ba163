package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	location := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2024, 6, 15, 17, 42, 10, 5, location)

	got := StartOfDay(now)

	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, location), got)
}

func TestDateIn(t *testing.T) {
	location := time.FixedZone("BRT", -3*60*60)
	date := time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC)

	got := DateIn(date, location)

	assert.Equal(t, 17, got.Day())
	assert.Equal(t, location, got.Location())
	assert.Equal(t, 0, got.Hour())
}

func TestMockClock(t *testing.T) {
	fixed := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	clock := &MockClock{FixedNow: fixed}
	assert.Equal(t, fixed, clock.Now())

	clock.SetNow(fixed.AddDate(0, 0, 1))
	assert.Equal(t, fixed.AddDate(0, 0, 1), clock.Now())
}
