package expense

import (
	"math"
	"time"

	"github.com/finboard/finboard/internal/utils"
)

type Status string

const (
	StatusPaid     Status = "paid"
	StatusOverdue  Status = "overdue"
	StatusDueToday Status = "due-today"
	StatusDueSoon  Status = "due-soon"
	StatusUpcoming Status = "upcoming"
)

// DueSoonDays is the largest number of days until due that still counts as due soon.
const DueSoonDays = 3

// CompactStatus is the three tag set shown on the dashboard.
type CompactStatus string

const (
	CompactOverdue  CompactStatus = "overdue"
	CompactDueSoon  CompactStatus = "due-soon"
	CompactUpcoming CompactStatus = "upcoming"
)

// Classify derives the status of an expense at now. The first matching rule wins:
// paid, then overdue (due before today), due-today, due-soon (within DueSoonDays
// days, rounding partial days up) and upcoming.
//
// dueDate is read as a calendar date in now's location.
func Classify(dueDate time.Time, isPaid bool, now time.Time) Status {
	if isPaid {
		return StatusPaid
	}

	due := utils.DateIn(dueDate, now.Location())
	today := utils.StartOfDay(now)
	if due.Before(today) {
		return StatusOverdue
	}
	if due.Equal(today) {
		return StatusDueToday
	}

	daysUntilDue := math.Ceil(due.Sub(now).Hours() / 24)
	if daysUntilDue <= DueSoonDays {
		return StatusDueSoon
	}
	return StatusUpcoming
}

// Compact narrows s to the dashboard tags. Due today is shown as due soon.
// Paid expenses have no compact tag and ok is false.
func (s Status) Compact() (CompactStatus, bool) {
	switch s {
	case StatusOverdue:
		return CompactOverdue, true
	case StatusDueToday, StatusDueSoon:
		return CompactDueSoon, true
	case StatusUpcoming:
		return CompactUpcoming, true
	}
	return "", false
}
