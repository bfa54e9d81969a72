package lendingsvc

import (
	"math"
	"time"
)

// DaysRemaining is the whole days left until the due date, rounded up.
// Zero on the due day itself, negative once overdue.
func DaysRemaining(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

// OverdueDays is the penalty in days (one penalty unit per overdue day).
// Zero whenever now is on or before the due date.
func OverdueDays(due, now time.Time) int {
	if d := DaysRemaining(due, now); d < 0 {
		return -d
	}
	return 0
}
