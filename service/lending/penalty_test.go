package lendingsvc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDaysRemaining(t *testing.T) {
	due := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want int
	}{
		{"two weeks out", due.AddDate(0, 0, -14), 14},
		{"one day out", due.AddDate(0, 0, -1), 1},
		{"one hour out rounds up", due.Add(-time.Hour), 1},
		{"exactly due", due, 0},
		{"one hour past still day zero", due.Add(time.Hour), 0},
		{"twenty five hours past", due.Add(25 * time.Hour), -1},
		{"one full day past", due.AddDate(0, 0, 1), -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, DaysRemaining(due, tc.now))
		})
	}
}

func TestOverdueDays(t *testing.T) {
	due := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	require.Equal(t, 0, OverdueDays(due, due.AddDate(0, 0, -3)))
	require.Equal(t, 0, OverdueDays(due, due))
	require.Equal(t, 0, OverdueDays(due, due.Add(time.Hour)))
	require.Equal(t, 1, OverdueDays(due, due.AddDate(0, 0, 1)))
	require.Equal(t, 10, OverdueDays(due, due.AddDate(0, 0, 10)))
}
