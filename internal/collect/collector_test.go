package collect

import (
	"database/sql"
	"testing"
	"time"

	"github.com/aquascore/aquascore/pkg/signals"
)

func TestDaysSince(t *testing.T) {
	now := time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   sql.NullTime
		want int
	}{
		{
			name: "absent timestamp maps to sentinel",
			in:   sql.NullTime{},
			want: signals.NoReviewSentinel,
		},
		{
			name: "ninety days ago",
			in:   sql.NullTime{Time: now.AddDate(0, 0, -90), Valid: true},
			want: 90,
		},
		{
			name: "same instant",
			in:   sql.NullTime{Time: now, Valid: true},
			want: 0,
		},
		{
			name: "future timestamp clamps to zero",
			in:   sql.NullTime{Time: now.AddDate(0, 0, 3), Valid: true},
			want: 0,
		},
		{
			name: "partial day rounds down",
			in:   sql.NullTime{Time: now.Add(-36 * time.Hour), Valid: true},
			want: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := daysSince(tc.in, now); got != tc.want {
				t.Errorf("daysSince() = %d, want %d", got, tc.want)
			}
		})
	}
}
