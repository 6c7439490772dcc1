package domain

import (
	"testing"
	"time"
)

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{
			name:   "same month",
			start:  date(2024, time.January, 15),
			months: 0,
			want:   date(2024, time.January, 15),
		},
		{
			name:   "mid-month simple advance",
			start:  date(2024, time.January, 15),
			months: 1,
			want:   date(2024, time.February, 15),
		},
		{
			name:   "jan 31 clamps to leap february",
			start:  date(2024, time.January, 31),
			months: 1,
			want:   date(2024, time.February, 29),
		},
		{
			name:   "jan 31 clamps to non-leap february",
			start:  date(2023, time.January, 31),
			months: 1,
			want:   date(2023, time.February, 28),
		},
		{
			name:   "clamp applies only in short months",
			start:  date(2024, time.January, 31),
			months: 2,
			want:   date(2024, time.March, 31),
		},
		{
			name:   "year boundary",
			start:  date(2024, time.November, 30),
			months: 3,
			want:   date(2025, time.February, 28),
		},
		{
			name:   "many months ahead",
			start:  date(2024, time.May, 31),
			months: 13,
			want:   date(2025, time.June, 30),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonths(tt.start, tt.months)
			if !got.Equal(tt.want) {
				t.Errorf("AddMonths(%s, %d) = %s, want %s",
					tt.start.Format("2006-01-02"), tt.months,
					got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestMonthWindow(t *testing.T) {
	from, to := MonthWindow(date(2024, time.February, 10))

	if !from.Equal(date(2024, time.February, 1)) {
		t.Errorf("expected window start 2024-02-01, got %s", from)
	}
	if !to.Equal(date(2024, time.February, 29)) {
		t.Errorf("expected window end 2024-02-29, got %s", to)
	}
}
