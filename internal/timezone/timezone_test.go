package timezone

import (
	"testing"
	"time"
)

func TestLocationFallsBackToUTC(t *testing.T) {
	if got := Location(""); got != time.UTC {
		t.Fatalf("Location(\"\") = %v", got)
	}
	if got := Location("Not/AZone"); got != time.UTC {
		t.Fatalf("Location(invalid) = %v", got)
	}
}

func TestDayBoundsUTC(t *testing.T) {
	date := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

	start, end := DayBounds(date, time.UTC)

	if !start.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", start)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Fatalf("day length = %v", end.Sub(start))
	}
}

func TestDayBoundsFixedOffset(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	start, _ := DayBounds(date, loc)

	want := time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Fatalf("start = %v, want %v", start, want)
	}
}
