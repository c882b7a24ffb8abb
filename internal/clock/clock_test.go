package clock

import (
	"testing"
	"time"
)

func TestSystemClockReturnsUTC(t *testing.T) {
	c := NewSystemClock()
	if loc := c.Now().Location(); loc != time.UTC {
		t.Fatalf("expected UTC location, got %v", loc)
	}
}

func TestFixedClockAdvance(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewFixedClock(start)

	if got := c.Now(); !got.Equal(start) {
		t.Fatalf("expected %v, got %v", start, got)
	}

	c.Advance(5 * time.Minute)

	want := start.Add(5 * time.Minute)
	if got := c.Now(); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFixedClockSet(t *testing.T) {
	c := NewFixedClock(time.Now())
	pinned := time.Date(2030, 6, 15, 12, 0, 0, 0, time.UTC)
	c.Set(pinned)

	if got := c.Now(); !got.Equal(pinned) {
		t.Fatalf("expected %v, got %v", pinned, got)
	}
}
