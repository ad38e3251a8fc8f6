package parallel

import (
	"sync/atomic"
	"testing"
)

func TestRowsVisitsEveryRowExactlyOnce(t *testing.T) {
	const h = 137
	var seen [h]int32
	Rows(h, func(y int) {
		atomic.AddInt32(&seen[y], 1)
	})
	for y, c := range seen {
		if c != 1 {
			t.Fatalf("row %d visited %d times, want 1", y, c)
		}
	}
}

func TestRowsZeroHeight(t *testing.T) {
	called := false
	Rows(0, func(int) { called = true })
	if called {
		t.Fatal("fn called for zero-height range")
	}
}

func TestRangeVisitsEveryIndex(t *testing.T) {
	const n = 2500 // matches the RANSAC iteration count in §4.11
	var seen [n]int32
	Range(n, func(i int) {
		atomic.AddInt32(&seen[i], 1)
	})
	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, c)
		}
	}
}
