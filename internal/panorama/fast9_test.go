package panorama

import "testing"

func TestNonMaxSuppressKeepsHighestScore(t *testing.T) {
	corners := []Corner{
		{X: 10, Y: 10, Score: 5},
		{X: 12, Y: 10, Score: 8}, // within radius 5 of the first, higher score
		{X: 50, Y: 50, Score: 1}, // far away, survives independently
	}
	kept := nonMaxSuppress(corners, 100, 100, 5)
	if len(kept) != 2 {
		t.Fatalf("nonMaxSuppress kept %d corners, want 2: %v", len(kept), kept)
	}
	var sawHighScore, sawFar bool
	for _, c := range kept {
		if c.X == 12 && c.Y == 10 {
			sawHighScore = true
		}
		if c.X == 50 && c.Y == 50 {
			sawFar = true
		}
	}
	if !sawHighScore || !sawFar {
		t.Fatalf("nonMaxSuppress kept the wrong corners: %v", kept)
	}
}

func TestLongestRunWrapsAroundCircle(t *testing.T) {
	// Mark indices 10..15,0,1,2 (9 contiguous points) as satisfying the
	// predicate: a run that wraps past the end of the 16-point circle.
	set := map[int]bool{10: true, 11: true, 12: true, 13: true, 14: true, 15: true, 0: true, 1: true, 2: true}
	pred := func(v float64) bool { return set[int(v)] }
	circle := make([]float64, 16)
	for i := range circle {
		circle[i] = float64(i)
	}

	idx, ok := longestRun(circle, pred)
	if !ok {
		t.Fatal("longestRun did not find the wraparound 9-run")
	}
	if len(idx) != 9 {
		t.Fatalf("longestRun returned %d indices, want 9: %v", len(idx), idx)
	}
	if idx[0] != 10 {
		t.Fatalf("longestRun started at %d, want 10", idx[0])
	}
}

func TestLongestRunBelowMinimumRejected(t *testing.T) {
	set := map[int]bool{14: true, 15: true, 0: true, 1: true, 2: true}
	pred := func(v float64) bool { return set[int(v)] }
	circle := make([]float64, 16)
	for i := range circle {
		circle[i] = float64(i)
	}

	if _, ok := longestRun(circle, pred); ok {
		t.Fatal("longestRun accepted a 5-point run, want rejection below the 9-point minimum")
	}
}

func TestBriefOffsetsDeterministic(t *testing.T) {
	a := briefOffsets(BRIEFSeed, 256)
	b := briefOffsets(BRIEFSeed, 256)
	if len(a) != 256 || len(b) != 256 {
		t.Fatalf("briefOffsets returned %d/%d offsets, want 256", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("briefOffsets not deterministic at index %d: %v vs %v", i, a[i], b[i])
		}
	}
}
