package panorama

import "testing"

func TestMatchRatioTest(t *testing.T) {
	// f2[0] is a near-exact match for f1[0]; f2[1] is close enough to
	// fail the ratio test against it.
	f1 := []Feature{{Descriptor: [4]uint64{0, 0, 0, 0}}}
	f2 := []Feature{
		{Descriptor: [4]uint64{0, 0, 0, 0}},
		{Descriptor: [4]uint64{1, 0, 0, 0}}, // Hamming distance 1
	}
	matches := MatchFeatures(f1, f2)
	if len(matches) != 1 || matches[0].I != 0 || matches[0].J != 0 {
		t.Fatalf("Match = %v, want a single 0->0 match", matches)
	}

	// Two equally close candidates must fail the ratio test (ratio == 1).
	f2Ambiguous := []Feature{
		{Descriptor: [4]uint64{1, 0, 0, 0}},
		{Descriptor: [4]uint64{0, 1, 0, 0}},
	}
	if m := MatchFeatures(f1, f2Ambiguous); len(m) != 0 {
		t.Fatalf("Match with ambiguous neighbours = %v, want none", m)
	}
}

func TestHammingDistance(t *testing.T) {
	a := [4]uint64{0xFFFFFFFFFFFFFFFF, 0, 0, 0}
	b := [4]uint64{0, 0, 0, 0}
	if d := hamming(a, b); d != 64 {
		t.Fatalf("hamming = %d, want 64", d)
	}
}
