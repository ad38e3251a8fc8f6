package panorama

import "testing"

// TestMSTOrdersByInlierCount mirrors the spec's worked example: three
// images with inlier counts (A,B)=50, (B,C)=40, (A,C)=20 must select the
// (A,B),(B,C) spanning tree and compose C's global homography as
// H_AB . H_BC (§4.11 scenario 5).
func TestMSTOrdersByInlierCount(t *testing.T) {
	const a, b, c = 0, 1, 2
	hAB := Homography{1, 0, 5, 0, 1, 0, 0, 0, 1}
	hBC := Homography{1, 0, 7, 0, 1, 0, 0, 0, 1}
	hAC := Homography{1, 0, 1, 0, 1, 0, 0, 0, 1}

	pairs := []PairMatch{
		{I: a, J: b, H: hAB, Inliers: 50},
		{I: b, J: c, H: hBC, Inliers: 40},
		{I: a, J: c, H: hAC, Inliers: 20},
	}

	g := BuildGraph(3, pairs)
	if len(g.adj[a]) != 1 || len(g.adj[c]) != 1 {
		t.Fatalf("expected A and C to have degree 1 in the MST, adj=%v", g.adj)
	}
	if _, aHasC := findNeighbor(g.adj[a], c); aHasC {
		t.Fatal("MST should not include the (A,C) edge")
	}

	globals, order := GlobalHomographies(g)
	if order[0] != a {
		t.Fatalf("expected root A (first minimum-degree vertex), got %d", order[0])
	}

	want := hAB.Mul(hBC)
	got := globals[c]
	for i := range want {
		if diff := got[i] - want[i]; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("C global homography = %v, want %v", got, want)
		}
	}
}

func findNeighbor(list []int, v int) (int, bool) {
	for i, n := range list {
		if n == v {
			return i, true
		}
	}
	return -1, false
}
