package panorama

import "testing"

// TestSeamDPFollowsZeroCostDiagonal mirrors the spec's worked DP example:
// a 10x10 overlap with colour L2 energy 1 everywhere except a zero-cost
// diagonal must trace the seam along that diagonal at total cost 0
// (§4.11 scenario 6).
func TestSeamDPFollowsZeroCostDiagonal(t *testing.T) {
	const n = 10
	pano := &rgbBuf{w: n, h: n, pix: make([]uint8, n*n*3)}
	addBuf := &rgbBuf{w: n + 1, h: n + 1, pix: make([]uint8, (n+1)*(n+1)*3)}
	panoMask := make([]bool, n*n)

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			panoMask[y*n+x] = true
			pano.set(x, y, 0, 0, 0)
			if x == y {
				addBuf.set(x, y, 0, 0, 0) // energy 0 on the diagonal
			} else {
				addBuf.set(x, y, 1, 0, 0) // energy 1 elsewhere
			}
		}
	}
	for x := 0; x < n+1; x++ {
		addBuf.set(x, n, 0, 0, 0)
	}
	for y := 0; y < n+1; y++ {
		addBuf.set(n, y, 0, 0, 0)
	}

	seam := seamDPVertical(pano, panoMask, addBuf, Identity(), 0, 0)
	if len(seam) != n {
		t.Fatalf("seam length = %d, want %d", len(seam), n)
	}
	for y := 0; y < n; y++ {
		if seam[y] != y {
			t.Fatalf("seam[%d] = %d, want %d (diagonal)", y, seam[y], y)
		}
	}
}

func TestHomographyInvertIdentity(t *testing.T) {
	h := Identity()
	inv, ok := h.Invert()
	if !ok {
		t.Fatal("identity should invert")
	}
	for i := range h {
		if inv[i] != h[i] {
			t.Fatalf("inverse of identity = %v, want identity", inv)
		}
	}
}

func TestHomographyApplyTranslation(t *testing.T) {
	h := Homography{1, 0, 5, 0, 1, 3, 0, 0, 1}
	x, y := h.Apply(1, 1)
	if x != 6 || y != 4 {
		t.Fatalf("Apply(1,1) = (%v,%v), want (6,4)", x, y)
	}
}
