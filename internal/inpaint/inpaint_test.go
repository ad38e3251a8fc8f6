package inpaint

import "testing"

func TestRunFillsHoleFromSurroundingColour(t *testing.T) {
	w, h := 20, 20
	img := &Image{Width: w, Height: h, Pix: make([]RGB, w*h)}
	mask := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Pix[y*w+x] = RGB{R: 0.8, G: 0.2, B: 0.2}
		}
	}
	for y := 8; y < 12; y++ {
		for x := 8; x < 12; x++ {
			img.Pix[y*w+x] = RGB{}
			mask[y*w+x] = true
		}
	}

	Run(img, mask)

	center := img.Pix[10*w+10]
	if center.R < 0.5 {
		t.Fatalf("center after inpaint = %+v, want R close to surrounding 0.8", center)
	}
}

func TestRunLeavesKnownPixelsUnchanged(t *testing.T) {
	w, h := 10, 10
	img := &Image{Width: w, Height: h, Pix: make([]RGB, w*h)}
	mask := make([]bool, w*h)
	for i := range img.Pix {
		img.Pix[i] = RGB{R: 0.3, G: 0.4, B: 0.5}
	}
	Run(img, mask)
	for i, p := range img.Pix {
		if p.R != 0.3 || p.G != 0.4 || p.B != 0.5 {
			t.Fatalf("pixel %d changed with an empty mask: %+v", i, p)
		}
	}
}

func TestHasKnownNeighbourDetectsAdjacentKnown(t *testing.T) {
	labels := []label{known, hole, hole, hole}
	if !hasKnownNeighbour(labels, 2, 2, 1, 0) {
		t.Fatal("expected a known neighbour at (1,0)")
	}
	if hasKnownNeighbour(labels, 2, 2, 1, 1) {
		t.Fatal("expected no known neighbour at (1,1), diagonal-only adjacency to (0,0)")
	}
}
