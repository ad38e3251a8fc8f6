package demosaic

import (
	"testing"

	"github.com/rawforge/rawcore/internal/rawframe"
)

// rggb4x4 builds the worked-example mosaic: R=200 at every R site, G=100
// at every G site, B=50 at every B site, in an RGGB 4x4 grid.
func rggb4x4() *Plane {
	p := NewPlane(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			switch siteColor(rawframe.RGGB, x, y) {
			case 0:
				p.set(x, y, 200)
			case 1:
				p.set(x, y, 100)
			default:
				p.set(x, y, 50)
			}
		}
	}
	return p
}

func TestLinearDemosaicRGGBUniformGrid(t *testing.T) {
	rgb := Linear(rggb4x4(), rawframe.RGGB)
	r := rgb.R.at(1, 1)
	g := rgb.G.at(1, 1)
	b := rgb.B.at(1, 1)
	if r != 200 || g != 100 || b != 50 {
		t.Fatalf("at(1,1) = (%v,%v,%v), want (200,100,50)", r, g, b)
	}
}

func TestLinearDemosaicUniformGridReconstructsExactlyEverywhere(t *testing.T) {
	rgb := Linear(rggb4x4(), rawframe.RGGB)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if rgb.R.at(x, y) != 200 || rgb.G.at(x, y) != 100 || rgb.B.at(x, y) != 50 {
				t.Fatalf("at(%d,%d) = (%v,%v,%v), want (200,100,50)",
					x, y, rgb.R.at(x, y), rgb.G.at(x, y), rgb.B.at(x, y))
			}
		}
	}
}

func TestSiteColorCoversAllFourPatterns(t *testing.T) {
	patterns := []rawframe.Pattern{rawframe.RGGB, rawframe.BGGR, rawframe.GRBG, rawframe.GBRG}
	for _, p := range patterns {
		counts := map[int]int{}
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				counts[siteColor(p, x, y)]++
			}
		}
		if counts[0] != 1 || counts[1] != 2 || counts[2] != 1 {
			t.Fatalf("pattern %v site counts = %v, want {0:1,1:2,2:1}", p, counts)
		}
	}
}

func TestMirrorReflectsBoundary(t *testing.T) {
	cases := []struct{ v, n, want int }{
		{-1, 4, 1},
		{-2, 4, 2},
		{4, 4, 2},
		{5, 4, 1},
		{2, 4, 2},
	}
	for _, c := range cases {
		if got := mirror(c.v, c.n); got != c.want {
			t.Fatalf("mirror(%d,%d) = %d, want %d", c.v, c.n, got, c.want)
		}
	}
}

func TestMenon2007UniformGridReconstructsExactly(t *testing.T) {
	rgb := Menon2007(rggb4x4(), rawframe.RGGB, true)
	for y := 1; y < 3; y++ {
		for x := 1; x < 3; x++ {
			g := rgb.G.at(x, y)
			if g < 90 || g > 110 {
				t.Fatalf("G at(%d,%d) = %v, want close to 100", x, y, g)
			}
		}
	}
}

func TestConvolveAxisUniformPlaneIsInvariant(t *testing.T) {
	p := NewPlane(4, 4)
	for i := range p.Pix {
		p.Pix[i] = 100
	}
	out := convolveAxis(p, h0, h1, true)
	// h0 taps sum to 1 (0.5+0.5) and h1 taps sum to 0 (-.25+.5-.25), so the
	// combined kernel passes a uniform plane through unchanged.
	if out.at(0, 0) != 100 {
		t.Fatalf("convolveAxis on uniform plane = %v, want 100", out.at(0, 0))
	}
}
