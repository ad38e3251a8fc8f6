package demosaic

import (
	"github.com/rawforge/rawcore/internal/parallel"
	"github.com/rawforge/rawcore/internal/rawframe"
)

// Linear implements the fast edge-directed demosaic (§4.4): at an R or B
// site the diagonal neighbours of the opposite colour are averaged, green
// is interpolated from whichever axis (N-S or W-E) has the smaller
// first-order gradient, and at a G site the two axial neighbours aligned
// with the pattern's R row supply R and B directly.
func Linear(mosaic *Plane, cfa rawframe.Pattern) *RGB {
	out := fromMosaic(mosaic)
	w, h := mosaic.Width, mosaic.Height

	parallel.Rows(h, func(y int) {
		for x := 0; x < w; x++ {
			switch siteColor(cfa, x, y) {
			case 1: // green site: axial neighbours give R and B
				r, b := axialRB(mosaic, cfa, x, y)
				out.R.set(x, y, r)
				out.G.set(x, y, mosaic.at(x, y))
				out.B.set(x, y, b)
			case 0: // red site: opposite colour (blue) from diagonals
				out.R.set(x, y, mosaic.at(x, y))
				out.G.set(x, y, gradientGreen(mosaic, x, y))
				out.B.set(x, y, diagonalMean(mosaic, x, y))
			default: // blue site
				out.R.set(x, y, diagonalMean(mosaic, x, y))
				out.G.set(x, y, gradientGreen(mosaic, x, y))
				out.B.set(x, y, mosaic.at(x, y))
			}
		}
	})
	return out
}

// gradientGreen picks the axis (N-S vs W-E) with the smaller first-order
// gradient of neighbouring green samples, falling back to the four-way
// mean on a tie.
func gradientGreen(mosaic *Plane, x, y int) float32 {
	n := mosaic.at(x, y-1)
	s := mosaic.at(x, y+1)
	w := mosaic.at(x-1, y)
	e := mosaic.at(x+1, y)

	vGrad := absF32(n - s)
	hGrad := absF32(w - e)

	switch {
	case vGrad < hGrad:
		return (n + s) / 2
	case hGrad < vGrad:
		return (w + e) / 2
	default:
		return (n + s + w + e) / 4
	}
}

// diagonalMean averages the four diagonal neighbours, used to fill the
// colour opposite the current site (R at a B site, B at an R site).
func diagonalMean(mosaic *Plane, x, y int) float32 {
	nw := mosaic.at(x-1, y-1)
	ne := mosaic.at(x+1, y-1)
	sw := mosaic.at(x-1, y+1)
	se := mosaic.at(x+1, y+1)
	return (nw + ne + sw + se) / 4
}

// axialRB returns (R, B) at a green site from the two axial neighbours:
// whichever axis aligns with the pattern's R row supplies R, the other
// supplies B.
func axialRB(mosaic *Plane, cfa rawframe.Pattern, x, y int) (r, b float32) {
	horizontalIsRedRow := rowIsRed(cfa, y)
	w := mosaic.at(x-1, y)
	e := mosaic.at(x+1, y)
	n := mosaic.at(x, y-1)
	s := mosaic.at(x, y+1)

	if horizontalIsRedRow {
		return (w + e) / 2, (n + s) / 2
	}
	return (n + s) / 2, (w + e) / 2
}

// rowIsRed reports whether red sites sit on row y for this pattern, i.e.
// the horizontal axis through (x, y) passes through red samples rather
// than blue ones.
func rowIsRed(cfa rawframe.Pattern, y int) bool {
	switch cfa {
	case rawframe.RGGB, rawframe.GRBG:
		return y&1 == 0
	default: // BGGR, GBRG
		return y&1 == 1
	}
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
