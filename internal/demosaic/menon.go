package demosaic

import (
	"github.com/rawforge/rawcore/internal/parallel"
	"github.com/rawforge/rawcore/internal/rawframe"
)

// h0 and h1 decompose the 7-tap green interpolation kernel
// [-1/4, 0, 1/2, 1, 1/2, 0, -1/4] into its even (h0) and odd (h1) taps,
// matching the Menon (2007) reference decomposition.
var h0 = [5]float32{0, 0.5, 0, 0.5, 0}
var h1 = [5]float32{-0.25, 0, 0.5, 0, -0.25}

// MenonRefineIterations is the number of refining passes applied after
// the initial green/red/blue interpolation (§4.4 step 8).
const MenonRefineIterations = 3

// Menon2007 implements the directional-filter demosaic algorithm (§4.4):
// two candidate green planes are built by horizontal and vertical
// 1-D convolution, a low-passed chroma-discontinuity map chooses between
// them per pixel, red/blue are interpolated along the chosen direction,
// and an optional refining pass corrects residual colour fringing.
func Menon2007(mosaic *Plane, cfa rawframe.Pattern, refine bool) *RGB {
	gH := convolveAxis(mosaic, h0, h1, true)
	gV := convolveAxis(mosaic, h0, h1, false)

	cH := chromaDiff(mosaic, gH, cfa)
	cV := chromaDiff(mosaic, gV, cfa)

	dH := discontinuity(cH, true)
	dV := discontinuity(cV, false)
	dH = boxFilter5(dH)
	dV = boxFilter5(dV)

	w, h := mosaic.Width, mosaic.Height
	m := make([]bool, w*h) // true where horizontal direction wins

	parallel.Rows(h, func(y int) {
		for x := 0; x < w; x++ {
			i := y*w + x
			m[i] = dH.Pix[i] <= dV.Pix[i]
		}
	})

	out := fromMosaic(mosaic)
	parallel.Rows(h, func(y int) {
		for x := 0; x < w; x++ {
			if siteColor(cfa, x, y) == 1 {
				out.G.set(x, y, mosaic.at(x, y))
				continue
			}
			if m[y*w+x] {
				out.G.set(x, y, gH.at(x, y))
			} else {
				out.G.set(x, y, gV.at(x, y))
			}
		}
	})

	interpolateRB(mosaic, out, cfa, m)

	if refine {
		for pass := 0; pass < MenonRefineIterations; pass++ {
			refineGreen(mosaic, out, cfa)
			refineRBAtGreen(out, cfa)
			refineCrossChannel(out, cfa, m)
		}
	}
	return out
}

// convolveAxis applies the kernel h0+h1 along rows (horizontal=true) or
// columns (horizontal=false), producing a candidate green plane the size
// of mosaic. At an R or B site the h0 taps average the two neighbouring
// greens and the h1 taps add the same-colour second-difference term.
func convolveAxis(mosaic *Plane, h0, h1 [5]float32, horizontal bool) *Plane {
	w, hgt := mosaic.Width, mosaic.Height
	out := NewPlane(w, hgt)
	parallel.Rows(hgt, func(y int) {
		for x := 0; x < w; x++ {
			var sum float32
			for k := -2; k <= 2; k++ {
				var v float32
				if horizontal {
					v = mosaic.at(x+k, y)
				} else {
					v = mosaic.at(x, y+k)
				}
				sum += (h0[k+2] + h1[k+2]) * v
			}
			out.set(x, y, sum)
		}
	})
	return out
}

// chromaDiff forms R-G or B-G at R/B sites only (zero elsewhere), using
// the appropriate candidate green plane.
func chromaDiff(mosaic, g *Plane, cfa rawframe.Pattern) *Plane {
	w, h := mosaic.Width, mosaic.Height
	out := NewPlane(w, h)
	parallel.Rows(h, func(y int) {
		for x := 0; x < w; x++ {
			if siteColor(cfa, x, y) == 1 {
				continue
			}
			out.set(x, y, mosaic.at(x, y)-g.at(x, y))
		}
	})
	return out
}

// discontinuity computes D(i) = |C(i) - C(i-2 along axis)|.
func discontinuity(c *Plane, horizontal bool) *Plane {
	w, h := c.Width, c.Height
	out := NewPlane(w, h)
	parallel.Rows(h, func(y int) {
		for x := 0; x < w; x++ {
			var prev float32
			if horizontal {
				prev = c.at(x-2, y)
			} else {
				prev = c.at(x, y-2)
			}
			out.set(x, y, absF32(c.at(x, y)-prev))
		}
	})
	return out
}

// boxFilter5 applies a 5x5 mean low-pass filter.
func boxFilter5(p *Plane) *Plane {
	w, h := p.Width, p.Height
	out := NewPlane(w, h)
	parallel.Rows(h, func(y int) {
		for x := 0; x < w; x++ {
			var sum float32
			for dy := -2; dy <= 2; dy++ {
				for dx := -2; dx <= 2; dx++ {
					sum += p.at(x+dx, y+dy)
				}
			}
			out.set(x, y, sum/25)
		}
	})
	return out
}

// interpolateRB fills red at blue sites, blue at red sites, and the
// missing colour at green sites, all via the [1/2, 0, 1/2] kernel along
// the axis appropriate to the site (the pattern's own axis at green
// sites, the direction map m at R/B sites).
func interpolateRB(mosaic *Plane, out *RGB, cfa rawframe.Pattern, m []bool) {
	w, h := mosaic.Width, mosaic.Height

	parallel.Rows(h, func(y int) {
		for x := 0; x < w; x++ {
			switch siteColor(cfa, x, y) {
			case 1:
				r, b := axialRB(mosaic, cfa, x, y)
				out.R.set(x, y, r)
				out.B.set(x, y, b)
			case 0:
				out.R.set(x, y, mosaic.at(x, y))
			default:
				out.B.set(x, y, mosaic.at(x, y))
			}
		}
	})
	// The opposite colour at R/B sites reads the green-site values written
	// by the pass above, so it runs as a second pass.
	parallel.Rows(h, func(y int) {
		for x := 0; x < w; x++ {
			switch siteColor(cfa, x, y) {
			case 0:
				out.B.set(x, y, residualHalfKernel(out.B, out.G, x, y, m[y*w+x])+out.G.at(x, y))
			case 2:
				out.R.set(x, y, residualHalfKernel(out.R, out.G, x, y, m[y*w+x])+out.G.at(x, y))
			}
		}
	})
}

// axialRBFromGreen re-estimates R and B at a green site as green plus the
// [1/2,0,1/2] kernel applied to the (R-G) and (B-G) residuals along the
// pattern axis that carries each colour.
func axialRBFromGreen(out *RGB, cfa rawframe.Pattern, x, y int) (r, b float32) {
	horizontalIsRedRow := rowIsRed(cfa, y)
	g := out.G.at(x, y)
	r = g + residualHalfKernel(out.R, out.G, x, y, horizontalIsRedRow)
	b = g + residualHalfKernel(out.B, out.G, x, y, !horizontalIsRedRow)
	return r, b
}

// residualHalfKernel evaluates the [1/2, 0, 1/2] kernel on (plane - green)
// along the row if horizontal is true, else along the column.
func residualHalfKernel(plane, green *Plane, x, y int, horizontal bool) float32 {
	if horizontal {
		r1 := plane.at(x-1, y) - green.at(x-1, y)
		r2 := plane.at(x+1, y) - green.at(x+1, y)
		return (r1 + r2) / 2
	}
	r1 := plane.at(x, y-1) - green.at(x, y-1)
	r2 := plane.at(x, y+1) - green.at(x, y+1)
	return (r1 + r2) / 2
}

// refineGreen re-estimates green at R/B sites from the (R-G)/(B-G)
// residual, smoothed by a [1/3, 1/3, 1/3] kernel along both axes.
func refineGreen(mosaic *Plane, out *RGB, cfa rawframe.Pattern) {
	w, h := mosaic.Width, mosaic.Height
	rg := NewPlane(w, h)
	bg := NewPlane(w, h)
	parallel.Rows(h, func(y int) {
		for x := 0; x < w; x++ {
			rg.set(x, y, out.R.at(x, y)-out.G.at(x, y))
			bg.set(x, y, out.B.at(x, y)-out.G.at(x, y))
		}
	})
	rgSmoothed := boxFilter3(rg)
	bgSmoothed := boxFilter3(bg)
	parallel.Rows(h, func(y int) {
		for x := 0; x < w; x++ {
			switch siteColor(cfa, x, y) {
			case 0:
				out.G.set(x, y, mosaic.at(x, y)-rgSmoothed.at(x, y))
			case 2:
				out.G.set(x, y, mosaic.at(x, y)-bgSmoothed.at(x, y))
			}
		}
	})
}

// boxFilter3 applies a 1/3,1/3,1/3 mean in both axes (separable 3x3).
func boxFilter3(p *Plane) *Plane {
	w, h := p.Width, p.Height
	out := NewPlane(w, h)
	parallel.Rows(h, func(y int) {
		for x := 0; x < w; x++ {
			sum := p.at(x-1, y) + p.at(x, y) + p.at(x+1, y)
			out.set(x, y, sum/3)
		}
	})
	out2 := NewPlane(w, h)
	parallel.Rows(h, func(y int) {
		for x := 0; x < w; x++ {
			sum := out.at(x, y-1) + out.at(x, y) + out.at(x, y+1)
			out2.set(x, y, sum/3)
		}
	})
	return out2
}

// refineRBAtGreen re-estimates R/B at green sites from the refined
// residual using the [1/2, 0, 1/2] kernel along the pattern axis.
func refineRBAtGreen(out *RGB, cfa rawframe.Pattern) {
	w, h := out.G.Width, out.G.Height
	parallel.Rows(h, func(y int) {
		for x := 0; x < w; x++ {
			if siteColor(cfa, x, y) != 1 {
				continue
			}
			r, b := axialRBFromGreen(out, cfa, x, y)
			out.R.set(x, y, r)
			out.B.set(x, y, b)
		}
	})
}

// refineCrossChannel re-estimates R at B sites (and B at R sites) from
// the (R-B) residual, smoothed along the direction chosen by m.
func refineCrossChannel(out *RGB, cfa rawframe.Pattern, m []bool) {
	w, h := out.G.Width, out.G.Height
	parallel.Rows(h, func(y int) {
		for x := 0; x < w; x++ {
			c := siteColor(cfa, x, y)
			if c != 0 && c != 2 {
				continue
			}
			horizontal := m[y*w+x]
			if c == 2 {
				out.R.set(x, y, out.B.at(x, y)+residualHalfKernel(out.R, out.B, x, y, horizontal))
			} else {
				out.B.set(x, y, out.R.at(x, y)+residualHalfKernel(out.B, out.R, x, y, horizontal))
			}
		}
	})
}
