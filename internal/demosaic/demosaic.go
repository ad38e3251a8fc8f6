// Package demosaic reconstructs full RGB planes from a single-channel
// Bayer sensor mosaic (§4.4). Two algorithms are provided: a fast
// edge-directed linear interpolation suitable for live preview work, and
// the slower Menon (2007) directional-filter algorithm used for final
// output quality. Both operate on normalized float32 planes so the
// developer pipeline can apply colour math without a second conversion
// pass, and both use mirror-reflection at image boundaries.
package demosaic

import (
	"github.com/rawforge/rawcore/internal/pool"
	"github.com/rawforge/rawcore/internal/rawframe"
)

// Plane is a single-channel float32 image, normalized sensor values with
// row-major storage.
type Plane struct {
	Width, Height int
	Pix           []float32
}

// NewPlane allocates a zeroed plane, drawing its backing buffer from the
// bucketed float32 pool rather than the allocator directly. A buffer goes
// back to the pool only through Release; the intermediate planes
// Menon2007 builds and discards are not released and are left to the
// garbage collector.
func NewPlane(width, height int) *Plane {
	return &Plane{Width: width, Height: height, Pix: pool.GetFloat32(width * height)}
}

// Release returns the plane's backing buffer to the pool. Only call this
// on a plane nothing else still references.
func (p *Plane) Release() {
	pool.PutFloat32(p.Pix)
	p.Pix = nil
}

func (p *Plane) at(x, y int) float32 {
	x = mirror(x, p.Width)
	y = mirror(y, p.Height)
	return p.Pix[y*p.Width+x]
}

func (p *Plane) set(x, y int, v float32) {
	p.Pix[y*p.Width+x] = v
}

// mirror reflects an out-of-range coordinate back into [0, n) about the
// edge sample itself (the edge sample is not repeated, so -1 maps to 1),
// which keeps the reflected coordinate on the same Bayer parity, folding
// repeatedly for coordinates more than one plane-width out of range.
func mirror(v, n int) int {
	if n == 1 {
		return 0
	}
	for v < 0 || v >= n {
		if v < 0 {
			v = -v
		} else if v >= n {
			v = 2*n - v - 2
		}
	}
	return v
}

// siteColor returns which channel (0=R, 1=G, 2=B) sits at (x, y) for the
// given CFA pattern.
func siteColor(cfa rawframe.Pattern, x, y int) int {
	row := y & 1
	col := x & 1
	switch cfa {
	case rawframe.RGGB:
		if row == 0 {
			if col == 0 {
				return 0
			}
			return 1
		}
		if col == 0 {
			return 1
		}
		return 2
	case rawframe.BGGR:
		if row == 0 {
			if col == 0 {
				return 2
			}
			return 1
		}
		if col == 0 {
			return 1
		}
		return 0
	case rawframe.GRBG:
		if row == 0 {
			if col == 0 {
				return 1
			}
			return 0
		}
		if col == 0 {
			return 2
		}
		return 1
	default: // GBRG
		if row == 0 {
			if col == 0 {
				return 1
			}
			return 2
		}
		if col == 0 {
			return 0
		}
		return 1
	}
}

// RGB holds the three demosaiced planes produced by Linear or Menon2007.
type RGB struct {
	R, G, B *Plane
}

// Release returns all three planes' backing buffers to the pool. Call
// this once the caller has finished reading RGB's pixels (the developer
// pipeline does this right after colour-converting them into its output
// image).
func (rgb *RGB) Release() {
	rgb.R.Release()
	rgb.G.Release()
	rgb.B.Release()
}

// fromMosaic allocates an RGB triple of zeroed planes the same size as
// mosaic.
func fromMosaic(mosaic *Plane) *RGB {
	return &RGB{
		R: NewPlane(mosaic.Width, mosaic.Height),
		G: NewPlane(mosaic.Width, mosaic.Height),
		B: NewPlane(mosaic.Width, mosaic.Height),
	}
}
