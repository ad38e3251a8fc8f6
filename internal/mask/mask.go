// Package mask rasterises the four primitive sub-mask types (radial,
// linear, brush, AI bitmap) and composes them into the parent masks
// consumed by the GPU tiled processor (§4.6).
package mask

import (
	"math"

	"github.com/rawforge/rawcore/internal/parallel"
)

// Plane is a single-channel float32 mask, 0 (fully excluded) to 1 (fully
// included).
type Plane struct {
	Width, Height int
	Pix           []float32
}

func NewPlane(w, h int) *Plane {
	return &Plane{Width: w, Height: h, Pix: make([]float32, w*h)}
}

func (p *Plane) at(x, y int) float32 {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return 0
	}
	return p.Pix[y*p.Width+x]
}

// Point is a normalized (0..1) image-space coordinate.
type Point struct{ X, Y float64 }

// Radial describes a rotatable ellipse mask (§4.6).
type Radial struct {
	Center        Point
	RadiusX, RadiusY float64
	RotationRad   float64
	Feather       float64 // 0..1
}

// Rasterize fills a plane where value = clamp(1 - (dist-inner)/(1-inner)),
// dist being the rotated elliptical norm and inner = 1 - feather.
func (r Radial) Rasterize(w, h int) *Plane {
	out := NewPlane(w, h)
	inner := 1 - r.Feather
	cos, sin := math.Cos(r.RotationRad), math.Sin(r.RotationRad)
	cx, cy := r.Center.X*float64(w), r.Center.Y*float64(h)
	rx, ry := r.RadiusX*float64(w), r.RadiusY*float64(h)
	if rx == 0 {
		rx = 1e-6
	}
	if ry == 0 {
		ry = 1e-6
	}

	parallel.Rows(h, func(y int) {
		for x := 0; x < w; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			rdx := dx*cos + dy*sin
			rdy := -dx*sin + dy*cos
			dist := math.Sqrt((rdx/rx)*(rdx/rx) + (rdy/ry)*(rdy/ry))
			var v float64
			if inner >= 1 {
				if dist <= inner {
					v = 1
				}
			} else {
				v = 1 - (dist-inner)/(1-inner)
			}
			out.Pix[y*w+x] = float32(clamp01(v))
		}
	})
	return out
}

// Linear describes a gradient mask along the line between two points
// (§4.6).
type Linear struct {
	From, To Point
	Range    float64 // normalised perpendicular distance at which the ramp reaches 0 or 1
}

// Rasterize computes the signed perpendicular distance to the line,
// normalised by Range, producing a smooth ramp 0.5 - 0.5*t clamped to
// [0,1].
func (l Linear) Rasterize(w, h int) *Plane {
	out := NewPlane(w, h)
	fx, fy := l.From.X*float64(w), l.From.Y*float64(h)
	tx, ty := l.To.X*float64(w), l.To.Y*float64(h)
	dx, dy := tx-fx, ty-fy
	length := math.Hypot(dx, dy)
	if length == 0 {
		length = 1e-6
	}
	nx, ny := -dy/length, dx/length // unit perpendicular
	rangePx := l.Range * float64(w)
	if rangePx == 0 {
		rangePx = 1e-6
	}

	parallel.Rows(h, func(y int) {
		for x := 0; x < w; x++ {
			px, py := float64(x)-fx, float64(y)-fy
			d := px*nx + py*ny
			t := d / rangePx
			v := 0.5 - 0.5*t
			out.Pix[y*w+x] = float32(clamp01(v))
		}
	})
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
