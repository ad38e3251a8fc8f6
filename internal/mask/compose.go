package mask

import (
	"math"

	"github.com/rawforge/rawcore/internal/parallel"
)

// Grow dilates (magnitude > 0) or erodes (magnitude < 0) a mask using the
// L-infinity metric, scaled by 0.2 (§4.6).
func Grow(p *Plane, magnitude float64) *Plane {
	r := int(math.Round(math.Abs(magnitude) * 0.2))
	if r <= 0 {
		return p
	}
	out := NewPlane(p.Width, p.Height)
	dilate := magnitude > 0
	parallel.Rows(p.Height, func(y int) {
		for x := 0; x < p.Width; x++ {
			var best float32
			if !dilate {
				best = 1
			}
			for dy := -r; dy <= r; dy++ {
				for dx := -r; dx <= r; dx++ {
					v := p.at(x+dx, y+dy)
					if dilate {
						if v > best {
							best = v
						}
					} else if v < best {
						best = v
					}
				}
			}
			out.Pix[y*p.Width+x] = best
		}
	})
	return out
}

// Feather applies a Gaussian blur with sigma = feather*0.1 (§4.6).
func Feather(p *Plane, feather float64) *Plane {
	sigma := feather * 0.1
	if sigma <= 0 {
		return p
	}
	radius := int(math.Ceil(sigma * 3))
	kernel := make([]float64, 2*radius+1)
	var sum float64
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	tmp := NewPlane(p.Width, p.Height)
	parallel.Rows(p.Height, func(y int) {
		for x := 0; x < p.Width; x++ {
			var acc float64
			for k := -radius; k <= radius; k++ {
				acc += float64(p.at(x+k, y)) * kernel[k+radius]
			}
			tmp.Pix[y*p.Width+x] = float32(acc)
		}
	})
	out := NewPlane(p.Width, p.Height)
	parallel.Rows(p.Height, func(y int) {
		for x := 0; x < p.Width; x++ {
			var acc float64
			for k := -radius; k <= radius; k++ {
				acc += float64(tmp.at(x, y+k)) * kernel[k+radius]
			}
			out.Pix[y*p.Width+x] = float32(acc)
		}
	})
	return out
}

// Compose unions all additive sub-masks (pixel max), unions all
// subtractive sub-masks, subtracts the latter from the former with
// saturation, optionally inverts, and scales by opacity/100 (§4.6).
func Compose(additive, subtractive []*Plane, invert bool, opacity float64, w, h int) *Plane {
	add := unionMax(additive, w, h)
	sub := unionMax(subtractive, w, h)

	out := NewPlane(w, h)
	parallel.Rows(h, func(y int) {
		for x := 0; x < w; x++ {
			i := y*w + x
			v := add.Pix[i] - sub.Pix[i]
			if v < 0 {
				v = 0
			}
			if invert {
				v = 1 - v
			}
			out.Pix[i] = v * float32(opacity/100)
		}
	})
	return out
}

func unionMax(planes []*Plane, w, h int) *Plane {
	out := NewPlane(w, h)
	for _, p := range planes {
		if p == nil {
			continue
		}
		for i := range out.Pix {
			if p.Pix[i] > out.Pix[i] {
				out.Pix[i] = p.Pix[i]
			}
		}
	}
	return out
}
