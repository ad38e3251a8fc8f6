package mask

import (
	"image"
	"math"
)

// Orientation mirrors the coarse 90-degree-step orientation state a
// preview frame may apply on top of an AI mask's full-resolution bitmap.
type Orientation int

const (
	OrientationNone Orientation = iota
	Orientation90
	Orientation180
	Orientation270
)

// AIBitmap wraps a base64-decoded PNG mask (already decoded to an
// image.Gray by the caller) representing an AI subject/foreground
// selection at full orientation-corrected coordinates (§4.6).
type AIBitmap struct {
	Bitmap      *image.Gray
	FlipH, FlipV bool
	Coarse      Orientation
	RotationRad float64 // fine rotation applied by the user
}

// Rasterize re-projects the bitmap into the current w x h preview frame
// by inverting the user's fine rotation, flip, and coarse orientation
// steps, then bilinearly sampling.
func (a AIBitmap) Rasterize(w, h int) *Plane {
	out := NewPlane(w, h)
	if a.Bitmap == nil {
		return out
	}
	bw, bh := a.Bitmap.Bounds().Dx(), a.Bitmap.Bounds().Dy()

	cos, sin := math.Cos(-a.RotationRad), math.Sin(-a.RotationRad)
	cx, cy := float64(w)/2, float64(h)/2
	bcx, bcy := float64(bw)/2, float64(bh)/2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			rx := dx*cos - dy*sin
			ry := dx*sin + dy*cos

			sx, sy := rx+bcx, ry+bcy
			sx, sy = invertCoarse(sx, sy, float64(bw), float64(bh), a.Coarse)
			if a.FlipH {
				sx = float64(bw) - 1 - sx
			}
			if a.FlipV {
				sy = float64(bh) - 1 - sy
			}
			out.Pix[y*w+x] = float32(bilinearGray(a.Bitmap, sx, sy)) / 255
		}
	}
	return out
}

func invertCoarse(x, y, w, h float64, o Orientation) (float64, float64) {
	switch o {
	case Orientation90:
		return y, w - 1 - x
	case Orientation180:
		return w - 1 - x, h - 1 - y
	case Orientation270:
		return h - 1 - y, x
	default:
		return x, y
	}
}

func bilinearGray(img *image.Gray, x, y float64) float64 {
	b := img.Bounds()
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x > float64(b.Dx()-1) {
		x = float64(b.Dx() - 1)
	}
	if y > float64(b.Dy()-1) {
		y = float64(b.Dy() - 1)
	}
	x0, y0 := int(x), int(y)
	x1, y1 := minInt(x0+1, b.Dx()-1), minInt(y0+1, b.Dy()-1)
	fx, fy := x-float64(x0), y-float64(y0)

	g := func(px, py int) float64 { return float64(img.GrayAt(b.Min.X+px, b.Min.Y+py).Y) }
	top := g(x0, y0)*(1-fx) + g(x1, y0)*fx
	bot := g(x0, y1)*(1-fx) + g(x1, y1)*fx
	return top*(1-fy) + bot*fy
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
