package mask

import "math"

// BrushTool selects whether a stroke paints (adds) or erases (subtracts).
type BrushTool int

const (
	ToolBrush BrushTool = iota
	ToolEraser
)

// BrushLine is one polyline stroke (§4.6).
type BrushLine struct {
	Tool      BrushTool
	BrushSize float64 // normalised radius
	Points    []Point
	Feather   float64 // 0..1
}

// Brush is the full list of strokes composing one brush sub-mask.
type Brush struct {
	Lines []BrushLine
}

// Rasterize stamps feathered filled circles along every polyline; brush
// stamps take the per-pixel maximum, eraser stamps subtract with
// saturation.
func (b Brush) Rasterize(w, h int) *Plane {
	out := NewPlane(w, h)
	for _, line := range b.Lines {
		stampLine(out, line, w, h)
	}
	return out
}

func stampLine(out *Plane, line BrushLine, w, h int) {
	radius := line.BrushSize * float64(w)
	if radius <= 0 {
		return
	}
	step := radius * (1 - line.Feather) / 2
	if step < 1 {
		step = 1
	}

	for i := 0; i < len(line.Points); i++ {
		stampCircle(out, line, line.Points[i], radius, w, h)
		if i+1 >= len(line.Points) {
			continue
		}
		a, bPt := line.Points[i], line.Points[i+1]
		ax, ay := a.X*float64(w), a.Y*float64(h)
		bx, by := bPt.X*float64(w), bPt.Y*float64(h)
		dist := math.Hypot(bx-ax, by-ay)
		n := int(dist / step)
		for k := 1; k <= n; k++ {
			t := float64(k) / float64(n+1)
			p := Point{X: (a.X + (bPt.X-a.X)*t), Y: (a.Y + (bPt.Y-a.Y)*t)}
			stampCircle(out, line, p, radius, w, h)
		}
	}
}

func stampCircle(out *Plane, line BrushLine, center Point, radius float64, w, h int) {
	cx, cy := center.X*float64(w), center.Y*float64(h)
	featherPx := radius * line.Feather
	x0, x1 := clampInt(int(cx-radius), 0, w), clampInt(int(cx+radius)+1, 0, w)
	y0, y1 := clampInt(int(cy-radius), 0, h), clampInt(int(cy+radius)+1, 0, h)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			var v float32
			switch {
			case d <= radius-featherPx:
				v = 1
			case d <= radius:
				if featherPx <= 0 {
					v = 0
				} else {
					v = float32(1 - (d-(radius-featherPx))/featherPx)
				}
			default:
				continue
			}
			idx := y*w + x
			if line.Tool == ToolEraser {
				out.Pix[idx] = float32(math.Max(0, float64(out.Pix[idx])-float64(v)))
			} else if v > out.Pix[idx] {
				out.Pix[idx] = v
			}
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
