package mask

import "testing"

func TestRadialCenterIsFullyIncluded(t *testing.T) {
	r := Radial{Center: Point{0.5, 0.5}, RadiusX: 0.3, RadiusY: 0.3, Feather: 0.2}
	p := r.Rasterize(20, 20)
	if v := p.at(10, 10); v < 0.99 {
		t.Fatalf("center value = %v, want ~1", v)
	}
}

func TestRadialCornerIsExcluded(t *testing.T) {
	r := Radial{Center: Point{0.5, 0.5}, RadiusX: 0.1, RadiusY: 0.1, Feather: 0.1}
	p := r.Rasterize(20, 20)
	if v := p.at(0, 0); v != 0 {
		t.Fatalf("corner value = %v, want 0", v)
	}
}

func TestLinearRampCentredAtZeroIsHalf(t *testing.T) {
	l := Linear{From: Point{0, 0.5}, To: Point{1, 0.5}, Range: 0.5}
	p := l.Rasterize(10, 10)
	v := p.at(5, 5) // on the line itself: perpendicular distance ~0
	if v < 0.4 || v > 0.6 {
		t.Fatalf("on-line ramp value = %v, want ~0.5", v)
	}
}

func TestBrushStampsMaximum(t *testing.T) {
	b := Brush{Lines: []BrushLine{
		{Tool: ToolBrush, BrushSize: 0.3, Points: []Point{{0.5, 0.5}}, Feather: 0},
	}}
	p := b.Rasterize(20, 20)
	if v := p.at(10, 10); v != 1 {
		t.Fatalf("brush center = %v, want 1", v)
	}
}

func TestEraserSubtractsSaturating(t *testing.T) {
	b := Brush{Lines: []BrushLine{
		{Tool: ToolBrush, BrushSize: 0.3, Points: []Point{{0.5, 0.5}}, Feather: 0},
		{Tool: ToolEraser, BrushSize: 0.5, Points: []Point{{0.5, 0.5}}, Feather: 0},
	}}
	p := b.Rasterize(20, 20)
	if v := p.at(10, 10); v != 0 {
		t.Fatalf("erased center = %v, want 0", v)
	}
}

func TestGrowDilateExpandsMask(t *testing.T) {
	p := NewPlane(20, 20)
	p.Pix[10*20+10] = 1
	grown := Grow(p, 10)
	if grown.at(12, 10) == 0 {
		t.Fatal("dilated mask did not expand")
	}
}

func TestComposeSubtractsAndScalesByOpacity(t *testing.T) {
	add := NewPlane(4, 4)
	for i := range add.Pix {
		add.Pix[i] = 1
	}
	sub := NewPlane(4, 4)
	sub.Pix[0] = 0.4
	out := Compose([]*Plane{add}, []*Plane{sub}, false, 50, 4, 4)
	if v := out.Pix[0]; v < 0.29 || v > 0.31 {
		t.Fatalf("composed[0] = %v, want ~0.3 (0.6*0.5)", v)
	}
	if v := out.Pix[1]; v < 0.49 || v > 0.51 {
		t.Fatalf("composed[1] = %v, want ~0.5 (1*0.5)", v)
	}
}
