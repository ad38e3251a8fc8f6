package rawframe

import "testing"

func validFrame() *Frame {
	return &Frame{
		Width:  2,
		Height: 2,
		CFA:    RGGB,
		Black:  [3]float64{0, 0, 0},
		White:  [3]float64{1023, 1023, 1023},
		Data:   make([]uint16, 4),
	}
}

func TestValidateAcceptsWellFormedFrame(t *testing.T) {
	if err := validFrame().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateRejectsZeroDimension(t *testing.T) {
	f := validFrame()
	f.Width = 0
	if err := f.Validate(); err != ErrZeroDimension {
		t.Fatalf("Validate() = %v, want ErrZeroDimension", err)
	}
}

func TestValidateRejectsSampleCountMismatch(t *testing.T) {
	f := validFrame()
	f.Data = make([]uint16, 3)
	if err := f.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error on sample-count mismatch")
	}
}

func TestValidateRejectsWhiteNotAboveBlack(t *testing.T) {
	f := validFrame()
	f.White[0] = f.Black[0]
	if err := f.Validate(); err != ErrWhiteNotAboveBlack {
		t.Fatalf("Validate() = %v, want ErrWhiteNotAboveBlack", err)
	}
}

func TestNormalizedCFAFallsBackToRGGB(t *testing.T) {
	p, warn := NormalizedCFA(99)
	if p != RGGB {
		t.Fatalf("NormalizedCFA(99) = %v, want RGGB", p)
	}
	if warn == "" {
		t.Fatal("NormalizedCFA(99) should report a warning for an unknown pattern")
	}
}

func TestNormalizedCFAPassesThroughKnownPattern(t *testing.T) {
	p, warn := NormalizedCFA(int(GBRG))
	if p != GBRG {
		t.Fatalf("NormalizedCFA(GBRG) = %v, want GBRG", p)
	}
	if warn != "" {
		t.Fatalf("NormalizedCFA(GBRG) warn = %q, want empty", warn)
	}
}

func TestRectDimensions(t *testing.T) {
	r := Rect{Top: 10, Left: 5, Bottom: 110, Right: 205}
	if r.Width() != 200 {
		t.Fatalf("Width() = %d, want 200", r.Width())
	}
	if r.Height() != 100 {
		t.Fatalf("Height() = %d, want 100", r.Height())
	}
}
