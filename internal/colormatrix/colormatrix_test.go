package colormatrix

import "testing"

func TestGammaLinearSegment(t *testing.T) {
	got := Gamma(0.001)
	want := 12.92 * 0.001
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("Gamma(0.001) = %v, want %v", got, want)
	}
}

func TestGammaPowerSegmentAtOne(t *testing.T) {
	if got := Gamma(1.0); got < 0.999 || got > 1.001 {
		t.Fatalf("Gamma(1.0) = %v, want ~1.0", got)
	}
}

func TestCameraToSRGBIdentityCAMIsXYZToSRGB(t *testing.T) {
	identity := [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	got := CameraToSRGB(identity)
	if got != XYZToSRGB {
		t.Fatalf("CameraToSRGB(identity) = %v, want XYZToSRGB", got)
	}
}

func TestApplyMultipliesColumnVector(t *testing.T) {
	m := [3][3]float64{{1, 0, 0}, {0, 2, 0}, {0, 0, 3}}
	r, g, b := Apply(m, 1, 1, 1)
	if r != 1 || g != 2 || b != 3 {
		t.Fatalf("Apply = (%v,%v,%v), want (1,2,3)", r, g, b)
	}
}
