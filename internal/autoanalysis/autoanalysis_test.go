package autoanalysis

import "testing"

func uniformGrey(v float64, n int) []Pixel {
	pixels := make([]Pixel, n)
	for i := range pixels {
		pixels[i] = Pixel{R: v, G: v, B: v}
	}
	return pixels
}

func TestAnalyzeUniformMidGreyNeedsNoExposureCorrection(t *testing.T) {
	pixels := uniformGrey(0.5, 100)
	r := Analyze(pixels, 10, 10)
	if r.Exposure < -0.2 || r.Exposure > 0.2 {
		t.Fatalf("Exposure = %v, want ~0 for mid-grey", r.Exposure)
	}
}

func TestAnalyzeDarkImageRecommendsPositiveExposure(t *testing.T) {
	pixels := uniformGrey(0.1, 100)
	r := Analyze(pixels, 10, 10)
	if r.Exposure <= 0 {
		t.Fatalf("Exposure = %v, want positive for a dark image", r.Exposure)
	}
}

func TestClipPointsNarrowsOnUniformHistogram(t *testing.T) {
	var hist [256]int
	for i := 100; i < 150; i++ {
		hist[i] = 10
	}
	black, white := clipPoints(hist, 500)
	if black <= 0 || white >= 1 {
		t.Fatalf("clipPoints = (%v,%v), want interior values", black, white)
	}
}

func TestSaturationOfGreyIsZero(t *testing.T) {
	if s := saturation(Pixel{0.5, 0.5, 0.5}); s != 0 {
		t.Fatalf("saturation(grey) = %v, want 0", s)
	}
}

func TestSaturationOfPureColourIsOne(t *testing.T) {
	if s := saturation(Pixel{1, 0, 0}); s != 1 {
		t.Fatalf("saturation(pure red) = %v, want 1", s)
	}
}

func TestVignetteZeroForUniformImage(t *testing.T) {
	luma := make([]float64, 16*16)
	for i := range luma {
		luma[i] = 0.5
	}
	if v := vignette(luma, 16, 16); v != 0 {
		t.Fatalf("vignette(uniform) = %v, want 0", v)
	}
}

func TestVignetteDetectsDarkEdges(t *testing.T) {
	w, h := 16, 16
	luma := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x >= w/4 && x < w-w/4 && y >= h/4 && y < h-h/4 {
				luma[y*w+x] = 0.8
			} else {
				luma[y*w+x] = 0.2
			}
		}
	}
	if v := vignette(luma, w, h); v <= 0 {
		t.Fatalf("vignette(dark edges) = %v, want positive", v)
	}
}
