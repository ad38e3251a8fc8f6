package histogram

import (
	"image"
	"image/color"
	"testing"
)

func TestBuildPeaksAtUniformValue(t *testing.T) {
	pixels := make([]Pixel, 1000)
	for i := range pixels {
		pixels[i] = Pixel{R: 0.5, G: 0.5, B: 0.5}
	}
	c := Build(pixels)
	peak := maxIdx(c.R)
	if peak < 120 || peak > 135 {
		t.Fatalf("peak bucket = %d, want near 127", peak)
	}
}

func TestBuildNormalizesTo1AtPeak(t *testing.T) {
	pixels := make([]Pixel, 1000)
	for i := range pixels {
		pixels[i] = Pixel{R: 0.5, G: 0.5, B: 0.5}
	}
	c := Build(pixels)
	var max float64
	for _, v := range c.R {
		if v > max {
			max = v
		}
	}
	if max < 0.99 || max > 1.0001 {
		t.Fatalf("max normalised bucket = %v, want ~1.0", max)
	}
}

func maxIdx(a [Buckets]float64) int {
	best, bestI := -1.0, 0
	for i, v := range a {
		if v > best {
			best = v
			bestI = i
		}
	}
	return bestI
}

func TestWaveformBuildProducesNonEmptyColumns(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	wf := BuildWaveform(img)
	var total int
	for x := 0; x < WaveformWidth; x++ {
		for y := 0; y < WaveformHeight; y++ {
			total += wf.Y[x][y]
		}
	}
	if total == 0 {
		t.Fatal("waveform Y plane is entirely empty")
	}
}
