package histogram

import (
	"image"

	"golang.org/x/image/draw"
)

// WaveformWidth and WaveformHeight are the fixed output grid dimensions
// (§4.9).
const (
	WaveformWidth  = 256
	WaveformHeight = 256
)

// Waveform holds four parallel R/G/B/Y column-bucket planes.
type Waveform struct {
	R, G, B, Y [WaveformWidth][WaveformHeight]int
}

// BuildWaveform resizes img to width WaveformWidth with bilinear filtering, then
// for every pixel in the resized column increments bucket
// (255 - value) for each of the four planes.
func BuildWaveform(img image.Image) Waveform {
	b := img.Bounds()
	h := b.Dy() * WaveformWidth / maxInt(b.Dx(), 1)
	if h < 1 {
		h = 1
	}
	resized := image.NewNRGBA(image.Rect(0, 0, WaveformWidth, h))
	draw.BiLinear.Scale(resized, resized.Bounds(), img, b, draw.Over, nil)

	var wf Waveform
	for x := 0; x < WaveformWidth; x++ {
		for y := 0; y < h; y++ {
			i := y*resized.Stride + x*4
			r := float64(resized.Pix[i]) / 255
			g := float64(resized.Pix[i+1]) / 255
			bch := float64(resized.Pix[i+2]) / 255
			lum := 0.2126*r + 0.7152*g + 0.0722*bch

			wf.R[x][waveformBucket(r)]++
			wf.G[x][waveformBucket(g)]++
			wf.B[x][waveformBucket(bch)]++
			wf.Y[x][waveformBucket(lum)]++
		}
	}
	return wf
}

func waveformBucket(v float64) int {
	b := int(v * 255)
	if b < 0 {
		b = 0
	}
	if b > 255 {
		b = 255
	}
	return 255 - b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
