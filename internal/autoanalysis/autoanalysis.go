// Package autoanalysis implements the auto-enhance heuristics (§4.8):
// black/white point clipping, exposure/contrast estimation, shadow and
// highlight lift triggers, brightest-pixel white balance, vibrance, dehaze,
// and vignette detection, all derived from a downsampled thumbnail.
package autoanalysis

import "math"

// ThumbnailMaxDimension bounds the analysis thumbnail's longer side.
const ThumbnailMaxDimension = 1024

// Pixel is one analysed sample in [0,1] per channel.
type Pixel struct{ R, G, B float64 }

// Result holds every clamped, user-visible slider value the heuristics
// produce.
type Result struct {
	BlackPoint, WhitePoint   float64
	Exposure                 float64
	Contrast                 float64
	ShadowsLift, HighlightsLift float64
	Temperature, Tint        float64
	Vibrance                 float64
	Dehaze                   float64
	Vignette                 float64
}

// Analyze runs every §4.8 heuristic over a thumbnail's pixels and its
// width/height (needed for the vignette's centre-vs-edge comparison).
func Analyze(pixels []Pixel, width, height int) Result {
	luma := make([]float64, len(pixels))
	for i, p := range pixels {
		luma[i] = 0.2126*p.R + 0.7152*p.G + 0.0722*p.B
	}
	hist := histogram256(luma)

	black, white := clipPoints(hist, len(luma))
	midpoint := (black + white) / 2 * 255

	var r Result
	r.BlackPoint = black
	r.WhitePoint = white
	r.Exposure = clamp((128-midpoint)*0.35/20, -5, 5)

	rangeVal := (white - black) * 255
	if rangeVal < 250 {
		r.Contrast = clamp((250/rangeVal-1)*50, 0, 100)
	}

	r.ShadowsLift = shadowLift(hist, len(luma))
	r.HighlightsLift = highlightLift(hist, len(luma))

	meanR, meanG, meanB := brightestMean(pixels, luma, 0.01)
	r.Temperature = (meanB - meanR) * 0.4
	r.Tint = (meanG - (meanR+meanB)/2) * 0.5

	r.Vibrance = vibrance(pixels)
	r.Dehaze = dehaze(rangeVal, meanSaturation(pixels))
	r.Vignette = vignette(luma, width, height)

	return r
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func histogram256(luma []float64) [256]int {
	var h [256]int
	for _, v := range luma {
		b := int(v * 255)
		if b < 0 {
			b = 0
		}
		if b > 255 {
			b = 255
		}
		h[b]++
	}
	return h
}

// clipPoints finds the black/white points (0..1) by clipping 0.1% of
// pixels from each end of the histogram.
func clipPoints(hist [256]int, total int) (black, white float64) {
	clip := int(float64(total) * 0.001)
	var acc int
	blackBin := 0
	for i := 0; i < 256; i++ {
		acc += hist[i]
		if acc > clip {
			blackBin = i
			break
		}
	}
	acc = 0
	whiteBin := 255
	for i := 255; i >= 0; i-- {
		acc += hist[i]
		if acc > clip {
			whiteBin = i
			break
		}
	}
	return float64(blackBin) / 255, float64(whiteBin) / 255
}

// shadowLift triggers only when >5% of pixels lie in the bottom 32 bins
// and the black end is within 10 of the extreme (bin 0).
func shadowLift(hist [256]int, total int) float64 {
	var count int
	for i := 0; i < 32; i++ {
		count += hist[i]
	}
	if float64(count)/float64(total) <= 0.05 {
		return 0
	}
	var nearest int
	for i := 0; i < 256; i++ {
		if hist[i] > 0 {
			nearest = i
			break
		}
	}
	if nearest > 10 {
		return 0
	}
	return clamp(float64(count)/float64(total)*100, 0, 100)
}

// highlightLift mirrors shadowLift for the top 32 bins.
func highlightLift(hist [256]int, total int) float64 {
	var count int
	for i := 224; i < 256; i++ {
		count += hist[i]
	}
	if float64(count)/float64(total) <= 0.05 {
		return 0
	}
	farthest := 255
	for i := 255; i >= 0; i-- {
		if hist[i] > 0 {
			farthest = i
			break
		}
	}
	if 255-farthest > 10 {
		return 0
	}
	return clamp(float64(count)/float64(total)*100, 0, 100)
}

// brightestMean averages RGB over the brightest fraction of pixels by
// luma (§4.8's white-balance heuristic).
func brightestMean(pixels []Pixel, luma []float64, fraction float64) (r, g, b float64) {
	n := int(float64(len(pixels)) * fraction)
	if n < 1 {
		n = 1
	}
	threshold := nthLargest(luma, n)
	var sumR, sumG, sumB float64
	var count int
	for i, p := range pixels {
		if luma[i] >= threshold {
			sumR += p.R
			sumG += p.G
			sumB += p.B
			count++
		}
	}
	if count == 0 {
		return 0, 0, 0
	}
	return sumR / float64(count), sumG / float64(count), sumB / float64(count)
}

func nthLargest(v []float64, n int) float64 {
	sorted := append([]float64(nil), v...)
	// simple partial selection sort is adequate for a 1024^2-max thumbnail's histogram-bounded n
	for i := 0; i < n && i < len(sorted); i++ {
		maxIdx := i
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j] > sorted[maxIdx] {
				maxIdx = j
			}
		}
		sorted[i], sorted[maxIdx] = sorted[maxIdx], sorted[i]
	}
	if n-1 < len(sorted) {
		return sorted[n-1]
	}
	return 0
}

// vibrance is derived from the mean HSV-saturation gap to 0.20, plus a
// +10 bonus when more than half of pixels are near-unsaturated.
func vibrance(pixels []Pixel) float64 {
	var sumGap float64
	var lowCount int
	for _, p := range pixels {
		s := saturation(p)
		sumGap += 0.20 - s
		if s < 0.1 {
			lowCount++
		}
	}
	mean := sumGap / float64(len(pixels))
	v := mean * 100
	if float64(lowCount)/float64(len(pixels)) > 0.5 {
		v += 10
	}
	return clamp(v, 0, 100)
}

func meanSaturation(pixels []Pixel) float64 {
	var sum float64
	for _, p := range pixels {
		sum += saturation(p)
	}
	return sum / float64(len(pixels))
}

func saturation(p Pixel) float64 {
	max := math.Max(p.R, math.Max(p.G, p.B))
	min := math.Min(p.R, math.Min(p.G, p.B))
	if max == 0 {
		return 0
	}
	return (max - min) / max
}

// dehaze triggers from low dynamic range combined with low saturation.
func dehaze(rangeVal, meanSat float64) float64 {
	if rangeVal >= 128 || meanSat >= 0.15 {
		return 0
	}
	return clamp((128-rangeVal)/128*100, 0, 100)
}

// vignette compares mean luma in the rectangular 50% central region
// against the surrounding edge region.
func vignette(luma []float64, width, height int) float64 {
	if width == 0 || height == 0 {
		return 0
	}
	x0, x1 := width/4, width-width/4
	y0, y1 := height/4, height-height/4

	var centerSum, edgeSum float64
	var centerCount, edgeCount int
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := luma[y*width+x]
			if x >= x0 && x < x1 && y >= y0 && y < y1 {
				centerSum += v
				centerCount++
			} else {
				edgeSum += v
				edgeCount++
			}
		}
	}
	if centerCount == 0 || edgeCount == 0 {
		return 0
	}
	diff := centerSum/float64(centerCount) - edgeSum/float64(edgeCount)
	return clamp(diff*100, -100, 100)
}
