package panorama

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/rawforge/rawcore/internal/parallel"
)

// Feature is one detected, described keypoint.
type Feature struct {
	X, Y        int
	Score       float64
	Descriptor  [4]uint64 // 256-bit BRIEF descriptor, 4x64-bit words
}

// FASTThreshold and NMSRadius are the fixed detector parameters (§4.11).
const (
	FASTThreshold = 15
	NMSRadius     = 15
	BriefPatch    = 32
)

// Detect downscales img by scale (Stitch picks scale so the longer side
// is at most FeatureMaxDimension), Gaussian-blurs it, runs FAST-9 with
// non-maximum suppression, and computes a BRIEF descriptor against a
// more heavily blurred float copy for every surviving keypoint at least
// BriefPatch/2 from the border; keypoints nearer the border are dropped.
func Detect(img image.Image, scale float64) []Feature {
	gray := toGray(img)
	small := downscale(gray, scale)
	blurred := gaussianBlur(small, 1.5)
	corners := fast9(blurred, FASTThreshold)
	suppressed := nonMaxSuppress(corners, small.w, small.h, NMSRadius)

	descBase := gaussianBlur(small, 2.0)
	offsets := briefOffsets(BRIEFSeed, 256)

	features := make([]Feature, 0, len(suppressed))
	for _, c := range suppressed {
		if c.X < BriefPatch/2 || c.Y < BriefPatch/2 || c.X >= small.w-BriefPatch/2 || c.Y >= small.h-BriefPatch/2 {
			continue
		}
		features = append(features, Feature{
			X: c.X, Y: c.Y, Score: c.Score,
			Descriptor: brief(descBase, c.X, c.Y, offsets),
		})
	}
	return features
}

type grayImage struct {
	w, h int
	pix  []float64
}

func (g *grayImage) at(x, y int) float64 {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x >= g.w {
		x = g.w - 1
	}
	if y >= g.h {
		y = g.h - 1
	}
	return g.pix[y*g.w+x]
}

func toGray(img image.Image) *grayImage {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	g := &grayImage{w: w, h: h, pix: make([]float64, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, gr, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			g.pix[y*w+x] = (0.2126*float64(r) + 0.7152*float64(gr) + 0.0722*float64(bl)) / 65535
		}
	}
	return g
}

func downscale(g *grayImage, scale float64) *grayImage {
	if scale >= 1 {
		return g
	}
	nw, nh := int(float64(g.w)*scale), int(float64(g.h)*scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	src := image.NewGray16(image.Rect(0, 0, g.w, g.h))
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			src.SetGray16(x, y, color.Gray16{Y: uint16(g.pix[y*g.w+x] * 65535)})
		}
	}
	dst := image.NewGray16(image.Rect(0, 0, nw, nh))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	out := &grayImage{w: nw, h: nh, pix: make([]float64, nw*nh)}
	for y := 0; y < nh; y++ {
		for x := 0; x < nw; x++ {
			out.pix[y*nw+x] = float64(dst.Gray16At(x, y).Y) / 65535
		}
	}
	return out
}

func gaussianBlur(g *grayImage, sigma float64) *grayImage {
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

	tmp := &grayImage{w: g.w, h: g.h, pix: make([]float64, g.w*g.h)}
	parallel.Rows(g.h, func(y int) {
		for x := 0; x < g.w; x++ {
			var acc float64
			for k := -radius; k <= radius; k++ {
				acc += g.at(x+k, y) * kernel[k+radius]
			}
			tmp.pix[y*g.w+x] = acc
		}
	})
	out := &grayImage{w: g.w, h: g.h, pix: make([]float64, g.w*g.h)}
	parallel.Rows(g.h, func(y int) {
		for x := 0; x < g.w; x++ {
			var acc float64
			for k := -radius; k <= radius; k++ {
				acc += tmp.at(x, y+k) * kernel[k+radius]
			}
			out.pix[y*g.w+x] = acc
		}
	})
	return out
}
