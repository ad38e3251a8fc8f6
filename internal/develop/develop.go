// Package develop implements the raw-to-sRGB developer pipeline (§4.3):
// demosaic, black/white normalization, white balance, camera-to-sRGB
// colour matrix, gamma encoding, and EXIF orientation. Three entry points
// share this colour math and differ only in the pixel grid they operate
// over: Full runs the chosen demosaic algorithm at full resolution, Fast
// bins 2x2 before demosaicing, and Thumbnail bins 4x4.
package develop

import (
	"errors"
	"image"

	"github.com/rawforge/rawcore/internal/colormatrix"
	"github.com/rawforge/rawcore/internal/demosaic"
	"github.com/rawforge/rawcore/internal/parallel"
	"github.com/rawforge/rawcore/internal/rawframe"
)

// Algorithm selects the demosaic method used by Full.
type Algorithm int

const (
	AlgorithmLinear Algorithm = iota
	AlgorithmMenon
)

// ErrUnsupportedOrientation is returned for an orientation value outside
// the eight EXIF cases.
var ErrUnsupportedOrientation = errors.New("develop: unsupported orientation")

// Full develops the frame at full resolution using algo, using the
// frame's own embedded white-balance coefficients.
func Full(f *rawframe.Frame, algo Algorithm) (*image.NRGBA, error) {
	return FullWithWB(f, algo, WBPresetCamera, [3]float64{})
}

// FullWithWB develops the frame at full resolution using algo, resolving
// the white-balance coefficients from preset instead of always using the
// frame's embedded values (§4.3 step 3, supplemented per original_source's
// WB-preset selector). autoMultipliers is only consulted for
// WBPresetAuto.
func FullWithWB(f *rawframe.Frame, algo Algorithm, preset WBPreset, autoMultipliers [3]float64) (*image.NRGBA, error) {
	mosaic := toPlane(f)
	var rgb *demosaic.RGB
	if algo == AlgorithmMenon {
		rgb = demosaic.Menon2007(mosaic, f.CFA, true)
	} else {
		rgb = demosaic.Linear(mosaic, f.CFA)
	}
	mosaic.Release()
	img, err := colorizePlaneWB(f, f.Width, f.Height, rgb, preset, autoMultipliers)
	rgb.Release()
	return img, err
}

// Fast develops the frame after a 2x2 bin, trading detail for speed,
// using the frame's own embedded white-balance coefficients.
func Fast(f *rawframe.Frame) (*image.NRGBA, error) {
	return FastWithWB(f, WBPresetCamera, [3]float64{})
}

// FastWithWB is Fast with an explicit white-balance preset (see FullWithWB).
func FastWithWB(f *rawframe.Frame, preset WBPreset, autoMultipliers [3]float64) (*image.NRGBA, error) {
	binned, cfa := binFrame(f, 2)
	rgb := demosaic.Linear(binned, cfa)
	w, h := binned.Width, binned.Height
	binned.Release()
	img, err := colorizePlaneWB(f, w, h, rgb, preset, autoMultipliers)
	rgb.Release()
	return img, err
}

// Thumbnail develops the frame after a 4x4 bin, using the frame's own
// embedded white-balance coefficients.
func Thumbnail(f *rawframe.Frame) (*image.NRGBA, error) {
	return ThumbnailWithWB(f, WBPresetCamera, [3]float64{})
}

// ThumbnailWithWB is Thumbnail with an explicit white-balance preset
// (see FullWithWB).
func ThumbnailWithWB(f *rawframe.Frame, preset WBPreset, autoMultipliers [3]float64) (*image.NRGBA, error) {
	binned, cfa := binFrame(f, 4)
	rgb := demosaic.Linear(binned, cfa)
	w, h := binned.Width, binned.Height
	binned.Release()
	img, err := colorizePlaneWB(f, w, h, rgb, preset, autoMultipliers)
	rgb.Release()
	return img, err
}

func toPlane(f *rawframe.Frame) *demosaic.Plane {
	p := demosaic.NewPlane(f.Width, f.Height)
	for i, v := range f.Data {
		p.Pix[i] = float32(v)
	}
	return p
}

// binFrame averages n x n blocks of same-colour sites together, producing
// a smaller mosaic with the 2x2 Bayer period preserved (so the result
// can still be demosaiced normally). n must be even.
func binFrame(f *rawframe.Frame, n int) (*demosaic.Plane, rawframe.Pattern) {
	ow, oh := f.Width/n, f.Height/n
	ow -= ow % 2
	oh -= oh % 2
	out := demosaic.NewPlane(ow, oh)

	parallel.Rows(oh, func(y int) {
		for x := 0; x < ow; x++ {
			var sum float32
			var count int
			for by := 0; by < 2*n; by += 2 {
				for bx := 0; bx < 2*n; bx += 2 {
					sx := x/2*2*n + bx + (x % 2)
					sy := y/2*2*n + by + (y % 2)
					if sx < f.Width && sy < f.Height {
						sum += float32(f.Data[sy*f.Width+sx])
						count++
					}
				}
			}
			if count > 0 {
				out.Pix[y*ow+x] = sum / float32(count)
			}
		}
	})
	return out, f.CFA
}

func colorizePlaneWB(f *rawframe.Frame, w, h int, rgb *demosaic.RGB, preset WBPreset, autoMultipliers [3]float64) (*image.NRGBA, error) {
	resolved := ResolveWBMultipliers(f.CameraMultipliers, preset, autoMultipliers)
	wbR, wbG, wbB := normalizedWB(resolved)
	mat := colormatrix.CameraToSRGB(f.CamToXYZ)

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	parallel.Rows(h, func(y int) {
		for x := 0; x < w; x++ {
			r := normalize(rgb.R.Pix[y*w+x], f.Black[0], f.White[0]) * wbR
			g := normalize(rgb.G.Pix[y*w+x], f.Black[1], f.White[1]) * wbG
			b := normalize(rgb.B.Pix[y*w+x], f.Black[2], f.White[2]) * wbB

			r, g, b = clampHighlights(r, g, b)
			rr, gg, bb := colormatrix.Apply(mat, r, g, b)

			pix := dst.Pix[y*dst.Stride+x*4:]
			pix[0] = to8bit(colormatrix.Gamma(clamp01(rr)))
			pix[1] = to8bit(colormatrix.Gamma(clamp01(gg)))
			pix[2] = to8bit(colormatrix.Gamma(clamp01(bb)))
			pix[3] = 255
		}
	})

	return applyOrientation(dst, f.Orientation)
}

func normalize(v float32, black, white float64) float64 {
	return (float64(v) - black) / (white - black)
}

// normalizedWB scales the camera's RGB multipliers so the green
// coefficient equals 1 (§4.3 step 3).
func normalizedWB(m [3]float64) (r, g, b float64) {
	if m[1] == 0 {
		return m[0], 1, m[2]
	}
	return m[0] / m[1], 1, m[2] / m[1]
}

// clampHighlights desaturates toward white (per-channel clamp to the
// channel maximum) rather than hard-clipping, avoiding hue shifts in
// blown-out regions (§4.3 step 4).
func clampHighlights(r, g, b float64) (float64, float64, float64) {
	max := r
	if g > max {
		max = g
	}
	if b > max {
		max = b
	}
	if max <= 1.0 {
		return r, g, b
	}
	return r / max, g / max, b / max
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8bit(v float64) uint8 {
	return uint8(v*255 + 0.5)
}
