package develop

import (
	"image"

	"github.com/rawforge/rawcore/internal/rawframe"
)

// applyOrientation implements the eight EXIF orientation cases (§4.3
// step 7): identity, horizontal flip, 180 rotation, vertical flip,
// transpose, 90 rotation, transverse, and 270 rotation.
func applyOrientation(src *image.NRGBA, o rawframe.Orientation) (*image.NRGBA, error) {
	code := int(o)
	if code == 0 {
		code = 1
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()

	switch code {
	case 1: // identity
		return src, nil
	case 2: // horizontal flip
		return remap(src, w, h, func(x, y int) (int, int) { return w - 1 - x, y }), nil
	case 3: // 180
		return remap(src, w, h, func(x, y int) (int, int) { return w - 1 - x, h - 1 - y }), nil
	case 4: // vertical flip
		return remap(src, w, h, func(x, y int) (int, int) { return x, h - 1 - y }), nil
	case 5: // transpose
		return remapSwapped(src, w, h, func(x, y int) (int, int) { return y, x }), nil
	case 6: // rotate 90 CW
		return remapSwapped(src, w, h, func(x, y int) (int, int) { return h - 1 - y, x }), nil
	case 7: // transverse
		return remapSwapped(src, w, h, func(x, y int) (int, int) { return h - 1 - y, w - 1 - x }), nil
	case 8: // rotate 270 CW
		return remapSwapped(src, w, h, func(x, y int) (int, int) { return y, w - 1 - x }), nil
	default:
		return nil, ErrUnsupportedOrientation
	}
}

// remap builds a same-size destination where dst(x,y) = src(f(x,y)).
func remap(src *image.NRGBA, w, h int, f func(x, y int) (int, int)) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx, sy := f(x, y)
			copy(dst.Pix[y*dst.Stride+x*4:y*dst.Stride+x*4+4], src.Pix[sy*src.Stride+sx*4:sy*src.Stride+sx*4+4])
		}
	}
	return dst
}

// remapSwapped builds a width/height-swapped destination for the four
// orientation cases that include a transpose.
func remapSwapped(src *image.NRGBA, w, h int, f func(x, y int) (int, int)) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := f(x, y)
			copy(dst.Pix[dy*dst.Stride+dx*4:dy*dst.Stride+dx*4+4], src.Pix[y*src.Stride+x*4:y*src.Stride+x*4+4])
		}
	}
	return dst
}
