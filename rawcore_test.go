package rawcore_test

import (
	"strings"
	"testing"

	"github.com/rawforge/rawcore"
)

func uniformFrame(w, h int) *rawcore.RawFrame {
	data := make([]uint16, w*h)
	for i := range data {
		data[i] = 512
	}
	return &rawcore.RawFrame{
		Width:             w,
		Height:            h,
		CFA:               rawcore.RGGB,
		Black:             [3]float64{0, 0, 0},
		White:             [3]float64{1023, 1023, 1023},
		CameraMultipliers: [3]float64{2, 1, 1.5},
		CamToXYZ:          [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Data:              data,
	}
}

func TestDevelopProducesAnOpaqueImage(t *testing.T) {
	img, err := rawcore.Develop(uniformFrame(8, 8), rawcore.AlgorithmLinear)
	if err != nil {
		t.Fatalf("Develop: %v", err)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 {
			t.Fatalf("alpha at byte %d = %d, want 255", i, img.Pix[i])
		}
	}
}

func TestParseAndCompileAdjustmentsRoundTrip(t *testing.T) {
	doc, vis, err := rawcore.ParseAdjustments(strings.NewReader(`{"exposure": 1, "contrast": 50}`))
	if err != nil {
		t.Fatalf("ParseAdjustments: %v", err)
	}
	u := rawcore.CompileAdjustments(doc, vis)
	if u.Exposure != 1.0 {
		t.Fatalf("Exposure = %v, want 1.0", u.Exposure)
	}
	if u.Contrast != 0.5 {
		t.Fatalf("Contrast = %v, want 0.5", u.Contrast)
	}
}

func TestStitchRejectsFewerThanTwoImages(t *testing.T) {
	_, err := rawcore.Stitch(nil)
	if err == nil {
		t.Fatal("Stitch(nil) succeeded, want an error")
	}
}

func TestInpaintRGBFillsMaskedPixelsInPlace(t *testing.T) {
	w, h := 10, 10
	img := &rawcore.InpaintImage{Width: w, Height: h, Pix: make([]rawcore.InpaintPixel, w*h)}
	mask := make([]bool, w*h)
	for i := range img.Pix {
		img.Pix[i] = rawcore.InpaintPixel{R: 0.6, G: 0.6, B: 0.6}
	}
	img.Pix[5*w+5] = rawcore.InpaintPixel{}
	mask[5*w+5] = true

	rawcore.InpaintRGB(img, mask)

	if img.Pix[5*w+5].R < 0.3 {
		t.Fatalf("hole pixel after inpaint = %+v, want R close to surrounding 0.6", img.Pix[5*w+5])
	}
}
