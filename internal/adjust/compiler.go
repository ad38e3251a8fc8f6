package adjust

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// UniformBlock is the fixed-layout structure handed to the GPU tiled
// processor (§4.5, §4.7). Field order matches the shader's expected
// binding-2 layout; TileOffsetX/Y are set per tile by the dispatcher in
// internal/gputile, not by the compiler. The three Pad groups are the
// scalar pads the layout requires after the tone group, after
// colour-grading, and after the global block (§6); Compile never writes
// to them, so they stay zero, and Encode packs them as zero bytes.
type UniformBlock struct {
	Exposure, Contrast, Highlights, Shadows, Whites, Blacks float32
	Pad0                                                    [4]float32

	Saturation, Temperature, Tint, Vibrance             float32
	Sharpness, LumaNoise, ColorNoise                     float32
	Clarity, Dehaze, Structure                           float32
	VignetteAmount, VignetteMidpoint, VignetteRoundness  float32
	VignetteFeather                                      float32
	GrainAmount, GrainSize, GrainRoughness               float32

	HSL [8]HSLUniform

	Grading [3]GradingUniform
	Pad1    [2]float32

	CurveLumaCount, CurveRedCount, CurveGreenCount, CurveBlueCount int32
	CurveLuma, CurveRed, CurveGreen, CurveBlue                     [MaxCurvePoints][2]float32

	TileOffsetX, TileOffsetY int32
	Pad2                     float32

	MaskCount int32
	Masks     [MaxVisibleMasks]MaskUniform
}

// HSLUniform is one band's scaled hue/saturation/luminance offsets.
type HSLUniform struct {
	Hue, Saturation, Luminance float32
}

// GradingUniform is one colour-grading wheel's scaled fields.
type GradingUniform struct {
	Saturation, Luminance, Blending, Balance float32
}

// MaskUniform mirrors a MaskAdjustment's compiled, scaled block. Masks
// never carry vignette or grain fields.
type MaskUniform struct {
	Exposure, Contrast, Highlights, Shadows, Whites, Blacks float32
	Saturation, Temperature, Tint, Vibrance                 float32
	Sharpness, LumaNoise, ColorNoise                        float32
	Clarity, Dehaze, Structure                               float32
}

// Compile applies the scale table (§4.5) to a visibility-resolved
// document and packs the result into a UniformBlock. Masks beyond
// MaxVisibleMasks are dropped (and would be reported by the caller via
// len(doc.Masks) if it cares to check).
func Compile(doc Document, vis VisibilityMap) UniformBlock {
	doc = applyVisibility(doc, vis)

	var u UniformBlock
	u.Exposure = float32(doc.Exposure / 1)
	u.Contrast = float32(doc.Contrast / 100)
	u.Highlights = float32(doc.Highlights / 100)
	u.Shadows = float32(doc.Shadows / 200)
	u.Whites = float32(doc.Whites / 30)
	u.Blacks = float32(doc.Blacks / 60)

	u.Saturation = float32(doc.Saturation / 80)
	u.Temperature = float32(doc.Temperature / 30)
	u.Tint = float32(doc.Tint / 200)
	u.Vibrance = float32(doc.Vibrance / 80)

	u.Sharpness = float32(doc.Sharpness / 40)
	u.LumaNoise = float32(doc.LumaNoise / 100)
	u.ColorNoise = float32(doc.ColorNoise / 100)

	u.Clarity = float32(doc.Clarity / 100)
	u.Dehaze = float32(doc.Dehaze / 750)
	u.Structure = float32(doc.Structure / 100)
	u.VignetteAmount = float32(doc.VignetteAmount / 100)
	u.VignetteMidpoint = float32(doc.VignetteMidpoint / 100)
	u.VignetteRoundness = float32(doc.VignetteRoundness / 100)
	u.VignetteFeather = float32(doc.VignetteFeather / 100)
	u.GrainAmount = float32(doc.GrainAmount / 200)
	u.GrainSize = float32(doc.GrainSize / 50)
	u.GrainRoughness = float32(doc.GrainRoughness / 100)

	for i, name := range HSLBands {
		band := doc.HSL[name]
		u.HSL[i] = HSLUniform{
			Hue:        float32(band.Hue * 0.3),
			Saturation: float32(band.Saturation / 100),
			Luminance:  float32(band.Luminance / 100),
		}
	}

	for i, name := range []string{"shadows", "midtones", "highlights"} {
		w := doc.Grading[name]
		u.Grading[i] = GradingUniform{
			Saturation: float32(w.Saturation / 500),
			Luminance:  float32(w.Luminance / 500),
			Blending:   float32(w.Blending / 100),
			Balance:    float32(wheelBalance(w) / 200),
		}
	}

	packCurve(doc.Curves.Luma, &u.CurveLumaCount, &u.CurveLuma)
	packCurve(doc.Curves.Red, &u.CurveRedCount, &u.CurveRed)
	packCurve(doc.Curves.Green, &u.CurveGreenCount, &u.CurveGreen)
	packCurve(doc.Curves.Blue, &u.CurveBlueCount, &u.CurveBlue)

	n := len(doc.Masks)
	if n > MaxVisibleMasks {
		n = MaxVisibleMasks
	}
	u.MaskCount = int32(n)
	for i := 0; i < n; i++ {
		u.Masks[i] = compileMaskBlock(doc.Masks[i].Document)
	}

	return u
}

// wheelBalance folds a colour-grading wheel's hue/saturation click
// position into its scalar balance slider. The wheel position is a
// point in the Lab a*/b* plane (hue is the angle, saturation the
// radius); go-colorful gamut-clamps it before the blue-yellow (b*)
// component is added to the user's balance value, so an extreme wheel
// position never implies an unrealisable colour.
func wheelBalance(w GradingWheel) float64 {
	if w.Hue == 0 && w.Saturation == 0 {
		return w.Balance
	}
	angle := w.Hue * math.Pi / 180
	radius := clamp01(w.Saturation/100) * 0.4
	lab := colorful.Lab(0.5, radius*math.Cos(angle), radius*math.Sin(angle)).Clamped()
	_, _, b := lab.Lab()
	return w.Balance + b*100
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

func packCurve(points []CurvePoint, count *int32, dst *[MaxCurvePoints][2]float32) {
	n := len(points)
	if n > MaxCurvePoints {
		n = MaxCurvePoints
	}
	*count = int32(n)
	for i := 0; i < n; i++ {
		dst[i] = [2]float32{float32(points[i].X), float32(points[i].Y)}
	}
}

func compileMaskBlock(doc Document) MaskUniform {
	return MaskUniform{
		Exposure:    float32(doc.Exposure / 1),
		Contrast:    float32(doc.Contrast / 100),
		Highlights:  float32(doc.Highlights / 100),
		Shadows:     float32(doc.Shadows / 200),
		Whites:      float32(doc.Whites / 30),
		Blacks:      float32(doc.Blacks / 60),
		Saturation:  float32(doc.Saturation / 80),
		Temperature: float32(doc.Temperature / 30),
		Tint:        float32(doc.Tint / 200),
		Vibrance:    float32(doc.Vibrance / 80),
		Sharpness:   float32(doc.Sharpness / 40),
		LumaNoise:   float32(doc.LumaNoise / 100),
		ColorNoise:  float32(doc.ColorNoise / 100),
		Clarity:     float32(doc.Clarity / 100),
		Dehaze:      float32(doc.Dehaze / 750),
		Structure:   float32(doc.Structure / 100),
	}
}
