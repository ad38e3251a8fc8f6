// Package adjust compiles a declarative adjustment document into the
// fixed-layout uniform block consumed by the GPU tiled processor (§4.5).
// The document is parsed loosely (unknown fields are ignored, missing
// fields keep their Defaults() values) and then run through a
// section-visibility map and a scale table
// before being packed into shader-space scalars.
package adjust

// Section names gate groups of fields: when a section is invisible every
// field it governs is forced to its documented default.
type Section string

const (
	SectionBasic   Section = "basic"
	SectionColor   Section = "color"
	SectionDetails Section = "details"
	SectionEffects Section = "effects"
	SectionCurves  Section = "curves"
)

// VisibilityMap reports whether a section's controls are active.
type VisibilityMap map[Section]bool

func (v VisibilityMap) visible(s Section) bool {
	if v == nil {
		return true
	}
	return v[s]
}

// CurvePoint is one control point of a tone curve.
type CurvePoint struct{ X, Y float64 }

// Curves holds up to 16 control points per channel (§4.5).
type Curves struct {
	Luma, Red, Green, Blue []CurvePoint
}

const MaxCurvePoints = 16

// HSLBand holds the hue/saturation/luminance offsets for one of the eight
// named colour bands.
type HSLBand struct {
	Hue, Saturation, Luminance float64
}

// Document is the loosely-parsed declarative adjustment input. Every
// field is a raw user-facing value (percent, EV, degrees) prior to scale-
// table division.
type Document struct {
	// Tone
	Exposure, Contrast, Highlights, Shadows, Whites, Blacks float64
	// Colour
	Saturation, Temperature, Tint, Vibrance float64
	// Detail
	Sharpness, LumaNoise, ColorNoise float64
	// Effects
	Clarity, Dehaze, Structure                               float64
	VignetteAmount, VignetteMidpoint, VignetteRoundness      float64
	VignetteFeather                                          float64
	GrainAmount, GrainSize, GrainRoughness                   float64
	// HSL, indexed by band name.
	HSL map[string]HSLBand
	// Colour grading wheels (shadows/midtones/highlights), each with
	// saturation/luminance/hue/blending/balance per §4.5.
	Grading map[string]GradingWheel
	// Curves
	Curves Curves
	// Masks, at most 16 admitted (§4.5).
	Masks []MaskAdjustment
}

// GradingWheel is one shadows/midtones/highlights colour-grading control.
type GradingWheel struct {
	Saturation, Luminance, Hue, Blending, Balance float64
}

// MaskAdjustment pairs a mask definition with a parallel adjustment
// block; masks never carry vignette or grain fields (§4.5).
type MaskAdjustment struct {
	MaskID     string
	Document   Document
}

const MaxVisibleMasks = 16

// HSLBands lists the eight named bands in their canonical order.
var HSLBands = []string{"reds", "oranges", "yellows", "greens", "aquas", "blues", "purples", "magentas"}

// Defaults produces a Document with every field at its documented
// default: zero everywhere except vignette midpoint/feather (50), vignette
// roundness (0), grain size (25), grain roughness (50), and colour-grading
// blending (50).
func Defaults() Document {
	d := Document{
		VignetteMidpoint:  50,
		VignetteRoundness: 0,
		VignetteFeather:   50,
		GrainSize:         25,
		GrainRoughness:    50,
	}
	d.Grading = map[string]GradingWheel{}
	for _, k := range []string{"shadows", "midtones", "highlights"} {
		d.Grading[k] = GradingWheel{Blending: 50}
	}
	d.HSL = map[string]HSLBand{}
	for _, b := range HSLBands {
		d.HSL[b] = HSLBand{}
	}
	return d
}

// applyVisibility zeroes (or resets to documented default) every field
// governed by an invisible section.
func applyVisibility(d Document, vis VisibilityMap) Document {
	if !vis.visible(SectionBasic) {
		d.Exposure, d.Contrast, d.Highlights = 0, 0, 0
		d.Shadows, d.Whites, d.Blacks = 0, 0, 0
	}
	if !vis.visible(SectionColor) {
		d.Saturation, d.Temperature, d.Tint, d.Vibrance = 0, 0, 0, 0
		d.HSL = Defaults().HSL
		d.Grading = Defaults().Grading
	}
	if !vis.visible(SectionDetails) {
		d.Sharpness, d.LumaNoise, d.ColorNoise = 0, 0, 0
	}
	if !vis.visible(SectionEffects) {
		defaults := Defaults()
		d.Clarity, d.Dehaze, d.Structure = 0, 0, 0
		d.VignetteAmount = 0
		d.VignetteMidpoint = defaults.VignetteMidpoint
		d.VignetteRoundness = defaults.VignetteRoundness
		d.VignetteFeather = defaults.VignetteFeather
		d.GrainAmount = 0
		d.GrainSize = defaults.GrainSize
		d.GrainRoughness = defaults.GrainRoughness
	}
	if !vis.visible(SectionCurves) {
		d.Curves = Curves{}
	}
	return d
}
