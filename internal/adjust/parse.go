package adjust

import (
	"encoding/json"
	"io"
)

// wireDocument mirrors Document's shape for JSON decoding. Every field is
// a pointer or a nil-able container so a missing key (nil) can be told
// apart from an explicit zero; Parse starts from Defaults() and only
// overwrites fields JSON actually populated. Unknown keys are ignored
// by encoding/json's default behaviour (§4.5, §6).
type wireDocument struct {
	Exposure, Contrast, Highlights, Shadows, Whites, Blacks *float64
	Saturation, Temperature, Tint, Vibrance                 *float64
	Sharpness                                               *float64
	LumaNoise                                               *float64 `json:"luminanceNoise"`
	ColorNoise                                               *float64 `json:"colorNoise"`
	Clarity, Dehaze, Structure                               *float64
	VignetteAmount                                           *float64 `json:"vignetteAmount"`
	VignetteMidpoint                                         *float64 `json:"vignetteMidpoint"`
	VignetteRoundness                                        *float64 `json:"vignetteRoundness"`
	VignetteFeather                                          *float64 `json:"vignetteFeather"`
	GrainAmount                                              *float64 `json:"grainAmount"`
	GrainSize                                                *float64 `json:"grainSize"`
	GrainRoughness                                           *float64 `json:"grainRoughness"`

	HSL     map[string]wireHSLBand      `json:"hsl"`
	Grading map[string]wireGradingWheel `json:"colorGrading"`
	Curves  *wireCurves                 `json:"curves"`
	Masks   []wireMaskAdjustment        `json:"masks"`

	SectionVisibility map[string]bool `json:"sectionVisibility"`
}

type wireHSLBand struct {
	Hue, Saturation, Luminance *float64
}

type wireGradingWheel struct {
	Saturation, Luminance, Hue, Blending, Balance *float64
}

type wireCurves struct {
	Luma, Red, Green, Blue []wireCurvePoint
}

type wireCurvePoint struct {
	X, Y float64
}

type wireMaskAdjustment struct {
	MaskID   string `json:"id"`
	Document wireDocument
}

// Parse decodes a JSON adjustment document into a strict Document plus
// its section-visibility map. Missing keys keep Defaults(); unrecognised
// keys are silently dropped by json.Unmarshal. This is the permissive
// intermediate-representation layer the design notes (§9) call for,
// sitting in front of Compile's strict compile step.
func Parse(r io.Reader) (Document, VisibilityMap, error) {
	var w wireDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&w); err != nil {
		if err == io.EOF {
			return Defaults(), nil, nil
		}
		return Document{}, nil, err
	}
	return w.resolve(), w.visibility(), nil
}

func (w wireDocument) visibility() VisibilityMap {
	if w.SectionVisibility == nil {
		return nil
	}
	vis := VisibilityMap{}
	for k, v := range w.SectionVisibility {
		vis[Section(k)] = v
	}
	return vis
}

func (w wireDocument) resolve() Document {
	d := Defaults()
	setf(&d.Exposure, w.Exposure)
	setf(&d.Contrast, w.Contrast)
	setf(&d.Highlights, w.Highlights)
	setf(&d.Shadows, w.Shadows)
	setf(&d.Whites, w.Whites)
	setf(&d.Blacks, w.Blacks)
	setf(&d.Saturation, w.Saturation)
	setf(&d.Temperature, w.Temperature)
	setf(&d.Tint, w.Tint)
	setf(&d.Vibrance, w.Vibrance)
	setf(&d.Sharpness, w.Sharpness)
	setf(&d.LumaNoise, w.LumaNoise)
	setf(&d.ColorNoise, w.ColorNoise)
	setf(&d.Clarity, w.Clarity)
	setf(&d.Dehaze, w.Dehaze)
	setf(&d.Structure, w.Structure)
	setf(&d.VignetteAmount, w.VignetteAmount)
	setf(&d.VignetteMidpoint, w.VignetteMidpoint)
	setf(&d.VignetteRoundness, w.VignetteRoundness)
	setf(&d.VignetteFeather, w.VignetteFeather)
	setf(&d.GrainAmount, w.GrainAmount)
	setf(&d.GrainSize, w.GrainSize)
	setf(&d.GrainRoughness, w.GrainRoughness)

	for name, band := range w.HSL {
		existing := d.HSL[name]
		setf(&existing.Hue, band.Hue)
		setf(&existing.Saturation, band.Saturation)
		setf(&existing.Luminance, band.Luminance)
		d.HSL[name] = existing
	}
	for name, wheel := range w.Grading {
		existing := d.Grading[name]
		setf(&existing.Saturation, wheel.Saturation)
		setf(&existing.Luminance, wheel.Luminance)
		setf(&existing.Hue, wheel.Hue)
		setf(&existing.Blending, wheel.Blending)
		setf(&existing.Balance, wheel.Balance)
		d.Grading[name] = existing
	}
	if w.Curves != nil {
		d.Curves = Curves{
			Luma:  toCurvePoints(w.Curves.Luma),
			Red:   toCurvePoints(w.Curves.Red),
			Green: toCurvePoints(w.Curves.Green),
			Blue:  toCurvePoints(w.Curves.Blue),
		}
	}
	for _, m := range w.Masks {
		d.Masks = append(d.Masks, MaskAdjustment{
			MaskID:   m.MaskID,
			Document: m.Document.resolve(),
		})
	}
	return d
}

func setf(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func toCurvePoints(pts []wireCurvePoint) []CurvePoint {
	if pts == nil {
		return nil
	}
	out := make([]CurvePoint, len(pts))
	for i, p := range pts {
		out[i] = CurvePoint{X: p.X, Y: p.Y}
	}
	return out
}
