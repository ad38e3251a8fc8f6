package adjust

import "testing"

func TestCompileScalesToneFields(t *testing.T) {
	doc := Defaults()
	doc.Contrast = 50
	doc.Shadows = 100
	u := Compile(doc, nil)
	if u.Contrast != 0.5 {
		t.Fatalf("Contrast = %v, want 0.5", u.Contrast)
	}
	if u.Shadows != 0.5 {
		t.Fatalf("Shadows = %v, want 0.5", u.Shadows)
	}
}

func TestCompileAppliesVisibilityDefaults(t *testing.T) {
	doc := Defaults()
	doc.VignetteAmount = 80
	doc.VignetteMidpoint = 10
	vis := VisibilityMap{SectionEffects: false}
	u := Compile(doc, vis)
	if u.VignetteAmount != 0 {
		t.Fatalf("VignetteAmount = %v, want 0 when effects hidden", u.VignetteAmount)
	}
	if u.VignetteMidpoint != 0.5 {
		t.Fatalf("VignetteMidpoint = %v, want 0.5 (default 50/100) when effects hidden", u.VignetteMidpoint)
	}
}

func TestCompileHSLBandOrderMatchesCanonicalList(t *testing.T) {
	doc := Defaults()
	band := doc.HSL["greens"]
	band.Hue = 10
	doc.HSL["greens"] = band
	u := Compile(doc, nil)
	if u.HSL[3].Hue != 3 {
		t.Fatalf("HSL[3] (greens).Hue = %v, want 3 (10*0.3)", u.HSL[3].Hue)
	}
}

func TestCompileTruncatesCurvesAt16Points(t *testing.T) {
	doc := Defaults()
	for i := 0; i < 20; i++ {
		doc.Curves.Luma = append(doc.Curves.Luma, CurvePoint{X: float64(i), Y: float64(i)})
	}
	u := Compile(doc, nil)
	if u.CurveLumaCount != MaxCurvePoints {
		t.Fatalf("CurveLumaCount = %d, want %d", u.CurveLumaCount, MaxCurvePoints)
	}
}

func TestCompileTruncatesMasksAt16(t *testing.T) {
	doc := Defaults()
	for i := 0; i < 20; i++ {
		doc.Masks = append(doc.Masks, MaskAdjustment{MaskID: "m", Document: Defaults()})
	}
	u := Compile(doc, nil)
	if u.MaskCount != MaxVisibleMasks {
		t.Fatalf("MaskCount = %d, want %d", u.MaskCount, MaxVisibleMasks)
	}
}

func TestCompileGradingBalanceUsesBalanceFieldNotHue(t *testing.T) {
	doc := Defaults()
	w := doc.Grading["shadows"]
	w.Hue = 270
	w.Balance = 40
	doc.Grading["shadows"] = w
	u := Compile(doc, nil)
	if u.Grading[0].Balance == float32(w.Hue/200) {
		t.Fatalf("Balance tracked Hue instead of Balance")
	}
}

func TestCompileGradingBalanceNeutralWheelMatchesSliderOnly(t *testing.T) {
	doc := Defaults()
	w := doc.Grading["midtones"]
	w.Balance = 40
	doc.Grading["midtones"] = w
	u := Compile(doc, nil)
	if u.Grading[1].Balance != float32(40.0/200) {
		t.Fatalf("Balance = %v, want %v for a wheel left at centre", u.Grading[1].Balance, float32(40.0/200))
	}
}

func TestCompileGradingBlendingDefaultsTo50Percent(t *testing.T) {
	doc := Defaults()
	u := Compile(doc, nil)
	for i, w := range u.Grading {
		if w.Blending != 0.5 {
			t.Fatalf("Grading[%d].Blending = %v, want 0.5", i, w.Blending)
		}
	}
}
