package adjust

import (
	"strings"
	"testing"
)

func TestParseScenario3FromSpec(t *testing.T) {
	const doc = `{
		"exposure": 1,
		"contrast": 50,
		"curves": {"luma": [{"X":0,"Y":0},{"X":1,"Y":1}]},
		"sectionVisibility": {"basic": true, "curves": true}
	}`
	d, vis, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	u := Compile(d, vis)
	if u.Exposure != 1.0 {
		t.Fatalf("Exposure = %v, want 1.0", u.Exposure)
	}
	if u.Contrast != 0.5 {
		t.Fatalf("Contrast = %v, want 0.5", u.Contrast)
	}
	if u.CurveLumaCount != 2 {
		t.Fatalf("CurveLumaCount = %d, want 2", u.CurveLumaCount)
	}
	if u.CurveLuma[0] != [2]float32{0, 0} || u.CurveLuma[1] != [2]float32{1, 1} {
		t.Fatalf("CurveLuma = %v, want [(0,0) (1,1)]", u.CurveLuma[:2])
	}
}

func TestParseIgnoresUnknownFields(t *testing.T) {
	const doc = `{"exposure": 2, "somethingMadeUp": {"nested": true}}`
	d, _, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.Exposure != 2 {
		t.Fatalf("Exposure = %v, want 2", d.Exposure)
	}
}

func TestParseMissingFieldsAdoptDefaults(t *testing.T) {
	d, _, err := Parse(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.VignetteMidpoint != 50 {
		t.Fatalf("VignetteMidpoint = %v, want default 50", d.VignetteMidpoint)
	}
	if d.Grading["shadows"].Blending != 50 {
		t.Fatalf("Grading.Blending = %v, want default 50", d.Grading["shadows"].Blending)
	}
}

func TestParseEmptyBodyYieldsDefaults(t *testing.T) {
	d, vis, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if vis != nil {
		t.Fatalf("vis = %v, want nil for empty body", vis)
	}
	if d.VignetteFeather != 50 {
		t.Fatalf("VignetteFeather = %v, want 50", d.VignetteFeather)
	}
}
