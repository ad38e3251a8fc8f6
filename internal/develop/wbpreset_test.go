package develop

import "testing"

func TestResolveWBMultipliersDefaultsToCamera(t *testing.T) {
	frameWB := [3]float64{2, 1, 1.5}
	got := ResolveWBMultipliers(frameWB, "", [3]float64{9, 9, 9})
	if got != frameWB {
		t.Fatalf("got %v, want frame's own coefficients %v", got, frameWB)
	}
}

func TestResolveWBMultipliersUsesPresetTable(t *testing.T) {
	frameWB := [3]float64{2, 1, 1.5}
	got := ResolveWBMultipliers(frameWB, WBPresetTungsten, [3]float64{})
	if got == frameWB {
		t.Fatalf("tungsten preset returned the frame's own coefficients unchanged")
	}
	if got[1] != 1 {
		t.Fatalf("preset green coefficient = %v, want 1", got[1])
	}
}

func TestResolveWBMultipliersAutoUsesSuppliedMultipliers(t *testing.T) {
	auto := [3]float64{1.2, 1, 0.9}
	got := ResolveWBMultipliers([3]float64{2, 1, 1.5}, WBPresetAuto, auto)
	if got != auto {
		t.Fatalf("got %v, want auto multipliers %v", got, auto)
	}
}

func TestFullWithWBAppliesPresetDeterministically(t *testing.T) {
	f := uniformFrame(8, 8)
	camera, err := FullWithWB(f, AlgorithmLinear, WBPresetCamera, [3]float64{})
	if err != nil {
		t.Fatalf("FullWithWB camera: %v", err)
	}
	tungsten, err := FullWithWB(f, AlgorithmLinear, WBPresetTungsten, [3]float64{})
	if err != nil {
		t.Fatalf("FullWithWB tungsten: %v", err)
	}
	if string(camera.Pix) == string(tungsten.Pix) {
		t.Fatalf("tungsten preset produced identical output to the camera's own WB")
	}
}
