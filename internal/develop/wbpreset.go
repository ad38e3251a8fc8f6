package develop

// WBPreset names a fixed white-balance multiplier set, offered as an
// alternative to a raw frame's embedded as-shot coefficients
// (RawFrame.CameraMultipliers). Selecting a preset is additive: the
// default path of using the frame's own coefficients is unchanged.
type WBPreset string

const (
	WBPresetCamera      WBPreset = "camera" // use RawFrame.CameraMultipliers unmodified
	WBPresetAuto        WBPreset = "auto"
	WBPresetDaylight    WBPreset = "daylight"
	WBPresetCloudy      WBPreset = "cloudy"
	WBPresetShade       WBPreset = "shade"
	WBPresetTungsten    WBPreset = "tungsten"
	WBPresetFluorescent WBPreset = "fluorescent"
	WBPresetFlash       WBPreset = "flash"
)

// wbPresetMultipliers holds the fixed R/G/B coefficient sets for every
// preset other than "camera" (which passes the frame's own coefficients
// through) and "auto" (computed per-image by internal/autoanalysis,
// not looked up here).
var wbPresetMultipliers = map[WBPreset][3]float64{
	WBPresetDaylight:    {1.00, 1.00, 1.00},
	WBPresetCloudy:      {1.08, 1.00, 0.88},
	WBPresetShade:       {1.15, 1.00, 0.80},
	WBPresetTungsten:    {0.65, 1.00, 1.55},
	WBPresetFluorescent: {0.85, 1.00, 1.35},
	WBPresetFlash:       {1.02, 1.00, 0.95},
}

// ResolveWBMultipliers returns the white-balance coefficients a
// developer call should use: the frame's own embedded coefficients for
// WBPresetCamera or an empty preset, a fixed lookup table entry for the
// other named presets, or autoMultipliers (as produced by
// internal/autoanalysis's brightest-pixel heuristic) for WBPresetAuto.
func ResolveWBMultipliers(frameWB [3]float64, preset WBPreset, autoMultipliers [3]float64) [3]float64 {
	switch preset {
	case "", WBPresetCamera:
		return frameWB
	case WBPresetAuto:
		return autoMultipliers
	default:
		if m, ok := wbPresetMultipliers[preset]; ok {
			return m
		}
		return frameWB
	}
}
