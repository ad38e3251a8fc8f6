// Package rawframe defines the decoded sensor array that every raw
// decoder (§4.2) produces and every developer path (§4.3) consumes.
package rawframe

import (
	"errors"
	"fmt"
)

// Pattern identifies the 2x2 repeating Bayer colour filter arrangement.
type Pattern uint8

const (
	RGGB Pattern = iota
	BGGR
	GRBG
	GBRG
)

func (p Pattern) String() string {
	switch p {
	case RGGB:
		return "RGGB"
	case BGGR:
		return "BGGR"
	case GRBG:
		return "GRBG"
	case GBRG:
		return "GBRG"
	default:
		return "unknown"
	}
}

// Orientation is the EXIF orientation tag (1-8); it selects one of the
// eight axis-swap/flip cases applied at the end of the developer pipeline.
type Orientation uint8

const (
	OrientationNormal     Orientation = 1
	OrientationFlipH      Orientation = 2
	Orientation180        Orientation = 3
	OrientationFlipV      Orientation = 4
	OrientationTranspose  Orientation = 5
	Orientation90         Orientation = 6
	OrientationTransverse Orientation = 7
	Orientation270        Orientation = 8
)

// Rect is the active-area crop rectangle within the full sensor array.
type Rect struct {
	Top, Right, Bottom, Left int
}

// Width returns the active area's pixel width.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the active area's pixel height.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Frame is the opaque container of an integer sensor array plus the
// sidecar fields needed to turn it into a developed image (§3 RawFrame).
type Frame struct {
	Width, Height int
	Active        Rect
	CFA           Pattern

	Black [3]float64
	White [3]float64

	// CameraMultipliers are the white-balance coefficients embedded in
	// the file (as-shot WB); normalised so the green coefficient is 1.
	CameraMultipliers [3]float64

	// CamToXYZ is the 3x3 camera-native-RGB to CIE XYZ matrix.
	CamToXYZ [3][3]float64

	Orientation Orientation

	// Data holds Width*Height raw sensor samples in row-major order.
	Data []uint16
}

// Errors returned by Validate.
var (
	ErrZeroDimension  = errors.New("rawframe: zero width or height")
	ErrSampleCount    = errors.New("rawframe: sample count does not match width*height")
	ErrLevelsNotFinite = errors.New("rawframe: black/white levels must be finite")
	ErrWhiteNotAboveBlack = errors.New("rawframe: white level must be greater than black level")
)

// Validate checks the invariants listed in §3: all per-channel levels are
// finite, white > black per channel, and width*height equals the sample
// count.
func (f *Frame) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return ErrZeroDimension
	}
	if len(f.Data) != f.Width*f.Height {
		return fmt.Errorf("%w: got %d, want %d", ErrSampleCount, len(f.Data), f.Width*f.Height)
	}
	for c := 0; c < 3; c++ {
		if !isFinite(f.Black[c]) || !isFinite(f.White[c]) {
			return ErrLevelsNotFinite
		}
		if f.White[c] <= f.Black[c] {
			return ErrWhiteNotAboveBlack
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return v == v && v < 1e308 && v > -1e308
}

// NormalizedCFA returns the frame's Bayer pattern, falling back to RGGB
// with a warning string when the pattern is unrecognised (§7.2 degraded
// input). A Pattern value is always one of the four known constants by
// construction in this package, so this mainly documents the contract for
// callers that decode a pattern identifier from file metadata.
func NormalizedCFA(raw int) (Pattern, string) {
	switch raw {
	case int(RGGB), int(BGGR), int(GRBG), int(GBRG):
		return Pattern(raw), ""
	default:
		return RGGB, fmt.Sprintf("rawframe: unknown Bayer pattern id %d, falling back to RGGB", raw)
	}
}
