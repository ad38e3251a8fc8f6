package rawcore

import (
	"image"
	"io"

	"github.com/rawforge/rawcore/internal/adjust"
	"github.com/rawforge/rawcore/internal/develop"
	"github.com/rawforge/rawcore/internal/inpaint"
	"github.com/rawforge/rawcore/internal/panorama"
	"github.com/rawforge/rawcore/internal/rawframe"
)

// Re-exported so callers never need to import an internal package
// directly (§6: the core speaks only in in-memory buffers at its
// boundary).
type (
	// RawFrame is the decoded sensor array plus sidecar fields a
	// developer call consumes (§3).
	RawFrame = rawframe.Frame
	// BayerPattern identifies the sensor's 2x2 colour filter arrangement.
	BayerPattern = rawframe.Pattern
	// Algorithm selects the demosaic method used by Develop.
	Algorithm = develop.Algorithm
	// WhiteBalancePreset names a fixed white-balance multiplier set, an
	// alternative to a frame's embedded as-shot coefficients.
	WhiteBalancePreset = develop.WBPreset
	// AdjustmentDocument is the loosely-parsed declarative adjustment
	// input (§3).
	AdjustmentDocument = adjust.Document
	// SectionVisibility reports whether a document section's controls
	// are active; an invisible section's fields compile to their
	// documented default.
	SectionVisibility = adjust.VisibilityMap
	// UniformBlock is the fixed-layout structure handed to the GPU
	// tiled processor (§3, §6).
	UniformBlock = adjust.UniformBlock
	// PanoramaImage is one input photograph to Stitch.
	PanoramaImage = panorama.Image
	// PanoramaResult is the outcome of Stitch.
	PanoramaResult = panorama.Result
	// InpaintImage is a mutable RGB plane inpainted in place by
	// InpaintRGB.
	InpaintImage = inpaint.Image
	// InpaintPixel is one inpainted RGB sample.
	InpaintPixel = inpaint.RGB
)

const (
	AlgorithmLinear = develop.AlgorithmLinear
	AlgorithmMenon  = develop.AlgorithmMenon

	WBPresetCamera      = develop.WBPresetCamera
	WBPresetAuto        = develop.WBPresetAuto
	WBPresetDaylight    = develop.WBPresetDaylight
	WBPresetCloudy      = develop.WBPresetCloudy
	WBPresetShade       = develop.WBPresetShade
	WBPresetTungsten    = develop.WBPresetTungsten
	WBPresetFluorescent = develop.WBPresetFluorescent
	WBPresetFlash       = develop.WBPresetFlash

	RGGB = rawframe.RGGB
	BGGR = rawframe.BGGR
	GRBG = rawframe.GRBG
	GBRG = rawframe.GBRG
)

// Develop runs the full-resolution raw development pipeline (§4.3):
// demosaic with algo, black/white normalisation, white balance using
// the frame's own embedded coefficients, camera-to-sRGB colour matrix,
// gamma encoding, and EXIF orientation.
func Develop(f *RawFrame, algo Algorithm) (*image.NRGBA, error) {
	return develop.Full(f, algo)
}

// DevelopWithWhiteBalance is Develop with an explicit white-balance
// preset in place of the frame's embedded coefficients.
// autoMultipliers is only consulted for WBPresetAuto.
func DevelopWithWhiteBalance(f *RawFrame, algo Algorithm, preset WhiteBalancePreset, autoMultipliers [3]float64) (*image.NRGBA, error) {
	return develop.FullWithWB(f, algo, preset, autoMultipliers)
}

// DevelopFast runs the 2x2-binned developer path used for responsive
// previews (§4.3, §4.6 Lifecycle).
func DevelopFast(f *RawFrame) (*image.NRGBA, error) {
	return develop.Fast(f)
}

// DevelopThumbnail runs the 4x4-binned developer path used for thumbnail
// generation (§4.3).
func DevelopThumbnail(f *RawFrame) (*image.NRGBA, error) {
	return develop.Thumbnail(f)
}

// ParseAdjustments decodes a declarative JSON adjustment document into
// a strict Document plus its section-visibility map (§3, §9's
// permissive-intermediate-representation design note). Unknown keys are
// ignored; missing keys adopt the defaults in §4.5.
func ParseAdjustments(r io.Reader) (AdjustmentDocument, SectionVisibility, error) {
	return adjust.Parse(r)
}

// CompileAdjustments packs a visibility-resolved adjustment document
// into the fixed-layout UniformBlock the GPU tiled processor consumes
// (§4.5).
func CompileAdjustments(doc AdjustmentDocument, vis SectionVisibility) UniformBlock {
	return adjust.Compile(doc, vis)
}

// DefaultAdjustments returns a Document with every field at its
// documented default (§4.5).
func DefaultAdjustments() AdjustmentDocument {
	return adjust.Defaults()
}

// Stitch runs the full panorama pipeline (§4.11): FAST+BRIEF feature
// detection, ratio-test matching, RANSAC homography estimation, a
// maximum-weight spanning tree over the pairwise matches, and
// progressive seam-blended composition.
func Stitch(images []PanoramaImage) (*PanoramaResult, error) {
	return panorama.Stitch(images)
}

// InpaintRGB fills every pixel where mask is true using Telea's fast
// marching algorithm (§4.10), mutating img in place.
func InpaintRGB(img *InpaintImage, mask []bool) {
	inpaint.Run(img, mask)
}
