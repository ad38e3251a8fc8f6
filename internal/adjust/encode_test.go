package adjust

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestEncodeProducesExactlyUniformBlockSizeBytes(t *testing.T) {
	u := Compile(Defaults(), nil)
	buf := u.Encode()
	if len(buf) != UniformBlockSize {
		t.Fatalf("len(Encode()) = %d, want UniformBlockSize %d", len(buf), UniformBlockSize)
	}
}

func TestEncodeToneFieldsLandAtTheStructsOffset(t *testing.T) {
	doc := Defaults()
	doc.Contrast = 50
	u := Compile(doc, nil)
	buf := u.Encode()

	got := math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8]))
	if got != u.Contrast {
		t.Fatalf("Contrast byte[4:8] decoded to %v, want %v", got, u.Contrast)
	}
}

func TestEncodePad0IsZeroEvenWithNonDefaultAdjustments(t *testing.T) {
	doc := Defaults()
	doc.Exposure, doc.Contrast, doc.Shadows = 2, 80, -100
	u := Compile(doc, nil)
	buf := u.Encode()

	// Pad0 follows the 6-field tone group: bytes [24:40).
	for i := 24; i < 40; i++ {
		if buf[i] != 0 {
			t.Fatalf("Pad0 byte %d = %d, want 0", i, buf[i])
		}
	}
}

func TestTileOffsetByteOffsetsAreZeroBeforeAnyTileIsDispatched(t *testing.T) {
	u := Compile(Defaults(), nil)
	buf := u.Encode()
	x, y := TileOffsetByteOffsets()

	if binary.LittleEndian.Uint32(buf[x:]) != 0 || binary.LittleEndian.Uint32(buf[y:]) != 0 {
		t.Fatalf("tile offset bytes at (%d,%d) are not zero before tiling", x, y)
	}
}

func TestEncodeMaskCountAndFirstMaskRoundTrip(t *testing.T) {
	doc := Defaults()
	mask := MaskAdjustment{Document: Defaults()}
	mask.Document.Exposure = 3
	doc.Masks = []MaskAdjustment{mask}
	u := Compile(doc, nil)
	buf := u.Encode()

	maskCountOffset := UniformBlockSize - 4 - MaxVisibleMasks*fieldsPerMask*4
	count := binary.LittleEndian.Uint32(buf[maskCountOffset:])
	if count != 1 {
		t.Fatalf("mask count = %d, want 1", count)
	}

	firstMaskExposureOffset := maskCountOffset + 4
	got := math.Float32frombits(binary.LittleEndian.Uint32(buf[firstMaskExposureOffset:]))
	if got != u.Masks[0].Exposure {
		t.Fatalf("first mask's exposure decoded to %v, want %v", got, u.Masks[0].Exposure)
	}
}
