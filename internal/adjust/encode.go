package adjust

import (
	"encoding/binary"
	"math"
)

// fieldsPerCurve is the number of float32 words one curve's points
// occupy: MaxCurvePoints (x, y) pairs.
const fieldsPerCurve = MaxCurvePoints * 2

// fieldsPerMask is the number of float32 words one MaskUniform occupies.
const fieldsPerMask = 16

// Word counts for each section, in encoding order, named so
// TileOffsetByteOffsets can compute an exact byte offset by summing a
// prefix of this list instead of re-deriving it by hand.
const (
	toneWords       = 6  // Exposure..Blacks
	pad0Words       = 4  // four scalar pads after the tone group (§6)
	colourWords     = 4  // Saturation..Vibrance
	detailWords     = 3  // Sharpness..ColorNoise
	effectsWords    = 3  // Clarity..Structure
	vignetteWords   = 4  // VignetteAmount..VignetteFeather
	grainWords      = 3  // GrainAmount..GrainRoughness
	hslWords        = 8 * 3
	gradingWords    = 3 * 4
	pad1Words       = 2 // two scalar pads after colour-grading (§6)
	curveCountWords = 4
	curvePointWords = fieldsPerCurve * 4
	tileOffsetWords = 2
	pad2Words       = 1 // one scalar pad after the global block (§6)
	maskCountWords  = 1
	maskWords       = MaxVisibleMasks * fieldsPerMask

	preTileWords = toneWords + pad0Words + colourWords + detailWords + effectsWords +
		vignetteWords + grainWords + hslWords + gradingWords + pad1Words +
		curveCountWords + curvePointWords
)

// UniformBlockSize is the packed byte size of the shader's binding-2
// uniform block (§6): every field is a 32-bit float or unsigned 32-bit
// integer, so this is simply 4 bytes times the total word count.
const UniformBlockSize = 4 * (preTileWords + tileOffsetWords + pad2Words + maskCountWords + maskWords)

// cursor is a sequential byte writer, mirroring the explicit
// binary.LittleEndian.PutUint32-at-an-offset style used for the RIFF
// header packing this block's layout is modeled on.
type cursor struct {
	buf []byte
	off int
}

func (c *cursor) f32(v float32) {
	binary.LittleEndian.PutUint32(c.buf[c.off:], math.Float32bits(v))
	c.off += 4
}

func (c *cursor) i32(v int32) {
	binary.LittleEndian.PutUint32(c.buf[c.off:], uint32(v))
	c.off += 4
}

func (c *cursor) floats(vs ...float32) {
	for _, v := range vs {
		c.f32(v)
	}
}

// Encode packs u into the binding-2 byte layout the GPU tiled processor
// (and internal/gputile's UniformCloner, which patches TileOffsetX/Y by
// byte offset after this call) consume. Field order and padding match
// the struct declaration exactly.
func (u UniformBlock) Encode() []byte {
	buf := make([]byte, UniformBlockSize)
	c := &cursor{buf: buf}

	c.floats(u.Exposure, u.Contrast, u.Highlights, u.Shadows, u.Whites, u.Blacks)
	c.floats(u.Pad0[:]...)

	c.floats(u.Saturation, u.Temperature, u.Tint, u.Vibrance)
	c.floats(u.Sharpness, u.LumaNoise, u.ColorNoise)
	c.floats(u.Clarity, u.Dehaze, u.Structure)
	c.floats(u.VignetteAmount, u.VignetteMidpoint, u.VignetteRoundness)
	c.f32(u.VignetteFeather)
	c.floats(u.GrainAmount, u.GrainSize, u.GrainRoughness)

	for _, h := range u.HSL {
		c.floats(h.Hue, h.Saturation, h.Luminance)
	}

	for _, g := range u.Grading {
		c.floats(g.Saturation, g.Luminance, g.Blending, g.Balance)
	}
	c.floats(u.Pad1[:]...)

	c.i32(u.CurveLumaCount)
	c.i32(u.CurveRedCount)
	c.i32(u.CurveGreenCount)
	c.i32(u.CurveBlueCount)
	encodeCurve(c, u.CurveLuma)
	encodeCurve(c, u.CurveRed)
	encodeCurve(c, u.CurveGreen)
	encodeCurve(c, u.CurveBlue)

	c.i32(u.TileOffsetX)
	c.i32(u.TileOffsetY)
	c.f32(u.Pad2)

	c.i32(u.MaskCount)
	for _, m := range u.Masks {
		encodeMaskBlock(c, m)
	}

	return buf
}

// TileOffsetByteOffsets returns the byte offsets of TileOffsetX and
// TileOffsetY within an encoded UniformBlock, for internal/gputile's
// UniformCloner to patch per tile without re-encoding the whole block.
func TileOffsetByteOffsets() (x, y int) {
	x = preTileWords * 4
	y = x + 4
	return x, y
}

func encodeCurve(c *cursor, points [MaxCurvePoints][2]float32) {
	for _, p := range points {
		c.f32(p[0])
		c.f32(p[1])
	}
}

func encodeMaskBlock(c *cursor, m MaskUniform) {
	c.floats(m.Exposure, m.Contrast, m.Highlights, m.Shadows, m.Whites, m.Blacks)
	c.floats(m.Saturation, m.Temperature, m.Tint, m.Vibrance)
	c.floats(m.Sharpness, m.LumaNoise, m.ColorNoise)
	c.floats(m.Clarity, m.Dehaze, m.Structure)
}
