package ljpeg

import (
	"github.com/rawforge/rawcore/internal/bitio"
	"github.com/rawforge/rawcore/internal/pool"
)

// DecodeHasselblad implements the flat predictor (§4.2): two parallel DC
// accumulators, both seeded at 0x8000, consume a (length, signed
// mantissa) pair per sample. Output is written as raw 16-bit values with
// no sign expansion at the predictor stage, and saturates at the uint16
// range rather than wrapping (§9 Open Question).
func (d *Decompressor) DecodeHasselblad(out []uint16, width int) error {
	if len(d.SOF.Components) < 1 {
		return ErrNoComponents
	}
	htable := d.SOF.Components[0].DCTable
	pump := bitio.NewMSB32Pump(d.Buffer)

	for row := 0; row+width <= len(out); row += width {
		line := out[row : row+width]
		p1, p2 := int32(0x8000), int32(0x8000)
		for o := 0; o+2 <= len(line); o += 2 {
			cat1, shift1 := htable.Len(pump)
			cat2, shift2 := htable.Len(pump)
			p1 += htable.DiffFromLen(cat1, shift1, pump)
			p2 += htable.DiffFromLen(cat2, shift2, pump)
			line[o] = saturateUint16(p1)
			line[o+1] = saturateUint16(p2)
		}
	}
	return nil
}

func saturateUint16(v int32) uint16 {
	if v < 0 {
		return 0
	}
	if v > 0xFFFF {
		return 0xFFFF
	}
	return uint16(v)
}

// DecodePredictor6Flat implements the predictor used by the DJI
// interleaved path (§4.2): pixel (0,0) seeds from 2^(precision-1), row 0
// predicts from its left neighbour, column 0 of later rows predicts from
// the pixel above, and every other pixel predicts
// pred = B + ((A - C) >> 1) where A=left, B=above, C=above-left.
func (d *Decompressor) DecodePredictor6Flat(out []uint16, width, height int) error {
	if len(d.SOF.Components) < 1 {
		return ErrNoComponents
	}
	htable := d.SOF.Components[0].DCTable
	pump := d.newPump()
	base := d.basePrediction()
	pt := d.PointTransform

	diff0 := htable.Decode(pump)
	out[0] = uint16((base + diff0) >> uint(pt))

	for x := 1; x < width; x++ {
		pred := int32(out[x-1])
		diff := htable.Decode(pump)
		out[x] = uint16((pred + diff) >> uint(pt))
	}

	for y := 1; y < height; y++ {
		rowStart := y * width
		prevRowStart := (y - 1) * width

		pred := int32(out[prevRowStart])
		diff := htable.Decode(pump)
		out[rowStart] = uint16((pred + diff) >> uint(pt))

		for x := 1; x < width; x++ {
			a := int32(out[rowStart+x-1])
			b := int32(out[prevRowStart+x])
			c := int32(out[prevRowStart+x-1])
			pred := b + ((a - c) >> 1)
			diff := htable.Decode(pump)
			out[rowStart+x] = uint16((pred + diff) >> uint(pt))
		}
	}
	return nil
}

// DecodeDJIInterleaved runs Predictor6Flat over the full SOF-declared
// width x height grid, then scatters the two row-halves of each decoded
// row into consecutive destination rows (deinterleaving).
func (d *Decompressor) DecodeDJIInterleaved(out []uint16, x, stripWidth, width int) error {
	sofW, sofH := d.SOF.Width, d.SOF.Height
	temp := pool.GetUint16(sofW * sofH)
	defer pool.PutUint16(temp)
	if err := d.DecodePredictor6Flat(temp, sofW, sofH); err != nil {
		return err
	}

	for y := 0; y < sofH; y++ {
		srcRowStart := y * sofW
		dstRow1 := (y*2)*stripWidth + x
		dstRow2 := (y*2+1)*stripWidth + x

		copy(out[dstRow1:dstRow1+width], temp[srcRowStart:srcRowStart+width])
		copy(out[dstRow2:dstRow2+width], temp[srcRowStart+width:srcRowStart+sofW])
	}
	return nil
}
