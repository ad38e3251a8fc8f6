// Package ljpeg drives the lossless-JPEG predictor schemes used by raw
// sensor payloads (§4.2): 1/2/3/4-component interleaving, the YUV 4:2:2
// and 4:2:0 variants, the Hasselblad flat predictor, and the DJI
// interleaved predictor-6 variant. Every scheme shares the same
// canonical-Huffman difference decoding (internal/huffman) and differs
// only in how predictions are seeded from previously decoded neighbours.
package ljpeg

import (
	"errors"
	"fmt"

	"github.com/rawforge/rawcore/internal/bitio"
	"github.com/rawforge/rawcore/internal/huffman"
)

// Component describes one interleaved component's DC Huffman table.
type Component struct {
	DCTable *huffman.Table
}

// SOF mirrors the subset of a JPEG start-of-frame segment the LJPEG
// predictors need.
type SOF struct {
	Width, Height int
	Precision     int
	Components    []Component
}

// Decompressor drives the predictor schemes over one entropy-coded scan.
type Decompressor struct {
	Buffer []byte
	SOF    SOF
	// PointTransform is the per-sample right-shift applied after Huffman
	// decoding (§4.2).
	PointTransform int
}

// Errors returned by the decode functions.
var (
	ErrDimensionMismatch = errors.New("ljpeg: decode target dimensions do not fit the scan")
	ErrNoComponents      = errors.New("ljpeg: SOF declares no components")
)

func (d *Decompressor) newPump() bitio.Pump { return bitio.NewJPEGPump(d.Buffer) }

func (d *Decompressor) basePrediction() int32 {
	return 1 << uint(d.SOF.Precision-1)
}

// Decode1Component implements the single-component predictor (§4.2): the
// first pixel seeds from 2^(precision-1), the first row predicts from its
// left neighbour, and every other row predicts from the pixel directly
// above at column 0 and from the left neighbour elsewhere. skip_x codes
// per row (SOF width - requested width) are read and discarded to honour
// the sensor array's true width.
func (d *Decompressor) Decode1Component(out []uint16, x, stripWidth, width, height int) error {
	if d.SOF.Width < width || d.SOF.Height < height {
		return fmt.Errorf("%w: sof %dx%d into %dx%d", ErrDimensionMismatch, d.SOF.Width, d.SOF.Height, width, height)
	}
	if len(d.SOF.Components) < 1 {
		return ErrNoComponents
	}
	htable := d.SOF.Components[0].DCTable
	pump := d.newPump()
	pt := d.PointTransform

	out[x] = uint16((d.basePrediction() + htable.Decode(pump)) >> uint(pt))
	skipX := d.SOF.Width - width

	for row := 0; row < height; row++ {
		startCol := x
		if row == 0 {
			startCol = x + 1
		}
		for col := startCol; col < width+x; col++ {
			var p int32
			if col == x {
				p = int32(out[(row-1)*stripWidth+x])
			} else {
				p = int32(out[row*stripWidth+col-1])
			}
			diff := htable.Decode(pump)
			out[row*stripWidth+col] = uint16((p + diff) >> uint(pt))
		}
		for i := 0; i < skipX; i++ {
			htable.Decode(pump)
		}
	}
	return nil
}

// Decode2Components implements the 2-component interleaved predictor.
func (d *Decompressor) Decode2Components(out []uint16, x, stripWidth, width, height int) error {
	if d.SOF.Width*2 < width || d.SOF.Height < height {
		return fmt.Errorf("%w: sof %dx%d into %dx%d", ErrDimensionMismatch, d.SOF.Width*2, d.SOF.Height, width, height)
	}
	if len(d.SOF.Components) < 2 {
		return ErrNoComponents
	}
	h1, h2 := d.SOF.Components[0].DCTable, d.SOF.Components[1].DCTable
	pump := d.newPump()
	pt := d.PointTransform
	base := d.basePrediction()

	out[x] = uint16((base + h1.Decode(pump)) >> uint(pt))
	out[x+1] = uint16((base + h2.Decode(pump)) >> uint(pt))
	skipX := d.SOF.Width - width/2

	for row := 0; row < height; row++ {
		startCol := x
		if row == 0 {
			startCol = x + 2
		}
		for col := startCol; col < width+x; col += 2 {
			var p1, p2 int32
			if col == x {
				p1 = int32(out[(row-1)*stripWidth+x])
				p2 = int32(out[(row-1)*stripWidth+1+x])
			} else {
				p1 = int32(out[row*stripWidth+col-2])
				p2 = int32(out[row*stripWidth+col-1])
			}
			d1 := h1.Decode(pump)
			d2 := h2.Decode(pump)
			out[row*stripWidth+col] = uint16((p1 + d1) >> uint(pt))
			out[row*stripWidth+col+1] = uint16((p2 + d2) >> uint(pt))
		}
		for i := 0; i < skipX; i++ {
			h1.Decode(pump)
			h2.Decode(pump)
		}
	}
	return nil
}

// Decode3Components implements the 3-component interleaved predictor.
func (d *Decompressor) Decode3Components(out []uint16, x, stripWidth, width, height int) error {
	if d.SOF.Width*3 < width || d.SOF.Height < height {
		return fmt.Errorf("%w: sof %dx%d into %dx%d", ErrDimensionMismatch, d.SOF.Width*3, d.SOF.Height, width, height)
	}
	if len(d.SOF.Components) < 3 {
		return ErrNoComponents
	}
	h1, h2, h3 := d.SOF.Components[0].DCTable, d.SOF.Components[1].DCTable, d.SOF.Components[2].DCTable
	pump := d.newPump()
	pt := d.PointTransform
	base := d.basePrediction()

	out[x] = uint16((base + h1.Decode(pump)) >> uint(pt))
	out[x+1] = uint16((base + h2.Decode(pump)) >> uint(pt))
	out[x+2] = uint16((base + h3.Decode(pump)) >> uint(pt))
	skipX := d.SOF.Width - width/3

	for row := 0; row < height; row++ {
		startCol := x
		if row == 0 {
			startCol = x + 3
		}
		for col := startCol; col < width+x; col += 3 {
			var pos int
			if col == x {
				pos = (row-1)*stripWidth + x
			} else {
				pos = row*stripWidth + col - 3
			}
			p1, p2, p3 := int32(out[pos]), int32(out[pos+1]), int32(out[pos+2])
			d1 := h1.Decode(pump)
			d2 := h2.Decode(pump)
			d3 := h3.Decode(pump)
			out[row*stripWidth+col] = uint16((p1 + d1) >> uint(pt))
			out[row*stripWidth+col+1] = uint16((p2 + d2) >> uint(pt))
			out[row*stripWidth+col+2] = uint16((p3 + d3) >> uint(pt))
		}
		for i := 0; i < skipX; i++ {
			h1.Decode(pump)
			h2.Decode(pump)
			h3.Decode(pump)
		}
	}
	return nil
}

// Decode4Components implements the 4-component interleaved predictor
// (unpadded: no stripWidth/x offset, used for CMYK-style sensor dumps).
func (d *Decompressor) Decode4Components(out []uint16, width, height int) error {
	if d.SOF.Width*4 < width || d.SOF.Height < height {
		return fmt.Errorf("%w: sof %dx%d into %dx%d", ErrDimensionMismatch, d.SOF.Width*4, d.SOF.Height, width, height)
	}
	if len(d.SOF.Components) < 4 {
		return ErrNoComponents
	}
	h1, h2, h3, h4 := d.SOF.Components[0].DCTable, d.SOF.Components[1].DCTable, d.SOF.Components[2].DCTable, d.SOF.Components[3].DCTable
	pump := d.newPump()
	pt := d.PointTransform
	base := d.basePrediction()

	out[0] = uint16((base + h1.Decode(pump)) >> uint(pt))
	out[1] = uint16((base + h2.Decode(pump)) >> uint(pt))
	out[2] = uint16((base + h3.Decode(pump)) >> uint(pt))
	out[3] = uint16((base + h4.Decode(pump)) >> uint(pt))
	skipX := d.SOF.Width - width/4

	for row := 0; row < height; row++ {
		startCol := 0
		if row == 0 {
			startCol = 4
		}
		for col := startCol; col < width; col += 4 {
			var pos int
			if col == 0 {
				pos = (row - 1) * width
			} else {
				pos = row*width + col - 4
			}
			p1, p2, p3, p4 := int32(out[pos]), int32(out[pos+1]), int32(out[pos+2]), int32(out[pos+3])
			d1 := h1.Decode(pump)
			d2 := h2.Decode(pump)
			d3 := h3.Decode(pump)
			d4 := h4.Decode(pump)
			out[row*width+col] = uint16((p1 + d1) >> uint(pt))
			out[row*width+col+1] = uint16((p2 + d2) >> uint(pt))
			out[row*width+col+2] = uint16((p3 + d3) >> uint(pt))
			out[row*width+col+3] = uint16((p4 + d4) >> uint(pt))
		}
		for i := 0; i < skipX; i++ {
			h1.Decode(pump)
			h2.Decode(pump)
			h3.Decode(pump)
			h4.Decode(pump)
		}
	}
	return nil
}
