package ljpeg

// Decode422 implements the YUV 4:2:2 predictor (§4.2): four codes per
// block (two luma deltas, one Cb, one Cr) produce (y1, y2) luma samples
// sharing one Cb/Cr pair, written as two YCbCr triples (six output
// values) per block.
func (d *Decompressor) Decode422(out []uint16, width, height int) error {
	if d.SOF.Width*3 != width || d.SOF.Height != height {
		return ErrDimensionMismatch
	}
	if len(d.SOF.Components) < 3 {
		return ErrNoComponents
	}
	h1, h2, h3 := d.SOF.Components[0].DCTable, d.SOF.Components[1].DCTable, d.SOF.Components[2].DCTable
	pump := d.newPump()
	base := int32(1) << uint(d.SOF.Precision-d.PointTransform-1)

	y1 := base + h1.Decode(pump)
	y2 := y1 + h1.Decode(pump)
	cb := base + h2.Decode(pump)
	cr := base + h3.Decode(pump)
	setYUV422(out, 0, 0, width, y1, y2, cb, cr)

	for row := 0; row < height; row++ {
		startCol := 0
		if row == 0 {
			startCol = 6
		}
		for col := startCol; col < width; col += 6 {
			var pos int
			if col == 0 {
				pos = (row - 1) * width
			} else {
				pos = row*width + col - 3
			}
			py, pcb, pcr := int32(out[pos]), int32(out[pos+1]), int32(out[pos+2])
			y1 := py + h1.Decode(pump)
			y2 := y1 + h1.Decode(pump)
			cb := pcb + h2.Decode(pump)
			cr := pcr + h3.Decode(pump)
			setYUV422(out, row, col, width, y1, y2, cb, cr)
		}
	}
	return nil
}

func setYUV422(out []uint16, row, col, width int, y1, y2, cb, cr int32) {
	pix1 := row*width + col
	pix2 := pix1 + 3
	out[pix1+0], out[pix1+1], out[pix1+2] = uint16(y1), uint16(cb), uint16(cr)
	out[pix2+0], out[pix2+1], out[pix2+2] = uint16(y2), uint16(cb), uint16(cr)
}

// Decode420 implements the YUV 4:2:0 predictor (§4.2): four Y samples fill
// a 2x2 luma grid sharing one Cb/Cr pair; predictors come from two rows up.
func (d *Decompressor) Decode420(out []uint16, width, height int) error {
	if d.SOF.Width*3 != width || d.SOF.Height != height {
		return ErrDimensionMismatch
	}
	if len(d.SOF.Components) < 3 {
		return ErrNoComponents
	}
	h1, h2, h3 := d.SOF.Components[0].DCTable, d.SOF.Components[1].DCTable, d.SOF.Components[2].DCTable
	pump := d.newPump()
	base := int32(1) << uint(d.SOF.Precision-d.PointTransform-1)

	y1 := base + h1.Decode(pump)
	y2 := y1 + h1.Decode(pump)
	y3 := y2 + h1.Decode(pump)
	y4 := y3 + h1.Decode(pump)
	cb := base + h2.Decode(pump)
	cr := base + h3.Decode(pump)
	setYUV420(out, 0, 0, width, y1, y2, y3, y4, cb, cr)

	for row := 0; row < height; row += 2 {
		startCol := 0
		if row == 0 {
			startCol = 6
		}
		for col := startCol; col < width; col += 6 {
			var pos int
			if col == 0 {
				pos = (row - 2) * width
			} else {
				pos = (row+1)*width + col - 3
			}
			py, pcb, pcr := int32(out[pos]), int32(out[pos+1]), int32(out[pos+2])
			y1 := py + h1.Decode(pump)
			y2 := y1 + h1.Decode(pump)
			y3 := y2 + h1.Decode(pump)
			y4 := y3 + h1.Decode(pump)
			cb := pcb + h2.Decode(pump)
			cr := pcr + h3.Decode(pump)
			setYUV420(out, row, col, width, y1, y2, y3, y4, cb, cr)
		}
	}
	return nil
}

func setYUV420(out []uint16, row, col, width int, y1, y2, y3, y4, cb, cr int32) {
	pix1 := row*width + col
	pix2 := pix1 + 3
	pix3 := (row+1)*width + col
	pix4 := pix3 + 3
	out[pix1+0], out[pix1+1], out[pix1+2] = uint16(y1), uint16(cb), uint16(cr)
	out[pix2+0], out[pix2+1], out[pix2+2] = uint16(y2), uint16(cb), uint16(cr)
	out[pix3+0], out[pix3+1], out[pix3+2] = uint16(y3), uint16(cb), uint16(cr)
	out[pix4+0], out[pix4+1], out[pix4+2] = uint16(y4), uint16(cb), uint16(cr)
}
