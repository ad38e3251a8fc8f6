package panorama

import (
	"image"
	"math"

	"github.com/rawforge/rawcore/internal/parallel"
)

// FeatherWidth is the nominal seam feather width in pixels; it widens
// 5x over regions the low-detail mask flags as near-uniform (§4.11).
const FeatherWidth = 100.0

// LowDetailWindowRadius and LowDetailVarianceThreshold parameterise the
// integral-image window variance test that flags low-detail regions
// (§4.11).
const (
	LowDetailWindowRadius     = 16
	LowDetailVarianceThreshold = 60.0
)

// rgbBuf is a contiguous 8-bit RGB buffer used for full-resolution
// panorama composition; it avoids the per-pixel interface dispatch of
// image.Image.At in the hot warp/blend loops.
type rgbBuf struct {
	w, h int
	pix  []uint8 // w*h*3, row-major
}

func toRGBBuf(img image.Image) *rgbBuf {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := &rgbBuf{w: w, h: h, pix: make([]uint8, w*h*3)}
	parallel.Rows(h, func(y int) {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := (y*w + x) * 3
			out.pix[i] = uint8(r >> 8)
			out.pix[i+1] = uint8(g >> 8)
			out.pix[i+2] = uint8(bl >> 8)
		}
	})
	return out
}

func (b *rgbBuf) at(x, y int) (r, g, bl uint8) {
	i := (y*b.w + x) * 3
	return b.pix[i], b.pix[i+1], b.pix[i+2]
}

func (b *rgbBuf) set(x, y int, r, g, bl uint8) {
	i := (y*b.w + x) * 3
	b.pix[i], b.pix[i+1], b.pix[i+2] = r, g, bl
}

// bilinear samples buf at the fractional (x, y) with edge clamping,
// matching get_interpolated_pixel's boundary policy (§4.11).
func (b *rgbBuf) bilinear(x, y float64) (r, g, bl float64) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	xf := int(math.Floor(x))
	yf := int(math.Floor(y))
	if xf+1 >= b.w || yf+1 >= b.h {
		cx, cy := clampInt(xf, 0, b.w-1), clampInt(yf, 0, b.h-1)
		r8, g8, b8 := b.at(cx, cy)
		return float64(r8), float64(g8), float64(b8)
	}
	dx, dy := x-float64(xf), y-float64(yf)
	r00, g00, b00 := b.at(xf, yf)
	r10, g10, b10 := b.at(xf+1, yf)
	r01, g01, b01 := b.at(xf, yf+1)
	r11, g11, b11 := b.at(xf+1, yf+1)

	lerp := func(c00, c10, c01, c11 uint8) float64 {
		top := float64(c00)*(1-dx) + float64(c10)*dx
		bottom := float64(c01)*(1-dx) + float64(c11)*dx
		return top*(1-dy) + bottom*dy
	}
	return lerp(r00, r10, r01, r11), lerp(g00, g10, g01, g11), lerp(b00, b10, b01, b11)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// lowDetailMask flags pixels whose LowDetailWindowRadius window has
// variance under LowDetailVarianceThreshold, using two integral images
// (sum and sum-of-squares) so each window query is O(1) (§4.11).
func lowDetailMask(buf *rgbBuf) []bool {
	w, h := buf.w, buf.h
	gray := make([]float64, w*h)
	parallel.Rows(h, func(y int) {
		for x := 0; x < w; x++ {
			r, g, b := buf.at(x, y)
			gray[y*w+x] = 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
		}
	})

	sat := make([]float64, w*h)
	satSq := make([]float64, w*h)
	for y := 0; y < h; y++ {
		var rowSum, rowSumSq float64
		for x := 0; x < w; x++ {
			v := gray[y*w+x]
			rowSum += v
			rowSumSq += v * v
			idx := y*w + x
			sat[idx] = rowSum
			satSq[idx] = rowSumSq
			if y > 0 {
				sat[idx] += sat[(y-1)*w+x]
				satSq[idx] += satSq[(y-1)*w+x]
			}
		}
	}

	at := func(s []float64, x, y int) float64 {
		if x < 0 || y < 0 {
			return 0
		}
		return s[y*w+x]
	}

	r := LowDetailWindowRadius
	mask := make([]bool, w*h)
	parallel.Rows(h, func(y int) {
		for x := 0; x < w; x++ {
			x1, y1 := x-r-1, y-r-1
			x2, y2 := x+r, y+r
			if x2 > w-1 {
				x2 = w - 1
			}
			if y2 > h-1 {
				y2 = h - 1
			}
			n := float64((x2 - x1) * (y2 - y1))
			if n < 1 {
				continue
			}
			sum := at(sat, x2, y2) + at(sat, x1, y1) - at(sat, x2, y1) - at(sat, x1, y2)
			sumSq := at(satSq, x2, y2) + at(satSq, x1, y1) - at(satSq, x2, y1) - at(satSq, x1, y2)
			mean := sum / n
			variance := sumSq/n - mean*mean
			mask[y*w+x] = variance < LowDetailVarianceThreshold
		}
	})
	return mask
}

// canvasBounds transforms every corner of every placed image under its
// global homography and returns the axis-aligned bounding box.
func canvasBounds(images []Image, globals map[int]Homography, order []int) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, idx := range order {
		h := globals[idx]
		b := images[idx].Full.Bounds()
		w, hgt := float64(b.Dx()), float64(b.Dy())
		corners := [4][2]float64{{0, 0}, {w, 0}, {w, hgt}, {0, hgt}}
		for _, c := range corners {
			tx, ty := h.Apply(c[0], c[1])
			minX, maxX = math.Min(minX, tx), math.Max(maxX, tx)
			minY, maxY = math.Min(minY, ty), math.Max(maxY, ty)
		}
	}
	return
}

// seamOrientation picks which axis the DP seam should run along, based
// on whether the added image's footprint displaces the overlap centre
// more horizontally or vertically (§4.11).
type seamOrientation int

const (
	seamVertical seamOrientation = iota
	seamHorizontal
)

// Compose renders the panorama canvas: the first image in order is
// placed by inverse-warping from the canvas grid, then every subsequent
// image is progressively merged with an adaptive DP seam and cosine
// feather blend (§4.11).
func Compose(images []Image, globals map[int]Homography, order []int) (*image.NRGBA, error) {
	if len(order) == 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0)), nil
	}

	minX, minY, maxX, maxY := canvasBounds(images, globals, order)
	offsetX, offsetY := -minX, -minY
	outW := int(math.Ceil(maxX - minX))
	outH := int(math.Ceil(maxY - minY))
	if outW <= 0 || outH <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0)), nil
	}

	pano := &rgbBuf{w: outW, h: outH, pix: make([]uint8, outW*outH*3)}
	panoMask := make([]bool, outW*outH)

	baseIdx := order[0]
	baseBuf := toRGBBuf(images[baseIdx].Full)
	hBaseInv, ok := globals[baseIdx].Invert()
	if !ok {
		return nil, ErrSingularHomography
	}
	parallel.Rows(outH, func(y int) {
		for x := 0; x < outW; x++ {
			sx, sy := hBaseInv.Apply(float64(x)-offsetX, float64(y)-offsetY)
			if sx >= 0 && sx < float64(baseBuf.w) && sy >= 0 && sy < float64(baseBuf.h) {
				r, g, b := baseBuf.bilinear(sx, sy)
				pano.set(x, y, uint8(r+0.5), uint8(g+0.5), uint8(b+0.5))
				panoMask[y*outW+x] = true
			}
		}
	})

	for _, idx := range order[1:] {
		addBuf := toRGBBuf(images[idx].Full)
		hAdd := globals[idx]
		hAddInv, ok := hAdd.Invert()
		if !ok {
			continue
		}
		lowDetail := lowDetailMask(addBuf)
		mergeImage(pano, panoMask, addBuf, lowDetail, hAdd, hAddInv, offsetX, offsetY)
	}

	out := image.NewNRGBA(image.Rect(0, 0, outW, outH))
	parallel.Rows(outH, func(y int) {
		for x := 0; x < outW; x++ {
			r, g, b := pano.at(x, y)
			o := out.PixOffset(x, y)
			out.Pix[o], out.Pix[o+1], out.Pix[o+2], out.Pix[o+3] = r, g, b, 255
		}
	})
	return out, nil
}

// mergeImage warps addBuf into pano, finding an adaptive seam across the
// overlap region and cosine-feathering the blend across it (§4.11).
func mergeImage(pano *rgbBuf, panoMask []bool, addBuf *rgbBuf, lowDetail []bool, hAdd, hAddInv Homography, offsetX, offsetY float64) {
	w, h := pano.w, pano.h

	orientation, seamCoords, dominant, hasSeam := findAdaptiveSeam(pano, panoMask, addBuf, hAdd, hAddInv, offsetX, offsetY)

	parallel.Rows(h, func(y int) {
		for x := 0; x < w; x++ {
			sx, sy := hAddInv.Apply(float64(x)-offsetX, float64(y)-offsetY)
			isOnAdd := sx >= 0 && sx < float64(addBuf.w) && sy >= 0 && sy < float64(addBuf.h)
			isOnPano := panoMask[y*w+x]
			if !isOnAdd && !isOnPano {
				continue
			}

			if isOnAdd && isOnPano && hasSeam {
				var seamVal, dist float64
				switch orientation {
				case seamVertical:
					seamVal = float64(seamCoords[y])
					dist = float64(x) - seamVal
				case seamHorizontal:
					seamVal = float64(seamCoords[x])
					dist = float64(y) - seamVal
				}

				sxu := clampInt(int(sx+0.5), 0, addBuf.w-1)
				syu := clampInt(int(sy+0.5), 0, addBuf.h-1)
				feather := FeatherWidth
				if lowDetail[syu*addBuf.w+sxu] {
					feather *= 5
				}

				if math.Abs(dist) < feather/2 {
					pr, pg, pb := pano.at(x, y)
					ar, ag, ab := addBuf.bilinear(sx, sy)
					var alpha float64
					if dominant {
						alpha = (dist + feather/2) / feather
					} else {
						alpha = (-dist + feather/2) / feather
					}
					if alpha < 0 {
						alpha = 0
					}
					if alpha > 1 {
						alpha = 1
					}
					weightAdd := (1 - math.Cos(alpha*math.Pi)) / 2
					weightPano := 1 - weightAdd
					pano.set(x, y,
						uint8(float64(pr)*weightPano+ar*weightAdd+0.5),
						uint8(float64(pg)*weightPano+ag*weightAdd+0.5),
						uint8(float64(pb)*weightPano+ab*weightAdd+0.5),
					)
				} else {
					var newOwns bool
					if orientation == seamVertical {
						newOwns = (dominant && float64(x) > seamVal) || (!dominant && float64(x) < seamVal)
					} else {
						newOwns = (dominant && float64(y) > seamVal) || (!dominant && float64(y) < seamVal)
					}
					if newOwns {
						ar, ag, ab := addBuf.bilinear(sx, sy)
						pano.set(x, y, uint8(ar+0.5), uint8(ag+0.5), uint8(ab+0.5))
					}
				}
			} else if isOnAdd {
				ar, ag, ab := addBuf.bilinear(sx, sy)
				pano.set(x, y, uint8(ar+0.5), uint8(ag+0.5), uint8(ab+0.5))
				panoMask[y*w+x] = true
			}
		}
	})
}

// findAdaptiveSeam locates the overlap bounding box between the
// accumulated panorama and the incoming image's warped footprint, picks
// an orientation by comparing the centre displacement, and runs the DP
// seam search along that axis (§4.11).
func findAdaptiveSeam(pano *rgbBuf, panoMask []bool, addBuf *rgbBuf, hAdd, hAddInv Homography, offsetX, offsetY float64) (seamOrientation, []int, bool, bool) {
	w, h := pano.w, pano.h
	minOX, maxOX, minOY, maxOY := w, -1, h, -1
	hasOverlap := false

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !panoMask[y*w+x] {
				continue
			}
			sx, sy := hAddInv.Apply(float64(x)-offsetX, float64(y)-offsetY)
			if sx >= 0 && sx < float64(addBuf.w) && sy >= 0 && sy < float64(addBuf.h) {
				hasOverlap = true
				if x < minOX {
					minOX = x
				}
				if x > maxOX {
					maxOX = x
				}
				if y < minOY {
					minOY = y
				}
				if y > maxOY {
					maxOY = y
				}
			}
		}
	}
	if !hasOverlap {
		return seamVertical, nil, true, false
	}

	centerSX, centerSY := float64(addBuf.w)/2, float64(addBuf.h)/2
	tcx, tcy := hAdd.Apply(centerSX, centerSY)
	centerAddX, centerAddY := tcx+offsetX, tcy+offsetY

	centerOverlapX := float64(minOX+maxOX) / 2
	centerOverlapY := float64(minOY+maxOY) / 2

	dx := centerAddX - centerOverlapX
	dy := centerAddY - centerOverlapY

	if math.Abs(dx) > math.Abs(dy) {
		seam := seamDPVertical(pano, panoMask, addBuf, hAddInv, offsetX, offsetY)
		if len(seam) == 0 {
			return seamVertical, nil, true, false
		}
		return seamVertical, seam, dx > 0, true
	}
	seam := seamDPHorizontal(pano, panoMask, addBuf, hAddInv, offsetX, offsetY)
	if len(seam) == 0 {
		return seamHorizontal, nil, true, false
	}
	return seamHorizontal, seam, dy > 0, true
}

const infCost = math.MaxFloat64

// seamDPVertical finds one seam column per output row by dynamic
// programming over per-pixel colour L2 energy in the overlap, costs
// propagating top-to-bottom with neighbour ties broken straight-first
// then left/right (matching the reference's up/up_left/up_right order),
// and clamps to the terminal seam value outside the overlap's row range
// (§4.11 scenario 6).
func seamDPVertical(pano *rgbBuf, panoMask []bool, addBuf *rgbBuf, hAddInv Homography, offsetX, offsetY float64) []int {
	w, h := pano.w, pano.h
	cost := make([][]float64, h)
	path := make([][]int8, h)
	for y := range cost {
		cost[y] = make([]float64, w)
		path[y] = make([]int8, w)
		for x := range cost[y] {
			cost[y][x] = infCost
		}
	}

	firstRow, lastRow := -1, 0
	for y := 0; y < h; y++ {
		rowHasOverlap := false
		for x := 0; x < w; x++ {
			if !panoMask[y*w+x] {
				continue
			}
			sx, sy := hAddInv.Apply(float64(x)-offsetX, float64(y)-offsetY)
			if sx >= 0 && sx < float64(addBuf.w)-1 && sy >= 0 && sy < float64(addBuf.h)-1 {
				pr, pg, pb := pano.at(x, y)
				ar, ag, ab := addBuf.bilinear(sx, sy)
				cost[y][x] = colorEnergy(pr, pg, pb, ar, ag, ab)
				rowHasOverlap = true
			}
		}
		if rowHasOverlap {
			if firstRow == -1 {
				firstRow = y
			}
			lastRow = y
		}
	}
	if firstRow == -1 {
		return nil
	}

	for y := firstRow + 1; y <= lastRow; y++ {
		for x := 0; x < w; x++ {
			if cost[y][x] == infCost {
				continue
			}
			upLeft, up, upRight := infCost, cost[y-1][x], infCost
			if x > 0 {
				upLeft = cost[y-1][x-1]
			}
			if x < w-1 {
				upRight = cost[y-1][x+1]
			}
			minCost := math.Min(up, math.Min(upLeft, upRight))
			if minCost == infCost {
				continue
			}
			cost[y][x] += minCost
			switch {
			case minCost == up:
				path[y][x] = 0
			case minCost == upLeft:
				path[y][x] = -1
			default:
				path[y][x] = 1
			}
		}
	}

	seam := make([]int, h)
	minCost, curX := infCost, 0
	for x := 0; x < w; x++ {
		if cost[lastRow][x] < minCost {
			minCost = cost[lastRow][x]
			curX = x
		}
	}
	if minCost == infCost {
		return nil
	}
	for y := lastRow; y >= firstRow; y-- {
		seam[y] = curX
		curX = clampInt(curX+int(path[y][curX]), 0, w-1)
	}
	for y := firstRow - 1; y >= 0; y-- {
		seam[y] = seam[firstRow]
	}
	for y := lastRow + 1; y < h; y++ {
		seam[y] = seam[lastRow]
	}
	return seam
}

// seamDPHorizontal mirrors seamDPVertical along the orthogonal axis
// (§4.11).
func seamDPHorizontal(pano *rgbBuf, panoMask []bool, addBuf *rgbBuf, hAddInv Homography, offsetX, offsetY float64) []int {
	w, h := pano.w, pano.h
	cost := make([][]float64, h)
	path := make([][]int8, h)
	for y := range cost {
		cost[y] = make([]float64, w)
		path[y] = make([]int8, w)
		for x := range cost[y] {
			cost[y][x] = infCost
		}
	}

	firstCol, lastCol := -1, 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !panoMask[y*w+x] {
				continue
			}
			sx, sy := hAddInv.Apply(float64(x)-offsetX, float64(y)-offsetY)
			if sx >= 0 && sx < float64(addBuf.w)-1 && sy >= 0 && sy < float64(addBuf.h)-1 {
				pr, pg, pb := pano.at(x, y)
				ar, ag, ab := addBuf.bilinear(sx, sy)
				cost[y][x] = colorEnergy(pr, pg, pb, ar, ag, ab)
				if firstCol == -1 || x < firstCol {
					firstCol = x
				}
				if x > lastCol {
					lastCol = x
				}
			}
		}
	}
	if firstCol == -1 {
		return nil
	}

	for x := firstCol + 1; x <= lastCol; x++ {
		for y := 0; y < h; y++ {
			if cost[y][x] == infCost {
				continue
			}
			leftUp, left, leftDown := infCost, cost[y][x-1], infCost
			if y > 0 {
				leftUp = cost[y-1][x-1]
			}
			if y < h-1 {
				leftDown = cost[y+1][x-1]
			}
			minCost := math.Min(left, math.Min(leftUp, leftDown))
			if minCost == infCost {
				continue
			}
			cost[y][x] += minCost
			switch {
			case minCost == left:
				path[y][x] = 0
			case minCost == leftUp:
				path[y][x] = -1
			default:
				path[y][x] = 1
			}
		}
	}

	seam := make([]int, w)
	minCost, curY := infCost, 0
	for y := 0; y < h; y++ {
		if cost[y][lastCol] < minCost {
			minCost = cost[y][lastCol]
			curY = y
		}
	}
	if minCost == infCost {
		return nil
	}
	for x := lastCol; x >= firstCol; x-- {
		seam[x] = curY
		curY = clampInt(curY+int(path[curY][x]), 0, h-1)
	}
	for x := firstCol - 1; x >= 0; x-- {
		seam[x] = seam[firstCol]
	}
	for x := lastCol + 1; x < w; x++ {
		seam[x] = seam[lastCol]
	}
	return seam
}

func colorEnergy(r1, g1, b1 uint8, r2, g2, b2 float64) float64 {
	dr := float64(r1) - r2
	dg := float64(g1) - g2
	db := float64(b1) - b2
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
