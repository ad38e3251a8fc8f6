// Package inpaint implements Telea's fast marching inpainting algorithm
// (§4.10): pixels are labelled KNOWN/HOLE/FRONT, a min-heap of FRONT
// pixels is processed by priority, and each popped pixel is filled from
// a weighted average of KNOWN neighbours inside a circular window.
package inpaint

import (
	"container/heap"
	"math"
)

type label uint8

const (
	known label = iota
	hole
	front
)

const windowRadius = 7

// RGB is one inpainted sample.
type RGB struct{ R, G, B float64 }

// Image is a mutable RGB plane inpainted in place by Run.
type Image struct {
	Width, Height int
	Pix           []RGB
}

func (img *Image) idx(x, y int) int { return y*img.Width + x }

func (img *Image) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < img.Width && y < img.Height
}

// Run fills every pixel where mask is true (the hole) using Telea's
// algorithm, mutating img.Pix in place.
func Run(img *Image, mask []bool) {
	w, h := img.Width, img.Height
	labels := make([]label, w*h)
	distance := make([]float64, w*h)
	confidence := make([]float64, w*h)

	for i := range labels {
		if mask[i] {
			labels[i] = hole
			distance[i] = math.Inf(1)
		} else {
			labels[i] = known
			distance[i] = 0
			confidence[i] = 1
		}
	}

	pq := &priorityQueue{}
	heap.Init(pq)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.idx(x, y)
			if labels[i] != hole {
				continue
			}
			if hasKnownNeighbour(labels, w, h, x, y) {
				labels[i] = front
				heap.Push(pq, &heapItem{x: x, y: y, priority: distance[i]})
			}
		}
	}

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*heapItem)
		x, y := item.x, item.y
		i := img.idx(x, y)
		if labels[i] == known {
			continue
		}
		labels[i] = known

		nx, ny := normal(labels, distance, w, h, x, y)
		fillPixel(img, labels, confidence, distance, x, y, nx, ny)
		confidence[i] = contributorConfidence(img, labels, confidence, distance, x, y)

		for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nxp, nyp := x+d[0], y+d[1]
			if !img.inBounds(nxp, nyp) {
				continue
			}
			ni := img.idx(nxp, nyp)
			if labels[ni] != hole {
				continue
			}
			labels[ni] = front
			distance[ni] = solveEikonal(distance, labels, w, h, nxp, nyp)
			heap.Push(pq, &heapItem{x: nxp, y: nyp, priority: distance[ni]})
		}
	}
}

func hasKnownNeighbour(labels []label, w, h, x, y int) bool {
	for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || ny < 0 || nx >= w || ny >= h {
			continue
		}
		if labels[ny*w+nx] == known {
			return true
		}
	}
	return false
}

// solveEikonal approximates the distance-from-boundary field using the
// minimum of the already-known axis neighbours plus 1, the standard fast
// marching update for a unit-speed field.
func solveEikonal(distance []float64, labels []label, w, h, x, y int) float64 {
	best := math.Inf(1)
	for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || ny < 0 || nx >= w || ny >= h {
			continue
		}
		i := ny*w + nx
		if labels[i] == hole {
			continue
		}
		if distance[i] < best {
			best = distance[i]
		}
	}
	if math.IsInf(best, 1) {
		return 0
	}
	return best + 1
}

// normal estimates the inpainting front's normal vector from the
// gradient of the binary hole mask's distance field.
func normal(labels []label, distance []float64, w, h, x, y int) (nx, ny float64) {
	gx := sampleDist(distance, labels, w, h, x+1, y) - sampleDist(distance, labels, w, h, x-1, y)
	gy := sampleDist(distance, labels, w, h, x, y+1) - sampleDist(distance, labels, w, h, x, y-1)
	length := math.Hypot(gx, gy)
	if length == 0 {
		return 0, 0
	}
	return -gy / length, gx / length
}

func sampleDist(distance []float64, labels []label, w, h, x, y int) float64 {
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0
	}
	return distance[y*w+x]
}

// fillPixel writes a weighted colour average over KNOWN pixels inside the
// circular window, weight = direction * distance * confidence.
func fillPixel(img *Image, labels []label, confidence, distance []float64, x, y int, nx, ny float64) {
	var sumW, sumR, sumG, sumB float64
	for dy := -windowRadius; dy <= windowRadius; dy++ {
		for dx := -windowRadius; dx <= windowRadius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if dx*dx+dy*dy > windowRadius*windowRadius {
				continue
			}
			qx, qy := x+dx, y+dy
			if !img.inBounds(qx, qy) {
				continue
			}
			qi := img.idx(qx, qy)
			if labels[qi] != known {
				continue
			}

			dirDot := (float64(dx)*nx + float64(dy)*ny)
			if dirDot < 0 {
				dirDot = 0
			}
			dist2 := float64(dx*dx + dy*dy)
			distW := 1 / (dist2 * math.Sqrt(dist2))
			w := dirDot * distW * confidence[qi]
			if w <= 0 {
				continue
			}
			sumW += w
			sumR += w * img.Pix[qi].R
			sumG += w * img.Pix[qi].G
			sumB += w * img.Pix[qi].B
		}
	}
	i := img.idx(x, y)
	if sumW == 0 {
		return
	}
	img.Pix[i] = RGB{R: sumR / sumW, G: sumG / sumW, B: sumB / sumW}
}

// contributorConfidence is the weighted mean confidence of the pixels
// that contributed to filling (x, y).
func contributorConfidence(img *Image, labels []label, confidence, distance []float64, x, y int) float64 {
	var sumW, sumC float64
	for dy := -windowRadius; dy <= windowRadius; dy++ {
		for dx := -windowRadius; dx <= windowRadius; dx++ {
			if dx*dx+dy*dy > windowRadius*windowRadius {
				continue
			}
			qx, qy := x+dx, y+dy
			if !img.inBounds(qx, qy) {
				continue
			}
			qi := img.idx(qx, qy)
			if labels[qi] != known {
				continue
			}
			sumW++
			sumC += confidence[qi]
		}
	}
	if sumW == 0 {
		return 1
	}
	return sumC / sumW
}

type heapItem struct {
	x, y     int
	priority float64
}

type priorityQueue []*heapItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].priority < pq[j].priority }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(*heapItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
